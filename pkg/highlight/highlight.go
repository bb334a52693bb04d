// Quran Search
// Copyright (c) 2026 The Quran Search Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Quran Search.
//
// Quran Search is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Quran Search is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Quran Search.  If not, see <http://www.gnu.org/licenses/>.

// Package highlight marks query matches in verse text. Matching happens on
// the normalized projection of the text; spans are mapped back so that the
// original text, diacritics included, is kept byte for byte.
package highlight

import (
	"slices"
	"strings"

	"github.com/mosaid/quransearch/pkg/search"
)

// Term is a supplementary word highlighted alongside the query.
type Term struct {
	Query string `json:"query"`
	Style Style  `json:"style"`
}

// Options tunes span selection.
type Options struct {
	// ExpandToWords widens phrase hits to the whole words they touch.
	ExpandToWords bool
}

type Highlighter struct {
	marker Marker
	opts   Options
}

// New returns a Highlighter rendering with marker. A nil marker uses
// SpanMarker.
func New(marker Marker, opts Options) *Highlighter {
	if marker == nil {
		marker = SpanMarker{}
	}
	return &Highlighter{marker: marker, opts: opts}
}

// Spans returns the ranges of text matched by q. Word patterns and single
// word queries mark whole tokens; multi-word queries go through the phrase
// path.
func (h *Highlighter) Spans(text string, q search.Query) []Span {
	if q.Empty() {
		return nil
	}
	if q.Pattern != search.Substring || !q.MultiWord() {
		return WordSpans(text, q)
	}
	spans := PhraseSpans(text, q)
	if h.opts.ExpandToWords {
		spans = ExpandToWords(text, spans)
	}
	return spans
}

type layer struct {
	style Style
	spans []Span
}

// Highlight marks the query in text, then each extra term that differs
// from the query. Later terms wrap earlier ones where they overlap.
func (h *Highlighter) Highlight(text, query string, style Style, extras []Term) string {
	q := search.ParseQuery(query)

	var layers []layer
	if spans := h.Spans(text, q); len(spans) > 0 {
		layers = append(layers, layer{style: style, spans: spans})
	}
	for _, term := range extras {
		tq := search.ParseQuery(term.Query)
		if tq.Empty() || tq.Normalized == q.Normalized {
			continue
		}
		if spans := h.Spans(text, tq); len(spans) > 0 {
			layers = append(layers, layer{style: term.Style, spans: spans})
		}
	}

	if len(layers) == 0 {
		return text
	}
	return h.render(text, layers)
}

// Emphasize wraps the whole text in the focal style.
func (h *Highlighter) Emphasize(text string) string {
	if text == "" {
		return text
	}
	return h.marker.Open(FocalStyle) + text + h.marker.Close(FocalStyle)
}

// render writes text with every layer's spans marked. The text is cut at
// every span boundary and each segment is wrapped in the layers covering
// it, the latest layer outermost. Tags are closed and reopened as needed so
// the output always nests.
func (h *Highlighter) render(text string, layers []layer) string {
	bounds := []int{0, len(text)}
	for _, l := range layers {
		for _, s := range l.spans {
			bounds = append(bounds, s.Start, s.End)
		}
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	var b strings.Builder
	b.Grow(len(text) + 64*len(bounds))

	cursor := make([]int, len(layers))
	var open, want []int
	for k := 0; k+1 < len(bounds); k++ {
		lo, hi := bounds[k], bounds[k+1]

		want = want[:0]
		for li := len(layers) - 1; li >= 0; li-- {
			spans := layers[li].spans
			for cursor[li] < len(spans) && spans[cursor[li]].End <= lo {
				cursor[li]++
			}
			if cursor[li] < len(spans) && spans[cursor[li]].Start <= lo {
				want = append(want, li)
			}
		}

		common := 0
		for common < len(open) && common < len(want) && open[common] == want[common] {
			common++
		}
		for i := len(open) - 1; i >= common; i-- {
			b.WriteString(h.marker.Close(layers[open[i]].style))
		}
		for _, li := range want[common:] {
			b.WriteString(h.marker.Open(layers[li].style))
		}
		open = append(open[:common], want[common:]...)

		b.WriteString(text[lo:hi])
	}
	for i := len(open) - 1; i >= 0; i-- {
		b.WriteString(h.marker.Close(layers[open[i]].style))
	}
	return b.String()
}
