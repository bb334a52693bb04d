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

package highlight

import (
	"unicode"
	"unicode/utf8"

	"github.com/mosaid/quransearch/pkg/search"
)

// Span is a half-open byte range [Start, End) of the original text.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int {
	return s.End - s.Start
}

// PhraseSpans finds the query in the normalized projection of text and maps
// every hit back onto text. Hits are non-overlapping and in order.
func PhraseSpans(text string, q search.Query) []Span {
	if q.Empty() || text == "" {
		return nil
	}

	sm := buildSpanMap(text, q.Literal)
	needle := []rune(q.Normalized)

	var spans []Span
	prevEnd := 0
	for from := 0; ; {
		i := sm.Index(needle, from)
		if i < 0 {
			break
		}
		from = i + len(needle)

		s := sm.Source(text, i, len(needle))
		// a hit starting inside the ligature that ended the last one
		s.Start = max(s.Start, prevEnd)
		if s.Start >= s.End {
			continue
		}
		spans = append(spans, s)
		prevEnd = s.End
	}
	return spans
}

// WordSpans marks every whitespace-delimited token of text whose normalized
// form satisfies the query. Text between tokens is never part of a span.
func WordSpans(text string, q search.Query) []Span {
	if q.Empty() {
		return nil
	}
	var spans []Span
	for _, tok := range tokens(text) {
		if q.MatchWord(q.Normalize(text[tok.Start:tok.End])) {
			spans = append(spans, tok)
		}
	}
	return spans
}

// ExpandToWords widens spans to the whitespace-delimited words they touch
// and merges spans that come to overlap.
func ExpandToWords(text string, spans []Span) []Span {
	if len(spans) == 0 {
		return spans
	}
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		for s.Start > 0 {
			r, size := utf8.DecodeLastRuneInString(text[:s.Start])
			if unicode.IsSpace(r) {
				break
			}
			s.Start -= size
		}
		for s.End < len(text) {
			r, size := utf8.DecodeRuneInString(text[s.End:])
			if unicode.IsSpace(r) {
				break
			}
			s.End += size
		}
		if n := len(out); n > 0 && s.Start <= out[n-1].End {
			out[n-1].End = max(out[n-1].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

func tokens(text string) []Span {
	var toks []Span
	start := -1
	for i, r := range text {
		space := unicode.IsSpace(r)
		switch {
		case space && start >= 0:
			toks = append(toks, Span{Start: start, End: i})
			start = -1
		case !space && start < 0:
			start = i
		}
	}
	if start >= 0 {
		toks = append(toks, Span{Start: start, End: len(text)})
	}
	return toks
}
