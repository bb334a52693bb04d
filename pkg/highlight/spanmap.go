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
	"slices"
	"unicode/utf8"

	"github.com/mosaid/quransearch/pkg/arabic"
	"golang.org/x/text/unicode/norm"
)

// SpanMap is the per-rune normalized projection of a text. Offsets[i] is the
// byte offset in the original text of the rune that produced Runes[i]; runes
// that normalize to nothing have no entry. Offsets never decrease.
type SpanMap struct {
	Runes   []rune
	Offsets []int
}

// BuildSpanMap projects text through arabic.NormalizeChar in one pass. A
// dagger alif resolves with the same noon lookahead as arabic.Normalize so the
// projection lines up with normalized queries.
func BuildSpanMap(text string) SpanMap {
	return buildSpanMap(text, false)
}

// buildSpanMap projects text for literal queries when literal is set: marks
// and letter variants are kept and the text is recomposed to NFC, matching
// arabic.NormalizeLiteral.
func buildSpanMap(text string, literal bool) SpanMap {
	n := utf8.RuneCountInString(text)
	sm := SpanMap{
		Runes:   make([]rune, 0, n),
		Offsets: make([]int, 0, n),
	}
	if literal {
		sm.appendNFC(text)
		return sm
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		next, _ := utf8.DecodeRuneInString(text[i+size:])
		for _, c := range arabic.ResolveDaggerAlef(r, next) {
			for _, nr := range arabic.NormalizeChar(c) {
				sm.Runes = append(sm.Runes, nr)
				sm.Offsets = append(sm.Offsets, i)
			}
		}
		i += size
	}
	return sm
}

// appendNFC walks text one normalization segment at a time. A segment is a
// starter with the marks that follow it; its NFC runes all map to the
// segment's first byte, so reordered or composed marks stay inside it.
func (sm *SpanMap) appendNFC(text string) {
	for i := 0; i < len(text); {
		size := norm.NFC.NextBoundaryInString(text[i:], true)
		if size <= 0 {
			size = len(text) - i
		}
		for _, r := range norm.NFC.String(text[i : i+size]) {
			sm.Runes = append(sm.Runes, r)
			sm.Offsets = append(sm.Offsets, i)
		}
		i += size
	}
}

// Index returns the rune index of the first occurrence of needle at or after
// from, or -1.
func (sm SpanMap) Index(needle []rune, from int) int {
	n := len(needle)
	if n == 0 {
		return -1
	}
	for i := from; i+n <= len(sm.Runes); i++ {
		if sm.Runes[i] == needle[0] && slices.Equal(sm.Runes[i:i+n], needle) {
			return i
		}
	}
	return -1
}

// Source maps the normalized run [i, i+n) back onto text. The end covers the
// whole last source rune, or the whole segment it belongs to, and any
// following runes that normalize to nothing, stopping at the source of the
// next retained rune.
func (sm SpanMap) Source(text string, i, n int) Span {
	start := sm.Offsets[i]
	last := slices.Max(sm.Offsets[i : i+n])
	_, size := utf8.DecodeRuneInString(text[last:])
	end := last + size

	j := i + n
	for j < len(sm.Offsets) && sm.Offsets[j] == last {
		j++
	}
	limit := len(text)
	if j < len(sm.Offsets) {
		limit = sm.Offsets[j]
	}
	return Span{Start: start, End: max(end, limit)}
}
