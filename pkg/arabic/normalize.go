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

// Package arabic produces the comparison form of Arabic verse text. The
// comparison form folds away vowel marks and orthographic letter variants so
// that a query typed without diacritics matches fully vocalised text.
package arabic

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	Hamza          = 'ء'
	AlefMadda      = 'آ'
	AlefHamzaAbove = 'أ'
	WawHamzaAbove  = 'ؤ'
	AlefHamzaBelow = 'إ'
	YehHamzaAbove  = 'ئ'
	Alef           = 'ا'
	TehMarbuta     = 'ة'
	Tatweel        = 'ـ'
	Noon           = 'ن'
	Heh            = 'ه'
	Waw            = 'و'
	DotlessYeh     = 'ى'
	Yeh            = 'ي'
	DaggerAlef     = 'ٰ'
	AlefWasla      = 'ٱ'
)

// foldLetter maps a letter variant to its canonical form. The second return
// value is false when the rune must be dropped.
func foldLetter(r rune) (rune, bool) {
	switch r {
	case AlefHamzaAbove, AlefHamzaBelow, AlefMadda, AlefWasla:
		return Alef, true
	case DotlessYeh, YehHamzaAbove:
		return Yeh, true
	case WawHamzaAbove:
		return Waw, true
	case TehMarbuta:
		return Heh, true
	case Tatweel:
		return 0, false
	default:
		return r, true
	}
}

func isMark(r rune) bool {
	return unicode.Is(unicode.M, r)
}

// Normalize returns the comparison form of s:
//   - dagger alif directly before noon is deleted, any other dagger alif
//     becomes a plain alif, including one carried by a presentation form
//   - the text is decomposed (NFKD) and every combining mark is removed
//   - hamza-bearing alifs, alif wasla, alif maqsura, hamza seats and teh
//     marbuta are folded; tatweel is deleted
//   - the result is recomposed (NFC) and trimmed
//
// Internal whitespace is kept as is. Standalone hamza is preserved.
// Normalize is idempotent.
func Normalize(s string) string {
	if s == "" {
		return s
	}

	s = resolveDaggerAlef(s)

	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.Predicate(isMark)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == Tatweel })),
		runes.Map(func(r rune) rune {
			folded, _ := foldLetter(r)
			return folded
		}),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		s = normalized
	}

	return strings.TrimSpace(s)
}

// resolveDaggerAlef applies the dagger alif rule before marks are stripped.
// The check against the following rune is a lookahead: the noon itself is
// always kept.
func resolveDaggerAlef(s string) string {
	if !strings.ContainsRune(s, DaggerAlef) && !hasPresentationForm(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		next, _ := utf8.DecodeRuneInString(s[i:])
		b.WriteString(ResolveDaggerAlef(r, next))
	}
	return b.String()
}

// ResolveDaggerAlef returns r with the dagger alif rule applied, given the
// rune that follows it in the text (0 at the end). A presentation form
// carrying a dagger alif is returned decomposed so the rule can reach it.
// Any other rune is returned unchanged.
func ResolveDaggerAlef(r, next rune) string {
	if r == DaggerAlef {
		if beginsWithNoon(next) {
			return ""
		}
		return string(Alef)
	}
	if !isPresentationForm(r) {
		return string(r)
	}

	decomposed := []rune(norm.NFKD.String(string(r)))
	if !slices.Contains(decomposed, DaggerAlef) {
		return string(r)
	}
	out := make([]rune, 0, len(decomposed))
	for j, d := range decomposed {
		if d != DaggerAlef {
			out = append(out, d)
			continue
		}
		after := next
		if j+1 < len(decomposed) {
			after = decomposed[j+1]
		}
		if !beginsWithNoon(after) {
			out = append(out, Alef)
		}
	}
	return string(out)
}

func beginsWithNoon(r rune) bool {
	if r == Noon {
		return true
	}
	if !isPresentationForm(r) {
		return false
	}
	first, _ := utf8.DecodeRuneInString(norm.NFKD.String(string(r)))
	return first == Noon
}

// Arabic Presentation Forms-A and -B.
func isPresentationForm(r rune) bool {
	return (r >= 0xFB50 && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF)
}

func hasPresentationForm(s string) bool {
	return strings.ContainsFunc(s, isPresentationForm)
}

// NormalizeChar is the per-rune form of Normalize used to build position
// maps. It decomposes, strips marks and folds letters, but has no lookahead:
// a dagger alif is a mark here and vanishes. Whitespace is returned
// unchanged. The result may be empty or hold several runes (ligatures).
func NormalizeChar(r rune) string {
	if r < utf8.RuneSelf || unicode.IsSpace(r) {
		return string(r)
	}

	var out []rune
	for _, d := range norm.NFKD.String(string(r)) {
		if isMark(d) {
			continue
		}
		if folded, keep := foldLetter(d); keep {
			out = append(out, folded)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return norm.NFC.String(string(out))
}

// NormalizeLiteral keeps marks and letter variants and only recomposes and
// trims. It backs hamza and diacritic sensitive searches.
func NormalizeLiteral(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// HasMarks reports whether s contains any combining mark.
func HasMarks(s string) bool {
	for _, r := range s {
		if isMark(r) {
			return true
		}
	}
	return false
}
