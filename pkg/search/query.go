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

package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mosaid/quransearch/pkg/arabic"
)

const (
	// LiteralMarker anywhere in a query switches off diacritic removal and
	// letter folding.
	LiteralMarker = "@"
	// Wildcard anchors a query to word boundaries.
	Wildcard = "%"
)

// Pattern is how a query term is compared with verse text.
type Pattern int

const (
	// Substring matches the term anywhere, across word boundaries.
	Substring Pattern = iota
	// StartsWith matches words beginning with the term ("term%").
	StartsWith
	// EndsWith matches words ending with the term ("%term").
	EndsWith
	// ExactWord matches whole words equal to the term ("%term%").
	ExactWord
)

func (p Pattern) String() string {
	switch p {
	case Substring:
		return "substring"
	case StartsWith:
		return "starts_with"
	case EndsWith:
		return "ends_with"
	case ExactWord:
		return "exact_word"
	default:
		return "unknown"
	}
}

// Query is a parsed search string.
type Query struct {
	Raw        string
	Term       string
	Normalized string
	Pattern    Pattern
	Literal    bool
}

// ParseQuery extracts the operators from a user typed query and normalizes
// the remaining term.
func ParseQuery(raw string) Query {
	q := Query{Raw: raw}

	s := raw
	if strings.Contains(s, LiteralMarker) {
		q.Literal = true
		s = strings.ReplaceAll(s, LiteralMarker, "")
	}
	s = strings.TrimSpace(s)

	starts := strings.HasPrefix(s, Wildcard)
	ends := strings.HasSuffix(s, Wildcard)
	n := utf8.RuneCountInString(s)
	switch {
	case starts && ends && n > 2:
		q.Pattern = ExactWord
		s = s[len(Wildcard) : len(s)-len(Wildcard)]
	case starts && n > 1:
		q.Pattern = EndsWith
		s = s[len(Wildcard):]
	case ends && n > 1:
		q.Pattern = StartsWith
		s = s[:len(s)-len(Wildcard)]
	default:
		q.Pattern = Substring
	}

	q.Term = s
	q.Normalized = normalizeFor(q.Term, q.Literal)
	return q
}

// Empty reports whether the query has nothing left to match.
func (q Query) Empty() bool {
	return q.Normalized == ""
}

// MultiWord reports whether the normalized term spans several words.
func (q Query) MultiWord() bool {
	return strings.ContainsFunc(q.Normalized, unicode.IsSpace)
}

// MatchWord reports whether a single normalized word satisfies the query.
// Substring queries match words containing the term.
func (q Query) MatchWord(word string) bool {
	if q.Empty() {
		return false
	}
	switch q.Pattern {
	case StartsWith:
		return strings.HasPrefix(word, q.Normalized)
	case EndsWith:
		return strings.HasSuffix(word, q.Normalized)
	case ExactWord:
		return word == q.Normalized
	default:
		return strings.Contains(word, q.Normalized)
	}
}

// Count returns how many times the query occurs in normalized text:
// non-overlapping occurrences for substring queries, matching words
// otherwise.
func (q Query) Count(normalized string) int {
	if q.Empty() {
		return 0
	}
	if q.Pattern == Substring {
		return strings.Count(normalized, q.Normalized)
	}
	n := 0
	for _, word := range strings.Fields(normalized) {
		if q.MatchWord(word) {
			n++
		}
	}
	return n
}

// Normalize applies the same normalization the query term received.
func (q Query) Normalize(text string) string {
	return normalizeFor(text, q.Literal)
}

func normalizeFor(s string, literal bool) string {
	if literal {
		return arabic.NormalizeLiteral(s)
	}
	return arabic.Normalize(s)
}
