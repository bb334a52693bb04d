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

// Package wordindex derives the frequency ordered vocabulary of the
// searchable text and keeps it in a flat cache file between runs.
package wordindex

import (
	"cmp"
	"slices"
	"strings"

	"github.com/mosaid/quransearch/pkg/arabic"
)

// Build normalizes every text, splits it into words and returns the
// distinct words ordered by descending count, then ascending form.
func Build(texts []string) []string {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(arabic.Normalize(text)) {
			counts[word]++
		}
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	slices.SortFunc(words, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return words
}
