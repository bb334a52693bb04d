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

// Package search finds verses whose simplified text matches a query. A
// Matcher is built once over a corpus and only reads afterwards, so it is
// safe for concurrent use and its results can be dropped at any time.
package search

import (
	"slices"

	"github.com/mosaid/quransearch/pkg/arabic"
	"github.com/mosaid/quransearch/pkg/corpus"
)

// DefaultContextRadius is the number of verses shown on each side of a
// context target.
const DefaultContextRadius = 5

// Result lists matching verses in (chapter, verse) order along with the
// total number of occurrences across them.
type Result struct {
	Keys        []corpus.VerseKey
	Occurrences int
}

// ContextVerse is one verse of a context block. Focal marks the verse the
// block was requested for.
type ContextVerse struct {
	Record corpus.VerseRecord
	Focal  bool
}

type entry struct {
	folded  string
	literal string
	key     corpus.VerseKey
}

type Matcher struct {
	corpus  *corpus.Corpus
	entries []entry
}

// New precomputes both normalized projections of every verse's simplified
// text.
func New(c *corpus.Corpus) *Matcher {
	keys := c.Keys()
	entries := make([]entry, len(keys))
	for i, key := range keys {
		text, _ := c.Verse(key, corpus.Simplified)
		entries[i] = entry{
			key:     key,
			folded:  arabic.Normalize(text),
			literal: arabic.NormalizeLiteral(text),
		}
	}
	return &Matcher{corpus: c, entries: entries}
}

func (m *Matcher) Corpus() *corpus.Corpus {
	return m.corpus
}

// SearchAll returns every verse matching a raw query.
func (m *Matcher) SearchAll(raw string) []corpus.VerseKey {
	return m.Search(ParseQuery(raw)).Keys
}

// Search scans the whole corpus.
func (m *Matcher) Search(q Query) Result {
	return scan(m.entries, q)
}

// SearchInChapter restricts Search to a single chapter.
func (m *Matcher) SearchInChapter(chapter int, q Query) Result {
	return scan(m.chapterEntries(chapter), q)
}

func scan(entries []entry, q Query) Result {
	var res Result
	if q.Empty() {
		return res
	}
	for i := range entries {
		e := &entries[i]
		text := e.folded
		if q.Literal {
			text = e.literal
		}
		if n := q.Count(text); n > 0 {
			res.Keys = append(res.Keys, e.key)
			res.Occurrences += n
		}
	}
	return res
}

func (m *Matcher) chapterEntries(chapter int) []entry {
	cmpChapter := func(e entry, ch int) int { return e.key.Chapter - ch }
	start, _ := slices.BinarySearchFunc(m.entries, chapter, cmpChapter)
	end, _ := slices.BinarySearchFunc(m.entries, chapter+1, cmpChapter)
	return m.entries[start:end]
}

// ByRange returns verses first..last of a chapter without filtering. A last
// below first selects the single verse first. The range is clamped to the
// chapter's verses; a verse missing from the corpus yields empty text.
func (m *Matcher) ByRange(chapter, first, last int) []corpus.VerseRecord {
	if last < first {
		last = first
	}
	count := m.corpus.VerseCount(chapter)
	first = max(first, 1)
	last = min(last, count)
	if first > last {
		return nil
	}

	out := make([]corpus.VerseRecord, 0, last-first+1)
	for v := first; v <= last; v++ {
		key := corpus.VerseKey{Chapter: chapter, Verse: v}
		rec, ok := m.corpus.Record(key)
		if !ok {
			rec = corpus.VerseRecord{Key: key}
		}
		out = append(out, rec)
	}
	return out
}

// ByChapter returns every verse of a chapter.
func (m *Matcher) ByChapter(chapter int) []corpus.VerseRecord {
	return m.ByRange(chapter, 1, m.corpus.VerseCount(chapter))
}

// Context returns the verses within radius of chapter:verse, the target
// flagged as focal. An invalid reference returns nothing.
func (m *Matcher) Context(chapter, verse, radius int) []ContextVerse {
	if ok, _ := m.corpus.ValidateReference(chapter, &verse); !ok {
		return nil
	}
	radius = max(radius, 0)

	records := m.ByRange(chapter, verse-radius, verse+radius)
	out := make([]ContextVerse, len(records))
	for i, rec := range records {
		out[i] = ContextVerse{Record: rec, Focal: rec.Key.Verse == verse}
	}
	return out
}

// SearchWithContext returns one context block per verse matching q.
func (m *Matcher) SearchWithContext(q Query, radius int) [][]ContextVerse {
	res := m.Search(q)
	blocks := make([][]ContextVerse, 0, len(res.Keys))
	for _, key := range res.Keys {
		blocks = append(blocks, m.Context(key.Chapter, key.Verse, radius))
	}
	return blocks
}
