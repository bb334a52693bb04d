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

// Package corpus holds the verse text of both orthographies and the chapter
// metadata. A Corpus is immutable once loaded and safe for concurrent reads.
package corpus

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// UnknownChapter is returned by ChapterName for chapters outside the index.
const UnknownChapter = "Unknown Chapter"

const fieldSep = "|"

// Variant selects one of the two orthographies held for every verse.
type Variant int

const (
	// Uthmani is the primary, fully vocalised orthography.
	Uthmani Variant = iota
	// Simplified is the searchable orthography.
	Simplified
)

func (v Variant) String() string {
	switch v {
	case Uthmani:
		return "uthmani"
	case Simplified:
		return "simplified"
	default:
		return "unknown"
	}
}

// VerseKey identifies one verse.
type VerseKey struct {
	Chapter int `json:"chapter"`
	Verse   int `json:"verse"`
}

func (k VerseKey) String() string {
	return strconv.Itoa(k.Chapter) + ":" + strconv.Itoa(k.Verse)
}

// Compare orders keys by chapter then verse.
func (k VerseKey) Compare(other VerseKey) int {
	if c := cmp.Compare(k.Chapter, other.Chapter); c != 0 {
		return c
	}
	return cmp.Compare(k.Verse, other.Verse)
}

type VerseRecord struct {
	Key        VerseKey `json:"key"`
	Uthmani    string   `json:"uthmani"`
	Simplified string   `json:"simplified"`
}

// Text returns the record's text in the given variant.
func (r VerseRecord) Text(v Variant) string {
	if v == Simplified {
		return r.Simplified
	}
	return r.Uthmani
}

type Corpus struct {
	records     map[VerseKey]VerseRecord
	verseCounts map[int]int
	chapters    []string
	keys        []VerseKey
}

// Parse builds a Corpus from already opened sources. Chapter names are one
// per line; verse sources are chapter|verse|text lines where the text may
// itself contain the separator. Malformed verse lines are skipped. A source
// that cannot be read fails with a *LoadError naming it.
func Parse(chapters, uthmani, simplified io.Reader) (*Corpus, error) {
	return parse(chapters, uthmani, simplified, Sources{
		Chapters:   "chapters",
		Uthmani:    "uthmani",
		Simplified: "simplified",
	})
}

func parse(chapters, uthmani, simplified io.Reader, src Sources) (*Corpus, error) {
	names, err := readChapters(chapters)
	if err != nil {
		return nil, &LoadError{Path: src.Chapters, Err: err}
	}
	primary, skippedA, err := readVerses(uthmani)
	if err != nil {
		return nil, &LoadError{Path: src.Uthmani, Err: err}
	}
	secondary, skippedB, err := readVerses(simplified)
	if err != nil {
		return nil, &LoadError{Path: src.Simplified, Err: err}
	}
	return assemble(names, primary, secondary, skippedA+skippedB), nil
}

func assemble(names []string, primary, secondary map[VerseKey]string, skipped int) *Corpus {
	c := &Corpus{
		chapters:    names,
		records:     make(map[VerseKey]VerseRecord, len(primary)),
		verseCounts: make(map[int]int),
		keys:        make([]VerseKey, 0, len(primary)),
	}

	missing := 0
	for key, text := range primary {
		simple, ok := secondary[key]
		if !ok {
			missing++
		}
		c.records[key] = VerseRecord{Key: key, Uthmani: text, Simplified: simple}
		c.keys = append(c.keys, key)
		c.verseCounts[key.Chapter] = max(c.verseCounts[key.Chapter], key.Verse)
	}
	slices.SortFunc(c.keys, VerseKey.Compare)

	if skipped > 0 {
		log.Warn().Int("lines", skipped).Msg("skipped malformed verse lines")
	}
	if missing > 0 {
		log.Warn().Int("verses", missing).Msg("verses missing from simplified text")
	}
	log.Debug().
		Int("chapters", len(c.chapters)).
		Int("verses", len(c.keys)).
		Msg("corpus loaded")

	return c
}

func readChapters(r io.Reader) ([]string, error) {
	var names []string
	scanner := newScanner(r)
	for scanner.Scan() {
		names = append(names, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chapter names: %w", err)
	}
	// trailing blank lines are not chapters
	for len(names) > 0 && names[len(names)-1] == "" {
		names = names[:len(names)-1]
	}
	return names, nil
}

func readVerses(r io.Reader) (verses map[VerseKey]string, skipped int, err error) {
	verses = make(map[VerseKey]string)
	scanner := newScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		key, text, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		verses[key] = text
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("failed to read verses: %w", err)
	}
	return verses, skipped, nil
}

func parseLine(line string) (VerseKey, string, bool) {
	parts := strings.SplitN(line, fieldSep, 3)
	if len(parts) < 3 {
		return VerseKey{}, "", false
	}
	chapter, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || chapter < 1 {
		return VerseKey{}, "", false
	}
	verse, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || verse < 1 {
		return VerseKey{}, "", false
	}
	return VerseKey{Chapter: chapter, Verse: verse}, parts[2], true
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	// allow long vocalised lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

// Verse returns the text of a verse in one variant. Unknown keys return
// ("", false).
func (c *Corpus) Verse(key VerseKey, v Variant) (string, bool) {
	rec, ok := c.records[key]
	if !ok {
		return "", false
	}
	return rec.Text(v), true
}

func (c *Corpus) Record(key VerseKey) (VerseRecord, bool) {
	rec, ok := c.records[key]
	return rec, ok
}

// Keys returns every verse key in ascending order. The slice is shared and
// must not be modified.
func (c *Corpus) Keys() []VerseKey {
	return c.keys
}

func (c *Corpus) Len() int {
	return len(c.keys)
}

// ChapterName returns the display name of a 1-indexed chapter, or
// UnknownChapter when the number is out of range.
func (c *Corpus) ChapterName(chapter int) string {
	if chapter < 1 || chapter > len(c.chapters) {
		return UnknownChapter
	}
	return c.chapters[chapter-1]
}

func (c *Corpus) ChapterNames() []string {
	return slices.Clone(c.chapters)
}

// VerseCount returns the highest verse number seen for a chapter, 0 when the
// chapter is unknown.
func (c *Corpus) VerseCount(chapter int) int {
	return c.verseCounts[chapter]
}

// ChapterRange returns the lowest and highest chapter numbers holding
// verses, or (0, 0) for an empty corpus.
func (c *Corpus) ChapterRange() (minChapter, maxChapter int) {
	if len(c.keys) == 0 {
		return 0, 0
	}
	return c.keys[0].Chapter, c.keys[len(c.keys)-1].Chapter
}

// ValidateReference checks a chapter and optional verse number against the
// loaded text. The message is empty when the reference is valid.
func (c *Corpus) ValidateReference(chapter int, verse *int) (bool, string) {
	lo, hi := c.ChapterRange()
	if hi == 0 || chapter < lo || chapter > hi {
		return false, fmt.Sprintf("Invalid surah number. Must be between %d-%d", lo, hi)
	}
	if verse != nil {
		count := c.VerseCount(chapter)
		if *verse < 1 || *verse > count {
			return false, fmt.Sprintf("Invalid ayah for surah %d. Must be 1-%d", chapter, count)
		}
	}
	return true, ""
}

// ChapterKeys returns the keys of one chapter in verse order.
func (c *Corpus) ChapterKeys(chapter int) []VerseKey {
	start, _ := slices.BinarySearchFunc(c.keys, VerseKey{Chapter: chapter, Verse: 0}, VerseKey.Compare)
	end, _ := slices.BinarySearchFunc(c.keys, VerseKey{Chapter: chapter + 1, Verse: 0}, VerseKey.Compare)
	return c.keys[start:end]
}

// Texts returns every verse's text in the given variant, in key order.
func (c *Corpus) Texts(v Variant) []string {
	out := make([]string, len(c.keys))
	for i, key := range c.keys {
		out[i] = c.records[key].Text(v)
	}
	return out
}
