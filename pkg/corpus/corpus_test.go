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

package corpus_test

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/mosaid/quransearch/pkg/testing/fixtures"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(chapter, verse int) corpus.VerseKey {
	return corpus.VerseKey{Chapter: chapter, Verse: verse}
}

func intPtr(v int) *int {
	return &v
}

func parse(t *testing.T, chapters, uthmani, simplified string) *corpus.Corpus {
	t.Helper()
	c, err := corpus.Parse(
		strings.NewReader(chapters),
		strings.NewReader(uthmani),
		strings.NewReader(simplified),
	)
	require.NoError(t, err)
	return c
}

func TestParseFixtures(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()
	assert.Equal(t, len(fixtures.Verses), c.Len())

	text, ok := c.Verse(key(1, 1), corpus.Uthmani)
	require.True(t, ok)
	assert.Equal(t, fixtures.Basmala, text)

	text, ok = c.Verse(key(1, 1), corpus.Simplified)
	require.True(t, ok)
	assert.Equal(t, "بسم الله الرحمن الرحيم", text)

	keys := c.Keys()
	require.NotEmpty(t, keys)
	for i := 1; i < len(keys); i++ {
		assert.Negative(t, keys[i-1].Compare(keys[i]), "keys out of order at %d", i)
	}
}

func TestParseRejoinsSeparatorInText(t *testing.T) {
	t.Parallel()

	c := parse(t, "أ\n", "1|1|نص|مع|فواصل\n", "1|1|نص\n")
	text, ok := c.Verse(key(1, 1), corpus.Uthmani)
	require.True(t, ok)
	assert.Equal(t, "نص|مع|فواصل", text)
}

func TestParseSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	uthmani := strings.Join([]string{
		"1|1|first",
		"1|x|bad verse",
		"y|2|bad chapter",
		"1|2",
		"0|3|zero chapter",
		"1|-1|negative verse",
		"",
		"  1|2|second  ",
	}, "\n")
	c := parse(t, "one\n", uthmani, "1|1|a\n1|2|b\n")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []corpus.VerseKey{key(1, 1), key(1, 2)}, c.Keys())
	text, _ := c.Verse(key(1, 2), corpus.Uthmani)
	assert.Equal(t, "second", text)
}

func TestParseMissingSimplifiedDegradesToEmpty(t *testing.T) {
	t.Parallel()

	c := parse(t, "one\n", "1|1|a\n1|2|b\n", "1|1|a\n")

	text, ok := c.Verse(key(1, 2), corpus.Simplified)
	assert.True(t, ok)
	assert.Empty(t, text)
}

func TestVerseNotFound(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()
	text, ok := c.Verse(key(3, 1), corpus.Uthmani)
	assert.False(t, ok)
	assert.Empty(t, text)

	_, ok = c.Record(key(2, 6))
	assert.False(t, ok)
}

func TestChapterName(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()

	tests := []struct {
		name     string
		chapter  int
		expected string
	}{
		{name: "first", chapter: 1, expected: "الفاتحة"},
		{name: "second", chapter: 2, expected: "البقرة"},
		{name: "zero", chapter: 0, expected: corpus.UnknownChapter},
		{name: "negative", chapter: -1, expected: corpus.UnknownChapter},
		{name: "too_large", chapter: 9999, expected: corpus.UnknownChapter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, c.ChapterName(tt.chapter))
		})
	}

	names := c.ChapterNames()
	names[0] = "changed"
	assert.Equal(t, "الفاتحة", c.ChapterName(1))
}

func TestVerseCountAndRange(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()
	assert.Equal(t, 7, c.VerseCount(1))
	assert.Equal(t, 255, c.VerseCount(2))
	assert.Zero(t, c.VerseCount(3))

	lo, hi := c.ChapterRange()
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)

	empty := parse(t, "", "", "")
	lo, hi = empty.ChapterRange()
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestChapterKeys(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()
	assert.Len(t, c.ChapterKeys(1), 7)
	assert.Equal(t, []corpus.VerseKey{key(2, 1), key(2, 2), key(2, 3), key(2, 4), key(2, 5), key(2, 255)},
		c.ChapterKeys(2))
	assert.Empty(t, c.ChapterKeys(3))
}

func TestValidateReference(t *testing.T) {
	t.Parallel()

	c := fixtures.Corpus()

	tests := []struct {
		verse   *int
		name    string
		message string
		chapter int
		valid   bool
	}{
		{name: "chapter_only", chapter: 2, valid: true},
		{name: "chapter_and_verse", chapter: 1, verse: intPtr(7), valid: true},
		{
			name:    "chapter_too_low",
			chapter: 0,
			message: "Invalid surah number. Must be between 1-2",
		},
		{
			name:    "chapter_too_high",
			chapter: 3,
			verse:   intPtr(1),
			message: "Invalid surah number. Must be between 1-2",
		},
		{
			name:    "verse_too_high",
			chapter: 1,
			verse:   intPtr(8),
			message: "Invalid ayah for surah 1. Must be 1-7",
		},
		{
			name:    "verse_zero",
			chapter: 2,
			verse:   intPtr(0),
			message: "Invalid ayah for surah 2. Must be 1-255",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, message := c.ValidateReference(tt.chapter, tt.verse)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	src, err := fixtures.WriteSources(fs, "/quran")
	require.NoError(t, err)

	c, err := corpus.Load(context.Background(), fs, src)
	require.NoError(t, err)
	assert.Equal(t, len(fixtures.Verses), c.Len())
	assert.Equal(t, "البقرة", c.ChapterName(2))
}

func TestLoadMissingSource(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	src, err := fixtures.WriteSources(fs, "/quran")
	require.NoError(t, err)
	require.NoError(t, fs.Remove(src.Simplified))

	_, err = corpus.Load(context.Background(), fs, src)
	require.Error(t, err)
	assert.ErrorIs(t, err, corpus.ErrLoad)

	var loadErr *corpus.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, src.Simplified, loadErr.Path)
}

func TestLoadCancelled(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	src, err := fixtures.WriteSources(fs, "/quran")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = corpus.Load(ctx, fs, src)
	assert.ErrorIs(t, err, corpus.ErrLoad)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadNamesUnparsableSource(t *testing.T) {
	t.Parallel()

	// longer than the scanner accepts for one line
	long := "1|1|" + strings.Repeat("ب", 600*1024) + "\n"

	tests := []struct {
		name string
		path func(corpus.Sources) string
	}{
		{name: "chapters", path: func(s corpus.Sources) string { return s.Chapters }},
		{name: "uthmani", path: func(s corpus.Sources) string { return s.Uthmani }},
		{name: "simplified", path: func(s corpus.Sources) string { return s.Simplified }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			src, err := fixtures.WriteSources(fs, "/quran")
			require.NoError(t, err)
			require.NoError(t, afero.WriteFile(fs, tt.path(src), []byte(long), 0o600))

			_, err = corpus.Load(context.Background(), fs, src)
			require.ErrorIs(t, err, corpus.ErrLoad)
			require.ErrorIs(t, err, bufio.ErrTooLong)

			var loadErr *corpus.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, tt.path(src), loadErr.Path)
		})
	}
}

func TestParseNamesUnparsableSource(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ب", 600*1024)
	_, err := corpus.Parse(
		strings.NewReader("الفاتحة\n"),
		strings.NewReader("1|1|بسم\n"),
		strings.NewReader(long),
	)

	var loadErr *corpus.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "simplified", loadErr.Path)
	assert.ErrorIs(t, err, bufio.ErrTooLong)
}
