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

package wordindex

import (
	"strings"
	"testing"

	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/mosaid/quransearch/pkg/testing/fixtures"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cachePath = "/data/quran_words.cache"

func TestBuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		texts    []string
		expected []string
	}{
		{
			name:     "frequency_then_form",
			texts:    []string{"ب ا ب", "ج ا ب"},
			expected: []string{"ب", "ا", "ج"},
		},
		{
			name:     "normalized_before_counting",
			texts:    []string{"إِيَّاكَ نَعْبُدُ", "اياك"},
			expected: []string{"اياك", "نعبد"},
		},
		{
			name:     "empty",
			texts:    nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Build(tt.texts))
		})
	}
}

func TestBuildFixtureCorpus(t *testing.T) {
	t.Parallel()

	words := Build(fixtures.Corpus().Texts(corpus.Simplified))
	require.Len(t, words, 90)
	assert.Equal(t, []string{"من", "ولا", "الا", "لا", "وما"}, words[:5])
	assert.Contains(t, words, "الله")
}

func TestLoadOrBuildRebuildsMissingCache(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	c := fixtures.Corpus()

	idx := New(fs, c)
	assert.Equal(t, Unloaded, idx.State())
	assert.Nil(t, idx.Words())

	built := idx.LoadOrBuild(cachePath)
	assert.Equal(t, Ready, idx.State())
	assert.Equal(t, Build(c.Texts(corpus.Simplified)), built)

	data, err := afero.ReadFile(fs, cachePath)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(built, "\n")+"\n", string(data))

	// a second call on a ready index does not touch the file
	require.NoError(t, fs.Remove(cachePath))
	assert.Equal(t, built, idx.LoadOrBuild(cachePath))
	exists, err := afero.Exists(fs, cachePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLoadOrBuildReadsCacheVerbatim(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	c := fixtures.Corpus()

	first := New(fs, c).LoadOrBuild(cachePath)
	second := New(fs, c).LoadOrBuild(cachePath)
	assert.Equal(t, first, second)

	// stale caches are trusted
	require.NoError(t, afero.WriteFile(fs, cachePath, []byte("كلمة\nاخرى\n"), 0o600))
	assert.Equal(t, []string{"كلمة", "اخرى"}, New(fs, c).LoadOrBuild(cachePath))
}

func TestLoadOrBuildReplacesCorruptCache(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "invalid_utf8", data: []byte{0xff, 0xfe, 0x00}},
		{name: "empty", data: []byte{}},
		{name: "blank_lines", data: []byte("\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, cachePath, tt.data, 0o600))

			c := fixtures.Corpus()
			words := New(fs, c).LoadOrBuild(cachePath)
			assert.Equal(t, Build(c.Texts(corpus.Simplified)), words)

			data, err := afero.ReadFile(fs, cachePath)
			require.NoError(t, err)
			assert.Equal(t, strings.Join(words, "\n")+"\n", string(data))
		})
	}
}

func TestLoadOrBuildWriteFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	c := fixtures.Corpus()

	idx := New(fs, c)
	words := idx.LoadOrBuild(cachePath)
	assert.Equal(t, Build(c.Texts(corpus.Simplified)), words)
	assert.Equal(t, Ready, idx.State())
}

func TestCommon(t *testing.T) {
	t.Parallel()

	idx := New(afero.NewMemMapFs(), fixtures.Corpus())
	idx.LoadOrBuild(cachePath)

	assert.Equal(t, []string{"من", "ولا"}, idx.Common(2))
	assert.Len(t, idx.Common(0), 90)
	assert.Len(t, idx.Common(1000), 90)
	assert.Equal(t, 90, idx.Count())

	common := idx.Common(1)
	common[0] = "changed"
	assert.Equal(t, "من", idx.Words()[0])
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	idx := New(afero.NewMemMapFs(), fixtures.Corpus())
	idx.LoadOrBuild(cachePath)

	assert.Equal(t, []string{"الرحمن", "الرحيم"}, idx.Suggest("رح", 10))
	assert.Equal(t, []string{"الرحمن"}, idx.Suggest("رح", 1))
	assert.Equal(t, []string{"المستقيم"}, idx.Suggest("مُسْتَقِيم", 0))
	assert.Nil(t, idx.Suggest("", 5))

	fuzzy := idx.Suggest("الرحمان", 5)
	require.NotEmpty(t, fuzzy)
	assert.Equal(t, "الرحمن", fuzzy[0])

	assert.Empty(t, idx.Suggest("xyz", 5))
}
