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
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
	"github.com/mosaid/quransearch/pkg/arabic"
	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/mosaid/quransearch/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	// DefaultCommonLimit is the number of words Common returns when no
	// limit is given.
	DefaultCommonLimit = 5000
	// DefaultSuggestLimit caps Suggest when no limit is given.
	DefaultSuggestLimit = 20

	// fuzzy fallback tuning for Suggest
	minSimilarity = 0.8
	maxLenDiff    = 2
)

var (
	errEmptyCache   = errors.New("cache file is empty")
	errInvalidCache = errors.New("cache file is not valid UTF-8")
)

type State int

const (
	Unloaded State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "unloaded"
}

// Index is the vocabulary of one corpus. It moves from Unloaded to Ready on
// the first LoadOrBuild and never changes afterwards.
type Index struct {
	fs     afero.Fs
	corpus *corpus.Corpus
	words  []string
	state  State
	mu     syncutil.RWMutex
}

// New returns an unloaded index over the simplified text of c. The cache
// file is accessed through fs.
func New(fs afero.Fs, c *corpus.Corpus) *Index {
	return &Index{fs: fs, corpus: c}
}

func (i *Index) State() State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// LoadOrBuild returns the cached word list at path, or builds it from the
// corpus and writes the cache when the file is missing, unreadable, empty or
// not UTF-8. Cache failures are logged and the built list is used. A Ready
// index returns its list without touching the file.
func (i *Index) LoadOrBuild(path string) []string {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == Ready {
		return i.words
	}

	words, err := readCache(i.fs, path)
	switch {
	case err == nil:
		log.Debug().Str("path", path).Int("words", len(words)).Msg("loaded word cache")
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("path", path).Msg("word cache missing, building")
	default:
		log.Warn().Err(err).Str("path", path).Msg("word cache unusable, rebuilding")
	}

	if err != nil {
		words = Build(i.corpus.Texts(corpus.Simplified))
		if err := writeCache(i.fs, path, words); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed to write word cache")
		} else {
			log.Info().Str("path", path).Int("words", len(words)).Msg("wrote word cache")
		}
	}

	i.words = words
	i.state = Ready
	return i.words
}

func readCache(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word cache: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, errInvalidCache
	}
	text := strings.TrimSuffix(string(data), "\n")
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyCache
	}
	return strings.Split(text, "\n"), nil
}

// writeCache replaces the cache file atomically.
func writeCache(fs afero.Fs, path string, words []string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.WriteString(strings.Join(words, "\n") + "\n")
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to write temp cache file: %w", err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

// Words returns the full list, nil before LoadOrBuild. The slice is shared
// and must not be modified.
func (i *Index) Words() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.words
}

func (i *Index) Count() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.words)
}

// Common returns the limit most frequent words.
func (i *Index) Common(limit int) []string {
	if limit <= 0 {
		limit = DefaultCommonLimit
	}
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.words[:min(limit, len(i.words))])
}

// Suggest returns up to limit words containing the normalized prefix, most
// frequent first. When none does, the closest words by Jaro-Winkler
// similarity are returned instead.
func (i *Index) Suggest(prefix string, limit int) []string {
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	needle := arabic.Normalize(prefix)
	if needle == "" {
		return nil
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	var out []string
	for _, word := range i.words {
		if strings.Contains(word, needle) {
			out = append(out, word)
			if len(out) == limit {
				return out
			}
		}
	}
	if len(out) > 0 {
		return out
	}
	return fuzzy(needle, i.words, limit)
}

type fuzzyMatch struct {
	word       string
	similarity float32
}

func fuzzy(needle string, words []string, limit int) []string {
	n := utf8.RuneCountInString(needle)

	var matches []fuzzyMatch
	for _, word := range words {
		diff := utf8.RuneCountInString(word) - n
		if diff < -maxLenDiff || diff > maxLenDiff {
			continue
		}
		similarity := edlib.JaroWinklerSimilarity(needle, word)
		if similarity >= minSimilarity {
			matches = append(matches, fuzzyMatch{word: word, similarity: similarity})
		}
	}

	// stable keeps frequency order among equal scores
	slices.SortStableFunc(matches, func(a, b fuzzyMatch) int {
		return cmp.Compare(b.similarity, a.similarity)
	})

	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches[:min(limit, len(matches))] {
		out = append(out, m.word)
	}
	return out
}
