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

package config

import (
	"path/filepath"

	"github.com/mosaid/quransearch/pkg/corpus"
)

const (
	DefaultChaptersFile   = "chapters.txt"
	DefaultUthmaniFile    = "uthmani.txt"
	DefaultSimplifiedFile = "simplified.txt"
)

// Data locates the corpus sources and the word cache. Relative paths are
// resolved against Dir, or the data directory when Dir is empty.
type Data struct {
	Dir        string `toml:"dir,omitempty"`
	Chapters   string `toml:"chapters"`
	Uthmani    string `toml:"uthmani"`
	Simplified string `toml:"simplified"`
	WordCache  string `toml:"word_cache,omitempty"`
}

func (c *Instance) dataDirLocked(dataDir string) string {
	if c.vals.Data.Dir != "" {
		return c.vals.Data.Dir
	}
	return dataDir
}

func resolve(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// CorpusSources returns the resolved paths of the three corpus files.
func (c *Instance) CorpusSources(dataDir string) corpus.Sources {
	c.mu.RLock()
	defer c.mu.RUnlock()
	dir := c.dataDirLocked(dataDir)
	return corpus.Sources{
		Chapters:   resolve(dir, c.vals.Data.Chapters),
		Uthmani:    resolve(dir, c.vals.Data.Uthmani),
		Simplified: resolve(dir, c.vals.Data.Simplified),
	}
}

// WordCachePath returns the resolved word cache path, which defaults to
// WordCacheFile in the data directory.
func (c *Instance) WordCachePath(dataDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	path := c.vals.Data.WordCache
	if path == "" {
		path = WordCacheFile
	}
	return resolve(c.dataDirLocked(dataDir), path)
}
