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
	"slices"

	"github.com/mosaid/quransearch/pkg/arabic"
)

type Search struct {
	ContextRadius  *int     `toml:"context_radius,omitempty"`
	HighlightWords []string `toml:"highlight_words,omitempty,multiline"`
	DarkTheme      bool     `toml:"dark_theme"`
	ExpandToWords  bool     `toml:"expand_to_words"`
}

const DefaultContextRadius = 5

func (c *Instance) ContextRadius() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Search.ContextRadius == nil || *c.vals.Search.ContextRadius < 0 {
		return DefaultContextRadius
	}
	return *c.vals.Search.ContextRadius
}

func (c *Instance) SetContextRadius(radius int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Search.ContextRadius = &radius
}

func (c *Instance) DarkTheme() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Search.DarkTheme
}

func (c *Instance) SetDarkTheme(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Search.DarkTheme = dark
}

func (c *Instance) ExpandToWords() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Search.ExpandToWords
}

// HighlightWords returns a copy of the permanently highlighted words.
func (c *Instance) HighlightWords() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Search.HighlightWords)
}

// ToggleHighlightWord adds word to the permanent highlights, or removes it
// when a word with the same normalized form is already there. It reports
// whether the word is highlighted afterwards.
func (c *Instance) ToggleHighlightWord(word string) bool {
	norm := arabic.Normalize(word)
	if norm == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	words := c.vals.Search.HighlightWords
	if i := slices.IndexFunc(words, func(w string) bool { return arabic.Normalize(w) == norm }); i >= 0 {
		c.vals.Search.HighlightWords = slices.Delete(slices.Clone(words), i, i+1)
		return false
	}
	c.vals.Search.HighlightWords = append(slices.Clone(words), word)
	return true
}
