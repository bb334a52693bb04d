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

package models

import "github.com/mosaid/quransearch/pkg/service/searcher"

type SearchResponse struct {
	Results     []searcher.Result `json:"results"`
	Occurrences int               `json:"occurrences"`
	Total       int               `json:"total"`
}

type Chapter struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
	Verses int    `json:"verses"`
}

type ChaptersResponse struct {
	Chapters []Chapter `json:"chapters"`
}

type VersesResponse struct {
	Results []searcher.Result `json:"results"`
}

type WordsResponse struct {
	Words []string `json:"words"`
	Total int      `json:"total"`
}

type HighlightResponse struct {
	Text string `json:"text"`
}

type VersionResponse struct {
	Version string `json:"version"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
