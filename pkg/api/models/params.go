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

// SearchParams is shared by GET /api/search and the search WebSocket
// method.
type SearchParams struct {
	Query     string   `json:"q" validate:"nonblank,max=500"`
	Method    string   `json:"method" validate:"searchmethod"`
	Highlight []string `json:"highlight" validate:"max=50,dive,nonblank"`
	Dark      bool     `json:"dark"`
}

type VersesParams struct {
	Chapter int `json:"chapter" validate:"chapter"`
	From    int `json:"from" validate:"gte=0"`
	To      int `json:"to" validate:"gte=0"`
}

type ContextParams struct {
	Radius    *int     `json:"radius" validate:"omitempty,gte=0,lte=50"`
	Query     string   `json:"q"`
	Highlight []string `json:"highlight" validate:"max=50,dive,nonblank"`
	Chapter   int      `json:"chapter" validate:"chapter"`
	Verse     int      `json:"verse" validate:"gte=1"`
	Dark      bool     `json:"dark"`
}

type WordsParams struct {
	Prefix string `json:"prefix" validate:"max=100"`
	Limit  int    `json:"limit" validate:"gte=0,lte=5000"`
}

type HighlightTerm struct {
	Query      string `json:"query" validate:"nonblank"`
	Color      string `json:"color" validate:"omitempty,hexcolor"`
	Background string `json:"background" validate:"omitempty,hexcolor"`
}

type HighlightParams struct {
	Text          string          `json:"text" validate:"required"`
	Query         string          `json:"query"`
	Terms         []HighlightTerm `json:"terms" validate:"max=50,dive"`
	Dark          bool            `json:"dark"`
	ExpandToWords bool            `json:"expandToWords"`
}
