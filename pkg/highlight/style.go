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

package highlight

import (
	"regexp"
	"strings"
)

// Style is the visual identifier attached to a marked span.
type Style struct {
	Color      string `json:"color,omitempty"`
	Background string `json:"background,omitempty"`
}

var (
	// DarkStyle and LightStyle mark query hits.
	DarkStyle  = Style{Color: "#FFFF00"}
	LightStyle = Style{Color: "#ff0000"}

	// DarkPermanentStyle and LightPermanentStyle mark pinned words.
	DarkPermanentStyle  = Style{Background: "#5D6D7E"}
	LightPermanentStyle = Style{Background: "#a0c4ff"}

	// FocalStyle marks the target verse of a context block.
	FocalStyle = Style{Color: "#000000", Background: "#F7E7A0"}
)

// StyleFor returns the query highlight style for a theme.
func StyleFor(dark bool) Style {
	if dark {
		return DarkStyle
	}
	return LightStyle
}

// PermanentStyleFor returns the pinned word style for a theme.
func PermanentStyleFor(dark bool) Style {
	if dark {
		return DarkPermanentStyle
	}
	return LightPermanentStyle
}

// Marker renders the tags around a marked span.
type Marker interface {
	Open(s Style) string
	Close(s Style) string
}

// SpanMarker emits inline styled HTML spans.
type SpanMarker struct{}

func (SpanMarker) Open(s Style) string {
	var decls []string
	if s.Background != "" {
		decls = append(decls, "background: "+s.Background+";")
	}
	if s.Color != "" || s.Background == "" {
		decls = append(decls, "font-weight: bold;")
	}
	if s.Color != "" {
		decls = append(decls, "color: "+s.Color+";")
	}
	return `<span style="` + strings.Join(decls, " ") + `">`
}

func (SpanMarker) Close(Style) string {
	return "</span>"
}

var spanTagRe = regexp.MustCompile(`</?span[^>]*>`)

// Strip removes the markup emitted by SpanMarker.
func Strip(marked string) string {
	return spanTagRe.ReplaceAllString(marked, "")
}
