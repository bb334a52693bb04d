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

package arabic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "basmala",
			input:    "بِسْمِ اللَّهِ الرَّحْمٰنِ الرَّحِيمِ",
			expected: "بسم الله الرحمن الرحيم",
		},
		{
			name:     "alif_wasla_and_tatweel_dagger_before_noon",
			input:    "ٱلرَّحْمَـٰنِ",
			expected: "الرحمن",
		},
		{
			name:     "dagger_alif_elsewhere_becomes_alif",
			input:    "ذَٰلِكَ",
			expected: "ذالك",
		},
		{
			name:     "dagger_alif_inside_word",
			input:    "ٱلْعَـٰلَمِينَ",
			expected: "العالمين",
		},
		{
			name:     "hamza_above_alif",
			input:    "أَنْعَمْتَ",
			expected: "انعمت",
		},
		{
			name:     "hamza_below_alif",
			input:    "إِيَّاكَ",
			expected: "اياك",
		},
		{
			name:     "madda",
			input:    "بِٱلْـَٔاخِرَةِ",
			expected: "بالاخره",
		},
		{
			name:     "teh_marbuta",
			input:    "الصلاة",
			expected: "الصلاه",
		},
		{
			name:     "alif_maqsura",
			input:    "هدى",
			expected: "هدي",
		},
		{
			name:     "yeh_with_hamza",
			input:    "أولئك",
			expected: "اوليك",
		},
		{
			name:     "waw_with_hamza",
			input:    "يؤمنون",
			expected: "يومنون",
		},
		{
			name:     "standalone_hamza_kept",
			input:    "السَّمَاءِ",
			expected: "السماء",
		},
		{
			name:     "tatweel_removed",
			input:    "كـتـاب",
			expected: "كتاب",
		},
		{
			name:     "trims_but_keeps_internal_spacing",
			input:    "  الحمد  لله ",
			expected: "الحمد  لله",
		},
		{
			name:     "presentation_form_ligature",
			input:    "ﷲ",
			expected: "الله",
		},
		{
			name:     "latin_passes_through",
			input:    "Surah 2",
			expected: "Surah 2",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeDaggerAlefBeforeNoonIsDeleted(t *testing.T) {
	t.Parallel()

	// Deleting rather than substituting is what makes the Uthmani spelling
	// line up with the simplified one.
	assert.Equal(t, "رحمن", Normalize("رَّحْمَـٰن"))
	assert.Equal(t, Normalize("الرحمن"), Normalize("ٱلرَّحْمَـٰنِ"))

	// The noon after the dagger alif must survive.
	assert.Equal(t, "ن", Normalize("ٰن"))
	assert.Equal(t, "ا", Normalize("ٰ"))
}

func TestNormalizeDaggerAlefFromLigature(t *testing.T) {
	t.Parallel()

	// U+FC5B is thal with a superscript alif
	assert.Equal(t, "ذالك", Normalize("\ufc5bلك"))
	assert.Equal(t, "ذن", Normalize("\ufc5bن"))
	// U+FEE7 is an initial form of noon
	assert.Equal(t, "ر\u0646", Normalize("رٰ\ufee7"))
}

func TestResolveDaggerAlef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		r        rune
		next     rune
		expected string
	}{
		{name: "dagger_before_letter", r: DaggerAlef, next: 'ل', expected: "ا"},
		{name: "dagger_before_noon", r: DaggerAlef, next: Noon, expected: ""},
		{name: "dagger_at_end", r: DaggerAlef, next: 0, expected: "ا"},
		{name: "dagger_before_noon_form", r: DaggerAlef, next: '\ufee7', expected: ""},
		{name: "ligature_with_dagger", r: '\ufc5b', next: 'ل', expected: "ذا"},
		{name: "ligature_with_dagger_before_noon", r: '\ufc5b', next: Noon, expected: "ذ"},
		{name: "ligature_without_dagger", r: '\ufdf2', next: ' ', expected: "\ufdf2"},
		{name: "plain_letter", r: 'ب', next: DaggerAlef, expected: "ب"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ResolveDaggerAlef(tt.r, tt.next))
		})
	}
}

func TestNormalizeChar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    rune
		expected string
	}{
		{name: "plain_letter", input: 'ب', expected: "ب"},
		{name: "fatha_vanishes", input: 'َ', expected: ""},
		{name: "shadda_vanishes", input: 'ّ', expected: ""},
		{name: "dagger_alif_vanishes", input: DaggerAlef, expected: ""},
		{name: "tatweel_vanishes", input: Tatweel, expected: ""},
		{name: "alif_wasla", input: AlefWasla, expected: "ا"},
		{name: "alif_hamza", input: AlefHamzaAbove, expected: "ا"},
		{name: "teh_marbuta", input: TehMarbuta, expected: "ه"},
		{name: "space", input: ' ', expected: " "},
		{name: "no_break_space_unchanged", input: '\u00a0', expected: "\u00a0"},
		{name: "lam_alef_ligature_expands", input: 'ﻻ', expected: "لا"},
		{name: "ascii", input: '|', expected: "|"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, NormalizeChar(tt.input))
		})
	}
}

func TestNormalizeLiteralKeepsMarks(t *testing.T) {
	t.Parallel()

	in := " إِيَّاكَ "
	out := NormalizeLiteral(in)
	assert.Equal(t, "إِيَّاكَ", out)
	assert.True(t, HasMarks(out))
}
