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

package fixtures

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/spf13/afero"
)

// Verse fixture data for testing: the opening chapter, the start of the
// second chapter and the Throne Verse, in both orthographies.

// Basmala is the Uthmani text of 1:1.
const Basmala = "بِسْمِ اللَّهِ الرَّحْمٰنِ الرَّحِيمِ"

// FixtureVerse is one verse of the test corpus.
type FixtureVerse struct {
	Uthmani    string
	Simplified string
	Chapter    int
	Verse      int
}

// Chapters lists chapter display names, one per chapter number.
var Chapters = []string{
	"الفاتحة",
	"البقرة",
}

// Verses is the test corpus in key order.
var Verses = []FixtureVerse{
	{
		Chapter: 1, Verse: 1,
		Uthmani:    Basmala,
		Simplified: "بسم الله الرحمن الرحيم",
	},
	{
		Chapter: 1, Verse: 2,
		Uthmani:    "ٱلْحَمْدُ لِلَّهِ رَبِّ ٱلْعَٰلَمِينَ",
		Simplified: "الحمد لله رب العالمين",
	},
	{
		Chapter: 1, Verse: 3,
		Uthmani:    "ٱلرَّحْمَٰنِ ٱلرَّحِيمِ",
		Simplified: "الرحمن الرحيم",
	},
	{
		Chapter: 1, Verse: 4,
		Uthmani:    "مَٰلِكِ يَوْمِ ٱلدِّينِ",
		Simplified: "مالك يوم الدين",
	},
	{
		Chapter: 1, Verse: 5,
		Uthmani:    "إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ",
		Simplified: "إياك نعبد وإياك نستعين",
	},
	{
		Chapter: 1, Verse: 6,
		Uthmani:    "ٱهْدِنَا ٱلصِّرَٰطَ ٱلْمُسْتَقِيمَ",
		Simplified: "اهدنا الصراط المستقيم",
	},
	{
		Chapter: 1, Verse: 7,
		Uthmani:    "صِرَٰطَ ٱلَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ ٱلْمَغْضُوبِ عَلَيْهِمْ وَلَا ٱلضَّآلِّينَ",
		Simplified: "صراط الذين أنعمت عليهم غير المغضوب عليهم ولا الضالين",
	},
	{
		Chapter: 2, Verse: 1,
		Uthmani:    "الٓمٓ",
		Simplified: "الم",
	},
	{
		Chapter: 2, Verse: 2,
		Uthmani:    "ذَٰلِكَ ٱلْكِتَٰبُ لَا رَيْبَ ۛ فِيهِ ۛ هُدًى لِّلْمُتَّقِينَ",
		Simplified: "ذلك الكتاب لا ريب فيه هدى للمتقين",
	},
	{
		Chapter: 2, Verse: 3,
		Uthmani:    "ٱلَّذِينَ يُؤْمِنُونَ بِٱلْغَيْبِ وَيُقِيمُونَ ٱلصَّلَوٰةَ وَمِمَّا رَزَقْنَٰهُمْ يُنفِقُونَ",
		Simplified: "الذين يؤمنون بالغيب ويقيمون الصلاة ومما رزقناهم ينفقون",
	},
	{
		Chapter: 2, Verse: 4,
		Uthmani:    "وَٱلَّذِينَ يُؤْمِنُونَ بِمَآ أُنزِلَ إِلَيْكَ وَمَآ أُنزِلَ مِن قَبْلِكَ وَبِٱلْءَاخِرَةِ هُمْ يُوقِنُونَ",
		Simplified: "والذين يؤمنون بما أنزل إليك وما أنزل من قبلك وبالآخرة هم يوقنون",
	},
	{
		Chapter: 2, Verse: 5,
		Uthmani:    "أُو۟لَٰٓئِكَ عَلَىٰ هُدًى مِّن رَّبِّهِمْ ۖ وَأُو۟لَٰٓئِكَ هُمُ ٱلْمُفْلِحُونَ",
		Simplified: "أولئك على هدى من ربهم وأولئك هم المفلحون",
	},
	{
		Chapter: 2, Verse: 255,
		Uthmani: "ٱللَّهُ لَآ إِلَٰهَ إِلَّا هُوَ ٱلْحَىُّ ٱلْقَيُّومُ ۚ لَا تَأْخُذُهُۥ سِنَةٌ وَلَا نَوْمٌ ۚ " +
			"لَّهُۥ مَا فِى ٱلسَّمَٰوَٰتِ وَمَا فِى ٱلْأَرْضِ ۗ مَن ذَا ٱلَّذِى يَشْفَعُ عِندَهُۥٓ إِلَّا بِإِذْنِهِۦ ۚ " +
			"يَعْلَمُ مَا بَيْنَ أَيْدِيهِمْ وَمَا خَلْفَهُمْ ۖ وَلَا يُحِيطُونَ بِشَىْءٍ مِّنْ عِلْمِهِۦٓ إِلَّا بِمَا شَآءَ ۚ " +
			"وَسِعَ كُرْسِيُّهُ ٱلسَّمَٰوَٰتِ وَٱلْأَرْضَ ۖ وَلَا يَـُٔودُهُۥ حِفْظُهُمَا ۚ وَهُوَ ٱلْعَلِىُّ ٱلْعَظِيمُ",
		Simplified: "الله لا إله إلا هو الحي القيوم لا تأخذه سنة ولا نوم له ما في السماوات وما في الأرض " +
			"من ذا الذي يشفع عنده إلا بإذنه يعلم ما بين أيديهم وما خلفهم ولا يحيطون بشيء من علمه " +
			"إلا بما شاء وسع كرسيه السماوات والأرض ولا يئوده حفظهما وهو العلي العظيم",
	},
}

// Source file names used by WriteSources.
const (
	ChaptersFile   = "chapters.txt"
	UthmaniFile    = "uthmani.txt"
	SimplifiedFile = "simplified.txt"
)

// ChaptersText renders Chapters in the chapter source format.
func ChaptersText() string {
	return strings.Join(Chapters, "\n") + "\n"
}

// UthmaniText renders the Uthmani verses in the verse source format.
func UthmaniText() string {
	return versesText(func(v FixtureVerse) string { return v.Uthmani })
}

// SimplifiedText renders the simplified verses in the verse source format.
func SimplifiedText() string {
	return versesText(func(v FixtureVerse) string { return v.Simplified })
}

func versesText(text func(FixtureVerse) string) string {
	var b strings.Builder
	for _, v := range Verses {
		_, _ = fmt.Fprintf(&b, "%d|%d|%s\n", v.Chapter, v.Verse, text(v))
	}
	return b.String()
}

// Corpus parses the fixture verses. It panics on failure, which only a broken
// fixture can cause.
func Corpus() *corpus.Corpus {
	c, err := corpus.Parse(
		strings.NewReader(ChaptersText()),
		strings.NewReader(UthmaniText()),
		strings.NewReader(SimplifiedText()),
	)
	if err != nil {
		panic(err)
	}
	return c
}

// WriteSources writes the three fixture sources into dir on fs and returns
// their paths.
func WriteSources(fs afero.Fs, dir string) (corpus.Sources, error) {
	src := corpus.Sources{
		Chapters:   filepath.Join(dir, ChaptersFile),
		Uthmani:    filepath.Join(dir, UthmaniFile),
		Simplified: filepath.Join(dir, SimplifiedFile),
	}
	if err := fs.MkdirAll(dir, 0o750); err != nil {
		return src, fmt.Errorf("failed to create fixture directory: %w", err)
	}
	files := map[string]string{
		src.Chapters:   ChaptersText(),
		src.Uthmani:    UthmaniText(),
		src.Simplified: SimplifiedText(),
	}
	for path, data := range files {
		if err := afero.WriteFile(fs, path, []byte(data), 0o600); err != nil {
			return src, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return src, nil
}
