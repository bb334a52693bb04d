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

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mosaid/quransearch/pkg/api/models"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/search"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/mosaid/quransearch/pkg/testing/fixtures"
	"github.com/mosaid/quransearch/pkg/wordindex"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server over the fixture corpus. extraConfig is
// appended to a minimal config.toml.
func newTestServer(t *testing.T, extraConfig string) *Server {
	t.Helper()

	fs := afero.NewMemMapFs()
	content := fmt.Sprintf("config_schema = %d\n%s", config.SchemaVersion, extraConfig)
	require.NoError(t, afero.WriteFile(fs, filepath.Join("/config", config.CfgFile), []byte(content), 0o600))
	cfg, err := config.NewConfig(fs, "/config", config.BaseDefaults)
	require.NoError(t, err)

	c := fixtures.Corpus()
	words := wordindex.New(fs, c)
	words.LoadOrBuild(cfg.WordCachePath("/data"))

	engine := searcher.NewEngine(search.New(c), nil)
	return NewServer(cfg, engine, words, clockwork.NewFakeClock())
}

func get(t *testing.T, s *Server, path string, params url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if params != nil {
		path += "?" + params.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func post(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[models.ErrorResponse](t, w).Error
}

func TestVersion(t *testing.T) {
	t.Parallel()

	w := get(t, newTestServer(t, ""), "/api/version", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.AppVersion, decode[models.VersionResponse](t, w).Version)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")
	w := get(t, s, "/api/search", url.Values{"q": {"الله"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[models.SearchResponse](t, w)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 2, resp.Occurrences)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 1, resp.Results[0].Chapter)
	assert.Equal(t, 255, resp.Results[1].Verse)
	assert.Equal(t, "البقرة", resp.Results[1].ChapterName)
	assert.Contains(t, resp.Results[0].Simplified, `color: #ff0000;`)
}

func TestSearchUsesConfiguredHighlightWords(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "[search]\ndark_theme = true\nhighlight_words = [\"الرحيم\"]\n")

	w := get(t, s, "/api/search", url.Values{"q": {"الله"}})
	require.Equal(t, http.StatusOK, w.Code)
	first := decode[models.SearchResponse](t, w).Results[0]
	assert.Contains(t, first.Simplified, `color: #FFFF00;`)
	assert.Contains(t, first.Simplified, `<span style="background: #5D6D7E;">الرحيم</span>`)

	// an explicit parameter replaces the configured words
	w = get(t, s, "/api/search", url.Values{"q": {"الله"}, "highlight": {"بسم"}, "dark": {"false"}})
	require.Equal(t, http.StatusOK, w.Code)
	first = decode[models.SearchResponse](t, w).Results[0]
	assert.NotContains(t, first.Simplified, "#5D6D7E")
	assert.Contains(t, first.Simplified, `<span style="background: #a0c4ff;">بسم</span>`)
}

func TestSearchMethods(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	w := get(t, s, "/api/search", url.Values{"q": {"1"}, "method": {"Surah"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.SearchResponse](t, w).Results, 7)

	w = get(t, s, "/api/search", url.Values{"q": {"1 2 3"}, "method": {"Surah FirstAyah LastAyah"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.SearchResponse](t, w).Results, 2)
}

func TestSearchErrors(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	tests := []struct {
		params  url.Values
		name    string
		message string
	}{
		{name: "missing_query", params: url.Values{}, message: "query is required"},
		{name: "blank_query", params: url.Values{"q": {"   "}}, message: "query is required"},
		{name: "unknown_method", params: url.Values{"q": {"1"}, "method": {"juz"}}, message: `unknown search method "juz"`},
		{name: "bad_chapter", params: url.Values{"q": {"3"}, "method": {"surah"}}, message: "Invalid surah number. Must be between 1-2"},
		{name: "bad_range", params: url.Values{"q": {"1 x"}, "method": {"range"}}, message: "not a number"},
		{name: "bad_dark", params: url.Values{"q": {"الله"}, "dark": {"maybe"}}, message: "dark must be a boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := get(t, s, "/api/search", tt.params)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.message)
		})
	}
}

func TestSearchContext(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")
	w := get(t, s, "/api/search/context", url.Values{"q": {"اهدنا"}})
	require.Equal(t, http.StatusOK, w.Code)

	blocks := decode[[][]searcher.Result](t, w)
	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0], 7)

	w = get(t, s, "/api/search/context", url.Values{"q": {"1"}, "method": {"surah"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChapters(t *testing.T) {
	t.Parallel()

	w := get(t, newTestServer(t, ""), "/api/chapters", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []models.Chapter{
		{Number: 1, Name: "الفاتحة", Verses: 7},
		{Number: 2, Name: "البقرة", Verses: 255},
	}, decode[models.ChaptersResponse](t, w).Chapters)
}

func TestVerses(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	tests := []struct {
		params   url.Values
		name     string
		path     string
		verses   []int
		expected int
	}{
		{name: "whole_chapter", path: "/api/chapters/1/verses", expected: http.StatusOK, verses: []int{1, 2, 3, 4, 5, 6, 7}},
		{name: "range", path: "/api/chapters/1/verses", params: url.Values{"from": {"2"}, "to": {"3"}}, expected: http.StatusOK, verses: []int{2, 3}},
		{name: "from_only", path: "/api/chapters/1/verses", params: url.Values{"from": {"6"}}, expected: http.StatusOK, verses: []int{6, 7}},
		{name: "to_only", path: "/api/chapters/1/verses", params: url.Values{"to": {"2"}}, expected: http.StatusOK, verses: []int{1, 2}},
		{name: "missing_chapter", path: "/api/chapters/9/verses", expected: http.StatusNotFound},
		{name: "bad_chapter", path: "/api/chapters/x/verses", expected: http.StatusBadRequest},
		{name: "negative_from", path: "/api/chapters/1/verses", params: url.Values{"from": {"-1"}}, expected: http.StatusBadRequest},
		{name: "from_past_end", path: "/api/chapters/1/verses", params: url.Values{"from": {"8"}}, expected: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := get(t, s, tt.path, tt.params)
			require.Equal(t, tt.expected, w.Code, w.Body.String())
			if tt.expected != http.StatusOK {
				assert.NotEmpty(t, errorMessage(t, w))
				return
			}
			var got []int
			for _, r := range decode[models.VersesResponse](t, w).Results {
				got = append(got, r.Verse)
			}
			assert.Equal(t, tt.verses, got)
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	w := get(t, s, "/api/chapters/1/verses/4/context", url.Values{"radius": {"1"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := decode[models.VersesResponse](t, w).Results
	require.Len(t, results, 3)
	assert.True(t, results[1].Focal)
	assert.Contains(t, results[1].Simplified, "#F7E7A0")

	w = get(t, s, "/api/chapters/1/verses/1/context", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.VersesResponse](t, w).Results, 6)

	w = get(t, s, "/api/chapters/1/verses/8/context", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, errorMessage(t, w), "Invalid ayah for surah 1. Must be 1-7")

	w = get(t, s, "/api/chapters/1/verses/1/context", url.Values{"radius": {"100"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, w), "radius must be less than or equal to 50")

	w = get(t, s, "/api/chapters/1/verses/0/context", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWords(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	w := get(t, s, "/api/words", url.Values{"limit": {"2"}})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.WordsResponse](t, w)
	assert.Equal(t, []string{"من", "ولا"}, resp.Words)
	assert.Equal(t, 90, resp.Total)

	w = get(t, s, "/api/words", url.Values{"prefix": {"رح"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"الرحمن", "الرحيم"}, decode[models.WordsResponse](t, w).Words)

	w = get(t, s, "/api/words", url.Values{"prefix": {"xyz"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{}, decode[models.WordsResponse](t, w).Words)

	w = get(t, s, "/api/words", url.Values{"limit": {"9999"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "")

	tests := []struct {
		name     string
		body     string
		expected string
		message  string
	}{
		{
			name:     "query",
			body:     `{"text": "بسم الله الرحمن الرحيم", "query": "الله"}`,
			expected: `بسم <span style="font-weight: bold; color: #ff0000;">الله</span> الرحمن الرحيم`,
		},
		{
			name:     "custom_term_style",
			body:     `{"text": "بسم الله", "terms": [{"query": "بسم", "color": "#00ff00"}]}`,
			expected: `<span style="font-weight: bold; color: #00ff00;">بسم</span> الله`,
		},
		{
			name:     "default_term_style",
			body:     `{"text": "بسم الله", "dark": true, "terms": [{"query": "بسم"}]}`,
			expected: `<span style="background: #5D6D7E;">بسم</span> الله`,
		},
		{
			name:     "expand_to_words",
			body:     `{"text": "الحمد لله رب", "query": "د لل", "expandToWords": true}`,
			expected: `<span style="font-weight: bold; color: #ff0000;">الحمد لله</span> رب`,
		},
		{name: "empty_body", body: ``, message: "missing params"},
		{name: "not_json", body: `{`, message: "invalid params"},
		{name: "missing_text", body: `{"query": "الله"}`, message: "text is required"},
		{name: "bad_color", body: `{"text": "x", "terms": [{"query": "x", "color": "red"}]}`, message: "must be a hex color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := post(t, s, "/api/highlight", tt.body)
			if tt.message != "" {
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Contains(t, errorMessage(t, w), tt.message)
				return
			}
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.expected, decode[models.HighlightResponse](t, w).Text)
		})
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "[api]\nrate_limit = 60\nrate_burst = 2\n")

	assert.Equal(t, http.StatusOK, get(t, s, "/api/version", nil).Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/version", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(t, s, "/api/version", nil).Code)
}

func TestAllowedIPs(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "[api]\nallowed_ips = [\"192.0.2.0/24\"]\n")
	assert.Equal(t, http.StatusOK, get(t, s, "/api/version", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/version", http.NoBody)
	req.RemoteAddr = "198.51.100.7:1234"
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "[api]\nallowed_origins = [\"https://quran.example\"]\n")

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/search", http.NoBody)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	w := preflight("https://quran.example")
	assert.Equal(t, "https://quran.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("https://evil.example")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	t.Parallel()

	w := get(t, newTestServer(t, ""), "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
