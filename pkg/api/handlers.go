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
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mosaid/quransearch/pkg/api/models"
	"github.com/mosaid/quransearch/pkg/api/validation"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/highlight"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

var errBadNumber = errors.New("must be a number")

func (s *Server) validationContext() *validation.Context {
	lo, hi := s.engine.Corpus().ChapterRange()
	return validation.NewContext(lo, hi)
}

// queryInt reads an optional integer query parameter.
func queryInt(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s %w", name, errBadNumber)
	}
	return n, nil
}

// queryBool reads an optional boolean query parameter.
func queryBool(q url.Values, name string, def bool) (bool, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", name)
	}
	return b, nil
}

// highlightWords returns the words given in the request, or the configured
// permanent words when the parameter is absent.
func (s *Server) highlightWords(q url.Values) []string {
	if words, ok := q["highlight"]; ok {
		return words
	}
	return s.cfg.HighlightWords()
}

// writeSearchError maps engine errors to status codes.
func writeSearchError(w http.ResponseWriter, err error, notFound bool) {
	switch {
	case errors.Is(err, searcher.ErrInvalidQuery) && notFound:
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, searcher.ErrInvalidQuery), errors.Is(err, searcher.ErrUnknownMethod):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("search failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.VersionResponse{Version: config.AppVersion})
}

func (s *Server) parseSearchParams(r *http.Request) (searcher.Request, error) {
	q := r.URL.Query()
	dark, err := queryBool(q, "dark", s.cfg.DarkTheme())
	if err != nil {
		return searcher.Request{}, err
	}
	params := models.SearchParams{
		Query:     q.Get("q"),
		Method:    q.Get("method"),
		Highlight: s.highlightWords(q),
		Dark:      dark,
	}
	if err := validation.DefaultValidator.Validate(&params); err != nil {
		return searcher.Request{}, err
	}
	method, err := searcher.ParseMethod(params.Method)
	if err != nil {
		return searcher.Request{}, err
	}
	return searcher.Request{
		Method:         method,
		Query:          params.Query,
		HighlightWords: params.Highlight,
		Dark:           params.Dark,
	}, nil
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSearchParams(r)
	if err != nil {
		writeParamError(w, err)
		return
	}
	resp, err := s.engine.Run(req)
	if err != nil {
		writeSearchError(w, err, false)
		return
	}
	writeJSON(w, http.StatusOK, models.SearchResponse{
		Results:     resp.Results,
		Occurrences: resp.Occurrences,
		Total:       len(resp.Results),
	})
}

func (s *Server) handleSearchContext(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSearchParams(r)
	if err != nil {
		writeParamError(w, err)
		return
	}
	if req.Method != searcher.MethodText {
		writeError(w, http.StatusBadRequest, "context search only supports text queries")
		return
	}
	writeJSON(w, http.StatusOK, s.engine.SearchWithContext(req))
}

func (s *Server) handleChapters(w http.ResponseWriter, _ *http.Request) {
	c := s.engine.Corpus()
	names := c.ChapterNames()
	chapters := make([]models.Chapter, 0, len(names))
	for i, name := range names {
		chapters = append(chapters, models.Chapter{
			Number: i + 1,
			Name:   name,
			Verses: c.VerseCount(i + 1),
		})
	}
	writeJSON(w, http.StatusOK, models.ChaptersResponse{Chapters: chapters})
}

// pathChapter validates the {chapter} URL parameter against the corpus.
func (s *Server) pathChapter(w http.ResponseWriter, r *http.Request) (int, bool) {
	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "chapter "+errBadNumber.Error())
		return 0, false
	}
	if ok, msg := s.engine.Corpus().ValidateReference(chapter, nil); !ok {
		writeError(w, http.StatusNotFound, msg)
		return 0, false
	}
	return chapter, true
}

func (s *Server) handleVerses(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.pathChapter(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	from, err := queryInt(q, "from", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	to, err := queryInt(q, "to", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dark, err := queryBool(q, "dark", s.cfg.DarkTheme())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := models.VersesParams{Chapter: chapter, From: from, To: to}
	if err := validation.DefaultValidator.ValidateCtx(r.Context(), &params, s.validationContext()); err != nil {
		writeParamError(w, err)
		return
	}

	req := searcher.Request{
		Method:         searcher.MethodChapter,
		Query:          strconv.Itoa(chapter),
		HighlightWords: s.highlightWords(q),
		Dark:           dark,
	}
	if from > 0 || to > 0 {
		from = max(from, 1)
		if to == 0 {
			to = s.engine.Corpus().VerseCount(chapter)
		}
		req.Method = searcher.MethodRange
		req.Query = fmt.Sprintf("%d %d %d", chapter, from, to)
	}

	resp, err := s.engine.Run(req)
	if err != nil {
		writeSearchError(w, err, true)
		return
	}
	writeJSON(w, http.StatusOK, models.VersesResponse{Results: resp.Results})
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	chapter, ok := s.pathChapter(w, r)
	if !ok {
		return
	}
	verse, err := strconv.Atoi(chi.URLParam(r, "verse"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "verse "+errBadNumber.Error())
		return
	}
	q := r.URL.Query()
	radius, err := queryInt(q, "radius", -1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dark, err := queryBool(q, "dark", s.cfg.DarkTheme())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	params := models.ContextParams{
		Chapter:   chapter,
		Verse:     verse,
		Query:     q.Get("q"),
		Highlight: s.highlightWords(q),
		Dark:      dark,
	}
	if radius >= 0 {
		params.Radius = &radius
	}
	if err := validation.DefaultValidator.ValidateCtx(r.Context(), &params, s.validationContext()); err != nil {
		writeParamError(w, err)
		return
	}

	results, err := s.engine.Context(chapter, verse, radius, searcher.Request{
		Query:          params.Query,
		HighlightWords: params.Highlight,
		Dark:           params.Dark,
	})
	if err != nil {
		writeSearchError(w, err, true)
		return
	}
	writeJSON(w, http.StatusOK, models.VersesResponse{Results: results})
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := queryInt(q, "limit", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	params := models.WordsParams{Prefix: q.Get("prefix"), Limit: limit}
	if err := validation.DefaultValidator.Validate(&params); err != nil {
		writeParamError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, s.lookupWords(params))
}

// lookupWords lists the most common words, or suggestions for a prefix.
func (s *Server) lookupWords(params models.WordsParams) models.WordsResponse {
	var words []string
	if params.Prefix == "" {
		words = s.words.Common(params.Limit)
	} else {
		words = s.words.Suggest(params.Prefix, params.Limit)
	}
	if words == nil {
		words = []string{}
	}
	return models.WordsResponse{Words: words, Total: s.words.Count()}
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	var params models.HighlightParams
	if err := validation.ValidateAndUnmarshalCtx(r.Context(), body, &params, nil); err != nil {
		writeParamError(w, err)
		return
	}

	terms := make([]highlight.Term, 0, len(params.Terms))
	for _, t := range params.Terms {
		style := highlight.Style{Color: t.Color, Background: t.Background}
		if style == (highlight.Style{}) {
			style = highlight.PermanentStyleFor(params.Dark)
		}
		terms = append(terms, highlight.Term{Query: t.Query, Style: style})
	}

	h := highlight.New(nil, highlight.Options{ExpandToWords: params.ExpandToWords})
	text := h.Highlight(params.Text, params.Query, highlight.StyleFor(params.Dark), terms)
	writeJSON(w, http.StatusOK, models.HighlightResponse{Text: text})
}

func writeParamError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, err.Error())
}
