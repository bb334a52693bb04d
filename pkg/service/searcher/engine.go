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

// Package searcher turns search requests into display ready verse results
// and runs them in the background, one request at a time.
package searcher

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/mosaid/quransearch/pkg/highlight"
	"github.com/mosaid/quransearch/pkg/search"
)

var (
	ErrInvalidQuery  = errors.New("invalid query")
	ErrUnknownMethod = errors.New("unknown search method")
)

type Method string

const (
	MethodText    Method = "text"
	MethodChapter Method = "chapter"
	MethodRange   Method = "range"
)

// ParseMethod accepts the method names as well as the labels used by the
// desktop client ("Text", "Surah", "Surah FirstAyah LastAyah"). An empty
// name is a text search.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "", "text":
		return MethodText, nil
	case "chapter", "surah":
		return MethodChapter, nil
	case "range", "surah firstayah lastayah":
		return MethodRange, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

type Request struct {
	Method         Method   `json:"method"`
	Query          string   `json:"query"`
	HighlightWords []string `json:"highlightWords,omitempty"`
	Dark           bool     `json:"dark"`
}

// Result is one verse ready for display. Both texts carry highlight markup.
type Result struct {
	ChapterName string `json:"chapterName"`
	Simplified  string `json:"simplified"`
	Uthmani     string `json:"uthmani"`
	Chapter     int    `json:"chapter"`
	Verse       int    `json:"verse"`
	Focal       bool   `json:"focal,omitempty"`
	HasNote     bool   `json:"hasNote,omitempty"`
}

type Response struct {
	Err         error         `json:"-"`
	Error       string        `json:"error,omitempty"`
	Request     Request       `json:"request"`
	Results     []Result      `json:"results"`
	Occurrences int           `json:"occurrences"`
	Elapsed     time.Duration `json:"elapsed"`
	ID          uuid.UUID     `json:"id"`
}

// NoteChecker reports whether the user attached a note to a verse.
type NoteChecker interface {
	HasNote(chapter, verse int) bool
}

type Engine struct {
	matcher     *search.Matcher
	highlighter *highlight.Highlighter
	notes       NoteChecker
	radius      int
}

type Option func(*Engine)

func WithNotes(notes NoteChecker) Option {
	return func(e *Engine) {
		e.notes = notes
	}
}

// WithContextRadius sets the number of verses Context shows on each side.
func WithContextRadius(radius int) Option {
	return func(e *Engine) {
		e.radius = max(radius, 0)
	}
}

func NewEngine(m *search.Matcher, h *highlight.Highlighter, opts ...Option) *Engine {
	if h == nil {
		h = highlight.New(nil, highlight.Options{})
	}
	e := &Engine{
		matcher:     m,
		highlighter: h,
		radius:      search.DefaultContextRadius,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Corpus() *corpus.Corpus {
	return e.matcher.Corpus()
}

// Run executes a request synchronously. Text queries highlight the query
// and the permanent words; chapter and range listings highlight only the
// permanent words.
func (e *Engine) Run(req Request) (Response, error) {
	resp := Response{Request: req}

	switch req.Method {
	case MethodText, "":
		res := e.matcher.Search(search.ParseQuery(req.Query))
		resp.Occurrences = res.Occurrences
		resp.Results = make([]Result, 0, len(res.Keys))
		for _, key := range res.Keys {
			rec, _ := e.Corpus().Record(key)
			resp.Results = append(resp.Results, e.result(rec, req.Query, req))
		}
	case MethodChapter:
		chapter, err := strconv.Atoi(strings.TrimSpace(req.Query))
		if err != nil {
			return resp, fmt.Errorf("%w: chapter must be a number", ErrInvalidQuery)
		}
		if ok, msg := e.Corpus().ValidateReference(chapter, nil); !ok {
			return resp, fmt.Errorf("%w: %s", ErrInvalidQuery, msg)
		}
		resp.Results = e.records(e.matcher.ByChapter(chapter), req)
	case MethodRange:
		chapter, first, last, err := parseRange(req.Query)
		if err != nil {
			return resp, err
		}
		if ok, msg := e.Corpus().ValidateReference(chapter, &first); !ok {
			return resp, fmt.Errorf("%w: %s", ErrInvalidQuery, msg)
		}
		resp.Results = e.records(e.matcher.ByRange(chapter, first, last), req)
	default:
		return resp, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}

	return resp, nil
}

// parseRange reads "chapter first [last]". A missing last selects the
// single verse first.
func parseRange(query string) (chapter, first, last int, err error) {
	fields := strings.Fields(query)
	if len(fields) < 2 || len(fields) > 3 {
		return 0, 0, 0, fmt.Errorf("%w: expected \"chapter first [last]\"", ErrInvalidQuery)
	}
	nums := make([]int, len(fields))
	for i, f := range fields {
		n, convErr := strconv.Atoi(f)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q is not a number", ErrInvalidQuery, f)
		}
		nums[i] = n
	}
	chapter, first, last = nums[0], nums[1], nums[1]
	if len(nums) == 3 {
		last = nums[2]
	}
	return chapter, first, last, nil
}

// Context returns the verses within radius of chapter:verse with the
// target emphasized. A negative radius uses the engine's.
func (e *Engine) Context(chapter, verse, radius int, req Request) ([]Result, error) {
	if ok, msg := e.Corpus().ValidateReference(chapter, &verse); !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, msg)
	}
	if radius < 0 {
		radius = e.radius
	}
	block := e.matcher.Context(chapter, verse, radius)
	return e.block(block, req), nil
}

// SearchWithContext returns a context block for every verse matching the
// request's query.
func (e *Engine) SearchWithContext(req Request) [][]Result {
	blocks := e.matcher.SearchWithContext(search.ParseQuery(req.Query), e.radius)
	out := make([][]Result, 0, len(blocks))
	for _, block := range blocks {
		out = append(out, e.block(block, req))
	}
	return out
}

func (e *Engine) block(block []search.ContextVerse, req Request) []Result {
	out := make([]Result, 0, len(block))
	for _, cv := range block {
		r := e.result(cv.Record, req.Query, req)
		if cv.Focal {
			r.Focal = true
			r.Simplified = e.highlighter.Emphasize(r.Simplified)
			r.Uthmani = e.highlighter.Emphasize(r.Uthmani)
		}
		out = append(out, r)
	}
	return out
}

func (e *Engine) records(records []corpus.VerseRecord, req Request) []Result {
	out := make([]Result, 0, len(records))
	for _, rec := range records {
		out = append(out, e.result(rec, "", req))
	}
	return out
}

func (e *Engine) result(rec corpus.VerseRecord, query string, req Request) Result {
	style := highlight.StyleFor(req.Dark)
	extras := make([]highlight.Term, 0, len(req.HighlightWords))
	for _, w := range req.HighlightWords {
		extras = append(extras, highlight.Term{Query: w, Style: highlight.PermanentStyleFor(req.Dark)})
	}

	r := Result{
		Chapter:     rec.Key.Chapter,
		Verse:       rec.Key.Verse,
		ChapterName: e.Corpus().ChapterName(rec.Key.Chapter),
		Simplified:  e.highlighter.Highlight(rec.Simplified, query, style, extras),
		Uthmani:     e.highlighter.Highlight(rec.Uthmani, query, style, extras),
	}
	if e.notes != nil {
		r.HasNote = e.notes.HasNote(r.Chapter, r.Verse)
	}
	return r
}
