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

// Package api serves search, browsing and highlighting over HTTP and a
// JSON-RPC WebSocket.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/mosaid/quransearch/pkg/api/middleware"
	"github.com/mosaid/quransearch/pkg/api/models"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/mosaid/quransearch/pkg/wordindex"
	"github.com/olahol/melody"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

var defaultAllowedOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}

type Server struct {
	cfg     *config.Instance
	engine  *searcher.Engine
	words   *wordindex.Index
	clock   clockwork.Clock
	limiter *middleware.IPRateLimiter
	ws      *melody.Melody
	router  chi.Router
}

// NewServer builds the router. The real clock is used when clock is nil.
func NewServer(
	cfg *config.Instance,
	engine *searcher.Engine,
	words *wordindex.Index,
	clock clockwork.Clock,
) *Server {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	perMinute, burst := cfg.APIRateLimit()
	s := &Server{
		cfg:     cfg,
		engine:  engine,
		words:   words,
		clock:   clock,
		limiter: middleware.NewIPRateLimiter(clock, perMinute, burst),
		ws:      melody.New(),
	}
	s.setupWebSocket()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	origins := s.cfg.AllowedOrigins()
	if len(origins) == 0 {
		origins = defaultAllowedOrigins
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)
	r.Use(middleware.HTTPIPFilterMiddleware(middleware.NewIPFilter(s.cfg.AllowedIPs())))
	r.Use(middleware.HTTPRateLimitMiddleware(s.limiter))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := s.ws.HandleRequest(w, r); err != nil {
			log.Error().Err(err).Msg("handling websocket request")
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.NoCache)
		r.Use(chimw.Timeout(config.APIRequestTimeout))

		r.Get("/api/version", s.handleVersion)
		r.Get("/api/search", s.handleSearch)
		r.Get("/api/search/context", s.handleSearchContext)
		r.Get("/api/chapters", s.handleChapters)
		r.Get("/api/chapters/{chapter}/verses", s.handleVerses)
		r.Get("/api/chapters/{chapter}/verses/{verse}/context", s.handleContext)
		r.Get("/api/words", s.handleWords)
		r.Post("/api/highlight", s.handleHighlight)
	})

	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured address until ctx is cancelled, then
// shuts the server down.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.APIListen(), strconv.Itoa(s.cfg.APIPort()))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupDone := s.limiter.StartCleanup(ctx)
	defer func() { <-cleanupDone }()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("starting http server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Debug().Msg("closing http server via context cancellation")
	if err := s.ws.Close(); err != nil {
		log.Warn().Err(err).Msg("closing websocket sessions")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("http request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
