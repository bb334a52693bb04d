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

// Package service loads the verse corpus and its derived indices and runs
// the API server over them.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/mosaid/quransearch/pkg/api"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/corpus"
	"github.com/mosaid/quransearch/pkg/helpers"
	"github.com/mosaid/quransearch/pkg/highlight"
	"github.com/mosaid/quransearch/pkg/search"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/mosaid/quransearch/pkg/wordindex"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrAPIDisabled = errors.New("api server is disabled")

// Service is the loaded search core. It is read-only once New returns.
type Service struct {
	cfg    *config.Instance
	clock  clockwork.Clock
	Corpus *corpus.Corpus
	Engine *searcher.Engine
	Words  *wordindex.Index
}

func setupEnvironment(fs afero.Fs, dirs helpers.Dirs) error {
	if _, ok := helpers.HasUserDir(); ok {
		log.Info().Msg("using 'user' directory for storage")
	}

	for _, dir := range []string{dirs.Config, dirs.Data, dirs.Logs} {
		if dir == "" {
			continue
		}
		if err := fs.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// New loads the corpus named by cfg and builds the matcher, highlighter,
// search engine and word index over it. Extra engine options are applied
// after the configured ones.
func New(
	ctx context.Context,
	fs afero.Fs,
	cfg *config.Instance,
	dirs helpers.Dirs,
	clock clockwork.Clock,
	opts ...searcher.Option,
) (*Service, error) {
	log.Info().Msgf("version: %s", config.AppVersion)

	if err := setupEnvironment(fs, dirs); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	start := clock.Now()
	log.Info().Msg("loading corpus")
	c, err := corpus.Load(ctx, fs, cfg.CorpusSources(dirs.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	log.Info().
		Int("verses", c.Len()).
		Int("chapters", len(c.ChapterNames())).
		Dur("elapsed", clock.Since(start)).
		Msg("corpus loaded")

	words := wordindex.New(fs, c)
	words.LoadOrBuild(cfg.WordCachePath(dirs.Data))
	log.Info().Int("words", words.Count()).Str("state", words.State().String()).Msg("word index ready")

	h := highlight.New(nil, highlight.Options{ExpandToWords: cfg.ExpandToWords()})
	opts = append([]searcher.Option{searcher.WithContextRadius(cfg.ContextRadius())}, opts...)

	return &Service{
		cfg:    cfg,
		clock:  clock,
		Corpus: c,
		Engine: searcher.NewEngine(search.New(c), h, opts...),
		Words:  words,
	}, nil
}

// Serve runs the API server until ctx is cancelled.
func (s *Service) Serve(ctx context.Context) error {
	if !s.cfg.APIEnabled() {
		return ErrAPIDisabled
	}
	return api.NewServer(s.cfg, s.Engine, s.Words, s.clock).Start(ctx)
}

// Start loads the service and serves the API in the background. Calling
// stop shuts the server down and waits for it; done is closed once the
// server has exited for any reason.
func Start(
	fs afero.Fs,
	cfg *config.Instance,
	dirs helpers.Dirs,
) (stop func() error, done <-chan struct{}, err error) {
	ctx, cancel := context.WithCancel(context.Background())

	svc, err := New(ctx, fs, cfg, dirs, nil)
	if err != nil {
		cancel()
		log.Error().Err(err).Msg("error starting service")
		return nil, nil, err
	}

	doneCh := make(chan struct{})
	var serveErr error
	go func() {
		defer close(doneCh)
		serveErr = svc.Serve(ctx)
		if serveErr != nil {
			log.Error().Err(serveErr).Msg("api server stopped")
		}
	}()

	return func() error {
		log.Info().Msg("stopping service")
		cancel()
		<-doneCh
		return serveErr
	}, doneCh, nil
}
