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

package searcher

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mosaid/quransearch/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// Runner executes one request synchronously. *Engine is the production
// implementation.
type Runner interface {
	Run(req Request) (Response, error)
}

// Dispatcher runs requests in the background. Only the newest submission
// is live: submitting again cancels the previous request and its result is
// dropped.
type Dispatcher struct {
	runner     Runner
	clock      clockwork.Clock
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	generation uint64
	mu         syncutil.Mutex
}

// NewDispatcher uses the real clock when clock is nil.
func NewDispatcher(runner Runner, clock clockwork.Clock) *Dispatcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Dispatcher{runner: runner, clock: clock}
}

// Submit starts req and returns a channel that yields its response and is
// then closed. A superseded or cancelled request closes the channel without
// a value.
func (d *Dispatcher) Submit(ctx context.Context, req Request) <-chan Response {
	out := make(chan Response, 1)
	ctx, cancel := context.WithCancel(ctx)

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.cancel = cancel
	d.generation++
	gen := d.generation
	d.mu.Unlock()

	id := uuid.New()
	start := d.clock.Now()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer close(out)
		defer cancel()

		if ctx.Err() != nil {
			return
		}

		resp, err := d.runner.Run(req)
		resp.ID = id
		resp.Request = req
		resp.Elapsed = d.clock.Since(start)
		if err != nil {
			resp.Err = err
			resp.Error = err.Error()
			log.Debug().Err(err).Str("id", id.String()).Msg("search request failed")
		}

		d.mu.Lock()
		defer d.mu.Unlock()
		if gen != d.generation || ctx.Err() != nil {
			log.Debug().Str("id", id.String()).Msg("discarding superseded search result")
			return
		}
		log.Debug().
			Str("id", id.String()).
			Str("method", string(req.Method)).
			Int("results", len(resp.Results)).
			Dur("elapsed", resp.Elapsed).
			Msg("search complete")
		out <- resp
	}()

	return out
}

// Cancel drops the in-flight request, if any.
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
}

// Wait blocks until every submitted request has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
