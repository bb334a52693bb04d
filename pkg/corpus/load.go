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

package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// ErrLoad is matched by every error returned from Load.
var ErrLoad = errors.New("corpus load failed")

// LoadError reports a source file that could not be read.
type LoadError struct {
	Err  error
	Path string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Sources names the three files a corpus is built from.
type Sources struct {
	Chapters   string
	Uthmani    string
	Simplified string
}

// Load reads the three sources concurrently from fs and builds a Corpus. An
// unreadable source fails the whole load with a *LoadError.
func Load(ctx context.Context, fs afero.Fs, src Sources) (*Corpus, error) {
	var chapters, uthmani, simplified []byte

	g, gctx := errgroup.WithContext(ctx)
	read := func(path string, dest *[]byte) func() error {
		return func() error {
			if err := gctx.Err(); err != nil {
				return &LoadError{Path: path, Err: err}
			}
			data, err := afero.ReadFile(fs, path)
			if err != nil {
				return &LoadError{Path: path, Err: err}
			}
			*dest = data
			return nil
		}
	}
	g.Go(read(src.Chapters, &chapters))
	g.Go(read(src.Uthmani, &uthmani))
	g.Go(read(src.Simplified, &simplified))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return parse(bytes.NewReader(chapters), bytes.NewReader(uthmani), bytes.NewReader(simplified), src)
}
