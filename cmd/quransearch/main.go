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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mosaid/quransearch/pkg/cli"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/helpers"
	"github.com/mosaid/quransearch/pkg/service"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := cli.SetupFlags(nil)

	exit, err := flags.Pre(os.Args[1:], os.Stdout)
	if err != nil || exit {
		return err
	}

	fs := afero.NewOsFs()
	dirs := helpers.DefaultDirs()

	var logWriters []io.Writer
	if !flags.OneShot() {
		logWriters = []io.Writer{helpers.ConsoleWriter()}
	}

	cfg, err := cli.Setup(fs, dirs, config.BaseDefaults, logWriters, *flags.Debug)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Panic: %s\n", err)
			log.Fatal().Msgf("panic: %v", err)
		}
	}()

	if err := flags.Configure(cfg); err != nil {
		return err
	}

	if called, err := flags.CallAPI(context.Background(), cfg, os.Stdout); called {
		return err
	}

	if flags.OneShot() {
		svc, err := service.New(context.Background(), fs, cfg, dirs, nil)
		if err != nil {
			return err
		}
		return flags.Post(svc, cfg, os.Stdout)
	}

	if !cfg.APIEnabled() {
		return errors.New("nothing to do: the api server is disabled in " + cfg.Path())
	}

	stopSvc, done, err := service.Start(fs, cfg, dirs)
	if err != nil {
		return fmt.Errorf("error starting service: %w", err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
	case <-done:
	}

	if err := stopSvc(); err != nil {
		log.Error().Err(err).Msg("error stopping service")
		return fmt.Errorf("error stopping service: %w", err)
	}
	return nil
}
