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

// Package cli holds the command-line flags shared by the binaries and the
// one-shot commands they run against a loaded service.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mosaid/quransearch/pkg/api/client"
	"github.com/mosaid/quransearch/pkg/config"
	"github.com/mosaid/quransearch/pkg/helpers"
	"github.com/mosaid/quransearch/pkg/highlight"
	"github.com/mosaid/quransearch/pkg/service"
	"github.com/mosaid/quransearch/pkg/service/searcher"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrBadReference = errors.New("reference must be chapter:verse")

type Flags struct {
	set        *flag.FlagSet
	Search     *string
	Method     *string
	Context    *string
	Radius     *int
	Words      *string
	Limit      *int
	ToggleWord *string
	API        *string
	Dark       *bool
	JSON       *bool
	Version    *bool
	Debug      *bool
}

// SetupFlags defines the common flags on set, or on the process flag set
// when set is nil.
func SetupFlags(set *flag.FlagSet) *Flags {
	if set == nil {
		set = flag.CommandLine
	}
	return &Flags{
		set: set,
		Search: set.String(
			"search",
			"",
			"run a search, print the matching verses and exit",
		),
		Method: set.String(
			"method",
			"text",
			"search method: text, surah or \"surah firstayah lastayah\"",
		),
		Context: set.String(
			"context",
			"",
			"print the verses around chapter:verse and exit",
		),
		Radius: set.Int(
			"radius",
			-1,
			"verses either side for -context (default from config)",
		),
		Words: set.String(
			"words",
			"",
			"print words containing a prefix, or the most common words when empty",
		),
		Limit: set.Int(
			"limit",
			0,
			"maximum number of words to print",
		),
		ToggleWord: set.String(
			"toggle-word",
			"",
			"add or remove a permanently highlighted word and save the config",
		),
		API: set.String(
			"api",
			"",
			"send method:params to the running server and print the result",
		),
		Dark: set.Bool(
			"dark",
			false,
			"use the dark theme highlight colors",
		),
		JSON: set.Bool(
			"json",
			false,
			"print results as JSON with highlight markup",
		),
		Version: set.Bool(
			"version",
			false,
			"print version and exit",
		),
		Debug: set.Bool(
			"debug",
			false,
			"enable debug logging",
		),
	}
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Pre parses args and handles the flags that need no setup. It reports
// whether the program should exit.
func (f *Flags) Pre(args []string, out io.Writer) (bool, error) {
	if err := f.set.Parse(args); err != nil {
		return true, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *f.Version {
		_, _ = fmt.Fprintf(out, "%s v%s\n", config.AppName, config.AppVersion)
		return true, nil
	}
	return false, nil
}

// OneShot reports whether a flag asks for a single command instead of the
// long running server.
func (f *Flags) OneShot() bool {
	return f.isFlagPassed("search") ||
		f.isFlagPassed("context") ||
		f.isFlagPassed("words") ||
		f.isFlagPassed("toggle-word") ||
		f.isFlagPassed("api")
}

// CallAPI sends the -api request to the server configured in cfg and
// prints the raw result. It reports whether the flag was given.
func (f *Flags) CallAPI(ctx context.Context, cfg *config.Instance, out io.Writer) (bool, error) {
	if !f.isFlagPassed("api") {
		return false, nil
	}
	if *f.API == "" {
		return true, errors.New("api flag requires a value")
	}

	method, params, _ := strings.Cut(*f.API, ":")
	result, err := client.Local(cfg).Call(ctx, method, params)
	if err != nil {
		log.Error().Err(err).Msg("error calling API")
		return true, fmt.Errorf("error calling API: %w", err)
	}
	_, _ = fmt.Fprintln(out, string(result))
	return true, nil
}

// Configure applies flags that only change configuration.
func (f *Flags) Configure(cfg *config.Instance) error {
	if !f.isFlagPassed("toggle-word") {
		return nil
	}
	word := strings.TrimSpace(*f.ToggleWord)
	if word == "" {
		return errors.New("toggle-word flag requires a value")
	}
	on := cfg.ToggleHighlightWord(word)
	if err := cfg.Save(); err != nil {
		return err
	}
	log.Info().Str("word", word).Bool("highlighted", on).Msg("toggled highlight word")
	return nil
}

// Post runs the one-shot command selected by the flags against svc.
func (f *Flags) Post(svc *service.Service, cfg *config.Instance, out io.Writer) error {
	dark := cfg.DarkTheme()
	if f.isFlagPassed("dark") {
		dark = *f.Dark
	}

	switch {
	case f.isFlagPassed("search"):
		method, err := searcher.ParseMethod(*f.Method)
		if err != nil {
			return err
		}
		resp, err := svc.Engine.Run(searcher.Request{
			Method:         method,
			Query:          *f.Search,
			HighlightWords: cfg.HighlightWords(),
			Dark:           dark,
		})
		if err != nil {
			return err
		}
		if *f.JSON {
			return writeJSON(out, resp)
		}
		printResults(out, resp.Results)
		_, _ = fmt.Fprintf(out, "%d results, %d occurrences\n", len(resp.Results), resp.Occurrences)
	case f.isFlagPassed("context"):
		chapter, verse, err := parseReference(*f.Context)
		if err != nil {
			return err
		}
		results, err := svc.Engine.Context(chapter, verse, *f.Radius, searcher.Request{
			HighlightWords: cfg.HighlightWords(),
			Dark:           dark,
		})
		if err != nil {
			return err
		}
		if *f.JSON {
			return writeJSON(out, results)
		}
		printResults(out, results)
	case f.isFlagPassed("words"):
		var words []string
		if *f.Words == "" {
			words = svc.Words.Common(*f.Limit)
		} else {
			words = svc.Words.Suggest(*f.Words, *f.Limit)
		}
		if *f.JSON {
			return writeJSON(out, words)
		}
		for _, w := range words {
			_, _ = fmt.Fprintln(out, w)
		}
	}
	return nil
}

func parseReference(ref string) (chapter, verse int, err error) {
	c, v, ok := strings.Cut(strings.TrimSpace(ref), ":")
	if !ok {
		return 0, 0, ErrBadReference
	}
	chapter, err = strconv.Atoi(c)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrBadReference, ref)
	}
	verse, err = strconv.Atoi(v)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrBadReference, ref)
	}
	return chapter, verse, nil
}

// printResults writes one plain text block per verse. The focal verse of
// a context listing is marked with '>'.
func printResults(out io.Writer, results []searcher.Result) {
	for _, r := range results {
		marker := " "
		if r.Focal {
			marker = ">"
		}
		note := ""
		if r.HasNote {
			note = " *"
		}
		_, _ = fmt.Fprintf(out, "%s %s %d:%d%s\n", marker, r.ChapterName, r.Chapter, r.Verse, note)
		_, _ = fmt.Fprintf(out, "  %s\n", highlight.Strip(r.Uthmani))
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

// Setup creates the directories, initializes logging and loads the user
// config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	fs afero.Fs,
	dirs helpers.Dirs,
	defaultConfig config.Values,
	writers []io.Writer,
	debug bool,
) (*config.Instance, error) {
	if err := fs.MkdirAll(dirs.Config, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := helpers.InitLogging(dirs.Logs, writers); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.NewConfig(fs, dirs.Config, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if debug || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg, nil
}
