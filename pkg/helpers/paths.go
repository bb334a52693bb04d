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

// Package helpers holds process level plumbing shared by the commands:
// directory layout and logging setup.
package helpers

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/mosaid/quransearch/pkg/config"
)

// UserDir is the portable install directory name. When it exists next to
// the executable every other directory lives inside it.
const UserDir = "user"

// AppEnv overrides the executable path used to find UserDir.
const AppEnv = "QURANSEARCH_APP"

type Dirs struct {
	Config string
	Data   string
	Logs   string
}

var (
	userDirOnce   sync.Once
	userDirCache  string
	userDirExists bool
)

// HasUserDir reports whether a portable user directory sits next to the
// executable. The lookup runs once per process.
func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		exe := os.Getenv(AppEnv)
		if exe == "" {
			var err error
			exe, err = os.Executable()
			if err != nil {
				return
			}
		}
		userDirCache, userDirExists = findUserDir(exe)
	})
	return userDirCache, userDirExists
}

func findUserDir(exe string) (string, bool) {
	dir := filepath.Join(filepath.Dir(exe), UserDir)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return dir, true
}

// DefaultDirs follows the XDG base directory layout unless a portable user
// directory exists.
func DefaultDirs() Dirs {
	if dir, ok := HasUserDir(); ok {
		return portableDirs(dir)
	}
	return Dirs{
		Config: filepath.Join(xdg.ConfigHome, config.AppName),
		Data:   filepath.Join(xdg.DataHome, config.AppName),
		Logs:   filepath.Join(xdg.StateHome, config.AppName),
	}
}

func portableDirs(dir string) Dirs {
	return Dirs{
		Config: dir,
		Data:   dir,
		Logs:   filepath.Join(dir, "logs"),
	}
}
