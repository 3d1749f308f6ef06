// Copyright (c) 2025 Niema Moshiri and The Zaparoo Project.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of go-ecm.
//
// go-ecm is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ecm is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ecm.  If not, see <https://www.gnu.org/licenses/>.

// Package cue writes the single-track CUE sheet unecm emits alongside a
// decoded image when asked to, naming the image's track mode as either
// MODE1/2352 or MODE2/2352.
package cue

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/go-cdimage/ecm"
)

// ModeFor picks the CUE sheet's track mode line for a completed decode:
// an image that contained any Mode 1 sector is MODE1/2352, otherwise
// (pure Mode 2, or no recognized sectors at all) it falls back to
// MODE2/2352.
func ModeFor(res ecm.Result) string {
	if res.SawMode1 {
		return "MODE1/2352"
	}
	return "MODE2/2352"
}

// Write emits a single-file, single-track CUE sheet to w, naming binPath
// (as it should appear inside the sheet, typically just its base name)
// as the FILE entry and mode as the TRACK 01 entry.
func Write(w io.Writer, binPath string, mode string) error {
	_, err := fmt.Fprintf(w, "FILE %q BINARY\n  TRACK 01 %s\n", filepath.Base(binPath), mode)
	return err
}
