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

// Package ecmerrors holds the sentinel errors shared by every ECM
// sub-package, so a caller can errors.Is against the same value no
// matter which layer returned it. The root package re-exports these
// under its own names for the public API.
package ecmerrors

import "errors"

var (
	// ErrBadMagic indicates a stream did not begin with the ECM magic header.
	ErrBadMagic = errors.New("ecm: bad magic header")

	// ErrTruncated indicates a read failed mid-header, mid-record, or mid-trailer.
	ErrTruncated = errors.New("ecm: truncated stream")

	// ErrOverflow indicates a type/count header's continuation chain exceeded 32 bits.
	ErrOverflow = errors.New("ecm: type/count overflow")

	// ErrCorrupt indicates a structural violation in the stream.
	ErrCorrupt = errors.New("ecm: corrupt stream")

	// ErrEdcMismatch indicates a checksum recomputed while decoding did
	// not match the one stored in the stream.
	ErrEdcMismatch = errors.New("ecm: EDC mismatch")

	// ErrIo names an underlying read/write failure from the host stream.
	// The decoder and encoders return write failures as the host stream
	// reported them; they do not wrap them in ErrIo.
	ErrIo = errors.New("ecm: i/o error")

	// ErrAlloc indicates a buffer allocation was refused because it
	// exceeded a sanity limit.
	ErrAlloc = errors.New("ecm: allocation too large")
)
