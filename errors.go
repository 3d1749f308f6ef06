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

package ecm

import "github.com/go-cdimage/ecm/internal/ecmerrors"

// Allocation limits guarding against pathological inputs.
const (
	// MaxLiteralRun is the largest literal run the batch encoder will
	// accumulate before forcing a flush, bounding peak memory use.
	MaxLiteralRun = 64 * 1024 * 1024

	// AnalyzerWindow is the size of the read-ahead buffer the batch
	// encoder's analyzer refills from, per the format's back-padded
	// buffer design.
	AnalyzerWindow = 1024 * 1024

	// AnalyzerPad is the front padding of the format's back-padded
	// analyzer buffer. The encoders here classify whole sector-sized
	// windows taken from the read position, so they reserve no such
	// padding and do not consult this value.
	AnalyzerPad = 16
)

// Common errors for ECM encode/decode. Every sub-package returns (or
// wraps) these same sentinel values, so callers can errors.Is against
// the names exported here regardless of which layer surfaced the error.
var (
	// ErrBadMagic indicates the stream did not begin with the ECM magic header.
	ErrBadMagic = ecmerrors.ErrBadMagic

	// ErrTruncated indicates a read failed mid-record, mid-payload, or mid-trailer.
	ErrTruncated = ecmerrors.ErrTruncated

	// ErrOverflow indicates a type/count header's continuation chain exceeded 32 bits.
	ErrOverflow = ecmerrors.ErrOverflow

	// ErrCorrupt indicates a structural violation: an out-of-range count,
	// an invalid sector type, or similar.
	ErrCorrupt = ecmerrors.ErrCorrupt

	// ErrEdcMismatch indicates the trailing image-wide EDC did not match
	// the value recomputed while decoding.
	ErrEdcMismatch = ecmerrors.ErrEdcMismatch

	// ErrIo names an underlying read/write failure from the host stream.
	// Decode and the encoders return write failures as the host stream
	// reported them; they do not wrap them in ErrIo.
	ErrIo = ecmerrors.ErrIo

	// ErrAlloc indicates a buffer allocation was refused because it
	// exceeded a sanity limit.
	ErrAlloc = ecmerrors.ErrAlloc
)
