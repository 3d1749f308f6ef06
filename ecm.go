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

// Package ecm implements the ECM CD-ROM sector codec: a byte-exact,
// lossless compressor/reconstructor for raw 2352-byte CD-ROM sector
// images that strips every structurally reconstructable field (sync
// pattern, address, EDC, Reed-Solomon ECC) and regenerates it on decode.
package ecm

import (
	"io"

	"github.com/go-cdimage/ecm/decoder"
	"github.com/go-cdimage/ecm/encoder"
)

// Encode writes the ECM encoding of r to w. If r also implements
// io.Seeker, Encode rewinds it and uses the buffered batch encoder;
// otherwise it falls back to the streaming encoder, which consumes r
// exactly once, one sector at a time, suitable for stdin or any other
// pipe-like source.
func Encode(w io.Writer, r io.Reader) error {
	if rs, ok := r.(io.ReadSeeker); ok {
		return encoder.Batch(w, rs)
	}
	return encoder.Stream(w, r)
}

// Result summarizes a completed Decode beyond the reconstructed bytes
// already written to the destination.
type Result struct {
	// SawMode1 is true if any decoded sector was Mode 1.
	SawMode1 bool
	// SawMode2 is true if any decoded sector was Mode 2 (either form).
	SawMode2 bool
	// Sectors is the total count of recognized (non-literal) sectors decoded.
	Sectors int64
}

// Decode reconstructs the raw image encoded in r, writing it to w and
// verifying the stream's trailing image-wide EDC. The returned Result
// reports which sector modes were seen, which a caller writing a CUE
// sheet needs to pick the track's mode line.
func Decode(w io.Writer, r io.Reader) (Result, error) {
	res, err := decoder.Decode(w, r)
	return Result(res), err
}
