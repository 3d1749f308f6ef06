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

// Package decoder reconstructs a raw CD-ROM image byte-exact from its
// ECM encoding.
package decoder

import (
	"bufio"
	"io"

	"github.com/go-cdimage/ecm/internal/container"
	"github.com/go-cdimage/ecm/internal/ecc"
	"github.com/go-cdimage/ecm/internal/ecmerrors"
	"github.com/go-cdimage/ecm/internal/sector"
	"github.com/go-cdimage/ecm/internal/typecount"
)

// Sentinels re-exported from internal/ecmerrors, matching the root
// package's, so a caller using only this package can still errors.Is
// against the names it would expect.
var (
	ErrBadMagic    = ecmerrors.ErrBadMagic
	ErrTruncated   = ecmerrors.ErrTruncated
	ErrOverflow    = ecmerrors.ErrOverflow
	ErrCorrupt     = ecmerrors.ErrCorrupt
	ErrEdcMismatch = ecmerrors.ErrEdcMismatch
)

const readBufferSize = 1 << 20

// Result summarizes a completed decode beyond the reconstructed bytes
// already written to the destination, enough to drive a CUE sheet's
// track-mode line.
type Result struct {
	// SawMode1 is true if any decoded sector was Mode 1.
	SawMode1 bool
	// SawMode2 is true if any decoded sector was Mode 2 (either form).
	SawMode2 bool
	// Sectors is the total count of recognized (non-literal) sectors decoded.
	Sectors int64
}

// Decode reads an ECM stream from r and writes the reconstructed image to
// w, verifying the trailing image-wide EDC against one recomputed while
// writing. On any error the destination may hold a partial image.
func Decode(w io.Writer, r io.Reader) (Result, error) {
	var res Result
	br := bufio.NewReaderSize(r, readBufferSize)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return res, ErrTruncated
	}
	if !container.CheckMagic(magic[:]) {
		return res, ErrBadMagic
	}

	var imageEDC uint32
	var totalBytes int64
	sectorBuf := make([]byte, sector.Size)
	var payloadBuf []byte

	for {
		t, count, sentinel, err := typecount.Decode(br)
		if err != nil {
			return res, err
		}
		if sentinel {
			break
		}

		st := sector.Type(t)
		switch st {
		case sector.Literal:
			remaining := count
			for remaining > 0 {
				chunk := remaining
				if chunk > uint32(len(sectorBuf)) {
					chunk = uint32(len(sectorBuf))
				}
				if _, err := io.ReadFull(br, sectorBuf[:chunk]); err != nil {
					return res, ErrTruncated
				}
				imageEDC = ecc.EDC(imageEDC, sectorBuf[:chunk])
				if _, err := w.Write(sectorBuf[:chunk]); err != nil {
					return res, err
				}
				totalBytes += int64(chunk)
				remaining -= chunk
			}

		case sector.Mode1, sector.Mode2Form1, sector.Mode2Form2:
			payloadSize := sector.StoredPayloadSize(st)
			if cap(payloadBuf) < payloadSize {
				payloadBuf = make([]byte, payloadSize)
			}
			payloadBuf = payloadBuf[:payloadSize]

			for i := uint32(0); i < count; i++ {
				if _, err := io.ReadFull(br, payloadBuf); err != nil {
					return res, ErrTruncated
				}
				ordinal := totalBytes / int64(sector.Size)
				sector.Reassemble(sectorBuf, payloadBuf, st, ordinal)
				imageEDC = ecc.EDC(imageEDC, sectorBuf)
				if _, err := w.Write(sectorBuf); err != nil {
					return res, err
				}
				totalBytes += int64(sector.Size)
				res.Sectors++
				if st == sector.Mode1 {
					res.SawMode1 = true
				} else {
					res.SawMode2 = true
				}
			}

		default:
			return res, ErrCorrupt
		}
	}

	var trailer [4]byte
	if _, err := io.ReadFull(br, trailer[:]); err != nil {
		return res, ErrTruncated
	}
	if container.GetTrailingEDC(trailer[:]) != imageEDC {
		return res, ErrEdcMismatch
	}
	return res, nil
}
