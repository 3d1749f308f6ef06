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

package encoder

import (
	"bufio"
	"io"

	"github.com/go-cdimage/ecm/internal/container"
	"github.com/go-cdimage/ecm/internal/ecc"
	"github.com/go-cdimage/ecm/internal/sector"
)

// batchBufferSize is the read-ahead window the batch encoder buffers
// input through, matching the 1 MiB analyzer window used elsewhere in
// the format's reference tooling. It must be at least sector.Size so a
// full sector.Size window is always available to Peek.
const batchBufferSize = 1 << 20

// Batch encodes the entirety of r, writing the ECM stream to w. r must
// support seeking; Batch rewinds it to the start before reading, so
// callers may pass a source that has already been probed (for size,
// magic-sniffing, and the like) without needing to track position
// themselves. Use Stream instead for sources that cannot seek.
//
// Batch classifies the sector.Size-byte window at every byte position and
// advances by a single byte when the window doesn't classify as a
// recognized sector, or by a whole sector when it does — so a real sector
// embedded after a misaligned literal prefix is still found, instead of
// being skipped over by fixed-stride reads.
func Batch(w io.Writer, r io.ReadSeeker) error {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	return encodeBatch(w, bufio.NewReaderSize(r, batchBufferSize))
}

func encodeBatch(w io.Writer, br *bufio.Reader) error {
	if _, err := w.Write(container.Magic[:]); err != nil {
		return err
	}

	rw := newRunWriter(w)
	var imageEDC uint32

	for {
		window, peekErr := br.Peek(sector.Size)
		if len(window) < sector.Size {
			if peekErr != nil && peekErr != io.EOF && peekErr != io.ErrUnexpectedEOF {
				return peekErr
			}
			if len(window) == 0 {
				break
			}
			// Fewer than a full sector remains: forced literal, and
			// there's nothing left to resync against afterward.
			imageEDC = ecc.EDC(imageEDC, window)
			if err := rw.pushLiteral(window); err != nil {
				return err
			}
			if _, err := br.Discard(len(window)); err != nil {
				return err
			}
			break
		}

		if t := sector.Classify(window); t != sector.Literal {
			imageEDC = ecc.EDC(imageEDC, window)
			if err := rw.pushSector(t, window); err != nil {
				return err
			}
			if _, err := br.Discard(sector.Size); err != nil {
				return err
			}
			continue
		}

		imageEDC = ecc.EDC(imageEDC, window[:1])
		if err := rw.pushLiteral(window[:1]); err != nil {
			return err
		}
		if _, err := br.Discard(1); err != nil {
			return err
		}
	}

	return finishStream(w, rw, imageEDC)
}
