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
	"io"

	"github.com/go-cdimage/ecm/internal/container"
	"github.com/go-cdimage/ecm/internal/ecc"
	"github.com/go-cdimage/ecm/internal/sector"
)

// Stream encodes r, writing the ECM stream to w. Unlike Batch, r need not
// support seeking: Stream reads one sector.Size window at a time, with no
// read-ahead buffering and no byte-level resync — a sector that doesn't
// land on a sector.Size-aligned window is never found, and its bytes are
// recorded as literal instead. That's a correctness-preserving fallback
// for pipes, not a degraded Batch: it trades Batch's realignment ability
// for the ability to work over a source that can't be rewound.
func Stream(w io.Writer, r io.Reader) error {
	if _, err := w.Write(container.Magic[:]); err != nil {
		return err
	}

	rw := newRunWriter(w)
	var imageEDC uint32
	buf := make([]byte, sector.Size)

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			imageEDC = ecc.EDC(imageEDC, buf[:n])

			t := sector.Literal
			if n == sector.Size {
				t = sector.Classify(buf)
			}

			if t == sector.Literal {
				if pushErr := rw.pushLiteral(buf[:n]); pushErr != nil {
					return pushErr
				}
			} else if pushErr := rw.pushSector(t, buf); pushErr != nil {
				return pushErr
			}
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return err
		}
	}

	return finishStream(w, rw, imageEDC)
}
