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

// Package encoder turns a raw CD-ROM image into its ECM encoding, either
// in one pass over a seekable source (Batch) or one pass over a plain
// io.Reader (Stream).
package encoder

import (
	"io"

	"github.com/go-cdimage/ecm/internal/container"
	"github.com/go-cdimage/ecm/internal/sector"
	"github.com/go-cdimage/ecm/internal/typecount"
)

// runWriter accumulates consecutive sectors/bytes of the same type into
// a single (type, count) record, flushing to w whenever the type changes.
// For sector.Literal, count is a byte count; for every other type it is a
// sector count.
type runWriter struct {
	w       io.Writer
	typ     sector.Type
	count   uint32
	active  bool
	payload []byte
	header  []byte
}

func newRunWriter(w io.Writer) *runWriter {
	return &runWriter{w: w}
}

// pushLiteral extends (or starts) a literal run by len(b) bytes, starting
// a new run once the current one would exceed maxLiteralRun bytes.
func (rw *runWriter) pushLiteral(b []byte) error {
	const maxLiteralRun = 64 * 1024 * 1024 // same bound as ecm.MaxLiteralRun
	if rw.active && rw.typ == sector.Literal && int(rw.count)+len(b) <= maxLiteralRun {
		rw.count += uint32(len(b))
		rw.payload = append(rw.payload, b...)
		return nil
	}
	if err := rw.flush(); err != nil {
		return err
	}
	rw.active = true
	rw.typ = sector.Literal
	rw.count = uint32(len(b))
	rw.payload = append(rw.payload[:0], b...)
	return nil
}

// pushSector extends (or starts) a run of one recognized sector type by
// one sector, appending window's stored payload.
func (rw *runWriter) pushSector(t sector.Type, window []byte) error {
	if rw.active && rw.typ == t {
		rw.count++
		rw.payload = sector.AppendPayload(rw.payload, window, t)
		return nil
	}
	if err := rw.flush(); err != nil {
		return err
	}
	rw.active = true
	rw.typ = t
	rw.count = 1
	rw.payload = sector.AppendPayload(rw.payload[:0], window, t)
	return nil
}

func (rw *runWriter) flush() error {
	if !rw.active {
		return nil
	}
	rw.header = typecount.Encode(rw.header[:0], byte(rw.typ), rw.count)
	if _, err := rw.w.Write(rw.header); err != nil {
		return err
	}
	if _, err := rw.w.Write(rw.payload); err != nil {
		return err
	}
	rw.active = false
	rw.payload = rw.payload[:0]
	return nil
}

// finish flushes any pending run and writes the end-of-records sentinel.
func (rw *runWriter) finish() error {
	if err := rw.flush(); err != nil {
		return err
	}
	rw.header = typecount.EncodeSentinel(rw.header[:0])
	_, err := rw.w.Write(rw.header)
	return err
}

// finishStream writes the end-of-records sentinel and the trailing
// image-wide EDC, shared by Batch and Stream's otherwise-distinct loops.
func finishStream(w io.Writer, rw *runWriter, imageEDC uint32) error {
	if err := rw.finish(); err != nil {
		return err
	}
	var trailer [4]byte
	container.PutTrailingEDC(trailer[:], imageEDC)
	_, err := w.Write(trailer[:])
	return err
}
