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

// Package binary provides utilities for reading fixed-width binary fields
// out of an io.ReaderAt at arbitrary offsets, used by the chd package to
// parse CHD metadata entries without tracking a running cursor.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// ReadAt reads len(buf) bytes from r at offset.
func ReadAt(r io.ReaderAt, offset int64, buf []byte) error {
	_, err := r.ReadAt(buf, offset)
	if err != nil {
		return fmt.Errorf("read at offset %d: %w", offset, err)
	}
	return nil
}

// ReadBytesAt reads n bytes from r at offset.
func ReadBytesAt(r io.ReaderAt, offset int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := ReadAt(r, offset, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadUint8At reads a single byte from r at offset.
func ReadUint8At(r io.ReaderAt, offset int64) (uint8, error) {
	buf := make([]byte, 1)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16LEAt reads a little-endian uint16 from r at offset.
func ReadUint16LEAt(r io.ReaderAt, offset int64) (uint16, error) {
	buf := make([]byte, 2)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadUint16BEAt reads a big-endian uint16 from r at offset.
func ReadUint16BEAt(r io.ReaderAt, offset int64) (uint16, error) {
	buf := make([]byte, 2)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint32LEAt reads a little-endian uint32 from r at offset.
func ReadUint32LEAt(r io.ReaderAt, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadUint32BEAt reads a big-endian uint32 from r at offset.
func ReadUint32BEAt(r io.ReaderAt, offset int64) (uint32, error) {
	buf := make([]byte, 4)
	if err := ReadAt(r, offset, buf); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}
