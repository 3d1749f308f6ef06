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

package binary

import (
	"bytes"
	"testing"
)

// FuzzReadBytesAt fuzzes the fixed-width field reader against arbitrary
// offsets and lengths, the same way CHD metadata parsing walks a
// caller-controlled metadata chain.
func FuzzReadBytesAt(f *testing.F) {
	f.Add([]byte{0x01, 0x02, 0x03, 0x04}, int64(0), 4)
	f.Add([]byte{0x01, 0x02, 0x03, 0x04}, int64(2), 4)
	f.Add([]byte{}, int64(0), 0)
	f.Add([]byte{0x00}, int64(-1), 1)
	f.Add([]byte{0x00}, int64(0), -1)

	f.Fuzz(func(t *testing.T, data []byte, offset int64, length int) {
		if length < 0 || length > 1<<20 {
			return
		}

		reader := bytes.NewReader(data)
		got, err := ReadBytesAt(reader, offset, length)
		if err != nil {
			return
		}
		if len(got) != length {
			t.Errorf("ReadBytesAt() returned %d bytes, want %d", len(got), length)
		}
	})
}

// FuzzReadUint32BEAt fuzzes the big-endian uint32 reader, exercising the
// same offset arithmetic parseCHCD relies on.
func FuzzReadUint32BEAt(f *testing.F) {
	f.Add([]byte{0x12, 0x34, 0x56, 0x78}, int64(0))
	f.Add([]byte{0x00, 0x00, 0x00, 0x00}, int64(0))
	f.Add([]byte{0xFF, 0xFF, 0xFF, 0xFF}, int64(0))
	f.Add([]byte{0x01}, int64(0))
	f.Add([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, int64(1))

	f.Fuzz(func(t *testing.T, data []byte, offset int64) {
		reader := bytes.NewReader(data)
		got, err := ReadUint32BEAt(reader, offset)
		if err != nil {
			return
		}
		if offset < 0 || offset+4 > int64(len(data)) {
			t.Errorf("ReadUint32BEAt() = %d with no error for out-of-range offset %d, len %d", got, offset, len(data))
		}
	})
}
