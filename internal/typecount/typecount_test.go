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

package typecount_test

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/go-cdimage/ecm/internal/typecount"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		typ   byte
		count uint32
	}{
		{"small count", 1, 1},
		{"max single byte", 2, 32},
		{"needs second byte", 3, 33},
		{"needs second byte max", 0, 32 * 128},
		{"needs third byte", 1, 32*128 + 1},
		{"large count", 2, 1 << 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := typecount.Encode(nil, tt.typ, tt.count)
			r := bufio.NewReader(bytes.NewReader(buf))

			gotType, gotCount, sentinel, err := typecount.Decode(r)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if sentinel {
				t.Fatal("Decode reported sentinel for a real record")
			}
			if gotType != tt.typ {
				t.Errorf("type = %d, want %d", gotType, tt.typ)
			}
			if gotCount != tt.count {
				t.Errorf("count = %d, want %d", gotCount, tt.count)
			}
		})
	}
}

func TestSentinel_RoundTrip(t *testing.T) {
	t.Parallel()

	buf := typecount.EncodeSentinel(nil)
	if !bytes.Equal(buf, typecount.Sentinel[:]) {
		t.Fatalf("EncodeSentinel = % X, want % X", buf, typecount.Sentinel)
	}

	r := bufio.NewReader(bytes.NewReader(buf))
	_, _, sentinel, err := typecount.Decode(r)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !sentinel {
		t.Fatal("Decode did not report sentinel")
	}
}

func TestDecode_Truncated(t *testing.T) {
	t.Parallel()

	// A continuation byte with the high bit set but nothing following.
	buf := []byte{0x80}
	r := bufio.NewReader(bytes.NewReader(buf))

	_, _, _, err := typecount.Decode(r)
	if !errors.Is(err, typecount.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_EmptyStream(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(bytes.NewReader(nil))

	_, _, _, err := typecount.Decode(r)
	if !errors.Is(err, typecount.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_Overflow(t *testing.T) {
	t.Parallel()

	// Chain of continuation bytes long enough to exceed 32 bits of count.
	buf := []byte{0x80, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}
	r := bufio.NewReader(bytes.NewReader(buf))

	_, _, _, err := typecount.Decode(r)
	if !errors.Is(err, typecount.ErrOverflow) {
		t.Errorf("err = %v, want ErrOverflow", err)
	}
}

func TestEncode_Append(t *testing.T) {
	t.Parallel()

	dst := []byte{0xAA, 0xBB}
	out := typecount.Encode(dst, 1, 5)

	if !bytes.Equal(out[:2], []byte{0xAA, 0xBB}) {
		t.Error("Encode should preserve the existing prefix of dst")
	}
	if len(out) <= len(dst) {
		t.Error("Encode should have appended at least one byte")
	}
}

func FuzzEncodeDecode(f *testing.F) {
	f.Add(byte(0), uint32(1))
	f.Add(byte(3), uint32(32))
	f.Add(byte(1), uint32(1<<20))
	f.Add(byte(2), uint32(1<<31-1))

	f.Fuzz(func(t *testing.T, typ byte, count uint32) {
		typ &= 3
		if count == 0 {
			count = 1
		}
		if count >= 1<<31 {
			count = 1<<31 - 1
		}

		buf := typecount.Encode(nil, typ, count)
		r := bufio.NewReader(bytes.NewReader(buf))

		gotType, gotCount, sentinel, err := typecount.Decode(r)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if sentinel {
			t.Fatal("unexpected sentinel")
		}
		if gotType != typ {
			t.Errorf("type = %d, want %d", gotType, typ)
		}
		if gotCount != count {
			t.Errorf("count = %d, want %d", gotCount, count)
		}
	})
}
