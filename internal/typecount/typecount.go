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

// Package typecount encodes and decodes the ECM container's (type, count)
// record headers: a variable-length integer packing a 2-bit sector type
// with a run count, plus a reserved sentinel value marking end-of-records.
package typecount

import "github.com/go-cdimage/ecm/internal/ecmerrors"

// Errors returned while decoding a (type, count) record header. These
// are the package-wide ECM sentinels (see internal/ecmerrors) so callers
// can errors.Is against the same value the root package exposes.
var (
	// ErrTruncated indicates the stream ended mid-header.
	ErrTruncated = ecmerrors.ErrTruncated

	// ErrOverflow indicates the continuation chain exceeded 32 bits.
	ErrOverflow = ecmerrors.ErrOverflow

	// ErrCorrupt indicates a decoded count was out of range.
	ErrCorrupt = ecmerrors.ErrCorrupt
)

// Sentinel is the 5-byte encoding of the end-of-records marker, (type=0, count=0).
var Sentinel = [5]byte{0xFC, 0xFF, 0xFF, 0xFF, 0x7F}

// Encode appends the variable-length encoding of (t, count) to dst and
// returns the extended slice. count must be in [1, 2^31). t must fit in 2 bits.
func Encode(dst []byte, t byte, count uint32) []byte {
	n := count - 1

	first := byte(0)
	if n >= 32 {
		first = 0x80
	}
	first |= byte(n&31) << 2
	first |= t & 3
	dst = append(dst, first)
	n >>= 5

	for n > 0 {
		b := byte(n & 0x7F)
		n >>= 7
		if n > 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// EncodeSentinel appends the end-of-records marker to dst.
func EncodeSentinel(dst []byte) []byte {
	return append(dst, Sentinel[:]...)
}

// byteSource is the minimal interface Decode needs to read one byte at a time.
type byteSource interface {
	ReadByte() (byte, error)
}

// Decode reads one (type, count) header from r. A true third return value
// means the sentinel was read (end of records); in that case type and count
// are both zero and meaningless.
func Decode(r byteSource) (t byte, count uint32, sentinel bool, err error) {
	c, err := r.ReadByte()
	if err != nil {
		return 0, 0, false, ErrTruncated
	}

	t = c & 3
	num := uint32(c>>2) & 31
	bits := uint(5)
	more := c&0x80 != 0

	for more {
		if bits >= 32 {
			return 0, 0, false, ErrOverflow
		}
		c, err = r.ReadByte()
		if err != nil {
			return 0, 0, false, ErrTruncated
		}
		num |= uint32(c&0x7F) << bits
		bits += 7
		more = c&0x80 != 0
	}

	if num == 0xFFFFFFFF {
		return 0, 0, true, nil
	}
	count = num + 1
	if count >= 1<<31 {
		return 0, 0, false, ErrCorrupt
	}
	return t, count, false, nil
}
