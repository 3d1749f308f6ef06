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

// Package container defines the on-disk framing shared by the ECM encoder
// and decoder: the 4-byte magic header and the trailing little-endian
// image-wide EDC.
package container

import "github.com/go-cdimage/ecm/internal/ecmerrors"

// Magic is the 4-byte header that identifies an ECM stream.
var Magic = [4]byte{'E', 'C', 'M', 0x00}

// ErrBadMagic is returned when a stream does not begin with Magic.
var ErrBadMagic = ecmerrors.ErrBadMagic

// CheckMagic reports whether buf holds exactly Magic.
func CheckMagic(buf []byte) bool {
	return len(buf) == len(Magic) && [4]byte(buf) == Magic
}

// PutTrailingEDC writes the 4-byte little-endian image-wide EDC to dst.
func PutTrailingEDC(dst []byte, edc uint32) {
	dst[0] = byte(edc)
	dst[1] = byte(edc >> 8)
	dst[2] = byte(edc >> 16)
	dst[3] = byte(edc >> 24)
}

// GetTrailingEDC reads a 4-byte little-endian image-wide EDC from src.
func GetTrailingEDC(src []byte) uint32 {
	return uint32(src[0]) | uint32(src[1])<<8 | uint32(src[2])<<16 | uint32(src[3])<<24
}
