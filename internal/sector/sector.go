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

// Package sector classifies raw 2352-byte CD-ROM sector windows and
// regenerates their structural fields (sync, MSF, mode, reserved bytes,
// EDC, ECC-P/Q) from a sector's stored payload and disc position.
package sector

import "github.com/go-cdimage/ecm/internal/ecc"

// Type identifies which layout a 2352-byte window conforms to.
type Type byte

// Sector type tags, matching the ECM container's type/count stream.
const (
	Literal Type = iota
	Mode1
	Mode2Form1
	Mode2Form2
)

// Size is the size in bytes of a full raw sector of any type.
const Size = ecc.SectorSize

// StoredPayloadSize returns the number of non-reconstructable bytes kept
// in the ECM stream for one sector of the given type (literal sectors
// have no fixed size: N is the literal run length, not a sector count).
func StoredPayloadSize(t Type) int {
	switch t {
	case Mode1:
		return 3 + 2048
	case Mode2Form1:
		return 4 + 2048
	case Mode2Form2:
		return 4 + 2324
	default:
		return 0
	}
}

// syncPattern is the fixed 12-byte sequence that marks the start of every
// CD-ROM sector: 00 FF×10 00.
var syncPattern = [12]byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

// PutSync writes the fixed sync pattern to the start of sector.
func PutSync(sector []byte) {
	copy(sector[:12], syncPattern[:])
}

func hasSync(window []byte) bool {
	if len(window) < 12 {
		return false
	}
	for i, b := range syncPattern {
		if window[i] != b {
			return false
		}
	}
	return true
}

// bcd encodes v (0-99) as packed binary-coded decimal.
func bcd(v int) byte {
	return byte((v/10)<<4 | v%10)
}

// MSF computes the packed-BCD minute/second/frame address for the sector
// at ordinal n (0-based from the start of the image), per the 75
// frames/second, 60 seconds/minute convention with a 150-frame lead-in.
func MSF(n int64) [3]byte {
	frame := n + 150
	minutes := (frame / 75) / 60
	seconds := (frame / 75) % 60
	frames := frame % 75
	return [3]byte{bcd(int(minutes)), bcd(int(seconds)), bcd(int(frames))}
}

// PutMSF writes the sector ordinal's MSF address to sector[12:15).
func PutMSF(sector []byte, n int64) {
	msf := MSF(n)
	copy(sector[12:15], msf[:])
}

// Generate recomputes every reconstructable field of sector (a full
// Size-byte buffer already holding sync, MSF, mode, and stored payload)
// in place: EDC, ECC-P/Q, reserved zero-fill, per the per-type table in
// the ECM format's sector generator.
func Generate(sector []byte, t Type) {
	switch t {
	case Mode1:
		generateMode1(sector)
	case Mode2Form1:
		generateMode2Form1(sector)
	case Mode2Form2:
		generateMode2Form2(sector)
	}
}

func generateMode1(sector []byte) {
	edc := ecc.EDC(0, sector[0x000:0x810])
	ecc.PutEDC(sector[0x810:0x814], edc)
	for i := 0x814; i < 0x81C; i++ {
		sector[i] = 0
	}
	ecc.GenerateECC(sector, sector[ecc.OffsetECC:])
}

func generateMode2Form1(sector []byte) {
	edc := ecc.EDC(0, sector[0x010:0x818])
	ecc.PutEDC(sector[0x818:0x81C], edc)
	ecc.WithZeroedAddress(sector, func() {
		ecc.GenerateECC(sector, sector[ecc.OffsetECC:])
	})
}

func generateMode2Form2(sector []byte) {
	edc := ecc.EDC(0, sector[0x010:0x92C])
	ecc.PutEDC(sector[0x92C:0x930], edc)
}

// Classify decides which layout window conforms to. A window shorter
// than Size is always literal, without reading any of it.
func Classify(window []byte) Type {
	if len(window) < Size || !hasSync(window[:Size]) {
		return Literal
	}

	switch window[0x0F] {
	case 0x01:
		if classifyMode1(window) {
			return Mode1
		}
	case 0x02:
		if t, ok := classifyMode2(window); ok {
			return t
		}
	}
	return Literal
}

func classifyMode1(window []byte) bool {
	for i := 0x814; i < 0x81C; i++ {
		if window[i] != 0 {
			return false
		}
	}
	edc := ecc.EDC(0, window[0x000:0x810])
	if edc != ecc.GetEDC(window[0x810:0x814]) {
		return false
	}
	return ecc.VerifyECC(window)
}

func classifyMode2(window []byte) (Type, bool) {
	subheader := window[0x10:0x14]
	subheaderCopy := window[0x14:0x18]
	for i := range subheader {
		if subheader[i] != subheaderCopy[i] {
			return Literal, false
		}
	}

	if classifyMode2Form1(window) {
		return Mode2Form1, true
	}
	if classifyMode2Form2(window) {
		return Mode2Form2, true
	}
	return Literal, false
}

func classifyMode2Form1(window []byte) bool {
	edc := ecc.EDC(0, window[0x010:0x818])
	if edc != ecc.GetEDC(window[0x818:0x81C]) {
		return false
	}
	ok := false
	ecc.WithZeroedAddress(window, func() {
		ok = ecc.VerifyECC(window)
	})
	return ok
}

func classifyMode2Form2(window []byte) bool {
	edc := ecc.EDC(0, window[0x010:0x92C])
	return edc == ecc.GetEDC(window[0x92C:0x930])
}

// AppendPayload appends the stored (non-reconstructable) bytes of a
// Size-byte window classified as t to dst and returns the extended slice.
// For Literal, that is the window verbatim; for the recognized sector
// types it is the subset StoredPayloadSize(t) describes.
func AppendPayload(dst []byte, window []byte, t Type) []byte {
	switch t {
	case Mode1:
		dst = append(dst, window[12:15]...)
		dst = append(dst, window[0x10:0x810]...)
	case Mode2Form1:
		dst = append(dst, window[0x10:0x14]...)
		dst = append(dst, window[0x18:0x818]...)
	case Mode2Form2:
		dst = append(dst, window[0x10:0x14]...)
		dst = append(dst, window[0x18:0x92C]...)
	default:
		dst = append(dst, window...)
	}
	return dst
}

// Reassemble reconstructs a full Size-byte sector of type t into dst from
// its stored payload and the sector's ordinal position in the image
// (0-based count of Size-byte sector slots emitted so far), filling in
// every structural field via Generate. dst must be Size bytes long.
//
// Mode 1 carries its own MSF address in the stored payload, since a
// preceding literal run of non-sector-aligned length can desynchronize
// the running ordinal from the disc's true addressing. Mode 2 sectors
// (both forms) have no room to spare for an explicit address and instead
// derive their MSF from ordinal. A Mode 2 sector whose original address
// is not the one its ordinal gives (for example one the batch encoder
// found after a literal run whose length is not a multiple of Size) is
// reassembled with the ordinal's address, not its original one.
func Reassemble(dst []byte, payload []byte, t Type, ordinal int64) {
	PutSync(dst)
	switch t {
	case Mode1:
		copy(dst[12:15], payload[0:3])
		dst[15] = 0x01
		copy(dst[0x10:0x810], payload[3:3+2048])
	case Mode2Form1:
		PutMSF(dst, ordinal)
		dst[15] = 0x02
		copy(dst[0x10:0x14], payload[0:4])
		copy(dst[0x14:0x18], payload[0:4])
		copy(dst[0x18:0x818], payload[4:4+2048])
	case Mode2Form2:
		PutMSF(dst, ordinal)
		dst[15] = 0x02
		copy(dst[0x10:0x14], payload[0:4])
		copy(dst[0x14:0x18], payload[0:4])
		copy(dst[0x18:0x92C], payload[4:4+2324])
	}
	Generate(dst, t)
}
