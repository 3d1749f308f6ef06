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

package container_test

import (
	"testing"

	"github.com/go-cdimage/ecm/internal/container"
)

func TestCheckMagic(t *testing.T) {
	t.Parallel()

	if !container.CheckMagic(container.Magic[:]) {
		t.Error("CheckMagic(Magic) = false, want true")
	}

	if container.CheckMagic([]byte{'E', 'C', 'M', 0x01}) {
		t.Error("CheckMagic should reject a mismatched 4th byte")
	}

	if container.CheckMagic([]byte("ECM")) {
		t.Error("CheckMagic should reject a short buffer")
	}
}

func TestTrailingEDC_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []uint32{0, 1, 0xDEADBEEF, 0xFFFFFFFF}

	for _, edc := range tests {
		var buf [4]byte
		container.PutTrailingEDC(buf[:], edc)

		got := container.GetTrailingEDC(buf[:])
		if got != edc {
			t.Errorf("GetTrailingEDC(PutTrailingEDC(%d)) = %d", edc, got)
		}
	}
}

func TestTrailingEDC_LittleEndian(t *testing.T) {
	t.Parallel()

	var buf [4]byte
	container.PutTrailingEDC(buf[:], 0x01020304)

	want := [4]byte{0x04, 0x03, 0x02, 0x01}
	if buf != want {
		t.Errorf("PutTrailingEDC wrote % X, want % X", buf, want)
	}
}
