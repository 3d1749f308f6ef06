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

package ecm_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/go-cdimage/ecm"
	"github.com/go-cdimage/ecm/internal/sector"
)

// nonSeekingReader drops the io.Seeker method a bytes.Reader would
// otherwise expose, forcing ecm.Encode onto the streaming path.
type nonSeekingReader struct {
	io.Reader
}

func buildMode1Image(n int) []byte {
	out := make([]byte, 0, n*sector.Size)
	for i := 0; i < n; i++ {
		buf := make([]byte, sector.Size)
		payload := make([]byte, 0, 3+2048)
		msf := sector.MSF(int64(i))
		payload = append(payload, msf[:]...)
		for j := 0; j < 2048; j++ {
			payload = append(payload, byte(i+j))
		}
		sector.Reassemble(buf, payload, sector.Mode1, int64(i))
		out = append(out, buf...)
	}
	return out
}

func TestEncode_SelectsBatchForSeekable(t *testing.T) {
	t.Parallel()

	image := buildMode1Image(3)

	var encoded bytes.Buffer
	if err := ecm.Encode(&encoded, bytes.NewReader(image)); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded bytes.Buffer
	res, err := ecm.Decode(&decoded, bytes.NewReader(encoded.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), image) {
		t.Error("decoded image does not match original")
	}
	if res.Sectors != 3 {
		t.Errorf("res.Sectors = %d, want 3", res.Sectors)
	}
}

func TestEncode_FallsBackToStreamForNonSeekable(t *testing.T) {
	t.Parallel()

	image := buildMode1Image(3)

	var encoded bytes.Buffer
	r := nonSeekingReader{Reader: bytes.NewReader(image)}
	if err := ecm.Encode(&encoded, r); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decoded bytes.Buffer
	if _, err := ecm.Decode(&decoded, bytes.NewReader(encoded.Bytes())); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded.Bytes(), image) {
		t.Error("decoded image does not match original")
	}
}

func TestDecode_BadMagic(t *testing.T) {
	t.Parallel()

	var decoded bytes.Buffer
	_, err := ecm.Decode(&decoded, bytes.NewReader([]byte("garbage")))
	if !errors.Is(err, ecm.ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}
