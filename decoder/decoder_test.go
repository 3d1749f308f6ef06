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

package decoder_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-cdimage/ecm/decoder"
	"github.com/go-cdimage/ecm/encoder"
	"github.com/go-cdimage/ecm/internal/container"
	"github.com/go-cdimage/ecm/internal/typecount"
)

func TestDecode_BadMagic(t *testing.T) {
	t.Parallel()

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader([]byte("NOPE")))
	if !errors.Is(err, decoder.ErrBadMagic) {
		t.Errorf("err = %v, want ErrBadMagic", err)
	}
}

func TestDecode_TruncatedMagic(t *testing.T) {
	t.Parallel()

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader([]byte("EC")))
	if !errors.Is(err, decoder.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_TruncatedAfterHeader(t *testing.T) {
	t.Parallel()

	var stream []byte
	stream = append(stream, container.Magic[:]...)
	stream = typecount.Encode(stream, 1, 1) // claims a Mode 1 sector, but no payload follows

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader(stream))
	if !errors.Is(err, decoder.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_EdcMismatch(t *testing.T) {
	t.Parallel()

	var encoded bytes.Buffer
	if err := encoder.Stream(&encoded, bytes.NewReader(bytes.Repeat([]byte("x"), 100))); err != nil {
		t.Fatalf("Stream: %v", err)
	}

	corrupted := encoded.Bytes()
	// Flip every bit of the last byte of the trailing EDC itself.
	corrupted[len(corrupted)-1] ^= 0xFF

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader(corrupted))
	if !errors.Is(err, decoder.ErrEdcMismatch) {
		t.Errorf("err = %v, want ErrEdcMismatch", err)
	}
}

func TestDecode_ShortSectorPayload(t *testing.T) {
	t.Parallel()

	// Type tags are only 2 bits (0-3) and all four are defined sector
	// types, so there is no undefined type value to feed the decoder.
	// Instead, verify a truncated payload read for a declared sector run
	// reports ErrTruncated rather than silently decoding garbage.
	var stream []byte
	stream = append(stream, container.Magic[:]...)
	stream = typecount.Encode(stream, 2, 1) // Mode2Form1, short payload
	stream = append(stream, make([]byte, 10)...)
	stream = typecount.EncodeSentinel(stream)

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader(stream))
	if !errors.Is(err, decoder.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}

func TestDecode_EmptyStream(t *testing.T) {
	t.Parallel()

	var decoded bytes.Buffer
	_, err := decoder.Decode(&decoded, bytes.NewReader(nil))
	if !errors.Is(err, decoder.ErrTruncated) {
		t.Errorf("err = %v, want ErrTruncated", err)
	}
}
