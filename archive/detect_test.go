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

package archive_test

import (
	"errors"
	"testing"

	"github.com/go-cdimage/ecm/archive"
)

func TestIsImageFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     bool
	}{
		{"game.bin", true},
		{"GAME.BIN", true},
		{"game.iso", true},
		{"game.img", true},

		{"game.cue", false},
		{"readme.txt", false},
		{"game.zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()

			got := archive.IsImageFile(tt.filename)
			if got != tt.want {
				t.Errorf("IsImageFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestDetectImageFile_FindsImage(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	files := map[string][]byte{
		"readme.txt": []byte("readme"),
		"game.bin":   make([]byte, 100),
		"notes.doc":  []byte("notes"),
	}
	zipPath := createTestZIP(t, tmpDir, "images.zip", files)

	arc, err := archive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	imgPath, err := archive.DetectImageFile(arc)
	if err != nil {
		t.Fatalf("detect image file: %v", err)
	}

	if imgPath != "game.bin" {
		t.Errorf("got %q, want %q", imgPath, "game.bin")
	}
}

func TestDetectImageFile_NoImages(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	files := map[string][]byte{
		"readme.txt": []byte("readme"),
		"notes.doc":  []byte("notes"),
	}
	zipPath := createTestZIP(t, tmpDir, "noimages.zip", files)

	arc, err := archive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	_, err = archive.DetectImageFile(arc)
	if err == nil {
		t.Error("expected error for archive with no images")
	}

	var noImageErr archive.NoImageMemberError
	if !errors.As(err, &noImageErr) {
		t.Errorf("expected NoImageMemberError, got %T", err)
	}
}

func TestDetectImageFile_MultipleImages(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	// ZIP iteration order may vary, but we want to ensure at least one is returned
	files := map[string][]byte{
		"disc1.bin": make([]byte, 100),
		"disc2.iso": make([]byte, 200),
	}
	zipPath := createTestZIP(t, tmpDir, "multi.zip", files)

	arc, err := archive.Open(zipPath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer func() { _ = arc.Close() }()

	imgPath, err := archive.DetectImageFile(arc)
	if err != nil {
		t.Fatalf("detect image file: %v", err)
	}

	if !archive.IsImageFile(imgPath) {
		t.Errorf("returned path %q is not an image file", imgPath)
	}
}
