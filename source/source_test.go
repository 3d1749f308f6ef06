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

package source_test

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-cdimage/ecm/source"
)

func TestCanSeek(t *testing.T) {
	t.Parallel()

	if source.CanSeek(source.Stdin) {
		t.Error("CanSeek(Stdin) = true, want false")
	}
	if !source.CanSeek("image.bin") {
		t.Error("CanSeek(flat file) = false, want true")
	}
	if !source.CanSeek("image.zip") {
		t.Error("CanSeek(archive) = false, want true")
	}
	if !source.CanSeek("image.chd") {
		t.Error("CanSeek(chd) = false, want true")
	}
}

func TestOpen_FlatFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "disc.bin")
	content := []byte("raw sector bytes go here")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rsc, err := source.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = rsc.Close() }()

	got, err := io.ReadAll(rsc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}

	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		t.Errorf("Seek: %v", err)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := source.Open(filepath.Join(t.TempDir(), "missing.bin"))
	if err == nil {
		t.Error("expected error opening a missing file")
	}
}

func createTestZIP(t *testing.T, path string, files map[string][]byte) {
	t.Helper()

	f, err := os.Create(path) //nolint:gosec // test fixture in t.TempDir()
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for name, content := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("create entry %s: %v", name, err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
}

func TestOpen_ZipArchiveMember(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "disc.zip")
	content := []byte("image bytes inside a zip member")
	createTestZIP(t, zipPath, map[string][]byte{
		"readme.txt": []byte("not an image"),
		"disc.bin":   content,
	})

	rsc, err := source.Open(zipPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = rsc.Close() }()

	got, err := io.ReadAll(rsc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("got %q, want %q", got, content)
	}

	// Random access: seek back to the start and re-read.
	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	again, err := io.ReadAll(rsc)
	if err != nil {
		t.Fatalf("ReadAll after seek: %v", err)
	}
	if string(again) != string(content) {
		t.Errorf("got %q after seek, want %q", again, content)
	}
}

func TestOpen_CueRejected(t *testing.T) {
	t.Parallel()

	_, err := source.Open(filepath.Join(t.TempDir(), "game.cue"))

	var unsupported source.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Errorf("err = %v, want UnsupportedFormatError", err)
	}
}

func TestOpen_ZipArchiveNoImageMember(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	zipPath := filepath.Join(tmpDir, "empty.zip")
	createTestZIP(t, zipPath, map[string][]byte{
		"readme.txt": []byte("nothing useful"),
	})

	_, err := source.Open(zipPath)
	if err == nil {
		t.Error("expected error for an archive with no image member")
	}
}
