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

// Package source resolves an encoder input path to a plain byte stream,
// so the codec core never has to know whether the bytes came from a flat
// file, stdin, an archive member, or a CHD's decompressed hunks.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-cdimage/ecm/archive"
	"github.com/go-cdimage/ecm/chd"
)

// UnsupportedFormatError indicates a path's extension has no known source
// adapter.
type UnsupportedFormatError struct {
	Path string
	Ext  string
}

func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported source format %q: %s", e.Ext, e.Path)
}

// Stdin is the conventional path argument meaning "read from standard
// input" rather than a named file.
const Stdin = "-"

// CanSeek reports whether Open(path) will return a seekable stream,
// letting the caller pick the batch encoder over the streaming one.
// Archive members and CHD hunk streams are always served through a
// random-access reader, so they are seekable; stdin never is.
func CanSeek(path string) bool {
	return path != Stdin
}

// Open resolves path to a seekable byte stream:
//   - "-" reads from stdin (not seekable; only valid with the streaming
//     encoder).
//   - ".zip", ".7z", ".rar" open via the archive package, locate the
//     first recognized raw-image member, and buffer it in memory.
//   - ".chd" opens via the chd package and presents the decompressed
//     hunks as a flat raw-sector stream.
//   - ".cue" is rejected with UnsupportedFormatError: a cue sheet names
//     a multi-file image the caller must concatenate itself; this layer
//     never interprets cue sheets as encoder input.
//   - anything else opens the path directly as a flat file.
func Open(path string) (io.ReadSeekCloser, error) {
	if path == Stdin {
		return os.Stdin, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".7z", ".rar":
		return openArchive(path)
	case ".chd":
		return openCHD(path)
	case ".cue":
		return nil, UnsupportedFormatError{Path: path, Ext: ext}
	default:
		f, err := os.Open(path) //nolint:gosec // path comes from CLI argument
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	}
}

// openArchive opens the first recognized raw-image member of a .zip,
// .7z, or .rar archive and buffers it as a seekable stream.
func openArchive(path string) (io.ReadSeekCloser, error) {
	arc, err := archive.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	member, err := archive.DetectImageFile(arc)
	if err != nil {
		_ = arc.Close()
		return nil, fmt.Errorf("find image in %s: %w", path, err)
	}

	readerAt, size, memberCloser, err := arc.OpenReaderAt(member)
	if err != nil {
		_ = arc.Close()
		return nil, fmt.Errorf("open %s in %s: %w", member, path, err)
	}

	return &readerAtSeeker{
		ra:   readerAt,
		size: size,
		closers: []io.Closer{
			memberCloser,
			arc,
		},
	}, nil
}

// openCHD opens a CHD disc image and presents its decompressed hunks as
// a flat raw-sector stream.
func openCHD(path string) (io.ReadSeekCloser, error) {
	c, err := chd.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CHD %s: %w", path, err)
	}

	return &readerAtSeeker{
		ra:      c.RawSectorReader(),
		size:    c.RawSize(),
		closers: []io.Closer{c},
	}, nil
}

// readerAtSeeker adapts an io.ReaderAt of known size into an
// io.ReadSeekCloser, tracking a read cursor across Read calls. Closing
// it closes every underlying closer, in order, reporting the first
// error encountered.
type readerAtSeeker struct {
	ra      io.ReaderAt
	size    int64
	pos     int64
	closers []io.Closer
}

func (s *readerAtSeeker) Read(p []byte) (int, error) {
	if s.pos >= s.size {
		return 0, io.EOF
	}
	n, err := s.ra.ReadAt(p, s.pos)
	s.pos += int64(n)
	return n, err
}

func (s *readerAtSeeker) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = s.pos + offset
	case io.SeekEnd:
		newPos = s.size + offset
	default:
		return 0, fmt.Errorf("seek: invalid whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("seek: negative position %d", newPos)
	}
	s.pos = newPos
	return s.pos, nil
}

func (s *readerAtSeeker) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
