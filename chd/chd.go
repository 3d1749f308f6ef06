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

// Package chd parses CHD (Compressed Hunks of Data) disc images, MAME's
// compressed disc image format, far enough to hand the ECM encoder a
// seekable stream of raw 2352-byte CD-ROM sectors.
package chd

import (
	"fmt"
	"io"
	"os"
)

// CHD represents an open CHD disc image.
type CHD struct {
	file    *os.File
	header  *Header
	hunkMap *HunkMap
	tracks  []Track
}

// Open opens a CHD file and parses its header and metadata.
func Open(path string) (*CHD, error) {
	file, err := os.Open(path) //nolint:gosec // Path from user input is expected
	if err != nil {
		return nil, fmt.Errorf("open CHD file: %w", err)
	}

	chd := &CHD{file: file}

	if err := chd.init(); err != nil {
		_ = file.Close()
		return nil, err
	}

	return chd, nil
}

// init initializes the CHD by parsing header, hunk map, and metadata.
func (c *CHD) init() error {
	header, err := parseHeader(c.file)
	if err != nil {
		return fmt.Errorf("parse header: %w", err)
	}
	c.header = header

	hunkMap, err := NewHunkMap(c.file, header)
	if err != nil {
		return fmt.Errorf("create hunk map: %w", err)
	}
	c.hunkMap = hunkMap

	if header.MetaOffset > 0 {
		entries, parseErr := parseMetadata(c.file, header.MetaOffset)
		if parseErr != nil {
			// Metadata parsing failure is not fatal: Tracks simply
			// returns no track information.
			c.tracks = nil
			return nil //nolint:nilerr // Intentional: metadata parsing failure is non-fatal
		}

		tracks, trackErr := parseTracks(entries)
		if trackErr != nil {
			c.tracks = nil
			return nil //nolint:nilerr // Intentional: track parsing failure is non-fatal
		}
		c.tracks = tracks
	}

	return nil
}

// Close closes the CHD file.
func (c *CHD) Close() error {
	if c.file != nil {
		if err := c.file.Close(); err != nil {
			return fmt.Errorf("close CHD file: %w", err)
		}
	}
	return nil
}

// Header returns the parsed CHD header.
func (c *CHD) Header() *Header {
	return c.header
}

// Tracks returns the parsed track information, or nil when the CHD's
// metadata could not be parsed. The CUE writer does not consult it: it
// picks the track mode from the decoded ECM stream alone.
func (c *CHD) Tracks() []Track {
	return c.tracks
}

// rawSectorSize is the size of a raw CD sector (without subchannel data).
const rawSectorSize = 2352

// RawSize returns the total size, in bytes, of the image as a stream of
// raw 2352-byte sectors.
func (c *CHD) RawSize() int64 {
	sectorsPerHunk := c.sectorsPerHunk()
	if sectorsPerHunk == 0 {
		return 0
	}
	return int64(c.hunkMap.NumHunks()) * sectorsPerHunk * rawSectorSize
}

func (c *CHD) unitBytes() int64 {
	unitBytes := int64(c.header.UnitBytes)
	if unitBytes == 0 {
		unitBytes = 2448 // default CD sector + subchannel
	}
	return unitBytes
}

func (c *CHD) sectorsPerHunk() int64 {
	unitBytes := c.unitBytes()
	if unitBytes == 0 {
		return 0
	}
	return int64(c.hunkMap.HunkBytes()) / unitBytes
}

// RawSectorReader returns an io.ReaderAt presenting the CHD's contents as
// a flat stream of raw 2352-byte CD sectors, decompressing hunks on
// demand via the underlying HunkMap (which caches recently-read hunks).
func (c *CHD) RawSectorReader() io.ReaderAt {
	return &sectorReader{chd: c}
}

// sectorReader implements io.ReaderAt over a CHD's decompressed hunks,
// presenting them as a contiguous raw-sector byte stream.
type sectorReader struct {
	chd *CHD
}

// ReadAt reads raw sector bytes at the given offset, pulling whichever
// hunks overlap the requested range through the CHD's hunk map.
func (sr *sectorReader) ReadAt(dest []byte, off int64) (int, error) {
	if len(dest) == 0 {
		return 0, nil
	}

	unitBytes := sr.chd.unitBytes()
	sectorsPerHunk := sr.chd.sectorsPerHunk()
	if sectorsPerHunk == 0 {
		return 0, io.EOF
	}

	totalRead := 0
	remaining := len(dest)
	currentOff := off

	for remaining > 0 {
		sectorIdx := currentOff / rawSectorSize
		offsetInSector := currentOff % rawSectorSize
		hunkIdx := uint32(sectorIdx / sectorsPerHunk) //nolint:gosec // bounded by file size
		sectorInHunk := sectorIdx % sectorsPerHunk

		hunkData, err := sr.chd.hunkMap.ReadHunk(hunkIdx)
		if err != nil {
			if totalRead > 0 {
				return totalRead, nil
			}
			return 0, fmt.Errorf("read hunk %d: %w", hunkIdx, err)
		}

		dataStart := sectorInHunk*unitBytes + offsetInSector
		if dataStart >= int64(len(hunkData)) {
			break
		}
		dataLen := rawSectorSize - offsetInSector
		if dataStart+dataLen > int64(len(hunkData)) {
			dataLen = int64(len(hunkData)) - dataStart
		}

		toCopy := min(int(dataLen), remaining)
		copy(dest[totalRead:], hunkData[dataStart:dataStart+int64(toCopy)])
		totalRead += toCopy
		remaining -= toCopy
		currentOff += int64(toCopy)
	}

	if totalRead == 0 {
		return 0, io.EOF
	}
	return totalRead, nil
}
