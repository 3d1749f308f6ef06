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

package archive

import (
	"fmt"
	"path/filepath"
	"strings"
)

// imageExtensions are file extensions that indicate a raw CD-ROM image,
// the only kind of archive member ECM can use as an encoder source.
var imageExtensions = map[string]bool{
	".bin": true,
	".iso": true,
	".img": true,
}

// IsImageFile checks if a filename has a recognized raw disc image extension.
func IsImageFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return imageExtensions[ext]
}

// DetectImageFile finds the first raw disc image in an archive. It scans
// the archive's file list and returns the path to the first file that
// has a recognized image extension.
func DetectImageFile(arc Archive) (string, error) {
	files, err := arc.List()
	if err != nil {
		return "", fmt.Errorf("list archive files: %w", err)
	}

	for _, file := range files {
		if IsImageFile(file.Name) {
			return file.Name, nil
		}
	}

	return "", NoImageMemberError{Archive: "archive"}
}
