/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Project is the manifest stored as project.json at the root of every
// project directory.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}

// Metadata contains optional descriptive metadata for a project.
type Metadata struct {
	Description string `json:"description,omitempty"`
	Owner       string `json:"owner,omitempty"`
}

// FileKind classifies entries shown in the file tree.
type FileKind string

const (
	KindDir  FileKind = "dir"
	KindJSON FileKind = "json"
	KindProc FileKind = "proc"
)

// KindOf reports the tree kind of a regular file name. Only .json and .proc
// files belong in the tree.
func KindOf(name string) (FileKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return KindJSON, true
	case ".proc":
		return KindProc, true
	}
	return "", false
}

// FileEntry is one row of a project's file tree, in display order.
type FileEntry struct {
	RelPath string // slash separated, relative to the project root
	Name    string
	Kind    FileKind
	Depth   int
	Size    int64
	ModTime time.Time
	// Prefix holds the tree connector glyphs drawn before Name.
	Prefix string
}

func (e FileEntry) IsDir() bool { return e.Kind == KindDir }

// MaxProjectNameLen bounds project directory names.
const MaxProjectNameLen = 64

var (
	ErrEmptyName   = errors.New("project name is empty")
	ErrNameTooLong = fmt.Errorf("project name is longer than %d characters", MaxProjectNameLen)
	ErrHiddenName  = errors.New("project name must not start with a dot")
)

// InvalidCharError reports the first character a project name may not contain.
type InvalidCharError struct{ Char rune }

func (e *InvalidCharError) Error() string {
	if e.Char == ' ' {
		return "project name must not contain spaces"
	}
	return fmt.Sprintf("project name must not contain %q", e.Char)
}

// ValidateProjectName checks that name can be used as a project directory:
// ASCII letters, digits, '-' and '_' only.
func ValidateProjectName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxProjectNameLen {
		return ErrNameTooLong
	}
	if name[0] == '.' {
		return ErrHiddenName
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return &InvalidCharError{Char: r}
		}
	}
	return nil
}
