/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"errors"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"tnetdispatch/internal/domain"
)

// maxTreeDepth stops runaway recursion in pathological trees.
const maxTreeDepth = 32

// ScanTree walks the project directory and returns the file tree in display
// order: directories first, then .json/.proc files, each group sorted by name.
// Dot entries (including the .dispatch meta dir) and symlinks are skipped.
func ScanTree(root string) ([]domain.FileEntry, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("project root is required")
	}
	var out []domain.FileEntry
	if err := scanDir(root, "", 0, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func scanDir(dir, rel string, depth int, lastAncestors []bool, out *[]domain.FileEntry) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var folders, files []os.DirEntry
	for _, e := range entries {
		name := e.Name()
		if name == "" || name[0] == '.' || e.Type()&os.ModeSymlink != 0 {
			continue
		}
		if e.IsDir() {
			folders = append(folders, e)
			continue
		}
		if _, ok := domain.KindOf(name); ok && e.Type().IsRegular() {
			files = append(files, e)
		}
	}
	byName := func(s []os.DirEntry) {
		sort.Slice(s, func(i, j int) bool { return strings.ToLower(s[i].Name()) < strings.ToLower(s[j].Name()) })
	}
	byName(folders)
	byName(files)

	ordered := append(folders, files...)
	for i, e := range ordered {
		last := i == len(ordered)-1
		entry := domain.FileEntry{
			RelPath: path.Join(rel, e.Name()),
			Name:    e.Name(),
			Depth:   depth,
			Prefix:  treePrefix(lastAncestors, last),
		}
		if info, err := e.Info(); err == nil {
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		if e.IsDir() {
			entry.Kind = domain.KindDir
			entry.Size = 0
			*out = append(*out, entry)
			if depth+1 >= maxTreeDepth {
				continue
			}
			// unreadable subdirectories are shown but left empty
			_ = scanDir(filepath.Join(dir, e.Name()), entry.RelPath, depth+1, append(lastAncestors[:len(lastAncestors):len(lastAncestors)], last), out)
			continue
		}
		entry.Kind, _ = domain.KindOf(e.Name())
		*out = append(*out, entry)
	}
	return nil
}

// treePrefix builds the connector glyphs for an entry whose ancestors'
// "is last sibling" flags are given outermost first.
func treePrefix(lastAncestors []bool, last bool) string {
	var b strings.Builder
	for _, l := range lastAncestors {
		if l {
			b.WriteString("    ")
		} else {
			b.WriteString("│   ")
		}
	}
	if last {
		b.WriteString("└── ")
	} else {
		b.WriteString("├── ")
	}
	return b.String()
}
