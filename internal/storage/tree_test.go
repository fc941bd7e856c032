/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"tnetdispatch/internal/domain"
)

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(`{"name":"`+filepath.Base(f)+`"}`), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanTreeOrderingFilteringAndPrefixes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"zeta.json",
		"Alpha.proc",
		"readme.md",
		"routes/b.json",
		"routes/a.proc",
		"routes/deep/x.json",
		"empty/.keep",
		".dispatch/index.json",
	)
	got, err := ScanTree(root)
	if err != nil {
		t.Fatalf("ScanTree: %v", err)
	}
	type row struct {
		rel, prefix string
		kind        domain.FileKind
	}
	want := []row{
		{"empty", "├── ", domain.KindDir},
		{"routes", "├── ", domain.KindDir},
		{"routes/deep", "│   ├── ", domain.KindDir},
		{"routes/deep/x.json", "│   │   └── ", domain.KindJSON},
		{"routes/a.proc", "│   ├── ", domain.KindProc},
		{"routes/b.json", "│   └── ", domain.KindJSON},
		{"Alpha.proc", "├── ", domain.KindProc},
		{"zeta.json", "└── ", domain.KindJSON},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		g := got[i]
		if g.RelPath != w.rel || g.Prefix != w.prefix || g.Kind != w.kind {
			t.Fatalf("entry %d = {%q %q %q}, want {%q %q %q}", i, g.RelPath, g.Prefix, g.Kind, w.rel, w.prefix, w.kind)
		}
	}
	if got[3].Depth != 2 || got[3].Size == 0 {
		t.Fatalf("deep entry metadata wrong: %+v", got[3])
	}
}

func TestTreePrefixUnderLastAncestor(t *testing.T) {
	if got := treePrefix([]bool{true, false}, true); got != "    │   └── " {
		t.Fatalf("treePrefix = %q", got)
	}
}

func TestScanTreeMissingRoot(t *testing.T) {
	if _, err := ScanTree(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
