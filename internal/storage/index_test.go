/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func TestIndexInitCreatesWALAndSchema(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer db.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode;").Scan(&mode); err != nil {
		t.Fatalf("read journal_mode: %v", err)
	}
	if mode != "wal" && mode != "WAL" {
		t.Fatalf("expected WAL mode, got %s", mode)
	}
	var cnt int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('meta','files','fts_files')").Scan(&cnt); err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if cnt != 3 {
		t.Fatalf("expected 3 tables, got %d", cnt)
	}
	if v, err := userVersion(ctx, db); err != nil || v != schemaVersion {
		t.Fatalf("user_version = %d (%v), want %d", v, err, schemaVersion)
	}
	var app string
	if err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'app_version'`).Scan(&app); err != nil || app == "" {
		t.Fatalf("app_version = %q (%v)", app, err)
	}
}

func TestRefreshIndexTracksChanges(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.json", "sub/b.proc")
	ctx := context.Background()
	entries, err := ScanTree(root)
	if err != nil {
		t.Fatal(err)
	}
	st, err := RefreshIndex(ctx, root, entries)
	if err != nil {
		t.Fatalf("RefreshIndex: %v", err)
	}
	if st.Files != 2 || st.Bytes == 0 || st.RefreshedAt.IsZero() {
		t.Fatalf("stats after first refresh = %+v", st)
	}

	if err := os.Remove(filepath.Join(root, "a.json")); err != nil {
		t.Fatal(err)
	}
	entries, _ = ScanTree(root)
	st, err = RefreshIndex(ctx, root, entries)
	if err != nil {
		t.Fatalf("RefreshIndex: %v", err)
	}
	if st.Files != 1 {
		t.Fatalf("deleted file still indexed: %+v", st)
	}
	again, err := ReadIndexStats(ctx, root)
	if err != nil || again.Files != 1 {
		t.Fatalf("ReadIndexStats = %+v, %v", again, err)
	}
}

func TestDetectAndRebuildIndexOnCorruption(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "routes.json")
	idx := IndexPath(root)
	if err := os.MkdirAll(filepath.Dir(idx), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(idx, []byte("THIS IS NOT SQLITE"), 0o644); err != nil {
		t.Fatalf("write corrupt: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rebuilt, err := DetectAndRebuildIndex(ctx, root)
	if err != nil {
		t.Fatalf("DetectAndRebuildIndex: %v", err)
	}
	if !rebuilt {
		t.Fatalf("expected rebuild to occur")
	}
	st, err := ReadIndexStats(ctx, root)
	if err != nil || st.Files != 1 {
		t.Fatalf("rebuilt index stats = %+v, %v", st, err)
	}
	entries, _ := os.ReadDir(filepath.Join(root, MetaDirName, BackupsDirName))
	if len(entries) == 0 {
		t.Fatalf("expected backup of the corrupt index")
	}

	rebuilt, err = DetectAndRebuildIndex(ctx, root)
	if err != nil || rebuilt {
		t.Fatalf("healthy index rebuilt again: %v %v", rebuilt, err)
	}
}

// TestMigrationsUpgradeV1ToV2 opens an index left at schema 1 and expects
// the kind index to be added.
func TestMigrationsUpgradeV1ToV2(t *testing.T) {
	root := t.TempDir()
	idx := IndexPath(root)
	if err := os.MkdirAll(filepath.Dir(idx), 0o755); err != nil {
		t.Fatalf("mk meta dir: %v", err)
	}
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s", filepath.ToSlash(idx)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	for _, q := range []string{
		`CREATE TABLE files (file_id INTEGER PRIMARY KEY, path TEXT NOT NULL UNIQUE, kind TEXT NOT NULL, size INTEGER NOT NULL, mod_time TEXT NOT NULL, text TEXT);`,
		`PRAGMA user_version = 1;`,
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			t.Fatalf("seed v1 schema: %v (q=%s)", err, q)
		}
	}
	_ = db.Close()

	mdb, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	defer mdb.Close()
	if v, err := userVersion(ctx, mdb); err != nil || v != schemaVersion {
		t.Fatalf("user_version after migration = %d (%v)", v, err)
	}
	var cnt int
	if err := mdb.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_files_kind'`).Scan(&cnt); err != nil || cnt != 1 {
		t.Fatalf("idx_files_kind missing: %d %v", cnt, err)
	}
}

func TestNewerSchemaIsRejected(t *testing.T) {
	root := t.TempDir()
	db, err := InitOrOpenIndex(root)
	if err != nil {
		t.Fatalf("InitOrOpenIndex: %v", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersion+1)); err != nil {
		t.Fatal(err)
	}
	_ = db.Close()
	if db, err := InitOrOpenIndex(root); err == nil {
		_ = db.Close()
		t.Fatalf("expected an error for a newer schema")
	}
}
