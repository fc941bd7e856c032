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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tnetdispatch/internal/domain"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2

	// maxIndexedBytes caps how much of a file's content is copied into the FTS table.
	maxIndexedBytes = 256 << 10
)

// IndexStats summarizes the embedded index for the inspector.
type IndexStats struct {
	Files       int
	Bytes       int64
	RefreshedAt time.Time
}

// IndexPath returns the full path to the project's embedded index database file.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, MetaDirName, IndexFileName)
}

// InitOrOpenIndex ensures that the per-project SQLite index exists at .dispatch/index.sqlite,
// opens the database, enables WAL mode, and brings the schema up to date.
// Callers close the returned *sql.DB.
func InitOrOpenIndex(projectRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, MetaDirName), 0o755); err != nil {
		l.Error("create meta dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create %s dir: %w", MetaDirName, err)
	}

	path := IndexPath(projectRoot)
	// SQLite URIs want forward slashes.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureMeta(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure index schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("index ready", slog.String("path", path))
	return db, nil
}

// ensureMeta creates the key/value meta table and stamps the writing app
// version. created_at is set once.
func ensureMeta(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		return fmt.Errorf("create meta: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(key, value) VALUES('created_at', ?)`, now); err != nil {
		return fmt.Errorf("stamp created_at: %w", err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES('app_version', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, version.String()); err != nil {
		return fmt.Errorf("stamp app_version: %w", err)
	}
	return nil
}

// migrations holds the statements that bring the index to a schema version.
// The schema number lives in PRAGMA user_version.
var migrations = map[int][]string{
	1: nil, // baseline: files, fts_files and triggers from ensureIndexSchema
	2: {`CREATE INDEX IF NOT EXISTS idx_files_kind ON files(kind);`},
}

func userVersion(ctx context.Context, q interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
}) (int, error) {
	var v int
	err := q.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v)
	return v, err
}

// runMigrations steps the schema forward to schemaVersion, one transaction
// per version.
func runMigrations(ctx context.Context, db *sql.DB) error {
	cur, err := userVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		return fmt.Errorf("index schema %d is newer than supported %d", cur, schemaVersion)
	}
	for next := cur + 1; next <= schemaVersion; next++ {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", next, err)
		}
		for _, q := range migrations[next] {
			if _, err := tx.ExecContext(ctx, q); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d: %w", next, err)
			}
		}
		// PRAGMA takes no bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d;", next)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d set version: %w", next, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d commit: %w", next, err)
		}
	}
	return nil
}

// ensureIndexSchema creates the files catalog and its FTS table.
func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS files (
			file_id  INTEGER PRIMARY KEY,
			path     TEXT    NOT NULL UNIQUE,
			kind     TEXT    NOT NULL,
			size     INTEGER NOT NULL,
			mod_time TEXT    NOT NULL,
			text     TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_files_kind ON files(kind);`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_files USING fts5(
			path,
			text,
			tokenize = 'unicode61'
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS files_ai AFTER INSERT ON files BEGIN
			INSERT INTO fts_files(rowid, path, text) VALUES (new.file_id, new.path, new.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS files_ad AFTER DELETE ON files BEGIN
			DELETE FROM fts_files WHERE rowid = old.file_id;
		END;`,
		`CREATE TRIGGER IF NOT EXISTS files_au AFTER UPDATE ON files BEGIN
			DELETE FROM fts_files WHERE rowid = old.file_id;
			INSERT INTO fts_files(rowid, path, text) VALUES (new.file_id, new.path, new.text);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// RefreshIndex brings the files catalog in line with entries (as returned by
// ScanTree). Unchanged files (same size and mtime) are not re-read.
func RefreshIndex(ctx context.Context, projectRoot string, entries []domain.FileEntry) (IndexStats, error) {
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return IndexStats{}, err
	}
	defer db.Close()
	if err := refreshFiles(ctx, db, projectRoot, entries); err != nil {
		return IndexStats{}, err
	}
	return readStats(ctx, db)
}

func refreshFiles(ctx context.Context, db *sql.DB, projectRoot string, entries []domain.FileEntry) error {
	type known struct {
		size    int64
		modTime string
	}
	existing := map[string]known{}
	rows, err := db.QueryContext(ctx, `SELECT path, size, mod_time FROM files`)
	if err != nil {
		return fmt.Errorf("read files: %w", err)
	}
	for rows.Next() {
		var p string
		var k known
		if err := rows.Scan(&p, &k.size, &k.modTime); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scan files: %w", err)
		}
		existing[p] = k
	}
	if err := rows.Close(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		seen[e.RelPath] = true
		mt := e.ModTime.UTC().Format(time.RFC3339Nano)
		if k, ok := existing[e.RelPath]; ok && k.size == e.Size && k.modTime == mt {
			continue
		}
		text := readIndexText(filepath.Join(projectRoot, filepath.FromSlash(e.RelPath)))
		_, err := tx.ExecContext(ctx, `INSERT INTO files(path, kind, size, mod_time, text) VALUES(?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET kind=excluded.kind, size=excluded.size, mod_time=excluded.mod_time, text=excluded.text`,
			e.RelPath, string(e.Kind), e.Size, mt, text)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("upsert %s: %w", e.RelPath, err)
		}
	}
	for p := range existing {
		if seen[p] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM files WHERE path = ?`, p); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete %s: %w", p, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO meta(key, value) VALUES('refreshed_at', ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value`, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("stamp refresh: %w", err)
	}
	return tx.Commit()
}

func readIndexText(p string) string {
	f, err := os.Open(p)
	if err != nil {
		return ""
	}
	defer f.Close()
	b, _ := io.ReadAll(io.LimitReader(f, maxIndexedBytes))
	return strings.ToValidUTF8(string(b), "")
}

// ReadIndexStats returns the current catalog summary.
func ReadIndexStats(ctx context.Context, projectRoot string) (IndexStats, error) {
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return IndexStats{}, err
	}
	defer db.Close()
	return readStats(ctx, db)
}

func readStats(ctx context.Context, db *sql.DB) (IndexStats, error) {
	var st IndexStats
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM files`).Scan(&st.Files, &st.Bytes); err != nil {
		return st, fmt.Errorf("index stats: %w", err)
	}
	var ts string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'refreshed_at'`).Scan(&ts)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return st, fmt.Errorf("index stats: %w", err)
	}
	if ts != "" {
		st.RefreshedAt, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return st, nil
}

// DetectAndRebuildIndex checks for corruption or missing schema and rebuilds the index if needed.
// It returns true when a rebuild was performed.
func DetectAndRebuildIndex(ctx context.Context, projectRoot string) (bool, error) {
	path := IndexPath(projectRoot)
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		backupIndexFile(path)
		removeIndexFiles(path)
		if rbErr := RebuildIndex(ctx, projectRoot); rbErr != nil {
			return false, fmt.Errorf("rebuild after open failure: %w (open err: %v)", rbErr, err)
		}
		return true, nil
	}
	needs := false
	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		needs = true
	}
	if !needs {
		if _, err := db.ExecContext(ctx, `SELECT 1 FROM files LIMIT 1;`); err != nil {
			needs = true
		}
	}
	_ = db.Close()
	if !needs {
		return false, nil
	}
	backupIndexFile(path)
	removeIndexFiles(path)
	if err := RebuildIndex(ctx, projectRoot); err != nil {
		return false, err
	}
	return true, nil
}

// RebuildIndex drops the catalog and repopulates it from a fresh scan. The
// meta table and schema version are kept.
func RebuildIndex(ctx context.Context, projectRoot string) error {
	entries, err := ScanTree(projectRoot)
	if err != nil {
		return fmt.Errorf("scan project: %w", err)
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return err
	}
	defer db.Close()
	drops := []string{
		"DROP TRIGGER IF EXISTS files_ai;",
		"DROP TRIGGER IF EXISTS files_ad;",
		"DROP TRIGGER IF EXISTS files_au;",
		"DROP TABLE IF EXISTS files;",
		"DROP TABLE IF EXISTS fts_files;",
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, q := range drops {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("drop commit: %w", err)
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		return err
	}
	return refreshFiles(ctx, db, projectRoot, entries)
}

// backupIndexFile copies the current index file into .dispatch/backups.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), BackupsDirName)
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}

func removeIndexFiles(indexPath string) {
	for _, suffix := range []string{"", "-wal", "-shm"} {
		_ = os.Remove(indexPath + suffix)
	}
}
