/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tnetdispatch/internal/domain"
)

const (
	// EnvPreviewMaxBytes caps the preview cache; unset means DefaultPreviewMaxBytes.
	EnvPreviewMaxBytes = "DSP_PREVIEW_MAX_BYTES"

	DefaultPreviewMaxBytes = 8 << 20

	// maxPreviewSource is how much of a file is read to build its preview.
	maxPreviewSource = 64 << 10
)

// ensurePreviewsTable creates the preview cache table. Rows are keyed by
// path and modification time, so an edited file never serves a stale preview.
func ensurePreviewsTable(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS previews (
			id          INTEGER PRIMARY KEY,
			path        TEXT    NOT NULL,
			mod_time    TEXT    NOT NULL,
			body        TEXT    NOT NULL,
			size        INTEGER NOT NULL DEFAULT 0,
			updated_at  TEXT    NOT NULL,
			last_access TEXT
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS ux_previews_path ON previews(path, mod_time);`,
		`CREATE INDEX IF NOT EXISTS idx_previews_access ON previews(last_access);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure previews table: %w", err)
		}
	}
	return nil
}

// BuildPreview renders the text shown in the main view for a file: JSON is
// re-indented, anything else is shown as is. Sources larger than the read
// limit are truncated with a marker line.
func BuildPreview(projectRoot string, e domain.FileEntry) (string, error) {
	f, err := os.Open(filepath.Join(projectRoot, filepath.FromSlash(e.RelPath)))
	if err != nil {
		return "", fmt.Errorf("open %s: %w", e.RelPath, err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxPreviewSource+1))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", e.RelPath, err)
	}
	truncated := len(data) > maxPreviewSource
	if truncated {
		data = data[:maxPreviewSource]
	}
	if e.Kind == domain.KindJSON && !truncated {
		var buf bytes.Buffer
		if json.Indent(&buf, data, "", "  ") == nil {
			data = buf.Bytes()
		}
	}
	text := strings.ReplaceAll(string(data), "\t", "    ")
	if truncated {
		text += "\n… (truncated)"
	}
	return text, nil
}

// GetPreview returns the cached preview body for the file, or ok=false.
func GetPreview(ctx context.Context, db *sql.DB, e domain.FileEntry) (string, bool, error) {
	if err := ensurePreviewsTable(ctx, db); err != nil {
		return "", false, err
	}
	mt := e.ModTime.UTC().Format(time.RFC3339Nano)
	var body string
	err := db.QueryRowContext(ctx, `SELECT body FROM previews WHERE path=? AND mod_time=?`, e.RelPath, mt).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query preview: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, _ = db.ExecContext(ctx, `UPDATE previews SET last_access=? WHERE path=? AND mod_time=?`, now, e.RelPath, mt)
	return body, true, nil
}

// PutPreview stores a preview, drops older versions of the same path and
// enforces the cache size cap via LRU eviction.
func PutPreview(ctx context.Context, db *sql.DB, e domain.FileEntry, body string) error {
	if err := ensurePreviewsTable(ctx, db); err != nil {
		return err
	}
	mt := e.ModTime.UTC().Format(time.RFC3339Nano)
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := db.ExecContext(ctx, `DELETE FROM previews WHERE path=? AND mod_time<>?`, e.RelPath, mt); err != nil {
		return fmt.Errorf("drop stale previews: %w", err)
	}
	_, err := db.ExecContext(ctx, `INSERT INTO previews(path, mod_time, body, size, updated_at, last_access)
		VALUES(?,?,?,?,?,?)
		ON CONFLICT(path, mod_time) DO UPDATE SET body=excluded.body, size=excluded.size, updated_at=excluded.updated_at, last_access=excluded.last_access`,
		e.RelPath, mt, body, len(body), now, now)
	if err != nil {
		return fmt.Errorf("upsert preview: %w", err)
	}
	return EvictPreviewsToFit(ctx, db, MaxPreviewBytesFromEnv())
}

// LoadPreview fetches the preview for e from the project's cache, building
// and storing it on a miss.
func LoadPreview(ctx context.Context, projectRoot string, e domain.FileEntry) (string, error) {
	if e.IsDir() {
		return "", fmt.Errorf("%s is a directory", e.RelPath)
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return "", err
	}
	defer db.Close()
	if body, ok, err := GetPreview(ctx, db, e); err != nil {
		return "", err
	} else if ok {
		return body, nil
	}
	body, err := BuildPreview(projectRoot, e)
	if err != nil {
		return "", err
	}
	if err := PutPreview(ctx, db, e, body); err != nil {
		return "", err
	}
	return body, nil
}

// EvictPreviewsToFit deletes least-recently-used rows until total size <= capBytes.
func EvictPreviewsToFit(ctx context.Context, db *sql.DB, capBytes int64) error {
	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM previews`).Scan(&total); err != nil {
		return fmt.Errorf("sum previews size: %w", err)
	}
	if total <= capBytes {
		return nil
	}
	rows, err := db.QueryContext(ctx, `SELECT id, size FROM previews ORDER BY
		CASE WHEN last_access IS NULL THEN 0 ELSE 1 END ASC, last_access ASC, id ASC`)
	if err != nil {
		return fmt.Errorf("select victims: %w", err)
	}
	var victims []any
	cur := total
	for rows.Next() && cur > capBytes {
		var id, sz int64
		if err := rows.Scan(&id, &sz); err != nil {
			_ = rows.Close()
			return err
		}
		victims = append(victims, id)
		cur -= sz
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	// the cursor must be closed before writing on a single connection
	if err := rows.Close(); err != nil {
		return err
	}
	if len(victims) == 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM previews WHERE id IN (`+placeholders(len(victims))+`)`, victims...); err != nil {
		return fmt.Errorf("evict delete: %w", err)
	}
	return nil
}

// TotalPreviewBytes returns total bytes tracked by previews.size.
func TotalPreviewBytes(ctx context.Context, projectRoot string) (int64, error) {
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	if err := ensurePreviewsTable(ctx, db); err != nil {
		return 0, err
	}
	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(SUM(size),0) FROM previews`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// MaxPreviewBytesFromEnv reads DSP_PREVIEW_MAX_BYTES, defaulting to 8MiB.
func MaxPreviewBytesFromEnv() int64 {
	v := os.Getenv(EnvPreviewMaxBytes)
	if v == "" {
		return DefaultPreviewMaxBytes
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return DefaultPreviewMaxBytes
	}
	return n
}
