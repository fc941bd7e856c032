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
	"strings"
	"unicode"

	"tnetdispatch/internal/domain"
)

// SearchQuery describes a search over the project file index.
// Text is split into terms; every term must match (as a prefix) either the
// file path or its content. Kinds optionally restricts the file kinds.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text   string
	Kinds  []domain.FileKind
	Limit  int
	Offset int
}

// SearchResult represents a single match row.
// Snippet is a highlighted excerpt using [ ] markers when Text is set.
type SearchResult struct {
	Path    string
	Kind    domain.FileKind
	Size    int64
	Snippet string
}

// Search runs q against the embedded index of the project at projectRoot.
// With an empty Text it lists indexed files, filtered by Kinds.
func Search(ctx context.Context, projectRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	match := ftsQuery(q.Text)
	if match != "" {
		sb.WriteString("SELECT f.path, f.kind, f.size, snippet(fts_files, 1, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_files JOIN files f ON fts_files.rowid = f.file_id\n")
		sb.WriteString("WHERE fts_files MATCH ?\n")
		args = append(args, match)
	} else {
		sb.WriteString("SELECT f.path, f.kind, f.size, ''\n")
		sb.WriteString("FROM files f\nWHERE 1=1\n")
	}
	if len(q.Kinds) > 0 {
		sb.WriteString(" AND f.kind IN (" + placeholders(len(q.Kinds)) + ")\n")
		for _, k := range q.Kinds {
			args = append(args, string(k))
		}
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := max(q.Offset, 0)
	if match != "" {
		sb.WriteString("ORDER BY rank, f.path\n")
	} else {
		sb.WriteString("ORDER BY f.path\n")
	}
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		var kind string
		var sn sql.NullString
		if err := rows.Scan(&r.Path, &kind, &r.Size, &sn); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		r.Kind = domain.FileKind(kind)
		if sn.Valid {
			r.Snippet = sn.String
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ftsQuery turns free text into an FTS5 expression of quoted prefix terms, so
// user input never hits the FTS5 query syntax. Pure punctuation terms are dropped.
func ftsQuery(text string) string {
	fields := strings.Fields(text)
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if !strings.ContainsFunc(f, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) {
			continue
		}
		terms = append(terms, `"`+strings.ReplaceAll(f, `"`, `""`)+`"*`)
	}
	return strings.Join(terms, " ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
