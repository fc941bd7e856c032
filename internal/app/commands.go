/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"tnetdispatch/internal/config"
	"tnetdispatch/internal/domain"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/telemetry"
)

// ioTimeout bounds each command touching the project index.
const ioTimeout = 15 * time.Second

func listProjectsCmd(root string) Cmd {
	return func() Message {
		names, err := storage.ListProjects(root)
		if err != nil {
			applog.WithComponent("app").Warn("list projects failed", slog.String("root", root), slog.Any("err", err))
		}
		return ProjectsLoaded{Names: names, Err: err}
	}
}

func createProjectCmd(root, name string) Cmd {
	return func() Message {
		l := applog.WithOperation(applog.WithComponent("app"), "create_project")
		ph, err := storage.CreateProject(root, name)
		if err != nil {
			l.Warn("create project failed", slog.String("name", name), slog.Any("err", err))
			return ProjectOpened{Name: name, Created: true, Err: err}
		}
		l.Info("project created", slog.String("root", ph.Root), slog.String("id", ph.Project.ID))
		msg := loadWorkspace(name, ph)
		msg.Created = true
		return msg
	}
}

func openProjectCmd(root, name string) Cmd {
	return func() Message {
		ph, err := storage.OpenProject(root, name)
		if err != nil {
			applog.WithComponent("app").Warn("open project failed", slog.String("name", name), slog.Any("err", err))
			return ProjectOpened{Name: name, Err: err}
		}
		return loadWorkspace(name, ph)
	}
}

// loadWorkspace scans the project and refreshes its index. Index problems
// are logged; the tree is still shown.
func loadWorkspace(name string, ph *storage.ProjectHandle) ProjectOpened {
	l := applog.WithOperation(applog.WithComponent("app"), "open_project").With(slog.String("project", name))
	ctx, cancel := context.WithTimeout(applog.WithProject(context.Background(), name), ioTimeout)
	defer cancel()
	if rebuilt, err := storage.DetectAndRebuildIndex(ctx, ph.Root); err != nil {
		l.Warn("index check failed", slog.Any("err", err))
	} else if rebuilt {
		l.Info("index rebuilt")
	}
	entries, err := storage.ScanTree(ph.Root)
	if err != nil {
		return ProjectOpened{Name: name, Err: err}
	}
	stats, err := storage.RefreshIndex(ctx, ph.Root, entries)
	if err != nil {
		l.Warn("index refresh failed", slog.Any("err", err))
	}
	l.Info("project opened", slog.Int("files", stats.Files), slog.Bool("synthesized", ph.Synthesized))
	telemetry.Event("project_opened", map[string]any{"files": stats.Files})
	return ProjectOpened{Name: name, Handle: ph, Entries: entries, Stats: stats}
}

func refreshTreeCmd(root string) Cmd {
	return func() Message {
		entries, err := storage.ScanTree(root)
		if err != nil {
			return TreeRefreshed{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		stats, err := storage.RefreshIndex(ctx, root, entries)
		if err != nil {
			applog.WithComponent("app").Warn("index refresh failed", slog.String("root", root), slog.Any("err", err))
		}
		return TreeRefreshed{Entries: entries, Stats: stats}
	}
}

func loadPreviewCmd(root string, e domain.FileEntry) Cmd {
	return func() Message {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		return PreviewLoaded{Preview: buildPreview(ctx, root, e)}
	}
}

func buildPreview(ctx context.Context, root string, e domain.FileEntry) Preview {
	p := Preview{Path: e.RelPath}
	body, err := storage.LoadPreview(ctx, root, e)
	if err != nil {
		applog.WithComponent("app").Warn("preview failed", slog.String("path", e.RelPath), slog.Any("err", err))
		p.Err = err.Error()
		return p
	}
	p.Body = body
	p.Lines = highlight(e.Name, body)
	if e.Kind != domain.KindJSON {
		return p
	}
	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(e.RelPath)))
	if err != nil {
		p.Err = err.Error()
		return p
	}
	valid := json.Valid(raw)
	p.JSONValid = &valid
	if e.RelPath == storage.ManifestFileName && valid {
		problems, err := storage.ValidateManifest(raw)
		if err != nil {
			p.Err = err.Error()
		}
		p.Problems = problems
	}
	return p
}

func searchCmd(root, text string) Cmd {
	return func() Message {
		ctx, cancel := context.WithTimeout(context.Background(), ioTimeout)
		defer cancel()
		res, err := storage.Search(ctx, root, storage.SearchQuery{Text: text, Limit: searchLimit})
		return SearchResultsLoaded{Query: text, Results: res, Err: err}
	}
}

const searchLimit = 50

func saveConfigCmd(cfg config.AppConfig) Cmd {
	return func() Message {
		err := config.Save(cfg)
		if err != nil {
			applog.WithComponent("app").Error("save config failed", slog.Any("err", err))
		}
		return ConfigSaved{Err: err}
	}
}

// SaveOnExit persists the live layout ratios with the rest of the config.
func SaveOnExit(s State) error {
	s.syncLayout()
	if err := config.Save(s.Config); err != nil {
		return fmt.Errorf("save config on exit: %w", err)
	}
	return nil
}
