//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"

	fyneapp "fyne.io/fyne/v2/app"

	"tnetdispatch/internal/app"
	"tnetdispatch/internal/config"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/telemetry"
)

// Run starts the desktop UI. Pass a project name to open it right away.
func Run(project string) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dataRoot, err := cfg.ResolveDataRoot()
	if err != nil {
		return fmt.Errorf("resolve data root: %w", err)
	}
	if err := storage.EnsureDataRoot(dataRoot); err != nil {
		return err
	}

	h := &host{l: l}
	defer h.recoverPanic()

	fa := fyneapp.NewWithID("io.tnet.dispatcher")
	w := fa.NewWindow(windowTitle)
	size := windowSize(cfg.Window)

	h.window = w
	h.surface = NewSurface(app.Init(cfg, dataRoot), size, h.stateChanged)
	w.SetContent(h.surface)
	w.Resize(size)
	w.Canvas().Focus(h.surface)

	w.SetCloseIntercept(func() {
		st := h.surface.State()
		sz := w.Canvas().Size()
		st.Config.Window = config.WindowConfig{Width: sz.Width, Height: sz.Height}
		if err := app.SaveOnExit(st); err != nil {
			l.Error("save on exit failed", slog.Any("err", err))
		}
		h.stopWatch()
		w.Close()
	})

	if project != "" {
		h.surface.Send(app.OpenRecent{Name: project})
	}
	telemetry.Event("ui_started", nil)
	w.ShowAndRun()
	return nil
}
