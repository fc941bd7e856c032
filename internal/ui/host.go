//go:build fyne

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"log/slog"
	"os"
	"runtime/debug"

	"fyne.io/fyne/v2"

	"tnetdispatch/internal/app"
	"tnetdispatch/internal/config"
	"tnetdispatch/internal/crash"
	"tnetdispatch/internal/storage"
)

const (
	windowTitle = "Tnet-Dispatcher"
	minWindowW  = 800
	minWindowH  = 600
)

func windowSize(c config.WindowConfig) fyne.Size {
	w, h := c.Width, c.Height
	if w < minWindowW {
		w = 1200
	}
	if h < minWindowH {
		h = 800
	}
	return fyne.NewSize(w, h)
}

// host follows the application state to keep the window title, the file
// watcher and the crash handle in step with the open project.
type host struct {
	l       *slog.Logger
	window  fyne.Window
	surface *Surface
	handle  *storage.ProjectHandle
	watcher *storage.Watcher
	root    string
}

func (h *host) stateChanged(st app.State) {
	h.handle = st.Project.Handle
	root := ""
	title := windowTitle
	if st.Project.Open() {
		root = st.Project.Handle.Root
		title = windowTitle + " - " + st.Project.Name()
	}
	if h.window != nil {
		h.window.SetTitle(title)
	}
	if root == h.root {
		return
	}
	h.stopWatch()
	h.root = root
	if root == "" {
		return
	}
	wt, err := storage.Watch(root, storage.DefaultWatchDebounce)
	if err != nil {
		h.l.Warn("file watch unavailable", slog.String("root", root), slog.Any("err", err))
		return
	}
	h.watcher = wt
	go func(changes <-chan struct{}, done <-chan struct{}) {
		for {
			select {
			case <-done:
				return
			case <-changes:
				fyne.Do(func() { h.surface.Send(app.FilesChanged{}) })
			}
		}
	}(wt.Changes(), wt.Done())
}

func (h *host) stopWatch() {
	if h.watcher == nil {
		return
	}
	if err := h.watcher.Close(); err != nil {
		h.l.Warn("close file watch failed", slog.Any("err", err))
	}
	h.watcher = nil
}

// recoverPanic reports a panic from the UI goroutine with the open project.
func (h *host) recoverPanic() {
	if r := recover(); r != nil {
		crash.Report(h.handle, r, debug.Stack())
		os.Exit(2)
	}
}
