/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package app is the dispatcher application: a single State value, the
// messages that change it, the Update reducer and the View that renders the
// state into widgets. Side effects (disk, index, config) run as commands
// returned from Update and executed by the widget runtime.
package app

import (
	"tnetdispatch/internal/config"
	"tnetdispatch/internal/domain"
	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/widget"
)

// Screen selects the top-level screen.
type Screen uint8

const (
	ScreenOnboarding Screen = iota
	ScreenOnboarding2
	ScreenNoProjectSelected
	ScreenCreatingProject
	ScreenSelectingExistingProject
	ScreenProjectSelected
)

func (s Screen) String() string {
	switch s {
	case ScreenOnboarding:
		return "onboarding"
	case ScreenOnboarding2:
		return "onboarding2"
	case ScreenNoProjectSelected:
		return "dashboard"
	case ScreenCreatingProject:
		return "create_project"
	case ScreenSelectingExistingProject:
		return "select_project"
	case ScreenProjectSelected:
		return "workspace"
	}
	return "unknown"
}

// LayoutState holds the workspace split ratios. Dragging is set from the
// split widgets' drag status messages only.
type LayoutState struct {
	HorizontalRatio float32
	VerticalRatio   float32
	Dragging        bool
}

// NewProjectForm backs the create project dialog.
type NewProjectForm struct {
	Name string
	// Err is the inline message under the name field.
	Err string
}

// PickerState backs the select existing project dialog.
type PickerState struct {
	Filter      string
	Open        bool
	Loaded      bool
	Projects    []string
	Highlighted string
}

// Preview is the main view content for the selected file.
type Preview struct {
	Path  string
	Body  string
	Lines [][]widget.Span
	// JSONValid is nil for files that are not JSON.
	JSONValid *bool
	// Problems lists manifest schema violations for project.json.
	Problems []string
	Err      string
}

// Workspace is the state of an open project.
type Workspace struct {
	Handle   *storage.ProjectHandle
	Entries  []domain.FileEntry
	Stats    storage.IndexStats
	Selected string
	Preview  Preview
	Search   string
	Results  []storage.SearchResult
}

// Open reports whether a project is loaded.
func (w Workspace) Open() bool { return w.Handle != nil }

// Name returns the project name, or "" when no project is open.
func (w Workspace) Name() string {
	if w.Handle == nil {
		return ""
	}
	return w.Handle.Project.Name
}

// Entry looks up a tree entry by relative path.
func (w Workspace) Entry(rel string) (domain.FileEntry, bool) {
	for _, e := range w.Entries {
		if e.RelPath == rel {
			return e, true
		}
	}
	return domain.FileEntry{}, false
}

// State is everything the views render.
type State struct {
	Screen     Screen
	DataRoot   string
	Config     config.AppConfig
	Layout     LayoutState
	NewProject NewProjectForm
	Picker     PickerState
	Project    Workspace
	// Status is the last error or notice shown in the status bar.
	Status string
}

// Init derives the first state from the loaded config.
func Init(cfg config.AppConfig, dataRoot string) State {
	s := State{
		Screen:   ScreenNoProjectSelected,
		DataRoot: dataRoot,
		Config:   cfg,
		Layout: LayoutState{
			HorizontalRatio: storedRatio(cfg.Layout.HorizontalRatio, config.DefaultHorizontalRatio),
			VerticalRatio:   storedRatio(cfg.Layout.VerticalRatio, config.DefaultVerticalRatio),
		},
	}
	if cfg.General.FirstRun {
		s.Screen = ScreenOnboarding
	}
	return s
}

func validRatio(r float32) bool { return r > 0 && r < 1 }

// storedRatio keeps r inside the split band. Values that are not ratios at
// all fall back to def.
func storedRatio(r, def float32) float32 {
	if !validRatio(r) {
		return def
	}
	return widget.ClampRatio(r, widget.DefaultMinRatio, widget.DefaultMaxRatio)
}

// syncLayout copies the live ratios into the config so they persist.
func (s *State) syncLayout() {
	s.Config.Layout.HorizontalRatio = s.Layout.HorizontalRatio
	s.Config.Layout.VerticalRatio = s.Layout.VerticalRatio
}
