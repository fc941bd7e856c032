/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"tnetdispatch/internal/domain"
	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/widget"
)

// Message is anything Update reacts to.
type Message interface{ isMessage() }

// Cmd is deferred work whose result message is fed back to Update.
type Cmd = widget.Cmd[Message]

// Element is a widget publishing app messages.
type Element = widget.Widget[Message]

// Onboarding.
type (
	ContinueOnboarding struct{}
	FinishOnboarding   struct{}
)

// Dashboard.
type (
	CreateNewProject    struct{}
	OpenExistingProject struct{}
	OpenRecent          struct{ Name string }
)

// Create project dialog.
type (
	NewProjectNameChanged struct{ Name string }
	ConfirmNewProject     struct{}
	CancelNewProject      struct{}
)

// Project picker.
type (
	PickerFilterChanged    struct{ Filter string }
	PickerToggle           struct{}
	PickerHighlight        struct{ Name string }
	ConfirmSelectedProject struct{}
	CancelProjectSelection struct{}
)

// Workspace.
type (
	FileSelected       struct{ Path string }
	SearchQueryChanged struct{ Text string }
	CloseProject       struct{}
)

// FilesChanged is sent by the host when the project watcher fires.
type FilesChanged struct{}

// Split widgets. Ratios arrive clamped by the widget.
type (
	ResizeHorizontal struct{ Ratio float32 }
	ResizeVertical   struct{ Ratio float32 }
	DragStatus       struct{ Active bool }
)

// Command results.
type (
	ProjectsLoaded struct {
		Names []string
		Err   error
	}
	ProjectOpened struct {
		// Name is the project that was requested; Handle may carry a
		// different manifest name.
		Name    string
		Handle  *storage.ProjectHandle
		Entries []domain.FileEntry
		Stats   storage.IndexStats
		Created bool
		Err     error
	}
	PreviewLoaded struct {
		Preview Preview
	}
	TreeRefreshed struct {
		Entries []domain.FileEntry
		Stats   storage.IndexStats
		Err     error
	}
	SearchResultsLoaded struct {
		Query   string
		Results []storage.SearchResult
		Err     error
	}
	ConfigSaved struct{ Err error }
)

func (ContinueOnboarding) isMessage() {}
func (FinishOnboarding) isMessage() {}
func (CreateNewProject) isMessage() {}
func (OpenExistingProject) isMessage() {}
func (OpenRecent) isMessage() {}
func (NewProjectNameChanged) isMessage() {}
func (ConfirmNewProject) isMessage() {}
func (CancelNewProject) isMessage() {}
func (PickerFilterChanged) isMessage() {}
func (PickerToggle) isMessage() {}
func (PickerHighlight) isMessage() {}
func (ConfirmSelectedProject) isMessage() {}
func (CancelProjectSelection) isMessage() {}
func (FileSelected) isMessage() {}
func (SearchQueryChanged) isMessage() {}
func (FilesChanged) isMessage() {}
func (CloseProject) isMessage() {}
func (ResizeHorizontal) isMessage() {}
func (ResizeVertical) isMessage() {}
func (DragStatus) isMessage() {}
func (ProjectsLoaded) isMessage() {}
func (ProjectOpened) isMessage() {}
func (PreviewLoaded) isMessage() {}
func (TreeRefreshed) isMessage() {}
func (SearchResultsLoaded) isMessage() {}
func (ConfigSaved) isMessage() {}
