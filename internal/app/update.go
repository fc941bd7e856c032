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
	"errors"
	"log/slog"
	"slices"

	"github.com/sahilm/fuzzy"

	"tnetdispatch/internal/domain"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/storage"
)

// Update applies m to s. It never performs IO itself; work that does is
// returned as a Cmd.
func Update(s State, m Message) (State, Cmd) {
	from := s.Screen
	s, cmd := update(s, m)
	if s.Screen != from {
		ctx := applog.WithScreen(context.Background(), s.Screen.String())
		applog.WithComponent("app").DebugContext(ctx, "screen changed", slog.String("from", from.String()))
	}
	return s, cmd
}

func update(s State, m Message) (State, Cmd) {
	switch m := m.(type) {
	case ContinueOnboarding:
		s.Screen = ScreenOnboarding2
		s.Config.General.FirstRun = false
		return s, saveConfigCmd(s.Config)
	case FinishOnboarding:
		s.Screen = ScreenNoProjectSelected
	case CreateNewProject:
		s.Screen = ScreenCreatingProject
		s.NewProject = NewProjectForm{}
	case OpenExistingProject:
		s.Screen = ScreenSelectingExistingProject
		s.Picker = PickerState{Open: true}
		return s, listProjectsCmd(s.DataRoot)
	case OpenRecent:
		return s, openProjectCmd(s.DataRoot, m.Name)

	case NewProjectNameChanged:
		s.NewProject.Name = m.Name
		s.NewProject.Err = nameError(m.Name)
	case ConfirmNewProject:
		if err := domain.ValidateProjectName(s.NewProject.Name); err != nil {
			s.NewProject.Err = err.Error()
			return s, nil
		}
		return s, createProjectCmd(s.DataRoot, s.NewProject.Name)
	case CancelNewProject:
		s.Screen = ScreenNoProjectSelected
		s.NewProject = NewProjectForm{}

	case ProjectsLoaded:
		s.Picker.Loaded = true
		s.Picker.Projects = m.Names
		if m.Err != nil {
			s.Status = m.Err.Error()
		}
	case PickerFilterChanged:
		s.Picker.Filter = m.Filter
		s.Picker.Open = true
		if !slices.Contains(FilterProjects(s.Picker.Projects, m.Filter), s.Picker.Highlighted) {
			s.Picker.Highlighted = ""
		}
	case PickerToggle:
		s.Picker.Open = !s.Picker.Open
	case PickerHighlight:
		s.Picker.Highlighted = m.Name
		s.Picker.Open = false
	case ConfirmSelectedProject:
		if s.Picker.Highlighted == "" {
			return s, nil
		}
		return s, openProjectCmd(s.DataRoot, s.Picker.Highlighted)
	case CancelProjectSelection:
		s.Screen = ScreenNoProjectSelected
		s.Picker = PickerState{}

	case ProjectOpened:
		return projectOpened(s, m)
	case FileSelected:
		return selectFile(s, m.Path)
	case PreviewLoaded:
		if s.Project.Open() && m.Preview.Path == s.Project.Selected {
			s.Project.Preview = m.Preview
		}
	case FilesChanged:
		if s.Project.Open() {
			return s, refreshTreeCmd(s.Project.Handle.Root)
		}
	case TreeRefreshed:
		return treeRefreshed(s, m)
	case SearchQueryChanged:
		if !s.Project.Open() {
			return s, nil
		}
		s.Project.Search = m.Text
		if m.Text == "" {
			s.Project.Results = nil
			return s, nil
		}
		return s, searchCmd(s.Project.Handle.Root, m.Text)
	case SearchResultsLoaded:
		if m.Query != s.Project.Search {
			return s, nil
		}
		s.Project.Results = m.Results
		if m.Err != nil {
			s.Status = m.Err.Error()
		}
	case CloseProject:
		s.syncLayout()
		s.Screen = ScreenNoProjectSelected
		s.Project = Workspace{}
		s.Layout.Dragging = false
		return s, saveConfigCmd(s.Config)

	case ResizeHorizontal:
		s.Layout.HorizontalRatio = storedRatio(m.Ratio, s.Layout.HorizontalRatio)
	case ResizeVertical:
		s.Layout.VerticalRatio = storedRatio(m.Ratio, s.Layout.VerticalRatio)
	case DragStatus:
		s.Layout.Dragging = m.Active

	case ConfigSaved:
		if m.Err != nil {
			s.Status = "config: " + m.Err.Error()
		}
	}
	return s, nil
}

// nameError is the inline message for a name being typed. An empty field
// shows no message; Create stays disabled.
func nameError(name string) string {
	if name == "" {
		return ""
	}
	if err := domain.ValidateProjectName(name); err != nil {
		return err.Error()
	}
	return ""
}

func projectOpened(s State, m ProjectOpened) (State, Cmd) {
	if m.Err != nil {
		switch {
		case m.Created:
			s.NewProject.Err = m.Err.Error()
		case errors.Is(m.Err, storage.ErrProjectNotFound):
			s.Status = m.Err.Error()
			s.Config.RemoveRecent(m.Name)
			return s, saveConfigCmd(s.Config)
		default:
			s.Status = m.Err.Error()
		}
		return s, nil
	}
	applog.WithComponent("app").Info("workspace ready", slog.String("project", m.Name), slog.Int("entries", len(m.Entries)))
	s.Screen = ScreenProjectSelected
	s.NewProject = NewProjectForm{}
	s.Picker = PickerState{}
	s.Project = Workspace{Handle: m.Handle, Entries: m.Entries, Stats: m.Stats}
	s.Status = ""
	s.Config.AddRecent(m.Name)
	return s, saveConfigCmd(s.Config)
}

func selectFile(s State, rel string) (State, Cmd) {
	if !s.Project.Open() {
		return s, nil
	}
	e, ok := s.Project.Entry(rel)
	if !ok || e.IsDir() {
		s.Status = "not a file: " + rel
		return s, nil
	}
	s.Project.Selected = rel
	s.Project.Preview = Preview{Path: rel}
	return s, loadPreviewCmd(s.Project.Handle.Root, e)
}

func treeRefreshed(s State, m TreeRefreshed) (State, Cmd) {
	if !s.Project.Open() {
		return s, nil
	}
	if m.Err != nil {
		s.Status = m.Err.Error()
		return s, nil
	}
	old, hadOld := s.Project.Entry(s.Project.Selected)
	s.Project.Entries = m.Entries
	s.Project.Stats = m.Stats
	if s.Project.Selected == "" {
		return s, nil
	}
	cur, ok := s.Project.Entry(s.Project.Selected)
	if !ok {
		s.Project.Selected = ""
		s.Project.Preview = Preview{}
		return s, nil
	}
	if hadOld && cur.ModTime.Equal(old.ModTime) && cur.Size == old.Size {
		return s, nil
	}
	return s, loadPreviewCmd(s.Project.Handle.Root, cur)
}

// FilterProjects returns the projects matching filter, best match first.
// An empty filter keeps every project in order.
func FilterProjects(projects []string, filter string) []string {
	if filter == "" {
		return projects
	}
	matches := fuzzy.Find(filter, projects)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}
