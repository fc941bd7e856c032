/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

// rowPadding matches the padding of flat buttons so directory rows line up
// with file rows.
var rowPadding = widget.Symmetric(6, 12)

func fileTreePanel(s State) Element {
	search := widget.NewTextInput[Message]("Search files...", s.Project.Search, func(v string) Message {
		return SearchQueryChanged{Text: v}
	}).OnCancel(SearchQueryChanged{})

	var list Element
	if s.Project.Search != "" {
		list = searchResults(s.Project)
	} else {
		list = fileRows(s.Project)
	}
	return panel("Files", widget.NewColumn[Message](
		text("File Tree").Size(20),
		muted("Project structure and files"),
		search,
		widget.NewScrollable[Message](list),
	).Spacing(8).Fill())
}

// fileRows lists the tree in scan order. Directories are labels, files are
// selectable rows.
func fileRows(w Workspace) Element {
	rows := widget.NewColumn[Message]().FillWidth()
	if len(w.Entries) == 0 {
		rows.Push(muted("No .json or .proc files yet"))
	}
	for _, e := range w.Entries {
		label := e.Prefix + e.Name
		if e.IsDir() {
			rows.Push(widget.NewContainer[Message](muted(label + "/")).Padding(rowPadding))
			continue
		}
		style := widget.StyleFlat
		if e.RelPath == w.Selected {
			style = widget.StyleSelected
		}
		rows.Push(button(label).Style(style).FillWidth().OnPress(FileSelected{Path: e.RelPath}))
	}
	return rows
}

func searchResults(w Workspace) Element {
	rows := widget.NewColumn[Message]().Spacing(2).FillWidth()
	if len(w.Results) == 0 {
		rows.Push(muted("No matches"))
	}
	for _, r := range w.Results {
		style := widget.StyleFlat
		if r.Path == w.Selected {
			style = widget.StyleSelected
		}
		rows.Push(button(r.Path).Style(style).FillWidth().OnPress(FileSelected{Path: r.Path}))
		if r.Snippet != "" {
			rows.Push(widget.NewContainer[Message](muted(r.Snippet).Size(12)).Padding(rowPadding))
		}
	}
	return rows
}
