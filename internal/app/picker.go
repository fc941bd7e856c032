/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

const (
	pickerRowHeight float32 = 40
	pickerListMax   float32 = 200
)

func pickerView(s State) Element {
	p := s.Picker
	toggle := "▼"
	if p.Open {
		toggle = "▲"
	}
	filter := widget.NewTextInput[Message]("Select a project...", p.Filter, func(v string) Message {
		return PickerFilterChanged{Filter: v}
	}).Focus().OnSubmit(ConfirmSelectedProject{}).OnCancel(CancelProjectSelection{})

	form := widget.NewColumn[Message](
		text("Select Existing Project").Size(24),
		text("Choose a project from the list:"),
		widget.NewRow[Message](filter, button(toggle).OnPress(PickerToggle{})).Spacing(4).FillWidth(),
	).Spacing(12).FillWidth()
	switch {
	case p.Loaded && len(p.Projects) == 0:
		form.Push(muted("No existing projects found. Create a new project first.").Wrap())
	case p.Open:
		form.Push(pickerList(p))
	case p.Highlighted != "":
		form.Push(text("Selected: " + p.Highlighted))
	}
	open := button("Open")
	if p.Highlighted != "" {
		open.OnPress(ConfirmSelectedProject{})
	}
	form.Push(buttonBar(button("Cancel").OnPress(CancelProjectSelection{}), open))
	return centered(dialog(form, dialogWidth))
}

func pickerList(p PickerState) Element {
	matches := FilterProjects(p.Projects, p.Filter)
	if len(matches) == 0 {
		return muted("No matching projects")
	}
	rows := widget.NewColumn[Message]().FillWidth()
	for _, name := range matches {
		style := widget.StyleFlat
		if name == p.Highlighted {
			style = widget.StyleSelected
		}
		row := button(name).Style(style).FillWidth().OnPress(PickerHighlight{Name: name})
		rows.Push(widget.NewContainer[Message](row).Height(pickerRowHeight).FillWidth())
	}
	height := min(float32(len(matches))*pickerRowHeight, pickerListMax)
	return widget.NewContainer[Message](widget.NewScrollable[Message](rows)).
		Height(height).
		FillWidth().
		Border(widget.BorderColor, 1)
}
