/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

const dialogWidth = 400

func createView(s State) Element {
	f := s.NewProject
	name := widget.NewTextInput[Message]("My Project", f.Name, func(v string) Message {
		return NewProjectNameChanged{Name: v}
	}).Focus().OnSubmit(ConfirmNewProject{}).OnCancel(CancelNewProject{})

	form := widget.NewColumn[Message](
		text("Create New Project").Size(24),
		text("Enter a name for your new project:"),
		name,
	).Spacing(12).FillWidth()
	if f.Err != "" {
		form.Push(text(f.Err).Color(widget.ErrorText).Wrap())
	}
	create := button("Create")
	if f.Name != "" && f.Err == "" {
		create.OnPress(ConfirmNewProject{})
	}
	form.Push(buttonBar(button("Cancel").OnPress(CancelNewProject{}), create))
	return centered(dialog(form, dialogWidth))
}
