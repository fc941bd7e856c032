/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

func dashboardView(s State) Element {
	recent := widget.NewColumn[Message]().Spacing(4).Align(widget.AlignCenter)
	if len(s.Config.Recent) == 0 {
		recent.Push(muted("No recent projects"))
	}
	for _, name := range s.Config.Recent {
		recent.Push(fixedWidth(button(name).Style(widget.StyleFlat).OnPress(OpenRecent{Name: name}), 420))
	}
	return centered(widget.NewColumn[Message](
		text("Welcome to Tnet-Dispatcher").Size(36),
		muted("Select a project to begin working").Size(16),
		widget.NewRow[Message](
			fixedWidth(button("New Project").OnPress(CreateNewProject{}), 200),
			fixedWidth(button("Open Project").OnPress(OpenExistingProject{}), 200),
		).Spacing(20),
		text("Recent Projects").Size(20),
		recent,
	).Spacing(20).Align(widget.AlignCenter))
}
