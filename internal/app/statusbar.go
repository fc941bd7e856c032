/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

const statusTextSize = 12

func statusBar(s State) Element {
	row := widget.NewRow[Message]().
		Spacing(12).
		Padding(widget.Symmetric(4, 10)).
		Align(widget.AlignCenter).
		FillWidth()
	if name := s.Project.Name(); name != "" {
		row.Push(text(name).Size(statusTextSize))
	} else {
		row.Push(muted(s.Screen.String()).Size(statusTextSize))
	}
	if s.Layout.Dragging {
		row.Push(text("Resizing").Size(statusTextSize).Color(widget.Accent))
	}
	if s.Status != "" {
		row.Push(text(s.Status).Size(statusTextSize).Color(widget.ErrorText))
	}
	row.Push(widget.HFill[Message]())
	if s.Project.Open() {
		row.Push(button("Close project").OnPress(CloseProject{}))
	}
	return widget.NewContainer[Message](row).Background(widget.SurfaceRaised).FillWidth()
}
