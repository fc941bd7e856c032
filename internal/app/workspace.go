/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

// Pixel minimums for the workspace panes.
const (
	minMainWidth       = 160
	minFileTreeWidth   = 96
	minPanesHeight     = 120
	minInspectorHeight = 80
)

// workspaceView places [main | file tree] above the inspector. Dragging the
// outer divider resizes the upper pair as a unit.
func workspaceView(s State) Element {
	inner := widget.VSplit[Message](mainPanel(s), fileTreePanel(s), s.Layout.HorizontalRatio, func(r float32) Message {
		return ResizeHorizontal{Ratio: r}
	}).MinSize(minMainWidth, minFileTreeWidth).OnDrag(dragStatus)

	outer := widget.HSplit[Message](inner, inspectorPanel(s), s.Layout.VerticalRatio, func(r float32) Message {
		return ResizeVertical{Ratio: r}
	}).MinSize(minPanesHeight, minInspectorHeight).OnDrag(dragStatus)

	return widget.NewContainer[Message](outer).
		Padding(widget.Uniform(8)).
		Background(widget.Background).
		Fill()
}

func dragStatus(active bool) Message { return DragStatus{Active: active} }

// panel frames body under a titled header bar.
func panel(title string, body Element) Element {
	header := widget.NewContainer[Message](text(title).Size(16)).
		Padding(widget.Symmetric(6, 10)).
		Background(widget.SurfaceRaised).
		FillWidth()
	content := widget.NewContainer[Message](body).Padding(widget.Uniform(10)).Fill()
	return widget.NewContainer[Message](widget.NewColumn[Message](header, content).Fill()).
		Background(widget.Surface).
		Border(widget.BorderColor, 1).
		Fill()
}

func mainPanel(s State) Element {
	w := s.Project
	var body Element
	switch {
	case w.Selected == "":
		body = muted("Select a file in the file tree to preview it.").Wrap()
	case w.Preview.Err != "":
		body = text(w.Preview.Err).Color(widget.ErrorText).Wrap()
	case w.Preview.Lines == nil:
		body = muted("Loading " + w.Selected + "...")
	default:
		body = widget.NewScrollable[Message](widget.NewCode[Message](w.Preview.Lines).Size(13))
	}
	return panel("Main View", body)
}
