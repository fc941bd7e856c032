/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import "tnetdispatch/internal/widget"

// Program wires Update and View for the widget runtime.
func Program() widget.Program[State, Message] {
	return widget.Program[State, Message]{Update: Update, View: View}
}

// View renders the current screen above the status bar.
func View(s State) Element {
	var screen Element
	switch s.Screen {
	case ScreenOnboarding:
		screen = onboardingView()
	case ScreenOnboarding2:
		screen = onboarding2View()
	case ScreenCreatingProject:
		screen = createView(s)
	case ScreenSelectingExistingProject:
		screen = pickerView(s)
	case ScreenProjectSelected:
		screen = workspaceView(s)
	default:
		screen = dashboardView(s)
	}
	return widget.NewContainer[Message](
		widget.NewColumn[Message](screen, statusBar(s)).Fill(),
	).Background(widget.Background).Fill()
}

func text(s string) *widget.Text[Message] { return widget.NewText[Message](s) }

func muted(s string) *widget.Text[Message] { return text(s).Color(widget.MutedText) }

func button(label string) *widget.Button[Message] { return widget.NewButton[Message](label) }

func centered(e Element) Element { return widget.NewContainer[Message](e).Center() }

// dialog frames a form of fixed width.
func dialog(e Element, width float32) Element {
	return widget.NewContainer[Message](e).
		Width(width).
		Padding(widget.Uniform(20)).
		Background(widget.Surface).
		Border(widget.BorderColor, 1)
}

// fixedWidth gives a filling button a fixed width.
func fixedWidth(b *widget.Button[Message], width float32) Element {
	return widget.NewContainer[Message](b.FillWidth()).Width(width)
}

// buttonBar right-aligns the dialog buttons.
func buttonBar(buttons ...Element) Element {
	row := widget.NewRow[Message](widget.HFill[Message]()).Spacing(10).FillWidth()
	for _, b := range buttons {
		row.Push(b)
	}
	return row
}
