/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "image/color"

// ButtonStyle selects how a Button is painted.
type ButtonStyle uint8

const (
	// StylePrimary is a filled button with a centered label.
	StylePrimary ButtonStyle = iota
	// StyleFlat has no fill until hovered and a left aligned label; used for list rows.
	StyleFlat
	// StyleSelected is a flat row that is currently selected.
	StyleSelected
)

var buttonPadding = Symmetric(6, 12)

// Button publishes its message when clicked: a left press and release both
// inside its bounds. A button without a message is disabled.
type Button[M any] struct {
	label   string
	msg     M
	enabled bool
	style   ButtonStyle
	fillW   bool
	size    float32
}

func NewButton[M any](label string) *Button[M] {
	return &Button[M]{label: label, size: DefaultTextSize}
}

// OnPress enables the button with the message to publish.
func (b *Button[M]) OnPress(m M) *Button[M] {
	b.msg = m
	b.enabled = true
	return b
}

func (b *Button[M]) Style(s ButtonStyle) *Button[M] { b.style = s; return b }

func (b *Button[M]) FillWidth() *Button[M] { b.fillW = true; return b }

func (b *Button[M]) Stretch() (bool, bool) { return b.fillW, false }

// Enabled reports whether the button has a message to publish.
func (b *Button[M]) Enabled() bool { return b.enabled }

func (b *Button[M]) Layout(_ *Tree, limits Limits) Node {
	ts := MeasureText(b.label, b.size)
	s := Size{ts.Width + buttonPadding.Horizontal(), ts.Height + buttonPadding.Vertical()}
	if b.fillW {
		s.Width = limits.Max.Width
	}
	return NewNode(limits.Resolve(s))
}

func (b *Button[M]) fill(tree *Tree, hovered bool) (color.NRGBA, bool) {
	switch {
	case b.style == StyleSelected:
		return Selection, true
	case !b.enabled:
		if b.style == StylePrimary {
			return ButtonDisabled, true
		}
		return color.NRGBA{}, false
	case tree.Button.Pressed && hovered:
		return ButtonActive, true
	case hovered:
		return ButtonHover, true
	case b.style == StylePrimary:
		return ButtonFill, true
	}
	return color.NRGBA{}, false
}

func (b *Button[M]) Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor) {
	bounds := layout.Bounds()
	if c, ok := b.fill(tree, cursor.In(bounds)); ok {
		r.FillQuad(bounds, c)
	}
	fg := TextColor
	if !b.enabled {
		fg = MutedText
	}
	ts := MeasureText(b.label, b.size)
	p := Point{bounds.X + buttonPadding.Left, bounds.Y + (bounds.Height-ts.Height)/2}
	if b.style == StylePrimary {
		p.X = bounds.X + (bounds.Width-ts.Width)/2
	}
	r.PushClip(bounds)
	r.FillText(b.label, p, b.size, fg)
	r.PopClip()
}

func (b *Button[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	if !b.enabled || ev.Button != ButtonLeft {
		return Ignored
	}
	inside := cursor.In(layout.Bounds())
	switch ev.Kind {
	case ButtonPressed:
		if inside {
			tree.Button.Pressed = true
			return Captured
		}
	case ButtonReleased:
		if tree.Button.Pressed {
			tree.Button.Pressed = false
			if inside {
				shell.Publish(b.msg)
				return Captured
			}
		}
	}
	return Ignored
}

func (b *Button[M]) Interaction(_ *Tree, layout Layout, cursor Cursor) Interaction {
	if !cursor.In(layout.Bounds()) {
		return InteractionNone
	}
	if b.enabled {
		return InteractionPointer
	}
	return InteractionIdle
}

func (b *Button[M]) Diff(tree *Tree) {
	if tree.Adopt(TagButton) {
		return
	}
	if !b.enabled {
		tree.Button = ButtonState{}
	}
	tree.Children = nil
}
