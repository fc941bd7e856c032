/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "unicode"

var inputPadding = Symmetric(6, 8)

// TextInput is a controlled single-line editor: it never stores the text
// itself. Every edit publishes onChange with the new value and the caller
// rebuilds the input with it. Focus and caret live in the retained node.
type TextInput[M any] struct {
	value       []rune
	placeholder string
	onChange    func(string) M
	onSubmit    *M
	onCancel    *M
	autofocus   bool
	size        float32
	width       float32
}

func NewTextInput[M any](placeholder, value string, onChange func(string) M) *TextInput[M] {
	return &TextInput[M]{value: []rune(value), placeholder: placeholder, onChange: onChange, size: DefaultTextSize}
}

// OnSubmit publishes m when Enter is pressed while focused.
func (t *TextInput[M]) OnSubmit(m M) *TextInput[M] { t.onSubmit = &m; return t }

// OnCancel publishes m when Escape is pressed while focused. Without it
// Escape only drops the focus.
func (t *TextInput[M]) OnCancel(m M) *TextInput[M] { t.onCancel = &m; return t }

// Focus focuses the input when its node is first created.
func (t *TextInput[M]) Focus() *TextInput[M] { t.autofocus = true; return t }

// Width fixes the width; otherwise the input fills the offered width.
func (t *TextInput[M]) Width(w float32) *TextInput[M] { t.width = w; return t }

func (t *TextInput[M]) Stretch() (bool, bool) { return t.width == 0, false }

func (t *TextInput[M]) Layout(tree *Tree, limits Limits) Node {
	tree.Input.Caret = clampCaret(tree.Input.Caret, len(t.value))
	w := limits.Max.Width
	if t.width > 0 {
		w = t.width
	}
	return NewNode(limits.Resolve(Size{w, LineHeight(t.size) + inputPadding.Vertical()}))
}

func clampCaret(c, n int) int {
	return max(0, min(c, n))
}

// caretAt maps an x coordinate to the nearest caret index.
func (t *TextInput[M]) caretAt(x float32) int {
	for i := range t.value {
		left := Advance(string(t.value[:i]), t.size)
		right := Advance(string(t.value[:i+1]), t.size)
		if x < (left+right)/2 {
			return i
		}
	}
	return len(t.value)
}

func (t *TextInput[M]) Draw(tree *Tree, r Renderer, layout Layout, _ Cursor) {
	b := layout.Bounds()
	r.FillQuad(b, Background)
	border := BorderColor
	if tree.Input.Focused {
		border = Accent
	}
	r.StrokeQuad(b, 1, border)
	inner := b.Inset(inputPadding)
	r.PushClip(inner)
	if len(t.value) == 0 {
		r.FillText(t.placeholder, inner.Min(), t.size, MutedText)
	} else {
		r.FillText(string(t.value), inner.Min(), t.size, TextColor)
	}
	if tree.Input.Focused {
		caret := clampCaret(tree.Input.Caret, len(t.value))
		x := inner.X + Advance(string(t.value[:caret]), t.size)
		r.FillQuad(Rect{X: x, Y: inner.Y, Width: 1, Height: LineHeight(t.size)}, TextColor)
	}
	r.PopClip()
}

func (t *TextInput[M]) publish(shell *Shell[M], v []rune) {
	if t.onChange != nil {
		shell.Publish(t.onChange(string(v)))
	}
}

func (t *TextInput[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	st := &tree.Input
	st.Caret = clampCaret(st.Caret, len(t.value))
	switch ev.Kind {
	case ButtonPressed:
		b := layout.Bounds()
		if ev.Button == ButtonLeft && cursor.In(b) {
			st.Focused = true
			st.Caret = t.caretAt(cursor.Position.X - b.X - inputPadding.Left)
			return Captured
		}
		st.Focused = false
		return Ignored
	case RuneTyped:
		if !st.Focused || unicode.IsControl(ev.Rune) {
			return Ignored
		}
		v := make([]rune, 0, len(t.value)+1)
		v = append(append(append(v, t.value[:st.Caret]...), ev.Rune), t.value[st.Caret:]...)
		st.Caret++
		t.publish(shell, v)
		return Captured
	case KeyPressed:
		if !st.Focused {
			return Ignored
		}
		return t.key(st, ev.Key, shell)
	}
	return Ignored
}

func (t *TextInput[M]) key(st *InputState, k Key, shell *Shell[M]) Status {
	switch k {
	case KeyBackspace:
		if st.Caret > 0 {
			v := append(append([]rune{}, t.value[:st.Caret-1]...), t.value[st.Caret:]...)
			st.Caret--
			t.publish(shell, v)
		}
	case KeyDelete:
		if st.Caret < len(t.value) {
			v := append(append([]rune{}, t.value[:st.Caret]...), t.value[st.Caret+1:]...)
			t.publish(shell, v)
		}
	case KeyLeft:
		st.Caret = clampCaret(st.Caret-1, len(t.value))
	case KeyRight:
		st.Caret = clampCaret(st.Caret+1, len(t.value))
	case KeyHome:
		st.Caret = 0
	case KeyEnd:
		st.Caret = len(t.value)
	case KeyEnter:
		if t.onSubmit == nil {
			return Ignored
		}
		shell.Publish(*t.onSubmit)
	case KeyEscape:
		if t.onCancel != nil {
			shell.Publish(*t.onCancel)
			break
		}
		st.Focused = false
	default:
		return Ignored
	}
	return Captured
}

func (t *TextInput[M]) Interaction(_ *Tree, layout Layout, cursor Cursor) Interaction {
	if cursor.In(layout.Bounds()) {
		return InteractionText
	}
	return InteractionNone
}

func (t *TextInput[M]) Diff(tree *Tree) {
	if tree.Adopt(TagInput) && t.autofocus {
		tree.Input.Focused = true
		tree.Input.Caret = len(t.value)
	}
	tree.Children = nil
}
