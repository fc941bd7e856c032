/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonClick(t *testing.T) {
	h := mount(NewButton[testMsg]("Go").OnPress(testMsg{name: "go"}), Sz(200, 100))
	b := h.layout().Bounds()
	assert.Equal(t, float32(26), b.Height)
	assert.InDelta(t, 24+Advance("Go", DefaultTextSize), b.Width, 1e-3)

	_, st := h.press(5, 5)
	assert.Equal(t, Captured, st)
	assert.True(t, h.tree.Button.Pressed)
	msgs, _ := h.release(6, 6)
	assert.Equal(t, []testMsg{{name: "go"}}, msgs)
	assert.False(t, h.tree.Button.Pressed)
}

func TestButtonReleaseOutsideCancels(t *testing.T) {
	h := mount(NewButton[testMsg]("Go").OnPress(testMsg{name: "go"}), Sz(200, 100))
	h.press(5, 5)
	msgs, st := h.release(150, 90)
	assert.Empty(t, msgs)
	assert.Equal(t, Ignored, st)
	assert.False(t, h.tree.Button.Pressed)

	msgs, _ = h.release(5, 5)
	assert.Empty(t, msgs, "a release without a press is not a click")
}

func TestDisabledButton(t *testing.T) {
	h := mount(NewButton[testMsg]("Nope"), Sz(200, 100))
	_, st := h.press(5, 5)
	assert.Equal(t, Ignored, st)
	msgs, _ := h.release(5, 5)
	assert.Empty(t, msgs)
	assert.Equal(t, InteractionIdle, h.interaction(5, 5))
	assert.Equal(t, InteractionNone, h.interaction(150, 90))
}

func TestButtonInteractionAndFill(t *testing.T) {
	h := mount(NewButton[testMsg]("Row").OnPress(testMsg{}).Style(StyleFlat).FillWidth(), Sz(200, 100))
	assert.Equal(t, float32(200), h.layout().Bounds().Width)
	assert.Equal(t, InteractionPointer, h.interaction(100, 5))
	assert.Empty(t, h.draw().Fills(ButtonFill), "flat rows have no resting fill")
}

func TestButtonPressedFill(t *testing.T) {
	h := mount(NewButton[testMsg]("Go").OnPress(testMsg{name: "go"}), Sz(200, 100))
	h.press(10, 10)
	require.True(t, h.tree.Button.Pressed)

	var dl DisplayList
	h.w.Draw(h.tree, &dl, h.layout(), Cursor{Position: Pt(10, 10), Available: true})
	assert.NotEmpty(t, dl.Fills(ButtonActive))
	assert.Empty(t, dl.Fills(ButtonHover), "a held button is not drawn as hovered")
}

func changed(s string) testMsg { return testMsg{name: "change:" + s} }

func TestTextInputEditing(t *testing.T) {
	in := func(v string) Widget[testMsg] {
		return NewTextInput[testMsg]("Project name", v, changed).OnSubmit(testMsg{name: "submit"})
	}
	h := mount(in("ab"), Sz(300, 40))

	msgs, _ := h.send(Event{Kind: RuneTyped, Rune: 'x'})
	assert.Empty(t, msgs, "unfocused input ignores typing")

	_, st := h.press(2, 2)
	require.Equal(t, Captured, st)
	assert.True(t, h.tree.Input.Focused)
	assert.Equal(t, 0, h.tree.Input.Caret)

	msgs, _ = h.send(Event{Kind: RuneTyped, Rune: 'x'})
	assert.Equal(t, []testMsg{changed("xab")}, msgs)
	h.rebuild(in("xab"), Sz(300, 40))
	assert.Equal(t, 1, h.tree.Input.Caret)

	h.send(Event{Kind: KeyPressed, Key: KeyEnd})
	msgs, _ = h.send(Event{Kind: KeyPressed, Key: KeyBackspace})
	assert.Equal(t, []testMsg{changed("xa")}, msgs)
	h.rebuild(in("xa"), Sz(300, 40))

	h.send(Event{Kind: KeyPressed, Key: KeyHome})
	msgs, _ = h.send(Event{Kind: KeyPressed, Key: KeyDelete})
	assert.Equal(t, []testMsg{changed("a")}, msgs)

	msgs, _ = h.send(Event{Kind: RuneTyped, Rune: '\n'})
	assert.Empty(t, msgs, "control runes are dropped")

	msgs, _ = h.send(Event{Kind: KeyPressed, Key: KeyEnter})
	assert.Equal(t, []testMsg{{name: "submit"}}, msgs)

	h.press(250, 300)
	assert.False(t, h.tree.Input.Focused, "clicking elsewhere blurs")
}

func TestTextInputAutofocus(t *testing.T) {
	h := mount(NewTextInput[testMsg]("", "hello", changed).Focus(), Sz(300, 40))
	assert.True(t, h.tree.Input.Focused)
	assert.Equal(t, 5, h.tree.Input.Caret)

	h.send(Event{Kind: KeyPressed, Key: KeyEscape})
	h.rebuild(NewTextInput[testMsg]("", "hello", changed).Focus(), Sz(300, 40))
	assert.False(t, h.tree.Input.Focused, "autofocus only applies to a new node")
}

func TestTextInputEscapeCancels(t *testing.T) {
	in := NewTextInput[testMsg]("", "x", changed).Focus().OnCancel(testMsg{name: "cancel"})
	h := mount(in, Sz(300, 40))
	msgs, st := h.send(Event{Kind: KeyPressed, Key: KeyEscape})
	assert.Equal(t, Captured, st)
	assert.Equal(t, []testMsg{{name: "cancel"}}, msgs)
	assert.True(t, h.tree.Input.Focused, "the caller decides what cancel means")
}

func TestTextInputCaretFollowsClick(t *testing.T) {
	h := mount(NewTextInput[testMsg]("", "abcd", changed), Sz(300, 40))
	x := inputPadding.Left + Advance("ab", DefaultTextSize) + 1
	h.press(x, 10)
	assert.Equal(t, 2, h.tree.Input.Caret)
	assert.Equal(t, InteractionText, h.interaction(x, 10))
}

func tallColumn(n int) *Column[testMsg] {
	col := NewColumn[testMsg]()
	for i := 0; i < n; i++ {
		col.Push(NewSpace[testMsg](10, 50))
	}
	return col
}

func TestPushAppendsSeveralChildrenInOrder(t *testing.T) {
	col := NewColumn[testMsg](NewSpace[testMsg](10, 5))
	col.Push(NewSpace[testMsg](10, 20), NewSpace[testMsg](10, 30)).Push()
	assert.Equal(t, 3, col.Len())
	h := mount(col, Sz(200, 300))
	assert.Equal(t, float32(5), h.layout().Child(1).Bounds().Y)
	assert.Equal(t, float32(25), h.layout().Child(2).Bounds().Y)

	row := NewRow[testMsg]().Push(NewSpace[testMsg](40, 10), NewSpace[testMsg](60, 10))
	assert.Equal(t, 2, row.Len())
	hr := mount(row, Sz(200, 50))
	assert.Equal(t, float32(40), hr.layout().Child(1).Bounds().X)
}

func TestScrollableWheelAndClamp(t *testing.T) {
	h := mount(NewScrollable[testMsg](tallColumn(20)), Sz(200, 300))
	content := h.layout().Child(0).Bounds()
	assert.Equal(t, float32(1000), content.Height)
	assert.Equal(t, float32(200-ScrollbarWidth), content.Width)

	_, st := h.send(Event{Kind: WheelScrolled, Position: Pt(50, 50), Delta: Pt(0, -100)})
	assert.Equal(t, Captured, st)
	assert.Equal(t, float32(100), h.tree.Scroll.Offset)
	h.rebuild(NewScrollable[testMsg](tallColumn(20)), Sz(200, 300))
	assert.Equal(t, float32(-100), h.layout().Child(0).Bounds().Y)

	h.send(Event{Kind: WheelScrolled, Position: Pt(50, 50), Delta: Pt(0, -5000)})
	assert.Equal(t, float32(700), h.tree.Scroll.Offset)

	_, st = h.send(Event{Kind: WheelScrolled, Position: Pt(500, 50), Delta: Pt(0, 100)})
	assert.Equal(t, Ignored, st, "wheel outside the viewport")

	// content shrinks: the offset is clamped on the next layout
	h.rebuild(NewScrollable[testMsg](tallColumn(8)), Sz(200, 300))
	assert.Equal(t, float32(100), h.tree.Scroll.Offset)
}

func TestScrollableClipsAndDrawsThumb(t *testing.T) {
	h := mount(NewScrollable[testMsg](tallColumn(20)), Sz(200, 300))
	dl := h.draw()
	require.NotEmpty(t, dl.Ops)
	assert.Equal(t, OpPushClip, dl.Ops[0].Kind)
	assert.Equal(t, R(0, 0, 200, 300), dl.Ops[0].Rect)
	thumbs := dl.Fills(BorderColor)
	require.Len(t, thumbs, 1)
	assert.Equal(t, float32(90), thumbs[0].Height)

	h = mount(NewScrollable[testMsg](tallColumn(2)), Sz(200, 300))
	assert.Empty(t, h.draw().Fills(BorderColor), "no scrollbar when the content fits")
}

func TestScrollableHidesCursorOutsideViewport(t *testing.T) {
	view := func() Widget[testMsg] {
		return NewScrollable[testMsg](NewColumn[testMsg](
			NewSpace[testMsg](10, 400),
			NewButton[testMsg]("hidden").OnPress(testMsg{name: "hidden"}),
		))
	}
	h := mount(view(), Sz(200, 300))

	// the button is laid out at y=400, below the viewport
	_, st := h.press(5, 405)
	assert.Equal(t, Ignored, st)
	assert.Equal(t, InteractionNone, h.interaction(5, 405))

	h.send(Event{Kind: WheelScrolled, Position: Pt(5, 5), Delta: Pt(0, -1000)})
	assert.Equal(t, float32(126), h.tree.Scroll.Offset)
	h.rebuild(view(), Sz(200, 300))

	_, st = h.press(5, 280)
	assert.Equal(t, Captured, st)
	msgs, _ := h.release(5, 280)
	assert.Equal(t, []testMsg{{name: "hidden"}}, msgs)
}

func TestRowStretchesFillers(t *testing.T) {
	row := NewRow[testMsg](NewSpace[testMsg](100, 20), Fill[testMsg](), NewSpace[testMsg](50, 10)).Spacing(10)
	h := mount(row, Sz(500, 40))
	l := h.layout()
	assert.Equal(t, R(0, 0, 500, 40), l.Bounds())
	assert.Equal(t, R(0, 0, 100, 20), l.Child(0).Bounds())
	assert.Equal(t, R(110, 0, 330, 40), l.Child(1).Bounds())
	assert.Equal(t, R(450, 0, 50, 10), l.Child(2).Bounds())
}

func TestHFillOnlyStretchesWidth(t *testing.T) {
	row := NewRow[testMsg](HFill[testMsg](), NewSpace[testMsg](50, 10))
	w, hgt := row.Stretch()
	assert.True(t, w)
	assert.False(t, hgt, "a Row holding an HFill must not claim height")
	h := mount(row, Sz(500, 40))
	assert.Equal(t, R(450, 0, 50, 10), h.layout().Child(1).Bounds())
	assert.Equal(t, float32(10), h.layout().Bounds().Height)
}

func TestColumnAlignmentAndPadding(t *testing.T) {
	col := NewColumn[testMsg](NewSpace[testMsg](100, 20), NewSpace[testMsg](50, 20)).
		Align(AlignCenter).
		FillWidth().
		Spacing(4).
		Padding(Uniform(10))
	h := mount(col, Sz(300, 200))
	l := h.layout()
	assert.Equal(t, R(0, 0, 300, 64), l.Bounds())
	assert.Equal(t, R(100, 10, 100, 20), l.Child(0).Bounds())
	assert.Equal(t, R(125, 34, 50, 20), l.Child(1).Bounds())
}

func TestColumnInUnboundedHeightDoesNotStretch(t *testing.T) {
	col := NewColumn[testMsg](NewSpace[testMsg](10, 30), Fill[testMsg]())
	tree := &Tree{}
	col.Diff(tree)
	n := col.Layout(tree, Limits{Max: Sz(100, Unbounded)})
	assert.Equal(t, float32(30), n.Size().Height)
}

func TestContainerCenterAndPadding(t *testing.T) {
	h := mount(NewContainer[testMsg](NewSpace[testMsg](100, 50)).Center(), Sz(400, 300))
	assert.Equal(t, R(0, 0, 400, 300), h.layout().Bounds())
	assert.Equal(t, R(150, 125, 100, 50), h.layout().Child(0).Bounds())

	h = mount(NewContainer[testMsg](NewSpace[testMsg](10, 10)).Padding(Uniform(5)).Background(Surface).Border(BorderColor, 1), Sz(400, 300))
	assert.Equal(t, R(0, 0, 20, 20), h.layout().Bounds())
	assert.Equal(t, R(5, 5, 10, 10), h.layout().Child(0).Bounds())
	dl := h.draw()
	require.Len(t, dl.Ops, 2)
	assert.Equal(t, OpFill, dl.Ops[0].Kind)
	assert.Equal(t, OpStroke, dl.Ops[1].Kind)
}

func TestDiffChildrenResizesAndResets(t *testing.T) {
	tree := &Tree{}
	NewColumn[testMsg](NewSpace[testMsg](1, 1), NewButton[testMsg]("a")).Diff(tree)
	require.Len(t, tree.Children, 2)
	tree.Children[1].Button.Pressed = true

	NewColumn[testMsg](NewSpace[testMsg](1, 1), NewButton[testMsg]("b").OnPress(testMsg{}), NewSpace[testMsg](1, 1)).Diff(tree)
	require.Len(t, tree.Children, 3)
	assert.True(t, tree.Children[1].Button.Pressed, "same kind at the same position keeps state")

	NewColumn[testMsg](NewButton[testMsg]("c")).Diff(tree)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, TagButton, tree.Children[0].Tag)
	assert.False(t, tree.Children[0].Button.Pressed)

	NewRow[testMsg]().Diff(tree)
	assert.Equal(t, TagRow, tree.Tag)
	assert.Empty(t, tree.Children)
}

func TestTextWrapAndMeasure(t *testing.T) {
	lines := WrapText("alpha beta gamma", DefaultTextSize, Advance("alpha beta", DefaultTextSize))
	assert.Equal(t, []string{"alpha beta", "gamma"}, lines)
	assert.Equal(t, []string{"one", "two"}, WrapText("one\ntwo", DefaultTextSize, 0))

	s := MeasureText("ab\nabcd", 13)
	assert.Equal(t, float32(28), s.Width)
	assert.Equal(t, float32(26), s.Height)
}

func TestDisplayListReplay(t *testing.T) {
	var src, dst DisplayList
	src.PushClip(R(0, 0, 10, 10))
	src.FillQuad(R(1, 1, 2, 2), Accent)
	src.StrokeQuad(R(0, 0, 5, 5), 2, BorderColor)
	src.FillText("hi", Pt(3, 4), 13, TextColor)
	src.PopClip()
	src.Replay(&dst)
	assert.Equal(t, src.Ops, dst.Ops)
	src.Reset()
	assert.Empty(t, src.Ops)
}

func TestCodeSpans(t *testing.T) {
	lines := [][]Span{
		{{Text: "{", Color: TextColor}},
		{{Text: "  ", Color: TextColor}, {Text: `"id"`, Color: Accent}, {Text: ": 1", Color: TextColor}},
		{{Text: "}", Color: TextColor}},
	}
	h := mount(NewCode[testMsg](lines).Size(13), Sz(500, 500))
	b := h.layout().Bounds()
	assert.Equal(t, Advance(`  "id": 1`, 13), b.Width)
	assert.Equal(t, 3*LineHeight(13), b.Height)

	dl := h.draw()
	assert.Equal(t, []string{"{", "  ", `"id"`, ": 1", "}"}, dl.Texts())
	for _, op := range dl.Ops {
		if op.Text == `"id"` {
			assert.Equal(t, Advance("  ", 13), op.Rect.X)
			assert.Equal(t, LineHeight(13), op.Rect.Y)
			assert.Equal(t, Accent, op.Color)
		}
	}
	assert.Equal(t, InteractionNone, h.interaction(1, 1))
}
