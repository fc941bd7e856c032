/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

const ScrollbarWidth float32 = 6

// Scrollable shows a vertically scrolled viewport onto a child of unbounded
// height. The offset is retained and clamped on every layout. Wheel deltas
// are in pixels; a positive Y scrolls towards the top.
type Scrollable[M any] struct {
	child Widget[M]
}

func NewScrollable[M any](child Widget[M]) *Scrollable[M] {
	return &Scrollable[M]{child: child}
}

func (s *Scrollable[M]) Stretch() (bool, bool) { return true, true }

func maxOffset(content, viewport float32) float32 { return max(0, content-viewport) }

func (s *Scrollable[M]) Layout(tree *Tree, limits Limits) Node {
	size := limits.Max
	child := s.child.Layout(tree.Children[0], Limits{
		Min: Size{Width: max(0, size.Width-ScrollbarWidth)},
		Max: Size{Width: max(0, size.Width-ScrollbarWidth), Height: Unbounded},
	})
	tree.Scroll.Offset = clamp(tree.Scroll.Offset, 0, maxOffset(child.Size().Height, size.Height))
	child.Move(Point{0, -tree.Scroll.Offset})
	return Node{Bounds: Rect{Width: size.Width, Height: size.Height}, Children: []Node{child}}
}

// visible hides the cursor from the content while it is outside the viewport.
func visible(c Cursor, viewport Rect) Cursor {
	if c.In(viewport) {
		return c
	}
	return Cursor{}
}

// thumb returns the scrollbar thumb, or false when everything fits.
func (s *Scrollable[M]) thumb(tree *Tree, layout Layout) (Rect, bool) {
	b := layout.Bounds()
	content := layout.Child(0).Bounds().Height
	if content <= b.Height || content <= 0 {
		return Rect{}, false
	}
	h := max(16, b.Height*b.Height/content)
	travel := b.Height - h
	y := b.Y + travel*tree.Scroll.Offset/maxOffset(content, b.Height)
	return Rect{X: b.X + b.Width - ScrollbarWidth, Y: y, Width: ScrollbarWidth, Height: h}, true
}

func (s *Scrollable[M]) Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor) {
	b := layout.Bounds()
	r.PushClip(b)
	s.child.Draw(tree.Children[0], r, layout.Child(0), visible(cursor, b))
	r.PopClip()
	if th, ok := s.thumb(tree, layout); ok {
		r.FillQuad(Rect{X: th.X, Y: b.Y, Width: ScrollbarWidth, Height: b.Height}, Surface)
		r.FillQuad(th, BorderColor)
	}
}

func (s *Scrollable[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	b := layout.Bounds()
	if s.child.OnEvent(tree.Children[0], ev, layout.Child(0), visible(cursor, b), shell) == Captured {
		return Captured
	}
	if ev.Kind == WheelScrolled && cursor.In(b) {
		limit := maxOffset(layout.Child(0).Bounds().Height, b.Height)
		if limit == 0 {
			return Ignored
		}
		tree.Scroll.Offset = clamp(tree.Scroll.Offset-ev.Delta.Y, 0, limit)
		return Captured
	}
	return Ignored
}

func (s *Scrollable[M]) Interaction(tree *Tree, layout Layout, cursor Cursor) Interaction {
	return s.child.Interaction(tree.Children[0], layout.Child(0), visible(cursor, layout.Bounds()))
}

func (s *Scrollable[M]) Diff(tree *Tree) {
	tree.Adopt(TagScroll)
	DiffChildren(tree, []Widget[M]{s.child})
}
