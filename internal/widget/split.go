/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "math"

const (
	// DividerThickness is the size of the divider across the split axis. The
	// same rectangle is used for drawing, drag capture and the resize cursor.
	DividerThickness float32 = 5

	DefaultMinRatio float32 = 0.2
	DefaultMaxRatio float32 = 0.9

	// DefaultMinSize is the default minimum extent of either pane.
	DefaultMinSize float32 = 50
)

// Axis is the direction along which a Split partitions its space.
type Axis uint8

const (
	// Horizontal stacks the children top/bottom; the ratio splits the height.
	Horizontal Axis = iota
	// Vertical places the children left/right; the ratio splits the width.
	Vertical
)

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// main returns the component of s along the split axis.
func (a Axis) main(s Size) float32 {
	if a == Vertical {
		return s.Width
	}
	return s.Height
}

func (a Axis) cross(s Size) float32 {
	if a == Vertical {
		return s.Height
	}
	return s.Width
}

func (a Axis) coord(p Point) float32 {
	if a == Vertical {
		return p.X
	}
	return p.Y
}

// size builds a Size from a main-axis and a cross-axis extent.
func (a Axis) size(main, cross float32) Size {
	if a == Vertical {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

func (a Axis) point(main float32) Point {
	if a == Vertical {
		return Point{X: main}
	}
	return Point{Y: main}
}

// ClampRatio limits r to [lo, hi]. NaN maps to lo.
func ClampRatio(r, lo, hi float32) float32 {
	if r != r {
		return lo
	}
	return clamp(r, lo, hi)
}

// Split shows two children separated by a draggable divider. The ratio is
// owned by the caller: dragging publishes onResize with the new ratio and the
// caller is expected to rebuild the Split with it.
type Split[M any] struct {
	first, second       Widget[M]
	axis                Axis
	ratio               float32
	minFirst, minSecond float32
	lo, hi              float32
	onResize            func(float32) M
	onDrag              func(bool) M
}

// NewSplit returns a split along axis with default bounds and minimum sizes.
func NewSplit[M any](axis Axis, first, second Widget[M], ratio float32, onResize func(float32) M) *Split[M] {
	return &Split[M]{
		first:     first,
		second:    second,
		axis:      axis,
		ratio:     ratio,
		minFirst:  DefaultMinSize,
		minSecond: DefaultMinSize,
		lo:        DefaultMinRatio,
		hi:        DefaultMaxRatio,
		onResize:  onResize,
	}
}

// HSplit stacks top over bottom.
func HSplit[M any](top, bottom Widget[M], ratio float32, onResize func(float32) M) *Split[M] {
	return NewSplit(Horizontal, top, bottom, ratio, onResize)
}

// VSplit places left beside right.
func VSplit[M any](left, right Widget[M], ratio float32, onResize func(float32) M) *Split[M] {
	return NewSplit(Vertical, left, right, ratio, onResize)
}

// MinSize sets the minimum extent of each pane along the split axis.
func (s *Split[M]) MinSize(first, second float32) *Split[M] {
	s.minFirst, s.minSecond = max(0, first), max(0, second)
	return s
}

// WithBounds replaces the ratio band. An inverted or out of range band is ignored.
func (s *Split[M]) WithBounds(lo, hi float32) *Split[M] {
	if lo >= 0 && hi <= 1 && lo <= hi {
		s.lo, s.hi = lo, hi
	}
	return s
}

// OnDrag reports drag start (true) and end (false).
func (s *Split[M]) OnDrag(f func(active bool) M) *Split[M] {
	s.onDrag = f
	return s
}

func (s *Split[M]) Stretch() (bool, bool) { return true, true }

// RatioBounds returns the band the ratio is clamped to for a container of the
// given extent. When the container can hold both minimum sizes the band is
// narrowed so neither pane shrinks below its minimum.
func (s *Split[M]) RatioBounds(extent float32) (lo, hi float32) {
	lo, hi = s.lo, s.hi
	if extent <= 0 || s.minFirst+s.minSecond > extent {
		return lo, hi
	}
	flo := max(lo, s.minFirst/extent)
	fhi := min(hi, 1-s.minSecond/extent)
	if flo > fhi {
		return lo, hi
	}
	return flo, fhi
}

// Ratio returns the ratio actually used for a container of the given extent.
func (s *Split[M]) Ratio(extent float32) float32 {
	lo, hi := s.RatioBounds(extent)
	return ClampRatio(s.ratio, lo, hi)
}

// Extents partitions extent into the sizes of the two panes. The first is
// floored and the second takes the remainder, so they always add up to extent.
func (s *Split[M]) Extents(extent float32) (first, second float32) {
	extent = max(0, extent)
	first = float32(math.Floor(float64(extent * s.Ratio(extent))))
	return first, extent - first
}

// Divider returns the divider rectangle for the split laid out at bounds.
func (s *Split[M]) Divider(bounds Rect) Rect {
	first, _ := s.Extents(s.axis.main(bounds.Size()))
	half := DividerThickness / 2
	if s.axis == Vertical {
		return Rect{X: bounds.X + first - half, Y: bounds.Y, Width: DividerThickness, Height: bounds.Height}
	}
	return Rect{X: bounds.X, Y: bounds.Y + first - half, Width: bounds.Width, Height: DividerThickness}
}

// ratioAt converts a pointer position into a clamped ratio.
func (s *Split[M]) ratioAt(p Point, bounds Rect) float32 {
	extent := s.axis.main(bounds.Size())
	if extent <= 0 {
		return s.Ratio(extent)
	}
	lo, hi := s.RatioBounds(extent)
	return ClampRatio((s.axis.coord(p)-s.axis.coord(bounds.Min()))/extent, lo, hi)
}

func (s *Split[M]) Layout(tree *Tree, limits Limits) Node {
	size := limits.Max
	extent := s.axis.main(size)
	cross := s.axis.cross(size)
	first, second := s.Extents(extent)

	n0 := s.first.Layout(tree.Children[0], Limits{
		Min: s.axis.size(min(s.minFirst, first), 0),
		Max: s.axis.size(first, cross),
	})
	n1 := s.second.Layout(tree.Children[1], Limits{
		Min: s.axis.size(min(s.minSecond, second), 0),
		Max: s.axis.size(second, cross),
	})
	n1.Move(s.axis.point(first))

	return Node{
		Bounds:   Rect{Width: size.Width, Height: size.Height},
		Children: []Node{n0, n1},
	}
}

func (s *Split[M]) Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor) {
	s.first.Draw(tree.Children[0], r, layout.Child(0), cursor)
	s.second.Draw(tree.Children[1], r, layout.Child(1), cursor)
	r.FillQuad(s.Divider(layout.Bounds()), DividerColor)
}

func (s *Split[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	bounds := layout.Bounds()
	switch ev.Kind {
	case ButtonPressed:
		if ev.Button == ButtonLeft && tree.Drag == Idle && cursor.In(s.Divider(bounds)) {
			tree.Drag = Dragging
			if s.onDrag != nil {
				shell.Publish(s.onDrag(true))
			}
			return Captured
		}
	case CursorMoved:
		if tree.Drag == Dragging {
			shell.Publish(s.onResize(s.ratioAt(cursor.Position, bounds)))
			return Captured
		}
	case ButtonReleased:
		if ev.Button == ButtonLeft && tree.Drag == Dragging {
			tree.Drag = Idle
			if s.onDrag != nil {
				shell.Publish(s.onDrag(false))
			}
			return Captured
		}
	}
	if s.first.OnEvent(tree.Children[0], ev, layout.Child(0), cursor, shell) == Captured {
		return Captured
	}
	return s.second.OnEvent(tree.Children[1], ev, layout.Child(1), cursor, shell)
}

func (s *Split[M]) Interaction(tree *Tree, layout Layout, cursor Cursor) Interaction {
	if cursor.In(s.Divider(layout.Bounds())) {
		if s.axis == Vertical {
			return InteractionResizeHorizontal
		}
		return InteractionResizeVertical
	}
	return max(
		s.first.Interaction(tree.Children[0], layout.Child(0), cursor),
		s.second.Interaction(tree.Children[1], layout.Child(1), cursor),
	)
}

// Diff keeps the drag state of a node that already belongs to a split and
// reconciles both children in place.
func (s *Split[M]) Diff(tree *Tree) {
	tree.Adopt(TagSplit)
	DiffChildren(tree, []Widget[M]{s.first, s.second})
}
