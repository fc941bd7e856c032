/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

// Basic 2D geometry for layout and hit testing.
// Float values use float32 to align with the hosts' coordinate types.

// Point is a 2D point in logical pixels.
type Point struct{ X, Y float32 }

func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Size is a width/height pair.
type Size struct{ Width, Height float32 }

func Sz(w, h float32) Size { return Size{Width: w, Height: h} }

// Rect is an axis-aligned rectangle defined by its min corner and size.
type Rect struct {
	X, Y          float32
	Width, Height float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, Width: w, Height: h} }

func (r Rect) Min() Point { return Point{r.X, r.Y} }
func (r Rect) Max() Point { return Point{r.X + r.Width, r.Y + r.Height} }
func (r Rect) Size() Size { return Size{r.Width, r.Height} }
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }
func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains is half-open: the min edges are inside, the max edges are not.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.Y >= r.Y && p.X < r.X+r.Width && p.Y < r.Y+r.Height
}

// Inset returns a rectangle inset by p on each side (negative grows).
func (r Rect) Inset(p Padding) Rect {
	return Rect{
		X:      r.X + p.Left,
		Y:      r.Y + p.Top,
		Width:  max(0, r.Width-p.Left-p.Right),
		Height: max(0, r.Height-p.Top-p.Bottom),
	}
}

// Translate moves the rectangle by d.
func (r Rect) Translate(d Point) Rect { return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height} }

// Intersect returns the overlap of r and o, empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Padding is spacing inside a widget's edges.
type Padding struct{ Top, Right, Bottom, Left float32 }

func Uniform(v float32) Padding { return Padding{v, v, v, v} }
func Symmetric(vertical, horizontal float32) Padding {
	return Padding{Top: vertical, Right: horizontal, Bottom: vertical, Left: horizontal}
}

func (p Padding) Horizontal() float32 { return p.Left + p.Right }
func (p Padding) Vertical() float32 { return p.Top + p.Bottom }

// Unbounded stands in for an infinite extent (e.g. the content height of a scrollable).
const Unbounded float32 = 1 << 24

// Limits constrain the size a widget may take during layout.
type Limits struct {
	Min, Max Size
}

// Loose returns limits from zero up to max.
func Loose(max Size) Limits { return Limits{Max: max} }

// Resolve clamps s into the limits. Max wins when Min exceeds it.
func (l Limits) Resolve(s Size) Size {
	return Size{
		Width:  clamp(s.Width, l.Min.Width, l.Max.Width),
		Height: clamp(s.Height, l.Min.Height, l.Max.Height),
	}
}

// Shrink removes padding from both bounds.
func (l Limits) Shrink(p Padding) Limits {
	return Limits{
		Min: Size{max(0, l.Min.Width-p.Horizontal()), max(0, l.Min.Height-p.Vertical())},
		Max: Size{max(0, l.Max.Width-p.Horizontal()), max(0, l.Max.Height-p.Vertical())},
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
