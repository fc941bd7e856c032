/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

// Alignment positions children on the cross axis of a Row or Column.
type Alignment uint8

const (
	AlignStart Alignment = iota
	AlignCenter
	AlignEnd
)

// flex lays out children in sequence along one axis. The axis follows Split:
// Horizontal stacks top to bottom (a Column), Vertical runs left to right (a Row).
type flex[M any] struct {
	axis     Axis
	tag      Tag
	children []Widget[M]
	spacing  float32
	padding  Padding
	align    Alignment
	fillW    bool
	fillH    bool
}

// Column stacks its children vertically.
type Column[M any] struct{ flex[M] }

// Row places its children side by side.
type Row[M any] struct{ flex[M] }

func NewColumn[M any](children ...Widget[M]) *Column[M] {
	return &Column[M]{flex[M]{axis: Horizontal, tag: TagColumn, children: children}}
}

func NewRow[M any](children ...Widget[M]) *Row[M] {
	return &Row[M]{flex[M]{axis: Vertical, tag: TagRow, children: children}}
}

func (c *Column[M]) Push(ws ...Widget[M]) *Column[M] { c.children = append(c.children, ws...); return c }
func (c *Column[M]) Spacing(v float32) *Column[M] { c.spacing = v; return c }
func (c *Column[M]) Padding(p Padding) *Column[M] { c.padding = p; return c }
func (c *Column[M]) Align(a Alignment) *Column[M] { c.align = a; return c }
func (c *Column[M]) FillWidth() *Column[M] { c.fillW = true; return c }
func (c *Column[M]) Fill() *Column[M] { c.fillW, c.fillH = true, true; return c }
func (r *Row[M]) Push(ws ...Widget[M]) *Row[M] { r.children = append(r.children, ws...); return r }
func (r *Row[M]) Spacing(v float32) *Row[M] { r.spacing = v; return r }
func (r *Row[M]) Padding(p Padding) *Row[M] { r.padding = p; return r }
func (r *Row[M]) Align(a Alignment) *Row[M] { r.align = a; return r }
func (r *Row[M]) FillWidth() *Row[M] { r.fillW = true; return r }
func (r *Row[M]) Fill() *Row[M] { r.fillW, r.fillH = true, true; return r }

// Len returns the number of children.
func (f *flex[M]) Len() int { return len(f.children) }

// stretchMain reports whether child i claims leftover space on the main axis.
func (f *flex[M]) stretchMain(i int) bool {
	w, h := stretchOf(f.children[i])
	if f.axis == Vertical {
		return w
	}
	return h
}

func (f *flex[M]) stretchCross(i int) bool {
	w, h := stretchOf(f.children[i])
	if f.axis == Vertical {
		return h
	}
	return w
}

func (f *flex[M]) Stretch() (bool, bool) {
	w, h := f.fillW, f.fillH
	for _, c := range f.children {
		cw, ch := stretchOf(c)
		w = w || cw
		h = h || ch
	}
	return w, h
}

// Layout runs two passes: fixed children first, then the stretching ones
// share what is left. With an unbounded main axis nothing stretches.
func (f *flex[M]) Layout(tree *Tree, limits Limits) Node {
	inner := limits.Shrink(f.padding)
	mainMax := f.axis.main(inner.Max)
	crossMax := f.axis.cross(inner.Max)
	bounded := mainMax < Unbounded

	n := len(f.children)
	nodes := make([]Node, n)
	gaps := f.spacing * float32(max(0, n-1))
	used := gaps
	stretching := 0

	crossMin := func(i int) float32 {
		if f.stretchCross(i) && crossMax < Unbounded {
			return crossMax
		}
		return 0
	}

	for i, c := range f.children {
		if bounded && f.stretchMain(i) {
			stretching++
			continue
		}
		remaining := max(0, mainMax-used)
		if !bounded && f.stretchMain(i) {
			remaining = 0
		}
		nodes[i] = c.Layout(tree.Children[i], Limits{
			Min: f.axis.size(0, crossMin(i)),
			Max: f.axis.size(remaining, crossMax),
		})
		used += f.axis.main(nodes[i].Size())
	}
	if stretching > 0 {
		share := float32(0)
		if left := mainMax - used; left > 0 {
			share = left / float32(stretching)
		}
		for i, c := range f.children {
			if !f.stretchMain(i) {
				continue
			}
			nodes[i] = c.Layout(tree.Children[i], Limits{
				Min: f.axis.size(share, crossMin(i)),
				Max: f.axis.size(share, crossMax),
			})
			used += f.axis.main(nodes[i].Size())
		}
	}

	var cross float32
	for _, nd := range nodes {
		cross = max(cross, f.axis.cross(nd.Size()))
	}
	fillMain, fillCross := f.fillH, f.fillW
	if f.axis == Vertical {
		fillMain, fillCross = f.fillW, f.fillH
	}
	if fillCross {
		cross = crossMax
	}
	extent := used
	if bounded && (stretching > 0 || fillMain) {
		extent = mainMax
	}

	pos := f.axis.coord(Point{f.padding.Left, f.padding.Top})
	for i := range nodes {
		free := cross - f.axis.cross(nodes[i].Size())
		off := float32(0)
		switch f.align {
		case AlignCenter:
			off = free / 2
		case AlignEnd:
			off = free
		}
		if f.axis == Vertical {
			nodes[i].Move(Point{pos, f.padding.Top + max(0, off)})
		} else {
			nodes[i].Move(Point{f.padding.Left + max(0, off), pos})
		}
		pos += f.axis.main(nodes[i].Size()) + f.spacing
	}

	size := f.axis.size(extent, cross)
	size.Width += f.padding.Horizontal()
	size.Height += f.padding.Vertical()
	size = limits.Resolve(size)
	return Node{Bounds: Rect{Width: size.Width, Height: size.Height}, Children: nodes}
}

func (f *flex[M]) Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor) {
	for i, c := range f.children {
		c.Draw(tree.Children[i], r, layout.Child(i), cursor)
	}
}

// OnEvent offers ev to each child in order until one captures it.
func (f *flex[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	for i, c := range f.children {
		if c.OnEvent(tree.Children[i], ev, layout.Child(i), cursor, shell) == Captured {
			return Captured
		}
	}
	return Ignored
}

func (f *flex[M]) Interaction(tree *Tree, layout Layout, cursor Cursor) Interaction {
	best := InteractionNone
	for i, c := range f.children {
		best = max(best, c.Interaction(tree.Children[i], layout.Child(i), cursor))
	}
	return best
}

func (f *flex[M]) Diff(tree *Tree) {
	tree.Adopt(f.tag)
	DiffChildren(tree, f.children)
}
