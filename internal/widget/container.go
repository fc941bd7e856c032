/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "image/color"

// Container wraps a single child with padding, an optional background and
// border, and alignment of the child within the space it claims.
type Container[M any] struct {
	child         Widget[M]
	padding       Padding
	background    *color.NRGBA
	border        *color.NRGBA
	borderWidth   float32
	fillW, fillH  bool
	centerX       bool
	centerY       bool
	width, height float32
}

// NewContainer wraps child.
func NewContainer[M any](child Widget[M]) *Container[M] {
	return &Container[M]{child: child}
}

func (c *Container[M]) Padding(p Padding) *Container[M] { c.padding = p; return c }

func (c *Container[M]) Background(col color.NRGBA) *Container[M] {
	c.background = &col
	return c
}

func (c *Container[M]) Border(col color.NRGBA, width float32) *Container[M] {
	c.border = &col
	c.borderWidth = width
	return c
}

// Fill makes the container take all the space offered to it.
func (c *Container[M]) Fill() *Container[M] { c.fillW, c.fillH = true, true; return c }

func (c *Container[M]) FillWidth() *Container[M] { c.fillW = true; return c }

// Center centers the child in both directions. It implies Fill.
func (c *Container[M]) Center() *Container[M] {
	c.centerX, c.centerY = true, true
	return c.Fill()
}

// CenterX centers the child horizontally and fills the width.
func (c *Container[M]) CenterX() *Container[M] {
	c.centerX = true
	return c.FillWidth()
}

// Width fixes the outer width, still bounded by the limits.
func (c *Container[M]) Width(w float32) *Container[M] { c.width = w; return c }

// Height fixes the outer height, still bounded by the limits.
func (c *Container[M]) Height(h float32) *Container[M] { c.height = h; return c }

func (c *Container[M]) Stretch() (bool, bool) {
	w, h := stretchOf(c.child)
	return (c.fillW || w) && c.width == 0, (c.fillH || h) && c.height == 0
}

func (c *Container[M]) Layout(tree *Tree, limits Limits) Node {
	outer := limits
	if c.width > 0 {
		outer.Max.Width = min(outer.Max.Width, c.width)
		outer.Min.Width = min(outer.Max.Width, max(outer.Min.Width, c.width))
	}
	if c.height > 0 {
		outer.Max.Height = min(outer.Max.Height, c.height)
		outer.Min.Height = min(outer.Max.Height, max(outer.Min.Height, c.height))
	}
	inner := outer.Shrink(c.padding)
	childLimits := Limits{Max: inner.Max}
	cw, ch := stretchOf(c.child)
	if c.fillW && !c.centerX || cw {
		childLimits.Min.Width = inner.Max.Width
	}
	if c.fillH && !c.centerY || ch {
		childLimits.Min.Height = inner.Max.Height
	}
	child := c.child.Layout(tree.Children[0], childLimits)
	cs := child.Size()

	size := Size{cs.Width + c.padding.Horizontal(), cs.Height + c.padding.Vertical()}
	if c.fillW || c.width > 0 {
		size.Width = outer.Max.Width
	}
	if c.fillH || c.height > 0 {
		size.Height = outer.Max.Height
	}
	size = outer.Resolve(size)

	pos := Point{c.padding.Left, c.padding.Top}
	if c.centerX {
		pos.X = max(0, (size.Width-cs.Width)/2)
	}
	if c.centerY {
		pos.Y = max(0, (size.Height-cs.Height)/2)
	}
	child.Move(pos)
	return Node{Bounds: Rect{Width: size.Width, Height: size.Height}, Children: []Node{child}}
}

func (c *Container[M]) Draw(tree *Tree, r Renderer, layout Layout, cursor Cursor) {
	b := layout.Bounds()
	if c.background != nil {
		r.FillQuad(b, *c.background)
	}
	c.child.Draw(tree.Children[0], r, layout.Child(0), cursor)
	if c.border != nil && c.borderWidth > 0 {
		r.StrokeQuad(b, c.borderWidth, *c.border)
	}
}

func (c *Container[M]) OnEvent(tree *Tree, ev Event, layout Layout, cursor Cursor, shell *Shell[M]) Status {
	return c.child.OnEvent(tree.Children[0], ev, layout.Child(0), cursor, shell)
}

func (c *Container[M]) Interaction(tree *Tree, layout Layout, cursor Cursor) Interaction {
	return c.child.Interaction(tree.Children[0], layout.Child(0), cursor)
}

func (c *Container[M]) Diff(tree *Tree) {
	tree.Adopt(TagContainer)
	DiffChildren(tree, []Widget[M]{c.child})
}
