/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "image/color"

// Span is a run of text drawn in one color.
type Span struct {
	Text  string
	Color color.NRGBA
}

// Code shows preformatted lines made of colored spans, one line per row and
// without wrapping. Tabs must already be expanded.
type Code[M any] struct {
	lines [][]Span
	size  float32
}

func NewCode[M any](lines [][]Span) *Code[M] {
	return &Code[M]{lines: lines, size: DefaultTextSize}
}

func (c *Code[M]) Size(px float32) *Code[M] { c.size = px; return c }

func (c *Code[M]) Layout(_ *Tree, limits Limits) Node {
	var w float32
	for _, l := range c.lines {
		var lw float32
		for _, s := range l {
			lw += Advance(s.Text, c.size)
		}
		w = max(w, lw)
	}
	return NewNode(limits.Resolve(Size{w, float32(len(c.lines)) * LineHeight(c.size)}))
}

func (c *Code[M]) Draw(_ *Tree, r Renderer, layout Layout, _ Cursor) {
	b := layout.Bounds()
	lh := LineHeight(c.size)
	for i, l := range c.lines {
		y := b.Y + float32(i)*lh
		if y+lh > b.Y+b.Height+0.5 {
			break
		}
		x := b.X
		for _, s := range l {
			if s.Text == "" {
				continue
			}
			r.FillText(s.Text, Point{x, y}, c.size, s.Color)
			x += Advance(s.Text, c.size)
		}
	}
}

func (c *Code[M]) OnEvent(*Tree, Event, Layout, Cursor, *Shell[M]) Status { return Ignored }

func (c *Code[M]) Interaction(*Tree, Layout, Cursor) Interaction { return InteractionNone }

func (c *Code[M]) Diff(tree *Tree) {
	tree.Adopt(TagCode)
	tree.Children = nil
}
