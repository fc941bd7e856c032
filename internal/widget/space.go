/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

// Space is an invisible spacer. A filling space claims the leftover room of
// its Row or Column along the axes it fills.
type Space[M any] struct {
	size         Size
	fillW, fillH bool
}

// NewSpace returns a fixed-size spacer.
func NewSpace[M any](w, h float32) *Space[M] { return &Space[M]{size: Size{w, h}} }

// Fill returns a spacer that stretches in both directions.
func Fill[M any]() *Space[M] { return &Space[M]{fillW: true, fillH: true} }

// HFill returns a spacer that only stretches horizontally, pushing the
// following children of a Row to its end.
func HFill[M any]() *Space[M] { return &Space[M]{fillW: true} }

func (s *Space[M]) Stretch() (bool, bool) { return s.fillW, s.fillH }

func (s *Space[M]) Layout(_ *Tree, limits Limits) Node {
	sz := s.size
	if s.fillW {
		sz.Width = limits.Max.Width
	}
	if s.fillH {
		sz.Height = limits.Max.Height
	}
	return NewNode(limits.Resolve(sz))
}

func (s *Space[M]) Draw(*Tree, Renderer, Layout, Cursor) {}

func (s *Space[M]) OnEvent(*Tree, Event, Layout, Cursor, *Shell[M]) Status { return Ignored }

func (s *Space[M]) Interaction(*Tree, Layout, Cursor) Interaction { return InteractionNone }

func (s *Space[M]) Diff(tree *Tree) {
	tree.Adopt(TagSpace)
	tree.Children = nil
}
