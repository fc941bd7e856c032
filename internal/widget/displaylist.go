/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "image/color"

// OpKind is the type of a recorded drawing command.
type OpKind uint8

const (
	OpFill OpKind = iota + 1
	OpStroke
	OpText
	OpPushClip
	OpPopClip
)

// Op is one recorded drawing command. Text ops carry the measured text
// rectangle in Rect.
type Op struct {
	Kind  OpKind
	Rect  Rect
	Color color.NRGBA
	Width float32
	Text  string
	Size  float32
}

// DisplayList is a Renderer that records commands so they can be replayed
// on a concrete backend or inspected.
type DisplayList struct {
	Ops []Op
}

func (d *DisplayList) FillQuad(r Rect, c color.NRGBA) {
	d.Ops = append(d.Ops, Op{Kind: OpFill, Rect: r, Color: c})
}

func (d *DisplayList) StrokeQuad(r Rect, width float32, c color.NRGBA) {
	d.Ops = append(d.Ops, Op{Kind: OpStroke, Rect: r, Color: c, Width: width})
}

func (d *DisplayList) FillText(text string, p Point, size float32, c color.NRGBA) {
	s := MeasureText(text, size)
	d.Ops = append(d.Ops, Op{Kind: OpText, Rect: Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}, Color: c, Text: text, Size: size})
}

func (d *DisplayList) PushClip(r Rect) { d.Ops = append(d.Ops, Op{Kind: OpPushClip, Rect: r}) }
func (d *DisplayList) PopClip() { d.Ops = append(d.Ops, Op{Kind: OpPopClip}) }

// Reset drops all recorded ops, keeping the backing array.
func (d *DisplayList) Reset() { d.Ops = d.Ops[:0] }

// Replay sends every recorded op to r in order.
func (d *DisplayList) Replay(r Renderer) {
	for _, op := range d.Ops {
		switch op.Kind {
		case OpFill:
			r.FillQuad(op.Rect, op.Color)
		case OpStroke:
			r.StrokeQuad(op.Rect, op.Width, op.Color)
		case OpText:
			r.FillText(op.Text, op.Rect.Min(), op.Size, op.Color)
		case OpPushClip:
			r.PushClip(op.Rect)
		case OpPopClip:
			r.PopClip()
		}
	}
}

// Fills returns the rectangles of all fill ops painted with c.
func (d *DisplayList) Fills(c color.NRGBA) []Rect {
	var out []Rect
	for _, op := range d.Ops {
		if op.Kind == OpFill && op.Color == c {
			out = append(out, op.Rect)
		}
	}
	return out
}

// Texts returns the strings of all text ops in paint order.
func (d *DisplayList) Texts() []string {
	var out []string
	for _, op := range d.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
