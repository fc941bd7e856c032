/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import (
	"image/color"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Text measurement is backed by basicfont.Face7x13 so layout is identical on
// every host. Sizes other than 13px scale the face linearly.

const (
	faceSize        = 13
	DefaultTextSize = 14
)

var (
	face        = basicfont.Face7x13
	faceAscent  = float32(face.Metrics().Ascent.Round())
	faceDescent = float32(face.Metrics().Descent.Round())
)

// LineHeight returns the height of one line of text at size px.
func LineHeight(size float32) float32 {
	return (faceAscent + faceDescent) * size / faceSize
}

// Ascent returns the baseline offset from the top of a line at size px.
func Ascent(size float32) float32 { return faceAscent * size / faceSize }

// Advance returns the width of a single line of text at size px.
func Advance(s string, size float32) float32 {
	d := &font.Drawer{Face: face}
	return float32(d.MeasureString(s)>>6) * size / faceSize
}

// MeasureText returns the size of s without line breaking, honouring '\n'.
func MeasureText(s string, size float32) Size {
	lines := strings.Split(s, "\n")
	var w float32
	for _, l := range lines {
		w = max(w, Advance(l, size))
	}
	return Size{Width: w, Height: float32(len(lines)) * LineHeight(size)}
}

// WrapText breaks s on spaces so no line exceeds maxWidth, unless a single
// word is wider. Explicit newlines are kept. maxWidth <= 0 disables wrapping.
func WrapText(s string, size, maxWidth float32) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			out = append(out, para)
			continue
		}
		var cur string
		for _, word := range strings.Split(para, " ") {
			candidate := word
			if cur != "" {
				candidate = cur + " " + word
			}
			if cur != "" && Advance(candidate, size) > maxWidth {
				out = append(out, cur)
				cur = word
				continue
			}
			cur = candidate
		}
		out = append(out, cur)
	}
	return out
}

// Text is a static label.
type Text[M any] struct {
	content string
	size    float32
	color   color.NRGBA
	wrap    bool
}

// NewText returns a label with the default size and color.
func NewText[M any](s string) *Text[M] {
	return &Text[M]{content: s, size: DefaultTextSize, color: TextColor}
}

func (t *Text[M]) Size(px float32) *Text[M] { t.size = px; return t }
func (t *Text[M]) Color(c color.NRGBA) *Text[M] { t.color = c; return t }
func (t *Text[M]) Wrap() *Text[M] { t.wrap = true; return t }

func (t *Text[M]) lines(width float32) []string {
	if t.wrap {
		return WrapText(t.content, t.size, width)
	}
	return strings.Split(t.content, "\n")
}

func (t *Text[M]) Layout(_ *Tree, limits Limits) Node {
	var s Size
	for _, l := range t.lines(limits.Max.Width) {
		s.Width = max(s.Width, Advance(l, t.size))
		s.Height += LineHeight(t.size)
	}
	return NewNode(limits.Resolve(s))
}

func (t *Text[M]) Draw(_ *Tree, r Renderer, layout Layout, _ Cursor) {
	b := layout.Bounds()
	lh := LineHeight(t.size)
	for i, l := range t.lines(b.Width) {
		y := b.Y + float32(i)*lh
		if y+lh > b.Y+b.Height+0.5 {
			break
		}
		r.FillText(l, Point{b.X, y}, t.size, t.color)
	}
}

func (t *Text[M]) OnEvent(*Tree, Event, Layout, Cursor, *Shell[M]) Status { return Ignored }

func (t *Text[M]) Interaction(*Tree, Layout, Cursor) Interaction { return InteractionNone }

func (t *Text[M]) Diff(tree *Tree) {
	tree.Adopt(TagText)
	tree.Children = nil
}
