/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"tnetdispatch/internal/widget"
)

// Raster paints drawing commands onto an RGBA image. Coordinates are
// logical pixels multiplied by Scale.
type Raster struct {
	img   *image.RGBA
	scale float64
	clips []image.Rectangle
}

// NewRaster allocates a w by h logical pixel canvas filled with bg.
func NewRaster(size widget.Size, scale float64, bg color.NRGBA) *Raster {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(float64(size.Width) * scale))
	h := int(math.Ceil(float64(size.Height) * scale))
	img := image.NewRGBA(image.Rect(0, 0, max(1, w), max(1, h)))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Raster{img: img, scale: scale}
}

// Image returns the canvas.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) px(v float32) int { return int(math.Round(float64(v) * r.scale)) }

func (r *Raster) rect(rc widget.Rect) image.Rectangle {
	return image.Rect(r.px(rc.X), r.px(rc.Y), r.px(rc.X+rc.Width), r.px(rc.Y+rc.Height))
}

// clip returns the active clip rectangle.
func (r *Raster) clip() image.Rectangle {
	if n := len(r.clips); n > 0 {
		return r.clips[n-1]
	}
	return r.img.Bounds()
}

func (r *Raster) fill(rc image.Rectangle, c color.NRGBA) {
	rc = rc.Intersect(r.clip())
	if rc.Empty() {
		return
	}
	draw.Draw(r.img, rc, image.NewUniform(c), image.Point{}, draw.Over)
}

func (r *Raster) FillQuad(rc widget.Rect, c color.NRGBA) { r.fill(r.rect(rc), c) }

// StrokeQuad draws the border inside the rectangle.
func (r *Raster) StrokeQuad(rc widget.Rect, width float32, c color.NRGBA) {
	b := r.rect(rc)
	t := max(1, r.px(width))
	r.fill(image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+t), c)
	r.fill(image.Rect(b.Min.X, b.Max.Y-t, b.Max.X, b.Max.Y), c)
	r.fill(image.Rect(b.Min.X, b.Min.Y+t, b.Min.X+t, b.Max.Y-t), c)
	r.fill(image.Rect(b.Max.X-t, b.Min.Y+t, b.Max.X, b.Max.Y-t), c)
}

// FillText renders text with basicfont. The face is 13px; other sizes are
// drawn at 13px and scaled.
func (r *Raster) FillText(text string, p widget.Point, size float32, c color.NRGBA) {
	if text == "" {
		return
	}
	dst, ok := r.img.SubImage(r.clip()).(*image.RGBA)
	if !ok || dst.Bounds().Empty() {
		return
	}
	face := basicfont.Face7x13
	ascent := face.Metrics().Ascent.Round()
	target := float64(size) * r.scale
	x, y := r.px(p.X), r.px(p.Y)

	if math.Abs(target-float64(face.Height)) < 0.01 {
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y+ascent)}
		d.DrawString(text)
		return
	}
	d := &font.Drawer{Face: face}
	w := d.MeasureString(text).Ceil()
	tmp := image.NewRGBA(image.Rect(0, 0, max(1, w), face.Height))
	d.Dst = tmp
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(0, ascent)
	d.DrawString(text)

	k := target / float64(face.Height)
	dr := image.Rect(x, y, x+int(math.Round(float64(w)*k)), y+int(math.Round(float64(face.Height)*k)))
	draw.ApproxBiLinear.Scale(dst, dr, tmp, tmp.Bounds(), draw.Over, nil)
}

func (r *Raster) PushClip(rc widget.Rect) {
	r.clips = append(r.clips, r.rect(rc).Intersect(r.clip()))
}

func (r *Raster) PopClip() {
	if n := len(r.clips); n > 0 {
		r.clips = r.clips[:n-1]
	}
}
