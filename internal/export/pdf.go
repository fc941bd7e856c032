/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"tnetdispatch/internal/widget"
)

// One logical pixel maps to one point. Text uses the built-in Courier face
// so its metrics stay close to the 7px monospaced layout font.

// boxDrawing maps tree guides to characters the core fonts can encode.
var boxDrawing = strings.NewReplacer("│", "|", "├", "|", "└", "`", "─", "-", "…", "...")

// WritePDF renders dl as a single page PDF of the given logical size.
func WritePDF(path string, dl *widget.DisplayList, size widget.Size, opt Options) error {
	opt = opt.withDefaults()
	w, h := float64(size.Width), float64(size.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetCreator("tnetdispatch", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	setFillColor(pdf, opt.Background)
	pdf.Rect(0, 0, w, h, "F")

	for _, op := range dl.Ops {
		r := op.Rect
		switch op.Kind {
		case widget.OpFill:
			setFillColor(pdf, op.Color)
			pdf.Rect(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height), "F")
		case widget.OpStroke:
			setDrawColor(pdf, op.Color)
			lw := float64(op.Width)
			pdf.SetLineWidth(lw)
			// gofpdf strokes on the path; inset by half the width to stay inside
			pdf.Rect(float64(r.X)+lw/2, float64(r.Y)+lw/2, float64(r.Width)-lw, float64(r.Height)-lw, "D")
		case widget.OpText:
			setTextColor(pdf, op.Color)
			pdf.SetFont("Courier", "", float64(op.Size))
			baseline := float64(r.Y + widget.Ascent(op.Size))
			pdf.Text(float64(r.X), baseline, tr(boxDrawing.Replace(op.Text)))
		case widget.OpPushClip:
			pdf.ClipRect(float64(r.X), float64(r.Y), float64(r.Width), float64(r.Height), false)
		case widget.OpPopClip:
			pdf.ClipEnd()
		}
		pdf.SetAlpha(1, "Normal")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func alpha(pdf *gofpdf.Fpdf, c color.NRGBA) {
	if c.A < 255 {
		pdf.SetAlpha(float64(c.A)/255, "Normal")
	}
}

func setDrawColor(pdf *gofpdf.Fpdf, c color.NRGBA) {
	alpha(pdf, c)
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c color.NRGBA) {
	alpha(pdf, c)
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c color.NRGBA) {
	alpha(pdf, c)
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}
