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
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"tnetdispatch/internal/widget"
)

// Options controls snapshot rendering.
// - Scale: output pixels per logical pixel (PNG only); defaults to 1
// - Background: canvas color; defaults to widget.Background
// - Title: document title (PDF only)
type Options struct {
	Scale      float64
	Background color.NRGBA
	Title      string
}

func (o Options) withDefaults() Options {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	if o.Background == (color.NRGBA{}) {
		o.Background = widget.Background
	}
	return o
}

// RenderImage replays dl onto a fresh image of the given logical size.
func RenderImage(dl *widget.DisplayList, size widget.Size, opt Options) *image.RGBA {
	opt = opt.withDefaults()
	r := NewRaster(size, opt.Scale, opt.Background)
	dl.Replay(r)
	return r.Image()
}

// WritePNG renders dl and writes it to path, creating parent directories.
func WritePNG(path string, dl *widget.DisplayList, size widget.Size, opt Options) error {
	img := RenderImage(dl, size, opt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// Write picks the format from the file extension (.png or .pdf).
func Write(path string, dl *widget.DisplayList, size widget.Size, opt Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return WritePNG(path, dl, size, opt)
	case ".pdf":
		return WritePDF(path, dl, size, opt)
	}
	return fmt.Errorf("unsupported snapshot format %q", filepath.Ext(path))
}
