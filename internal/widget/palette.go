/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package widget

import "image/color"

// rgb converts 0..1 channels to a color.
func rgb(r, g, b float32) color.NRGBA { return rgba(r, g, b, 1) }

func rgba(r, g, b, a float32) color.NRGBA {
	return color.NRGBA{R: uint8(r*255 + 0.5), G: uint8(g*255 + 0.5), B: uint8(b*255 + 0.5), A: uint8(a*255 + 0.5)}
}

// The fixed dark palette.
var (
	Background     = rgb(0.15, 0.15, 0.2)
	Surface        = rgb(0.18, 0.18, 0.23)
	SurfaceRaised  = rgb(0.2, 0.2, 0.3)
	BorderColor    = rgb(0.3, 0.3, 0.4)
	TextColor      = rgb(0.9, 0.9, 0.92)
	MutedText      = rgb(0.7, 0.7, 0.7)
	ErrorText      = rgb(0.9, 0.2, 0.2)
	Accent         = rgb(0.35, 0.45, 0.85)
	ButtonFill     = rgb(0.25, 0.27, 0.38)
	ButtonHover    = rgb(0.3, 0.33, 0.47)
	ButtonActive   = rgb(0.2, 0.22, 0.33)
	ButtonDisabled = rgb(0.22, 0.22, 0.26)
	Selection      = rgba(0.35, 0.45, 0.85, 0.35)

	// DividerColor is used for split dividers regardless of palette.
	DividerColor = rgba(0.5, 0.5, 0.5, 0.7)
)
