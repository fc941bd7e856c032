/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"image/color"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"tnetdispatch/internal/widget"
)

const previewStyle = "monokai"

// highlight splits a preview into colored lines. Files no lexer claims by
// name (.proc) are returned as plain lines.
func highlight(path, body string) [][]widget.Span {
	lexer := lexers.Match(path)
	if lexer == nil {
		return plainLines(body)
	}
	lexer = chroma.Coalesce(lexer)
	style := styles.Get(previewStyle)
	if style == nil {
		style = styles.Fallback
	}
	it, err := lexer.Tokenise(nil, body)
	if err != nil {
		return plainLines(body)
	}
	var out [][]widget.Span
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		spans := make([]widget.Span, 0, len(line))
		for _, tok := range line {
			text := strings.TrimRight(tok.Value, "\r\n")
			if text == "" {
				continue
			}
			spans = append(spans, widget.Span{Text: text, Color: tokenColor(style, tok.Type)})
		}
		out = append(out, spans)
	}
	return out
}

func tokenColor(style *chroma.Style, t chroma.TokenType) color.NRGBA {
	e := style.Get(t)
	if !e.Colour.IsSet() {
		return widget.TextColor
	}
	return color.NRGBA{R: e.Colour.Red(), G: e.Colour.Green(), B: e.Colour.Blue(), A: 0xff}
}

func plainLines(body string) [][]widget.Span {
	lines := strings.Split(body, "\n")
	out := make([][]widget.Span, len(lines))
	for i, l := range lines {
		out[i] = []widget.Span{{Text: l, Color: widget.TextColor}}
	}
	return out
}
