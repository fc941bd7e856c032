/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package app

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/widget"
)

const propertyLabelWidth = 110

func inspectorPanel(s State) Element {
	w := s.Project
	col := widget.NewColumn[Message]().Spacing(6).FillWidth()
	e, ok := w.Entry(w.Selected)
	if !ok {
		col.Push(muted("No file selected"))
	} else {
		col.Push(
			property("Path", e.RelPath),
			property("Kind", string(e.Kind)),
			property("Size", humanize.IBytes(uint64(max(0, e.Size)))),
			property("Modified", e.ModTime.Local().Format("2006-01-02 15:04:05")),
			property("JSON", jsonLabel(w.Preview)),
		)
		if e.RelPath == storage.ManifestFileName {
			col.Push(property("Schema", schemaLabel(w.Preview)))
			for _, p := range w.Preview.Problems {
				col.Push(text("  " + p).Color(widget.ErrorText).Size(12))
			}
		}
	}
	col.Push(property("Index", fmt.Sprintf("%d files, %s", w.Stats.Files, humanize.IBytes(uint64(max(0, w.Stats.Bytes))))))
	if !w.Stats.RefreshedAt.IsZero() {
		col.Push(property("Refreshed", humanize.Time(w.Stats.RefreshedAt)))
	}
	return panel("Inspector", widget.NewScrollable[Message](col))
}

func property(label, value string) Element {
	return widget.NewRow[Message](
		widget.NewContainer[Message](muted(label)).Width(propertyLabelWidth),
		text(value),
	)
}

func jsonLabel(p Preview) string {
	switch {
	case p.JSONValid == nil:
		return "n/a"
	case *p.JSONValid:
		return "valid"
	}
	return "invalid"
}

func schemaLabel(p Preview) string {
	switch {
	case p.JSONValid == nil || !*p.JSONValid:
		return "n/a"
	case len(p.Problems) == 0:
		return "ok"
	}
	return fmt.Sprintf("%d problem(s)", len(p.Problems))
}
