/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"tnetdispatch/internal/app"
	"tnetdispatch/internal/export"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/telemetry"
	"tnetdispatch/internal/widget"
)

type snapshotOptions struct {
	project string
	file    string
	width   float32
	height  float32
	scale   float64
}

var snapOpts = snapshotOptions{width: 1200, height: 800, scale: 1}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <out.png|out.pdf>",
	Short: "Render the UI headless to a PNG or PDF file",
	Long: `Snapshot builds the same view the desktop UI shows and writes it to a
PNG or PDF file. With --project the project workspace is rendered; --file
selects a file in it the same way a click in the file tree does.`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	f := snapshotCmd.Flags()
	f.StringVarP(&snapOpts.project, "project", "p", "", "Project to open")
	f.StringVarP(&snapOpts.file, "file", "f", "", "Project relative path of the file to select")
	f.Float32Var(&snapOpts.width, "width", snapOpts.width, "Window width in logical pixels")
	f.Float32Var(&snapOpts.height, "height", snapOpts.height, "Window height in logical pixels")
	f.Float64Var(&snapOpts.scale, "scale", snapOpts.scale, "Output pixels per logical pixel (PNG only)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	root, err := dataRoot()
	if err != nil {
		return err
	}
	dl, size, err := renderSnapshot(app.Init(cfg, root), snapOpts)
	if err != nil {
		return err
	}
	out := args[0]
	title := "Tnet-Dispatcher"
	if snapOpts.project != "" {
		title += " - " + snapOpts.project
	}
	if err := export.Write(out, dl, size, export.Options{Scale: snapOpts.scale, Title: title}); err != nil {
		return err
	}
	applog.WithComponent("cli").Info("snapshot written", slog.String("path", out))
	telemetry.Event("snapshot_exported", map[string]any{"workspace": snapOpts.project != ""})
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
	return nil
}

// renderSnapshot drives the application runtime to the requested screen and
// records one frame.
func renderSnapshot(st app.State, opt snapshotOptions) (*widget.DisplayList, widget.Size, error) {
	size := widget.Sz(opt.width, opt.height)
	if size.Width <= 0 || size.Height <= 0 {
		return nil, size, fmt.Errorf("invalid snapshot size %vx%v", opt.width, opt.height)
	}
	rt := widget.NewRuntime(app.Program(), st, size)
	if opt.project != "" {
		rt.Send(app.OpenRecent{Name: opt.project})
		if s := rt.State(); s.Screen != app.ScreenProjectSelected {
			return nil, size, fmt.Errorf("open project %q: %s", opt.project, s.Status)
		}
		if opt.file != "" {
			rt.Send(app.FileSelected{Path: opt.file})
			if s := rt.State(); s.Project.Selected != opt.file {
				return nil, size, fmt.Errorf("select %q: %s", opt.file, s.Status)
			}
		}
	} else if opt.file != "" {
		return nil, size, fmt.Errorf("--file needs --project")
	}
	var dl widget.DisplayList
	rt.Draw(&dl)
	return &dl, size, nil
}
