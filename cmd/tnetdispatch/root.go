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
	"strings"

	"github.com/spf13/cobra"

	"tnetdispatch/internal/config"
	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/storage"
	"tnetdispatch/internal/telemetry"
	"tnetdispatch/internal/ui"
	"tnetdispatch/internal/version"
)

var (
	logLevel    string
	openProject string

	// cfg is loaded once per invocation before any command runs.
	cfg config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "tnetdispatch",
	Short: "Desktop workspace for dispatcher projects",
	Long: `Tnet-Dispatcher manages dispatcher projects: directories of JSON and
.proc files under a data root. Without a subcommand it starts the desktop UI
(build with -tags fyne); the subcommands work headless.`,
	Version:           version.String(),
	PersistentPreRunE: setup,
	RunE:              runUI,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.Flags().StringVarP(&openProject, "project", "p", "", "Open this project on start")
	rootCmd.SetVersionTemplate("tnetdispatch {{.Version}}\n")
}

// setup loads the configuration and initializes logging and telemetry from it.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c
	opts := applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	}
	if strings.TrimSpace(logLevel) != "" {
		opts.Level = logLevel
	}
	applog.Init(opts)

	tcfg := telemetry.FromEnv()
	tcfg.OptIn = tcfg.OptIn || cfg.General.TelemetryOptIn
	telemetry.NewDefault(tcfg)

	applog.WithComponent("cli").Debug("start", slog.String("cmd", cmd.CommandPath()))
	return nil
}

func runUI(_ *cobra.Command, _ []string) error {
	return ui.Run(openProject)
}

// dataRoot resolves the data root of the loaded configuration and makes sure it exists.
func dataRoot() (string, error) {
	root, err := cfg.ResolveDataRoot()
	if err != nil {
		return "", err
	}
	if err := storage.EnsureDataRoot(root); err != nil {
		return "", err
	}
	return root, nil
}
