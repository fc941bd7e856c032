/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	applog "tnetdispatch/internal/log"
	"tnetdispatch/internal/storage"
)

var searchLimit int

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"ls"},
	Short:   "List the projects under the data root",
	Args:    cobra.NoArgs,
	RunE:    runProjects,
}

var initCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

var treeCmd = &cobra.Command{
	Use:   "tree <project>",
	Short: "Print the file tree of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runTree,
}

var searchCmd = &cobra.Command{
	Use:   "search <project> <terms...>",
	Short: "Search file paths and contents of a project",
	Long: `Search refreshes the project index and prints every file whose path or
content matches all terms. Terms match as prefixes.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSearch,
}

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check the project manifest against its schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 50, "Maximum number of results")
	rootCmd.AddCommand(projectsCmd, initCmd, treeCmd, searchCmd, validateCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	root, err := dataRoot()
	if err != nil {
		return err
	}
	names, err := storage.ListProjects(root)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintf(out, "No projects in %s\n", root)
		return nil
	}
	for _, n := range names {
		fmt.Fprintln(out, n)
	}
	return nil
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := dataRoot()
	if err != nil {
		return err
	}
	ph, err := storage.CreateProject(root, args[0])
	if err != nil {
		return err
	}
	applog.WithComponent("cli").Info("project created", slog.String("root", ph.Root))
	fmt.Fprintln(cmd.OutOrStdout(), "Created project at", ph.Root)
	return nil
}

func openNamed(name string) (*storage.ProjectHandle, error) {
	root, err := dataRoot()
	if err != nil {
		return nil, err
	}
	return storage.OpenProject(root, name)
}

func runTree(cmd *cobra.Command, args []string) error {
	ph, err := openNamed(args[0])
	if err != nil {
		return err
	}
	entries, err := storage.ScanTree(ph.Root)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ph.Project.Name)
	for _, e := range entries {
		if e.IsDir() {
			fmt.Fprintf(out, "%s%s/\n", e.Prefix, e.Name)
			continue
		}
		fmt.Fprintf(out, "%s%s (%s)\n", e.Prefix, e.Name, humanize.IBytes(uint64(e.Size)))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ph, err := openNamed(args[0])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l := applog.WithOperation(applog.WithComponent("cli"), "search")
	if _, err := storage.DetectAndRebuildIndex(ctx, ph.Root); err != nil {
		l.Warn("index check failed", slog.Any("err", err))
	}
	entries, err := storage.ScanTree(ph.Root)
	if err != nil {
		return err
	}
	if _, err := storage.RefreshIndex(ctx, ph.Root, entries); err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	text := strings.Join(args[1:], " ")
	results, err := storage.Search(ctx, ph.Root, storage.SearchQuery{Text: text, Limit: searchLimit})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No matches for %q\n", text)
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s\t%s\n", r.Path, strings.Join(strings.Fields(r.Snippet), " "))
	}
	return nil
}

// errInvalidManifest makes validate exit non-zero after printing the problems.
var errInvalidManifest = errors.New("manifest does not match its schema")

func runValidate(cmd *cobra.Command, args []string) error {
	ph, err := openNamed(args[0])
	if err != nil {
		return err
	}
	data, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	problems, err := storage.ValidateManifest(data)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(problems) == 0 {
		fmt.Fprintf(out, "%s: ok\n", storage.ManifestFileName)
		return nil
	}
	for _, p := range problems {
		fmt.Fprintln(out, p)
	}
	return errInvalidManifest
}
