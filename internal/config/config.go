/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	applog "tnetdispatch/internal/log"
)

type GeneralConfig struct {
	FirstRun       bool   `yaml:"first_run"`
	DataRoot       string `yaml:"data_root"`
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
}

// LayoutConfig stores the workspace split ratios between sessions.
type LayoutConfig struct {
	HorizontalRatio float32 `yaml:"horizontal_ratio"`
	VerticalRatio   float32 `yaml:"vertical_ratio"`
}

type WindowConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// AppConfig is the user-editable configuration persisted to a YAML file in
// the user scope. Environment variables override it at runtime and are never
// written back. ConfigVersion is bumped on backward-incompatible changes.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Layout        LayoutConfig  `yaml:"layout"`
	Window        WindowConfig  `yaml:"window"`
	Logging       LoggingConfig `yaml:"logging"`
	Recent        []string      `yaml:"recent_projects,omitempty"`
}

const (
	DefaultHorizontalRatio float32 = 0.8
	DefaultVerticalRatio   float32 = 0.7

	recentMax = 10
)

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{FirstRun: true},
		Layout:        LayoutConfig{HorizontalRatio: DefaultHorizontalRatio, VerticalRatio: DefaultVerticalRatio},
		Window:        WindowConfig{Width: 1280, Height: 800},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvConfigDir      = "DSP_CONFIG_DIR"
	EnvDataRoot       = "DSP_DATA_ROOT"
	EnvTelemetryOptIn = "DSP_TELEMETRY_OPT_IN"
	EnvFirstRun       = "DSP_FIRST_RUN"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "DSP_LOG_LEVEL"
	EnvLogFormat = "DSP_LOG_FORMAT"
	EnvLogSource = "DSP_LOG_SOURCE"
	EnvLogFile   = "DSP_LOG_FILE"
)

// ConfigDir returns the per-user directory holding config.yaml and the default data root.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "TNetDispatch")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "TNetDispatch")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "tnetdispatch")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "tnetdispatch")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, migrates a
// legacy TOML config when no YAML file exists yet and merges environment overrides.
// A malformed file is logged and ignored; only an unresolvable config directory is an error.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	l := applog.WithComponent("config")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			l.Warn("ignoring malformed config", "path", path, "err", err)
		} else {
			mergeInto(&cfg, &fileCfg)
		}
	case errors.Is(err, os.ErrNotExist):
		if migrated, ok := migrateLegacy(&cfg); ok {
			l.Info("migrated legacy config", "from", migrated)
			if err := Save(cfg); err != nil {
				l.Warn("could not persist migrated config", "err", err)
			}
		}
	default:
		l.Warn("config unreadable, using defaults", "path", path, "err", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML atomically.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// ResolveDataRoot returns the directory holding the projects, defaulting to
// <config dir>/data when general.data_root is unset.
func (c AppConfig) ResolveDataRoot() (string, error) {
	if v := strings.TrimSpace(c.General.DataRoot); v != "" {
		return v, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// AddRecent moves name to the front of the recent project list.
func (c *AppConfig) AddRecent(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	out := []string{name}
	for _, r := range c.Recent {
		if r != name && len(out) < recentMax {
			out = append(out, r)
		}
	}
	c.Recent = out
}

// RemoveRecent drops name from the recent project list.
func (c *AppConfig) RemoveRecent(name string) {
	out := c.Recent[:0]
	for _, r := range c.Recent {
		if r != name {
			out = append(out, r)
		}
	}
	c.Recent = out
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.FirstRun = src.General.FirstRun
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if strings.TrimSpace(src.General.DataRoot) != "" {
		dst.General.DataRoot = strings.TrimSpace(src.General.DataRoot)
	}
	// ratios outside (0,1) are not ratios; the split widget clamps the rest
	if validRatio(src.Layout.HorizontalRatio) {
		dst.Layout.HorizontalRatio = src.Layout.HorizontalRatio
	}
	if validRatio(src.Layout.VerticalRatio) {
		dst.Layout.VerticalRatio = src.Layout.VerticalRatio
	}
	if src.Window.Width > 0 && src.Window.Height > 0 {
		dst.Window = src.Window
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
	dst.Recent = nil
	for _, r := range src.Recent {
		if len(dst.Recent) == recentMax {
			break
		}
		if r = strings.TrimSpace(r); r != "" {
			dst.Recent = append(dst.Recent, r)
		}
	}
}

func validRatio(r float32) bool { return r > 0 && r < 1 }

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvDataRoot)); v != "" {
		cfg.General.DataRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFirstRun)); v != "" {
		cfg.General.FirstRun = parseBool(v)
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	var env string
	switch key {
	case "general.data_root":
		env = EnvDataRoot
	case "general.telemetry_opt_in":
		env = EnvTelemetryOptIn
	case "general.first_run":
		env = EnvFirstRun
	case "logging.level":
		env = EnvLogLevel
	case "logging.format":
		env = EnvLogFormat
	case "logging.source":
		env = EnvLogSource
	case "logging.file":
		env = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(env) != "" {
		return env, true
	}
	return "", false
}
