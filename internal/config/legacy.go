/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// legacyConfig is the layout of ~/.tnet/dispatch/config.toml written by
// releases before the YAML config existed.
type legacyConfig struct {
	FirstTimeUse bool `toml:"first_time_use"`
}

// LegacyDir returns the pre-YAML settings directory.
func LegacyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tnet", "dispatch")
}

// migrateLegacy copies the first-run flag and the DATA directory location
// from the legacy layout into cfg. It reports the migrated file path.
func migrateLegacy(cfg *AppConfig) (string, bool) {
	dir := LegacyDir()
	if dir == "" {
		return "", false
	}
	path := filepath.Join(dir, "config.toml")
	var lc legacyConfig
	if _, err := toml.DecodeFile(path, &lc); err != nil {
		return "", false
	}
	cfg.General.FirstRun = lc.FirstTimeUse
	if fi, err := os.Stat(filepath.Join(dir, "DATA")); err == nil && fi.IsDir() {
		cfg.General.DataRoot = filepath.Join(dir, "DATA")
	}
	return path, true
}
