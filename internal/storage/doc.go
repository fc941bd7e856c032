/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements the project data root and per-project persistence.
// Projects are plain directories under the data root. Each carries a project.json
// manifest written transactionally with timestamped backups, and a private
// .dispatch directory holding backups and the embedded SQLite file index
// (<project>/.dispatch/index.sqlite) used for search. The index is derived from
// the project files and can be rebuilt at any time.
package storage
