/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"testing"
)

func TestManifestConformsToSchema(t *testing.T) {
	ph, err := CreateProject(t.TempDir(), "schema-test")
	if err != nil {
		t.Fatalf("CreateProject error: %v", err)
	}
	data, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	problems, err := ValidateManifest(data)
	if err != nil {
		t.Fatalf("ValidateManifest: %v", err)
	}
	for _, p := range problems {
		t.Logf("schema error: %s", p)
	}
	if len(problems) != 0 {
		t.Fatalf("manifest does not conform to schema")
	}
}

func TestManifestSchemaRejectsMissingFields(t *testing.T) {
	problems, err := ValidateManifest([]byte(`{"name": "bad name!"}`))
	if err != nil {
		t.Fatalf("ValidateManifest: %v", err)
	}
	if len(problems) < 2 {
		t.Fatalf("expected missing id/createdAt and bad name, got %v", problems)
	}
	if _, err := ValidateManifest([]byte(`{not json`)); err == nil {
		t.Fatalf("expected error for non-JSON input")
	}
}
