/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"sync"

	gojsonschema "github.com/xeipuuv/gojsonschema"
)

// ManifestSchema is the JSON schema of project.json.
const ManifestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "tnetdispatch project manifest",
  "type": "object",
  "required": ["id", "name", "createdAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "pattern": "^[A-Za-z0-9_-][A-Za-z0-9._-]{0,63}$"},
    "createdAt": {"type": "string", "format": "date-time"},
    "metadata": {
      "type": "object",
      "properties": {
        "description": {"type": "string"},
        "owner": {"type": "string"}
      },
      "additionalProperties": false
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func manifestSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(ManifestSchema))
	})
	return schema, schemaErr
}

// ValidateManifest checks data against ManifestSchema. It returns the schema
// violations (empty when valid); err is set only when data is not JSON at all.
func ValidateManifest(data []byte) ([]string, error) {
	s, err := manifestSchema()
	if err != nil {
		return nil, fmt.Errorf("load manifest schema: %w", err)
	}
	res, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validate manifest: %w", err)
	}
	var problems []string
	for _, e := range res.Errors() {
		problems = append(problems, e.String())
	}
	return problems, nil
}
