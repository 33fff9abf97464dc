// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package serializer reads and writes structured data as JSON, YAML or a
// plain-text table.
//
// # Supported Formats
//
// JSON:
//   - Indented, machine-parseable
//   - Used for HTTP responses (RespondJSON) and CLI output
//
// YAML:
//   - Human-readable, the CLI default
//   - gopkg.in/yaml.v3
//
// Table:
//   - Terminal output, write-only
//   - A slice of structs renders one row per element; headers are the json
//     tag names, title-cased with golang.org/x/text/cases
//   - Anything else is flattened into FIELD/VALUE pairs
//
// # Writing
//
//	w := serializer.NewWriter(serializer.FormatTable, os.Stdout,
//	    serializer.WithColumns("id", "title", "rating_value"))
//	if err := w.Serialize(ctx, recipes); err != nil {
//	    return err
//	}
//
// NewFileWriterOrStdout writes to a file, falling back to stdout when the
// path is empty or "-". Close releases the file.
//
// # Reading
//
//	r, err := serializer.NewFileReaderAuto("recipe.yaml")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	var payload map[string]any
//	if err := r.Deserialize(&payload); err != nil {
//	    return err
//	}
//
// Formats are detected from the file extension:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table (rejected by readers)
//   - Other → JSON
//
// The path "-" reads JSON from stdin. JSON numbers are decoded as
// json.Number so integers survive untouched.
//
// # HTTP
//
//	serializer.RespondJSON(w, http.StatusOK, data)
//
// The body is encoded before any header is written, so an encoding failure
// still produces a clean 500.
package serializer
