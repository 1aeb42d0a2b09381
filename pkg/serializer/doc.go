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

// Package serializer encodes and decodes structured data as JSON, YAML, or
// a flattened table.
//
// Writers encode to any io.Writer, to a file, or to stdout:
//
//	w, err := serializer.NewFileWriterOrStdout(serializer.FormatFromPath(path), path)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	err = w.Serialize(ctx, summary)
//
// Readers decode JSON and YAML; FromFile is the one-call form:
//
//	cfg, err := serializer.FromFile[crawler.FileConfig]("crawl.yaml")
//
// Format detection by extension:
//   - .json → JSON
//   - .yaml, .yml → YAML
//   - .table, .txt → Table (write-only)
//   - other → JSON
//
// WriteToFile stores a byte payload unchanged, truncating any previous file.
package serializer
