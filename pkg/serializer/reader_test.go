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

package serializer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"crawl.json", FormatJSON},
		{"crawl.JSON", FormatJSON},
		{"crawl.yaml", FormatYAML},
		{"dir/crawl.yml", FormatYAML},
		{"summary.txt", FormatTable},
		{"summary.table", FormatTable},
		{"summary", FormatJSON},
		{"summary.xml", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNewReader_RejectsUnreadableFormats(t *testing.T) {
	for _, f := range []Format{FormatTable, Format("xml")} {
		if _, err := NewReader(f, strings.NewReader("")); err == nil {
			t.Errorf("format %q: expected error", f)
		}
		if _, err := NewFileReader(f, "ignored"); err == nil {
			t.Errorf("format %q: expected error from NewFileReader", f)
		}
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"runId":"r1","orgs":["o1","o2"],"hosts":3}`},
		{"yaml", FormatYAML, "runId: r1\norgs: [o1, o2]\nhosts: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader: %v", err)
			}
			var got testSummary
			if err := r.Deserialize(&got); err != nil {
				t.Fatalf("Deserialize: %v", err)
			}
			if got.RunID != "r1" || got.Hosts != 3 || len(got.Orgs) != 2 {
				t.Errorf("unexpected result: %+v", got)
			}
		})
	}
}

func TestReader_Strict(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, `{"runId":"r1","bogus":true}`},
		{FormatYAML, "runId: r1\nbogus: true\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			lax, _ := NewReader(tt.format, strings.NewReader(tt.input))
			var a testSummary
			if err := lax.Deserialize(&a); err != nil {
				t.Fatalf("lax Deserialize: %v", err)
			}

			strict, _ := NewReader(tt.format, strings.NewReader(tt.input), WithStrict())
			var b testSummary
			if err := strict.Deserialize(&b); err == nil {
				t.Fatal("strict reader accepted an unknown key")
			}
		})
	}
}

func TestReader_NilChecks(t *testing.T) {
	var r *Reader
	if err := r.Deserialize(&testSummary{}); err == nil {
		t.Error("nil reader should fail")
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil reader: %v", err)
	}

	empty, _ := NewReader(FormatJSON, nil)
	if err := empty.Deserialize(&testSummary{}); err == nil {
		t.Error("nil input should fail")
	}
}

func TestFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.yaml")

	w, err := NewFileWriter(FormatYAML, path)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	if err := w.Serialize(context.Background(), sampleSummary()); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got, err := FromFile[testSummary](path, WithStrict())
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if got.RunID != "r1" || got.Orgs[0] != "o1" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFromFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := FromFile[testSummary](filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile[testSummary](bad); err == nil {
		t.Error("expected decode error")
	}

	table := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(table, []byte("FIELD VALUE"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile[testSummary](table); err == nil {
		t.Error("expected error for table format")
	}
}
