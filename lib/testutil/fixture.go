// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteCollection writes a prompt collection fixture into a fresh
// temporary directory and returns the directory path. Keys of files
// are filenames relative to the collection root (subdirectories are
// created as needed); values are file contents, written verbatim.
//
//	dir := testutil.WriteCollection(t, map[string]string{
//		"prompts.yaml": "prompts:\n  greet: Hello {{ name }}\n",
//	})
//
// The directory is removed when the test completes.
func WriteCollection(t *testing.T, files map[string]string) string {
	t.Helper()
	directory := t.TempDir()
	for name, content := range files {
		path := filepath.Join(directory, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating fixture directory for %s: %v", name, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing fixture file %s: %v", name, err)
		}
	}
	return directory
}
