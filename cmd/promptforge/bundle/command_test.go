// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/config"
	"github.com/promptforge-foundation/promptforge/lib/testutil"
)

func buildTestBundle(t *testing.T, extraArgs ...string) string {
	t.Helper()
	dir := testutil.WriteCollection(t, map[string]string{
		"prompts.yaml": "prompts:\n  greet: Hello {{ name }}\n",
		"de.yaml":      "lang: de\nprompts:\n  greet: Hallo {{ name }}\n",
	})
	out := filepath.Join(t.TempDir(), "test-1.0.0.pfb")
	args := append([]string{
		"build",
		"--collection", dir,
		"--name", "test",
		"--version", "1.0.0",
		"--output", out,
	}, extraArgs...)
	if err := Command().Execute(args); err != nil {
		t.Fatalf("bundle build error: %v", err)
	}
	return out
}

func TestBuildVerifyInspect(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	path := buildTestBundle(t)
	if err := Command().Execute([]string{"verify", path}); err != nil {
		t.Errorf("verify error: %v", err)
	}
	if err := Command().Execute([]string{"inspect", path}); err != nil {
		t.Errorf("inspect error: %v", err)
	}

	manifest, err := bundle.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if manifest.Name != "test" || manifest.Version != "1.0.0" {
		t.Errorf("manifest = %s %s, want test 1.0.0", manifest.Name, manifest.Version)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	path := buildTestBundle(t)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xff
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Command().Execute([]string{"verify", path}); err == nil {
		t.Error("verify on a corrupted bundle should fail")
	}
}

func TestExtractRoundTrip(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	path := buildTestBundle(t)
	dest := t.TempDir()
	if err := Command().Execute([]string{"extract", path, dest}); err != nil {
		t.Fatalf("extract error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dest, "de.yaml"))
	if err != nil {
		t.Fatalf("extracted file missing: %v", err)
	}
	if !strings.Contains(string(data), "Hallo") {
		t.Errorf("extracted de.yaml = %q", data)
	}
}

func TestSealedBundle(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	keyFile := filepath.Join(t.TempDir(), "bundle.key")
	if err := os.WriteFile(keyFile, []byte("0123456789abcdef0123456789abcdef\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	path := buildTestBundle(t, "--encrypt", "--key-file", keyFile)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bundle.IsEncrypted(data) {
		t.Fatal("bundle file is not sealed")
	}

	// Without the key: a clear diagnostic, not a parse error.
	err = Command().Execute([]string{"verify", path})
	if err == nil || !strings.Contains(err.Error(), "--key-file") {
		t.Errorf("verify without key = %v, want key-file diagnostic", err)
	}

	if err := Command().Execute([]string{"verify", "--key-file", keyFile, path}); err != nil {
		t.Errorf("verify with key error: %v", err)
	}

	dest := t.TempDir()
	if err := Command().Execute([]string{"extract", "--key-file", keyFile, path, dest}); err != nil {
		t.Errorf("extract with key error: %v", err)
	}
}

func TestBuildEncryptRequiresKeyFile(t *testing.T) {
	t.Setenv(config.EnvVar, "")

	dir := testutil.WriteCollection(t, map[string]string{
		"prompts.yaml": "prompts:\n  greet: Hello\n",
	})
	err := Command().Execute([]string{"build", "--collection", dir, "--encrypt"})
	if err == nil || !strings.Contains(err.Error(), "--key-file") {
		t.Errorf("build --encrypt without key = %v, want key-file error", err)
	}
}
