// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/testutil"
)

func loadFixture(t *testing.T, files map[string]string) *collection.Collection {
	t.Helper()
	c, err := collection.Load(testutil.WriteCollection(t, files))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return c
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	c := loadFixture(t, map[string]string{
		"prompts.yaml": `
prompts:
  system_intro: |
    You are {{ agent_name }}, working on {{ task }}.
  plain_notice: Static text without parameters.
  forbidden_actions:
    - one
    - two
`,
	})

	data, err := Generate(c, Options{Package: "agentprompts", Dir: "prompts"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	source := string(data)

	if !strings.HasPrefix(source, "// Code generated by promptforge factory generate; DO NOT EDIT.") {
		t.Errorf("missing generated-code header:\n%s", source)
	}
	if !strings.Contains(source, "package agentprompts") {
		t.Error("missing package clause")
	}
	for _, want := range []string{
		"func (f *PromptFactory) CreateSystemIntro(agentName any, task any) (string, error)",
		"func (f *PromptFactory) CreatePlainNotice() (string, error)",
		"func (f *PromptFactory) ListForbiddenActions() (*prompt.List, error)",
		"func NewPromptFactory(dir string, lang prompt.LangCode) (*PromptFactory, error)",
	} {
		if !strings.Contains(source, want) {
			t.Errorf("generated source missing %q:\n%s", want, source)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"prompts.yaml": "prompts:\n  b_second: '{{ x }}'\n  a_first: '{{ y }}'\n  items:\n    - one\n",
	}
	opts := Options{Package: "prompts", Dir: "d"}

	first, err := Generate(loadFixture(t, files), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	second, err := Generate(loadFixture(t, files), opts)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Generate() output differs across runs")
	}

	// Methods appear in sorted prompt-name order.
	if strings.Index(string(first), "CreateAFirst") > strings.Index(string(first), "CreateBSecond") {
		t.Error("methods not in sorted order")
	}
}

func TestGenerate_KeywordParameter(t *testing.T) {
	t.Parallel()

	c := loadFixture(t, map[string]string{
		"prompts.yaml": "prompts:\n  show: 'Show {{ type }} of {{ range }}'\n",
	})

	data, err := Generate(c, Options{Package: "prompts", Dir: "d"})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !strings.Contains(string(data), "typeArg any") || !strings.Contains(string(data), "rangeArg any") {
		t.Errorf("keyword parameters not suffixed:\n%s", data)
	}
}

func TestGenerate_MethodCollision(t *testing.T) {
	t.Parallel()

	c := loadFixture(t, map[string]string{
		"prompts.yaml": "prompts:\n  a_b: one\n  a__b: two\n",
	})

	_, err := Generate(c, Options{Package: "prompts", Dir: "d"})
	if err == nil {
		t.Fatal("Generate() with colliding method names should fail")
	}
	if !strings.Contains(err.Error(), "a_b") || !strings.Contains(err.Error(), "a__b") {
		t.Errorf("collision error should list both names: %v", err)
	}
}

func TestGenerate_RequiredOptions(t *testing.T) {
	t.Parallel()

	c := loadFixture(t, map[string]string{"prompts.yaml": "prompts:\n  a: one\n"})

	if _, err := Generate(c, Options{Dir: "d"}); err == nil {
		t.Error("Generate() without a package name should fail")
	}
	if _, err := Generate(c, Options{Package: "p"}); err == nil {
		t.Error("Generate() without a collection dir should fail")
	}
}

func TestExportedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"system_intro", "SystemIntro"},
		{"a", "A"},
		{"already", "Already"},
		{"double__underscore", "DoubleUnderscore"},
		{"trailing_", "Trailing"},
	}
	for _, test := range tests {
		if got := exportedName(test.in); got != test.want {
			t.Errorf("exportedName(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}

func TestWriteFile_Atomic(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "gen", "factory.go")
	if err := WriteFile(path, []byte("package prompts\n")); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "package prompts\n" {
		t.Errorf("output = %q", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0o644 {
		t.Errorf("mode = %o, want 644", mode)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("output directory has %d entries, want 1", len(entries))
	}
}
