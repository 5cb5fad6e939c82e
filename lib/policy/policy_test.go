// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
	"github.com/promptforge-foundation/promptforge/lib/testutil"
)

const plannerProfile = `{
	// Profile for the planning workflow.
	"name": "planner",
	"modes": {
		"plan": {
			"prompt": "planning_mode",
			"disallowed_tools": [
				"write_file", "edit_file", "bash/**", "registry/push"
			]
		},
		"execute": {
			"prompt": "execute_mode",
			"disallowed_tools": ["registry/**"]
		}
	}
}`

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.jsonc")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profile: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	profile, err := LoadProfile(writeProfile(t, plannerProfile))
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}
	if profile.Name != "planner" {
		t.Errorf("Name = %q", profile.Name)
	}
	if len(profile.Modes) != 2 {
		t.Errorf("len(Modes) = %d, want 2", len(profile.Modes))
	}
}

func TestLoadProfile_RejectsInvalid(t *testing.T) {
	t.Parallel()

	// Malformed pattern and a duplicate in one profile: both appear
	// in the joined error.
	path := writeProfile(t, `{
		"name": "broken",
		"modes": {
			"plan": {"prompt": "p", "disallowed_tools": ["bash/[x", "a", "a"]}
		}
	}`)

	_, err := LoadProfile(path)
	if err == nil {
		t.Fatal("LoadProfile() with invalid profile should fail")
	}
	if !strings.Contains(err.Error(), "bash/[x") || !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("joined error missing problems: %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	profile, err := LoadProfile(writeProfile(t, plannerProfile))
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	tests := []struct {
		mode        string
		tool        string
		wantAllowed bool
		wantPattern string
	}{
		{"plan", "write_file", false, "write_file"},
		{"plan", "bash/git/push", false, "bash/**"},
		{"plan", "registry/push", false, "registry/push"},
		{"plan", "read_file", true, ""},
		{"execute", "write_file", true, ""},
		{"execute", "registry/push", false, "registry/**"},
	}

	for _, test := range tests {
		decision, err := profile.Evaluate(test.mode, test.tool)
		if err != nil {
			t.Fatalf("Evaluate(%q, %q) error: %v", test.mode, test.tool, err)
		}
		if decision.Allowed != test.wantAllowed || decision.Pattern != test.wantPattern {
			t.Errorf("Evaluate(%q, %q) = %+v, want allowed=%v pattern=%q",
				test.mode, test.tool, decision, test.wantAllowed, test.wantPattern)
		}
	}
}

func TestEvaluate_UnknownMode(t *testing.T) {
	t.Parallel()

	profile, err := LoadProfile(writeProfile(t, plannerProfile))
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	_, err = profile.Evaluate("review", "write_file")
	if err == nil {
		t.Fatal("Evaluate() with unknown mode should fail")
	}
	if !strings.Contains(err.Error(), "plan") {
		t.Errorf("error should list available modes: %v", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	profile := &Profile{
		Modes: map[string]Mode{
			"empty": {},
			"bad":   {Prompt: "p", DisallowedTools: []string{"x**", "dup", "dup"}},
		},
	}

	issues := profile.Validate()
	var nameIssue, emptyMode, malformed, duplicate bool
	for _, issue := range issues {
		switch {
		case strings.Contains(issue, "name is empty"):
			nameIssue = true
		case strings.Contains(issue, `mode "empty"`):
			emptyMode = true
		case strings.Contains(issue, "x**"):
			malformed = true
		case strings.Contains(issue, "duplicate"):
			duplicate = true
		}
	}
	if !nameIssue || !emptyMode || !malformed || !duplicate {
		t.Errorf("Validate() = %v, missing expected issues", issues)
	}
}

func TestModePrompt(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteCollection(t, map[string]string{
		"prompts.yaml": "prompts:\n  planning_mode: 'Plan {{ task }} without executing.'\n",
	})
	c, err := collection.Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	profile, err := LoadProfile(writeProfile(t, plannerProfile))
	if err != nil {
		t.Fatalf("LoadProfile() error: %v", err)
	}

	rendered, err := profile.ModePrompt(c, "plan", "", prompt.Vars{"task": "the refactor"})
	if err != nil {
		t.Fatalf("ModePrompt() error: %v", err)
	}
	if rendered != "Plan the refactor without executing." {
		t.Errorf("ModePrompt() = %q", rendered)
	}

	// The execute mode's prompt is not in the collection.
	if _, err := profile.ModePrompt(c, "execute", "", nil); err == nil {
		t.Error("ModePrompt() with a missing template should fail")
	}
}
