// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"strings"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/testutil"
)

// hasIssue reports whether any issue for the given prompt name
// contains the substring.
func hasIssue(issues []Issue, name, substring string) bool {
	for _, issue := range issues {
		if issue.Name == name && strings.Contains(issue.Message, substring) {
			return true
		}
	}
	return false
}

func TestLint_CleanCollection(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteCollection(t, map[string]string{
		"base.yaml": "prompts:\n  greet: Hello {{ name }}\n  rules:\n    - be nice\n",
		"de.yaml":   "lang: de\nprompts:\n  greet: Hallo {{ name }}\n",
	})

	if issues := Lint(dir); len(issues) != 0 {
		t.Errorf("Lint() on a clean collection = %v", issues)
	}
}

func TestLint_ReportsEverythingWithoutStopping(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteCollection(t, map[string]string{
		// Malformed placeholder and an empty template in one file.
		"a.yaml": "prompts:\n  broken: 'Hello {{ 1bad }}'\n  empty: ''\n",
		// Reserved parameter name.
		"b.yaml": "prompts:\n  lookup: 'Value {{ lang }}'\n",
		// Parameter mismatch with c.yaml.
		"c.yaml": "prompts:\n  greet: Hello {{ name }}\n",
		"d.yaml": "lang: de\nprompts:\n  greet: Hallo {{ name }} aus {{ city }}\n",
		// Misplaced language selector.
		"e.yaml": "prompts:\n  lang: de\n  fine: Hello\n",
	})

	issues := Lint(dir)

	if !hasIssue(issues, "broken", "malformed placeholder") {
		t.Errorf("missing malformed-placeholder issue: %v", issues)
	}
	if !hasIssue(issues, "empty", "empty") {
		t.Errorf("missing empty-template issue: %v", issues)
	}
	if !hasIssue(issues, "lookup", "reserved") {
		t.Errorf("missing reserved-parameter issue: %v", issues)
	}
	if !hasIssue(issues, "greet", "parameters") {
		t.Errorf("missing parameter-mismatch issue: %v", issues)
	}

	misplacedLang := false
	for _, issue := range issues {
		if issue.File == "e.yaml" && issue.Name == "" && strings.Contains(issue.Message, "lang") {
			misplacedLang = true
		}
	}
	if !misplacedLang {
		t.Errorf("missing misplaced-lang issue: %v", issues)
	}
}

func TestLint_DuplicatesAndCollisions(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteCollection(t, map[string]string{
		"a.yaml": "prompts:\n  greet: Hello\n  mixed: Text\n",
		"b.yaml": "prompts:\n  greet: Howdy\n",
		"c.yaml": "lang: de\nprompts:\n  mixed:\n    - ein Eintrag\n",
	})

	issues := Lint(dir)

	if !hasIssue(issues, "greet", "already defined") {
		t.Errorf("missing duplicate issue: %v", issues)
	}
	if !hasIssue(issues, "mixed", "template elsewhere") {
		t.Errorf("missing kind-collision issue: %v", issues)
	}
}

func TestLint_FileLevelProblems(t *testing.T) {
	t.Parallel()

	dir := testutil.WriteCollection(t, map[string]string{
		"bad.yaml":  "prompts: [unclosed\n",
		"empty.yml": "lang: en\n",
		"good.yaml": "prompts:\n  greet: Hello\n",
	})

	issues := Lint(dir)

	var badReported, emptyReported bool
	for _, issue := range issues {
		switch issue.File {
		case "bad.yaml":
			badReported = true
		case "empty.yml":
			if strings.Contains(issue.Message, "prompts") {
				emptyReported = true
			}
		case "good.yaml":
			t.Errorf("good.yaml should have no issues: %v", issue)
		}
	}
	if !badReported {
		t.Errorf("missing YAML-parse issue for bad.yaml: %v", issues)
	}
	if !emptyReported {
		t.Errorf("missing missing-prompts issue for empty.yml: %v", issues)
	}
}

func TestIssue_String(t *testing.T) {
	t.Parallel()

	withName := Issue{File: "a.yaml", Name: "greet", Message: "template is empty"}
	if got := withName.String(); got != `a.yaml: prompt "greet": template is empty` {
		t.Errorf("String() = %q", got)
	}
	fileOnly := Issue{File: "a.yaml", Message: "missing prompts key"}
	if got := fileOnly.String(); got != "a.yaml: missing prompts key" {
		t.Errorf("String() = %q", got)
	}
}
