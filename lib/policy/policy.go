// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy defines agent profiles: named operating modes, each
// pairing a mode prompt with a static denylist of tool patterns. A
// planning mode, for example, renders a planning prompt and denies
// every tool that could mutate state.
//
// Profile files are JSONC — JSON with comments — so denylists can
// document why each pattern is there:
//
//	{
//	  // Profile for the planning workflow.
//	  "name": "planner",
//	  "modes": {
//	    "plan": {
//	      "prompt": "planning_mode",
//	      "disallowed_tools": [
//	        "write_file", "edit_file", "bash/**", "registry/push"
//	      ]
//	    }
//	  }
//	}
//
// Evaluation is a pure denylist: a tool matched by any pattern of the
// mode is denied, everything else is allowed.
package policy

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/jsonc"

	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// Profile is a named set of agent modes.
type Profile struct {
	// Name identifies the profile, e.g. "planner".
	Name string `json:"name"`

	// Modes maps mode names to their configuration.
	Modes map[string]Mode `json:"modes"`
}

// Mode is one agent operating state.
type Mode struct {
	// Prompt is the name of the mode's prompt template in the
	// collection.
	Prompt string `json:"prompt"`

	// DisallowedTools is the denylist of tool patterns (see
	// MatchPattern for the glob grammar). Order is significant only
	// for reporting: the first matching pattern is named in the
	// Decision.
	DisallowedTools []string `json:"disallowed_tools"`
}

// Decision is the outcome of evaluating one tool against one mode.
type Decision struct {
	// Allowed is false if any pattern matched the tool.
	Allowed bool `json:"allowed"`

	// Pattern is the denylist entry that matched. Empty when
	// Allowed.
	Pattern string `json:"pattern,omitempty"`
}

// ParseProfile parses JSONC profile data without validating it. Use
// LoadProfile for the common parse-and-validate path; ParseProfile
// exists for lint, which wants the issues list rather than an error.
func ParseProfile(data []byte) (*Profile, error) {
	var profile Profile
	if err := json.Unmarshal(jsonc.ToJSON(data), &profile); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	return &profile, nil
}

// LoadProfile reads, parses, and validates a profile file. Validation
// problems are joined into one error.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	profile, err := ParseProfile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if issues := profile.Validate(); len(issues) > 0 {
		errs := make([]error, len(issues))
		for i, issue := range issues {
			errs[i] = fmt.Errorf("%s: %s", path, issue)
		}
		return nil, errors.Join(errs...)
	}
	return profile, nil
}

// Validate returns every structural problem in the profile: empty
// name, no modes, modes with neither a prompt nor a denylist,
// malformed glob patterns, duplicate patterns. An empty result means
// the profile is usable.
func (p *Profile) Validate() []string {
	var issues []string

	if p.Name == "" {
		issues = append(issues, "profile name is empty")
	}
	if len(p.Modes) == 0 {
		issues = append(issues, "profile has no modes")
	}

	modeNames := make([]string, 0, len(p.Modes))
	for name := range p.Modes {
		modeNames = append(modeNames, name)
	}
	sort.Strings(modeNames)

	for _, modeName := range modeNames {
		mode := p.Modes[modeName]
		if mode.Prompt == "" && len(mode.DisallowedTools) == 0 {
			issues = append(issues, fmt.Sprintf("mode %q has no prompt and no disallowed tools", modeName))
		}
		seen := make(map[string]bool, len(mode.DisallowedTools))
		for _, pattern := range mode.DisallowedTools {
			if seen[pattern] {
				issues = append(issues, fmt.Sprintf("mode %q: duplicate pattern %q", modeName, pattern))
				continue
			}
			seen[pattern] = true
			if err := CheckPattern(pattern); err != nil {
				issues = append(issues, fmt.Sprintf("mode %q: pattern %q: %v", modeName, pattern, err))
			}
		}
	}
	return issues
}

// Mode returns the named mode. Unknown modes are an error listing the
// available ones.
func (p *Profile) Mode(name string) (Mode, error) {
	mode, exists := p.Modes[name]
	if !exists {
		available := make([]string, 0, len(p.Modes))
		for modeName := range p.Modes {
			available = append(available, modeName)
		}
		sort.Strings(available)
		return Mode{}, fmt.Errorf("profile %q has no mode %q (available: %v)", p.Name, name, available)
	}
	return mode, nil
}

// Evaluate checks one tool against one mode's denylist. Pure and
// stateless: the same inputs always produce the same decision. Tools
// not matched by any pattern are allowed.
func (p *Profile) Evaluate(modeName, tool string) (Decision, error) {
	mode, err := p.Mode(modeName)
	if err != nil {
		return Decision{}, err
	}
	for _, pattern := range mode.DisallowedTools {
		if MatchPattern(pattern, tool) {
			return Decision{Allowed: false, Pattern: pattern}, nil
		}
	}
	return Decision{Allowed: true}, nil
}

// ModePrompt renders the mode's prompt template from a collection.
func (p *Profile) ModePrompt(c *collection.Collection, modeName string, lang prompt.LangCode, vars prompt.Vars) (string, error) {
	mode, err := p.Mode(modeName)
	if err != nil {
		return "", err
	}
	if mode.Prompt == "" {
		return "", fmt.Errorf("profile %q mode %q has no prompt", p.Name, modeName)
	}
	return c.Render(mode.Prompt, lang, vars)
}
