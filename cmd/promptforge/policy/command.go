// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy implements the promptforge policy subcommands for
// linting profiles, checking tools against modes, and rendering mode
// prompts.
package policy

import (
	"fmt"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

// Command returns the "policy" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "policy",
		Summary: "Work with agent policy profiles",
		Description: `Work with policy profiles: JSONC files defining agent modes, each with
a prompt template and a denylist of tool patterns. The check command is
scriptable: exit 0 means the tool is allowed, exit 1 denied.`,
		Subcommands: []*cli.Command{
			lintCommand(),
			checkCommand(),
			showCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Check whether plan mode may edit files",
				Command:     "promptforge policy check planner.jsonc --mode plan --tool fs_write",
			},
			{
				Description: "Render a mode's prompt",
				Command:     "promptforge policy show planner.jsonc --mode plan",
			},
		},
	}
}

func oneArg(args []string, usage string) (string, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 0:
		return "", fmt.Errorf("missing argument\n\nusage: %s", usage)
	default:
		return "", fmt.Errorf("expected 1 argument, got %d\n\nusage: %s", len(args), usage)
	}
}
