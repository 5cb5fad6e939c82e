// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/policy"
)

type lintParams struct {
	cli.JSONOutput
}

func lintCommand() *cli.Command {
	var params lintParams

	return &cli.Command{
		Name:    "lint",
		Summary: "Check a profile for structural problems",
		Description: `Parse a profile and report every structural problem: empty names,
modes without prompts or denylists, malformed glob patterns, and
duplicates. Exits non-zero when any issue is found.`,
		Usage: "promptforge policy lint [flags] <profile.jsonc>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("lint", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge policy lint [flags] <profile.jsonc>")
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			profile, err := policy.ParseProfile(data)
			if err != nil {
				return err
			}
			issues := profile.Validate()
			if done, err := params.EmitJSON(issues); done {
				if err != nil {
					return err
				}
				if len(issues) > 0 {
					return cli.ExitError{Code: 1}
				}
				return nil
			}
			for _, issue := range issues {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, issue)
			}
			if len(issues) > 0 {
				return cli.ExitError{Code: 1}
			}
			fmt.Println("ok")
			return nil
		},
	}
}
