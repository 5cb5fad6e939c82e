// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/policy"
)

type checkParams struct {
	cli.JSONOutput
	Mode string `flag:"mode,m" desc:"mode to evaluate against"`
	Tool string `flag:"tool,t" desc:"tool name to check"`
}

type checkResult struct {
	Mode    string `json:"mode"`
	Tool    string `json:"tool"`
	Allowed bool   `json:"allowed"`
	Pattern string `json:"pattern,omitempty"`
}

func checkCommand() *cli.Command {
	var params checkParams

	return &cli.Command{
		Name:    "check",
		Summary: "Check a tool against a mode's denylist",
		Description: `Evaluate one tool name against one mode. Exit 0 means allowed, exit 1
denied; the matching denylist pattern is printed on denial. Built for
scripting agent harnesses.`,
		Usage: "promptforge policy check [flags] <profile.jsonc>",
		Examples: []cli.Example{
			{
				Description: "Deny check in a shell hook",
				Command:     "promptforge policy check planner.jsonc --mode plan --tool fs_write || exit 1",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge policy check [flags] <profile.jsonc>")
			if err != nil {
				return err
			}
			if params.Mode == "" || params.Tool == "" {
				return fmt.Errorf("--mode and --tool are required")
			}
			profile, err := policy.LoadProfile(path)
			if err != nil {
				return err
			}
			decision, err := profile.Evaluate(params.Mode, params.Tool)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(checkResult{
				Mode:    params.Mode,
				Tool:    params.Tool,
				Allowed: decision.Allowed,
				Pattern: decision.Pattern,
			}); done {
				if err != nil {
					return err
				}
				if !decision.Allowed {
					return cli.ExitError{Code: 1}
				}
				return nil
			}
			if !decision.Allowed {
				fmt.Printf("denied: %q matches pattern %q\n", params.Tool, decision.Pattern)
				return cli.ExitError{Code: 1}
			}
			fmt.Println("allowed")
			return nil
		},
	}
}
