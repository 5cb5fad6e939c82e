// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/collection"
)

type lintParams struct {
	cli.JSONOutput
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
}

func lintCommand() *cli.Command {
	var params lintParams

	return &cli.Command{
		Name:    "lint",
		Summary: "Check a collection for structural problems",
		Description: `Check every collection file and report all problems found: malformed
YAML, empty templates, reserved or inconsistent parameters, duplicate
definitions, and kind collisions. Exits non-zero when any issue is
found.`,
		Usage: "promptforge collection lint [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("lint", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge collection lint [flags]")
			}
			root, err := resolveRoot(params.Collection)
			if err != nil {
				return err
			}
			issues := collection.Lint(root)
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
				fmt.Fprintln(os.Stderr, issue)
			}
			if len(issues) > 0 {
				return cli.ExitError{Code: 1}
			}
			fmt.Println("ok")
			return nil
		},
	}
}
