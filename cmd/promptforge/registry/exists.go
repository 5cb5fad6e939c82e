// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type existsParams struct {
	cli.JSONOutput
	connectionParams
}

type existsResult struct {
	Digest string `json:"digest"`
	Exists bool   `json:"exists"`
}

func existsCommand() *cli.Command {
	var params existsParams

	return &cli.Command{
		Name:    "exists",
		Summary: "Check whether the registry has a digest",
		Description: `Check whether the registry holds a bundle with the given digest.
Exits 0 when present, 1 when absent.`,
		Usage: "promptforge registry exists [flags] <digest>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("exists", &params)
		},
		Run: func(args []string) error {
			digest, err := oneArg(args, "promptforge registry exists [flags] <digest>")
			if err != nil {
				return err
			}
			client, err := params.newClient()
			if err != nil {
				return err
			}
			exists, err := client.Exists(context.Background(), digest)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(existsResult{Digest: digest, Exists: exists}); done {
				if err != nil {
					return err
				}
				if !exists {
					return cli.ExitError{Code: 1}
				}
				return nil
			}
			if !exists {
				fmt.Println("absent")
				return cli.ExitError{Code: 1}
			}
			fmt.Println("present")
			return nil
		},
	}
}
