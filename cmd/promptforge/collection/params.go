// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type paramsParams struct {
	cli.JSONOutput
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
}

type paramsResult struct {
	Name   string   `json:"name"`
	Params []string `json:"params"`
}

func paramsCommand() *cli.Command {
	var params paramsParams

	return &cli.Command{
		Name:    "params",
		Summary: "List a template's parameters",
		Description: `List the placeholder names a template expects, in first-appearance
order. Parameters are identical across languages; a collection where
they diverge fails to load.`,
		Usage: "promptforge collection params [flags] <name>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("params", &params)
		},
		Run: func(args []string) error {
			name, err := oneArg(args, "promptforge collection params [flags] <name>")
			if err != nil {
				return err
			}
			root, err := resolveRoot(params.Collection)
			if err != nil {
				return err
			}
			coll, err := loadCollection(root, "")
			if err != nil {
				return err
			}
			templateParams, err := coll.Params(name)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(paramsResult{
				Name:   name,
				Params: templateParams,
			}); done {
				return err
			}
			for _, param := range templateParams {
				fmt.Println(param)
			}
			return nil
		},
	}
}
