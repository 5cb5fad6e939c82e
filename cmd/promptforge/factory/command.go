// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package factory implements the promptforge factory subcommands for
// generating typed Go factories from a prompt collection.
package factory

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/factory"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

type generateParams struct {
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
	Package    string `flag:"package,p" desc:"package name of the generated file (default: config package)"`
	Output     string `flag:"output,o" desc:"output path, \"-\" for stdout (default: config output)"`
	Lang       string `flag:"lang,l" desc:"language supplying parameter order (default: collection default)"`
}

// Command returns the "factory" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "factory",
		Summary: "Generate typed Go code from collections",
		Subcommands: []*cli.Command{
			generateCommand(),
		},
	}
}

func generateCommand() *cli.Command {
	var params generateParams

	return &cli.Command{
		Name:    "generate",
		Summary: "Generate a typed Go factory for a collection",
		Description: `Generate a Go source file with one method per prompt: CreateX methods
with one argument per template placeholder, and ListX methods for
lists. The factory pins a language at construction. The output is
gofmt-formatted and deterministic, so regenerating an unchanged
collection is a no-op in version control.`,
		Usage: "promptforge factory generate [flags]",
		Examples: []cli.Example{
			{
				Description: "Generate using the config file's settings",
				Command:     "promptforge factory generate",
			},
			{
				Description: "Generate to stdout for inspection",
				Command:     "promptforge factory generate --collection prompts/ --package prompts --output -",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("generate", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge factory generate [flags]")
			}
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}

			root := params.Collection
			if root == "" {
				root = cfg.Collection.Root
			}
			packageName := params.Package
			if packageName == "" {
				packageName = cfg.Generate.Package
			}
			output := params.Output
			if output == "" {
				output = cfg.Generate.Output
			}

			coll, err := collection.Load(root)
			if err != nil {
				return err
			}
			coll.SetFallback(cfg.Fallback())

			source, err := factory.Generate(coll, factory.Options{
				Package: packageName,
				Dir:     root,
				Lang:    prompt.LangCode(params.Lang),
			})
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := fmt.Print(string(source))
				return err
			}
			if err := factory.WriteFile(output, source); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", output)
			return nil
		},
	}
}
