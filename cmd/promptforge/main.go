// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// The promptforge command is the operator CLI for prompt collections:
// listing and rendering prompts, generating typed factories, building
// and publishing bundles, checking policy profiles, and browsing
// collections interactively.
package main

import (
	"fmt"
	"os"

	browsecmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/browse"
	bundlecmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/bundle"
	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	collectioncmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/collection"
	factorycmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/factory"
	policycmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/policy"
	registrycmd "github.com/promptforge-foundation/promptforge/cmd/promptforge/registry"
	"github.com/promptforge-foundation/promptforge/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that already reported their outcome (like lint and
		// check) return an ExitError carrying just the exit code.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name: "promptforge",
		Description: `Promptforge: prompt template management for agent systems.

Keep prompts in versioned YAML collections, render them in multiple
languages, generate typed Go accessors, and ship them as
content-addressed bundles through a token-gated registry.`,
		Subcommands: []*cli.Command{
			collectioncmd.Command(),
			factorycmd.Command(),
			bundlecmd.Command(),
			registrycmd.Command(),
			policycmd.Command(),
			browsecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("promptforge %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
