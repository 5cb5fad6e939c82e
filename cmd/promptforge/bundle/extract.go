// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/bundle"
)

type extractParams struct {
	KeyFile string `flag:"key-file" desc:"key material file for sealed bundles, \"-\" for stdin"`
}

func extractCommand() *cli.Command {
	var params extractParams

	return &cli.Command{
		Name:    "extract",
		Summary: "Extract a bundle into a directory",
		Description: `Verify a bundle and write its files into a directory, recreating the
collection the bundle was built from. The destination is created if
missing; entries that would escape it are refused.`,
		Usage: "promptforge bundle extract [flags] <path> <dest>",
		Examples: []cli.Example{
			{
				Description: "Unpack a fetched bundle",
				Command:     "promptforge bundle extract team-prompts-1.4.0.pfb prompts/",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("extract", &params)
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected 2 arguments, got %d\n\nusage: promptforge bundle extract [flags] <path> <dest>", len(args))
			}
			data, err := readBundle(args[0], params.KeyFile)
			if err != nil {
				return err
			}
			manifest, err := bundle.Extract(data, args[1])
			if err != nil {
				return err
			}
			fmt.Printf("extracted %d files to %s\n", len(manifest.Files), args[1])
			return nil
		},
	}
}
