// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type fetchParams struct {
	cli.JSONOutput
	connectionParams
	Output string `flag:"output,o" desc:"destination path (default: <digest>.pfb)"`
}

type fetchResult struct {
	Digest  string `json:"digest"`
	Path    string `json:"path"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

func fetchCommand() *cli.Command {
	var params fetchParams

	return &cli.Command{
		Name:    "fetch",
		Summary: "Download a bundle by digest",
		Description: `Download a bundle and verify the bytes against the requested digest
before writing the destination file. A response that fails
verification leaves nothing on disk.`,
		Usage: "promptforge registry fetch [flags] <digest>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("fetch", &params)
		},
		Run: func(args []string) error {
			digest, err := oneArg(args, "promptforge registry fetch [flags] <digest>")
			if err != nil {
				return err
			}
			client, err := params.newClient()
			if err != nil {
				return err
			}
			dest := params.Output
			if dest == "" {
				dest = digest + ".pfb"
			}
			manifest, err := client.Fetch(context.Background(), digest, dest)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(fetchResult{
				Digest:  digest,
				Path:    dest,
				Name:    manifest.Name,
				Version: manifest.Version,
			}); done {
				return err
			}
			fmt.Printf("fetched %s %s to %s\n", manifest.Name, manifest.Version, dest)
			return nil
		},
	}
}
