// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/bundle"
)

type verifyParams struct {
	cli.JSONOutput
	KeyFile string `flag:"key-file" desc:"key material file for sealed bundles, \"-\" for stdin"`
}

type verifyResult struct {
	Path    string `json:"path"`
	Digest  string `json:"digest"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Files   int    `json:"files"`
}

func verifyCommand() *cli.Command {
	var params verifyParams

	return &cli.Command{
		Name:    "verify",
		Summary: "Verify a bundle's integrity",
		Description: `Decompress and re-hash every payload in a bundle and check it against
the manifest. Any mismatch fails, naming the corrupted file.`,
		Usage: "promptforge bundle verify [flags] <path>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("verify", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge bundle verify [flags] <path>")
			if err != nil {
				return err
			}
			data, err := readBundle(path, params.KeyFile)
			if err != nil {
				return err
			}
			manifest, err := bundle.Verify(data)
			if err != nil {
				return err
			}
			digest, err := manifest.Digest()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(verifyResult{
				Path:    path,
				Digest:  digest,
				Name:    manifest.Name,
				Version: manifest.Version,
				Files:   len(manifest.Files),
			}); done {
				return err
			}
			fmt.Printf("ok: %s %s (%d files, digest %s)\n", manifest.Name, manifest.Version, len(manifest.Files), digest)
			return nil
		},
	}
}
