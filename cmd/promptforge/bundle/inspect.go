// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/bundle"
)

type inspectParams struct {
	cli.JSONOutput
	KeyFile string `flag:"key-file" desc:"key material file for sealed bundles, \"-\" for stdin"`
}

type inspectResult struct {
	Digest   string           `json:"digest"`
	Manifest *bundle.Manifest `json:"manifest"`
}

func inspectCommand() *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Print a bundle's manifest",
		Description: `Print the manifest of a bundle: name, version, digest, languages, and
the per-file table with sizes and compression. Reads only the manifest;
use "bundle verify" to check payload integrity.`,
		Usage: "promptforge bundle inspect [flags] <path>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge bundle inspect [flags] <path>")
			if err != nil {
				return err
			}
			data, err := readBundle(path, params.KeyFile)
			if err != nil {
				return err
			}
			manifest, err := bundle.Read(data)
			if err != nil {
				return err
			}
			digest, err := manifest.Digest()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(inspectResult{Digest: digest, Manifest: manifest}); done {
				return err
			}
			printManifest(manifest, digest)
			return nil
		},
	}
}

func printManifest(manifest *bundle.Manifest, digest string) {
	fmt.Printf("name:       %s\n", manifest.Name)
	fmt.Printf("version:    %s\n", manifest.Version)
	fmt.Printf("digest:     %s\n", digest)
	fmt.Printf("created:    %s\n", manifest.CreatedAt)
	fmt.Printf("languages:  %s\n", strings.Join(manifest.Languages, ", "))
	fmt.Printf("templates:  %s\n", strings.Join(manifest.TemplateNames, ", "))
	fmt.Printf("lists:      %s\n", strings.Join(manifest.ListNames, ", "))
	fmt.Printf("total size: %d bytes\n\n", manifest.TotalSize)

	w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PATH\tSIZE\tCOMPRESSION\tSTORED")
	for _, file := range manifest.Files {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", file.Path, file.Size, file.Compression, file.CompressedSize)
	}
	w.Flush()
}
