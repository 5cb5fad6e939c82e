// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type listParams struct {
	cli.JSONOutput
	connectionParams
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List the bundles the registry holds",
		Usage:   "promptforge registry list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge registry list [flags]")
			}
			client, err := params.newClient()
			if err != nil {
				return err
			}
			entries, err := client.Index(context.Background())
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}
			w := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(w, "NAME\tVERSION\tSIZE\tUPLOADED\tDIGEST")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
					entry.Name, entry.Version, entry.Size, entry.UploadedAt, entry.Digest)
			}
			return w.Flush()
		},
	}
}
