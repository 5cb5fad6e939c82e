// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type listParams struct {
	cli.JSONOutput
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
}

// listEntry is one row of the listing, shared by table and JSON output.
type listEntry struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Langs  []string `json:"langs"`
	Params []string `json:"params,omitempty"`
}

func listCommand() *cli.Command {
	var params listParams

	return &cli.Command{
		Name:    "list",
		Summary: "List every prompt in a collection",
		Description: `List the templates and lists of a collection, with their languages and
parameters.`,
		Usage: "promptforge collection list [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("list", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("expected no arguments, got %d", len(args))
			}
			root, err := resolveRoot(params.Collection)
			if err != nil {
				return err
			}
			coll, err := loadCollection(root, "")
			if err != nil {
				return err
			}

			var entries []listEntry
			for _, name := range coll.TemplateNames() {
				multi, err := coll.MultiTemplate(name)
				if err != nil {
					return err
				}
				entries = append(entries, listEntry{
					Name:   name,
					Kind:   "template",
					Langs:  langStrings(multi.Langs()),
					Params: multi.Params(),
				})
			}
			for _, name := range coll.ListNames() {
				multi, err := coll.MultiList(name)
				if err != nil {
					return err
				}
				entries = append(entries, listEntry{
					Name:  name,
					Kind:  "list",
					Langs: langStrings(multi.Langs()),
				})
			}

			if done, err := params.EmitJSON(entries); done {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tLANGS\tPARAMS")
			for _, entry := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
					entry.Name, entry.Kind,
					strings.Join(entry.Langs, ","),
					strings.Join(entry.Params, ","))
			}
			return tw.Flush()
		},
	}
}
