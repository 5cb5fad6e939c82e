// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package browse implements the promptforge browse command: an
// interactive terminal browser over a prompt collection with fuzzy
// filtering, a preview pane, and language cycling.
package browse

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

type browseParams struct {
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
	Fallback   string `flag:"fallback" desc:"fallback mode: error, any, default-lang"`
}

// Command returns the "browse" command.
func Command() *cli.Command {
	var params browseParams

	return &cli.Command{
		Name:    "browse",
		Summary: "Browse a collection interactively",
		Description: `Open a terminal browser over the collection: type / to fuzzy-filter
the prompt list, arrows or j/k to move, l to cycle languages, enter to
print the selected prompt's source to stdout and exit. The UI renders
on stderr, so the selection can be piped.`,
		Usage: "promptforge browse [flags]",
		Examples: []cli.Example{
			{
				Description: "Pick a prompt and pipe it into the clipboard",
				Command:     "promptforge browse | wl-copy",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("browse", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge browse [flags]")
			}
			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}
			root := params.Collection
			if root == "" {
				root = cfg.Collection.Root
			}
			coll, err := collection.Load(root)
			if err != nil {
				return err
			}
			if params.Fallback != "" {
				fallback, err := prompt.ParseFallback(params.Fallback)
				if err != nil {
					return err
				}
				coll.SetFallback(fallback)
			} else {
				coll.SetFallback(cfg.Fallback())
			}

			program := tea.NewProgram(NewModel(coll),
				tea.WithAltScreen(),
				tea.WithOutput(os.Stderr))
			final, err := program.Run()
			if err != nil {
				return err
			}
			if model, ok := final.(Model); ok && model.Selected != "" {
				fmt.Println(model.Selected)
			}
			return nil
		},
	}
}
