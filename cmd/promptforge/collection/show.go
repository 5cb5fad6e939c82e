// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/tui"
)

type showParams struct {
	cli.JSONOutput
	Collection string `flag:"collection,c" desc:"collection directory (default: config root)"`
	Lang       string `flag:"lang,l" desc:"language code (default: config default_lang)"`
	Fallback   string `flag:"fallback" desc:"fallback mode: error, any, default-lang"`
	Highlight  bool   `flag:"highlight" desc:"syntax-highlight the source"`
	Doc        bool   `flag:"doc" desc:"render the source as markdown to the terminal"`
}

// showResult is the JSON form of a shown prompt.
type showResult struct {
	Name   string   `json:"name"`
	Kind   string   `json:"kind"`
	Lang   string   `json:"lang"`
	Source string   `json:"source,omitempty"`
	Items  []string `json:"items,omitempty"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Show a prompt's source",
		Description: `Show the raw source of a template or the items of a list, resolved for
a language. --highlight marks {{ placeholder }} spans (templates) or
colors the YAML (lists); --doc renders the source as markdown.`,
		Usage: "promptforge collection show [flags] <name>",
		Examples: []cli.Example{
			{
				Description: "Show the German variant of a template",
				Command:     "promptforge collection show greeting --lang de",
			},
			{
				Description: "Render a template's documentation to the terminal",
				Command:     "promptforge collection show review_guide --doc",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			name, err := oneArg(args, "promptforge collection show [flags] <name>")
			if err != nil {
				return err
			}
			root, err := resolveRoot(params.Collection)
			if err != nil {
				return err
			}
			coll, err := loadCollection(root, params.Fallback)
			if err != nil {
				return err
			}
			lang, err := langOrDefault(params.Lang)
			if err != nil {
				return err
			}

			result := showResult{Name: name, Lang: string(lang)}
			if template, err := coll.Template(name, lang); err == nil {
				result.Kind = "template"
				result.Source = template.Source()
			} else if list, listErr := coll.List(name, lang); listErr == nil {
				result.Kind = "list"
				result.Items = list.Items()
			} else {
				return err
			}

			if done, err := params.EmitJSON(result); done {
				return err
			}
			return printShown(result, params.Highlight, params.Doc)
		},
	}
}

func printShown(result showResult, highlight, doc bool) error {
	if result.Kind == "list" {
		var yamlSource strings.Builder
		fmt.Fprintf(&yamlSource, "%s:\n", result.Name)
		for _, item := range result.Items {
			fmt.Fprintf(&yamlSource, "  - %q\n", item)
		}
		if highlight {
			return quick.Highlight(os.Stdout, yamlSource.String(), "yaml", "terminal256", "monokai")
		}
		_, err := fmt.Print(yamlSource.String())
		return err
	}

	switch {
	case doc:
		fmt.Println(tui.RenderMarkdown(result.Source, tui.DefaultTheme, terminalWidth()))
	case highlight:
		renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
		fmt.Println(tui.HighlightPlaceholders(result.Source, tui.DefaultTheme, renderer))
	default:
		fmt.Println(result.Source)
	}
	return nil
}

// terminalWidth returns the stdout width, or 80 when stdout is not a
// terminal.
func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
