// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/policy"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
	"github.com/promptforge-foundation/promptforge/lib/tui"
)

type showParams struct {
	cli.JSONOutput
	Mode       string   `flag:"mode,m" desc:"mode whose prompt to render"`
	Collection string   `flag:"collection,c" desc:"collection directory (default: config root)"`
	Lang       string   `flag:"lang,l" desc:"language code (default: config default_lang)"`
	Vars       []string `flag:"var,v" desc:"prompt variable as key=value (repeatable)"`
	Raw        bool     `flag:"raw" desc:"print the rendered prompt without terminal markup"`
}

type showResult struct {
	Profile string `json:"profile"`
	Mode    string `json:"mode"`
	Prompt  string `json:"prompt"`
}

func showCommand() *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Render a mode's prompt",
		Description: `Render a mode's prompt template from the collection and print it as
markdown to the terminal. --raw skips the markup for piping into other
tools.`,
		Usage: "promptforge policy show [flags] <profile.jsonc>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge policy show [flags] <profile.jsonc>")
			if err != nil {
				return err
			}
			if params.Mode == "" {
				return fmt.Errorf("--mode is required")
			}
			profile, err := policy.LoadProfile(path)
			if err != nil {
				return err
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
			coll.SetFallback(cfg.Fallback())

			lang := prompt.LangCode(params.Lang)
			if lang == "" {
				lang = prompt.LangCode(cfg.Collection.DefaultLang)
			}
			vars, err := parseVars(params.Vars)
			if err != nil {
				return err
			}

			rendered, err := profile.ModePrompt(coll, params.Mode, lang, vars)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(showResult{
				Profile: profile.Name,
				Mode:    params.Mode,
				Prompt:  rendered,
			}); done {
				return err
			}
			if params.Raw {
				fmt.Println(rendered)
				return nil
			}
			fmt.Println(tui.RenderMarkdown(rendered, tui.DefaultTheme, terminalWidth()))
			return nil
		},
	}
}

// parseVars converts repeated key=value flags into prompt variables.
func parseVars(pairs []string) (prompt.Vars, error) {
	vars := make(prompt.Vars, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", pair)
		}
		vars[key] = value
	}
	return vars, nil
}

func terminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}
