// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

type renderParams struct {
	cli.JSONOutput
	Collection string   `flag:"collection,c" desc:"collection directory (default: config root)"`
	Lang       string   `flag:"lang,l" desc:"language code (default: config default_lang)"`
	Fallback   string   `flag:"fallback" desc:"fallback mode: error, any, default-lang"`
	Vars       []string `flag:"var,v" desc:"template variable as key=value (repeatable)"`
}

type renderResult struct {
	Name   string `json:"name"`
	Lang   string `json:"lang"`
	Output string `json:"output"`
}

func renderCommand() *cli.Command {
	var params renderParams

	return &cli.Command{
		Name:    "render",
		Summary: "Render a template with variables",
		Description: `Render a template for a language, substituting {{ placeholder }} spans
with the values given via --var. Every placeholder must be supplied and
every supplied variable must be used.`,
		Usage: "promptforge collection render [flags] <name>",
		Examples: []cli.Example{
			{
				Description: "Render a greeting in German",
				Command:     "promptforge collection render greeting --lang de --var name=Ada",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("render", &params)
		},
		Run: func(args []string) error {
			name, err := oneArg(args, "promptforge collection render [flags] <name>")
			if err != nil {
				return err
			}
			vars, err := parseVars(params.Vars)
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

			output, err := coll.Render(name, lang, vars)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(renderResult{
				Name:   name,
				Lang:   string(lang),
				Output: output,
			}); done {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}
}

// parseVars converts repeated key=value flags into template variables.
func parseVars(pairs []string) (prompt.Vars, error) {
	vars := make(prompt.Vars, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", pair)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid --var %q: empty key", pair)
		}
		if _, dup := vars[key]; dup {
			return nil, fmt.Errorf("duplicate --var %q", key)
		}
		vars[key] = value
	}
	return vars, nil
}
