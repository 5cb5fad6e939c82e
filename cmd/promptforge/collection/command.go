// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package collection implements the promptforge collection subcommands
// for working with prompt collections on disk: listing, showing,
// rendering, and linting the YAML files of a collection directory.
package collection

import (
	"fmt"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// Command returns the "collection" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "collection",
		Summary: "Work with prompt collections",
		Description: `Work with prompt collections: directories of YAML files holding named
templates and lists, each potentially in several languages.

Commands default to the collection root from the promptforge.yaml
config (PROMPTFORGE_CONFIG) and accept --collection to point anywhere
else.`,
		Subcommands: []*cli.Command{
			listCommand(),
			showCommand(),
			renderCommand(),
			paramsCommand(),
			lintCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "List every prompt in the configured collection",
				Command:     "promptforge collection list",
			},
			{
				Description: "Render a template with variables",
				Command:     "promptforge collection render greeting --var name=alice",
			},
			{
				Description: "Lint a collection directory",
				Command:     "promptforge collection lint --collection prompts/",
			},
		},
	}
}

// resolveRoot picks the collection directory: the flag wins, then the
// config file's collection root.
func resolveRoot(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.Collection.Root, nil
}

// loadCollection loads the collection at root and applies the
// configured fallback mode unless overridden.
func loadCollection(root, fallbackFlag string) (*collection.Collection, error) {
	coll, err := collection.Load(root)
	if err != nil {
		return nil, err
	}
	if fallbackFlag != "" {
		fallback, err := prompt.ParseFallback(fallbackFlag)
		if err != nil {
			return nil, err
		}
		coll.SetFallback(fallback)
		return coll, nil
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, err
	}
	coll.SetFallback(cfg.Fallback())
	return coll, nil
}

// langOrDefault maps the --lang flag to a language code, consulting
// the config default when the flag is empty.
func langOrDefault(flagValue string) (prompt.LangCode, error) {
	if flagValue != "" {
		return prompt.LangCode(flagValue), nil
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return "", err
	}
	return prompt.LangCode(cfg.Collection.DefaultLang), nil
}

func langStrings(langs []prompt.LangCode) []string {
	out := make([]string, len(langs))
	for i, lang := range langs {
		out[i] = string(lang)
	}
	return out
}

func oneArg(args []string, usage string) (string, error) {
	switch len(args) {
	case 1:
		return args[0], nil
	case 0:
		return "", fmt.Errorf("missing argument\n\nusage: %s", usage)
	default:
		return "", fmt.Errorf("expected 1 argument, got %d\n\nusage: %s", len(args), usage)
	}
}
