// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package registry implements the promptforge registry subcommands:
// storing a token, pushing bundles, and fetching them back.
package registry

import (
	"fmt"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/registry"
)

// Command returns the "registry" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "registry",
		Summary: "Publish and fetch bundles",
		Description: `Publish bundles to a registry and fetch them back by digest. Every
command except login needs a token, resolved in order: --token-file,
the PROMPTFORGE_REGISTRY_TOKEN environment variable, then the sealed
keychain written by "registry login". A missing token fails before any
network traffic.`,
		Subcommands: []*cli.Command{
			loginCommand(),
			pushCommand(),
			existsCommand(),
			fetchCommand(),
			listCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Store a token in the sealed keychain",
				Command:     "promptforge registry login",
			},
			{
				Description: "Publish a bundle",
				Command:     "promptforge registry push team-prompts-1.4.0.pfb",
			},
		},
	}
}

// connectionParams are the flags shared by every authenticated
// registry command.
type connectionParams struct {
	Registry    string `flag:"registry,r" desc:"registry base URL (default: config registry URL)"`
	TokenFile   string `flag:"token-file" desc:"token file, \"-\" for stdin (default: config token file)"`
	KeychainDir string `flag:"keychain-dir" desc:"keychain directory (default: user config dir)"`
}

// newClient resolves the token and builds a registry client. Token
// resolution happens first: a missing credential fails here, before
// any connection is opened.
func (p *connectionParams) newClient() (*registry.Client, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, err
	}
	tokenFile := p.TokenFile
	if tokenFile == "" {
		tokenFile = cfg.Registry.TokenFile
	}
	token, err := registry.ResolveToken(tokenFile, p.KeychainDir)
	if err != nil {
		return nil, err
	}
	baseURL := p.Registry
	if baseURL == "" {
		baseURL = cfg.Registry.URL
	}
	if baseURL == "" {
		return nil, fmt.Errorf("registry URL not set (pass --registry or set registry.url in the config)")
	}
	return registry.NewClient(registry.ClientConfig{
		BaseURL: baseURL,
		Token:   token,
		Logger:  cli.NewCommandLogger(false),
	})
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
