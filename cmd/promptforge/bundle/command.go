// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle implements the promptforge bundle subcommands for
// building, verifying, inspecting, and extracting .pfb bundles.
package bundle

import (
	"fmt"
	"os"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// Command returns the "bundle" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "bundle",
		Summary: "Build and inspect prompt bundles",
		Description: `Build and inspect .pfb bundles: content-addressed archives of a prompt
collection with a deterministic CBOR manifest and per-file integrity
hashes. Bundles are what the registry stores and serves.`,
		Subcommands: []*cli.Command{
			buildCommand(),
			verifyCommand(),
			inspectCommand(),
			extractCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Build a bundle from the configured collection",
				Command:     "promptforge bundle build --version 1.4.0",
			},
			{
				Description: "Verify a downloaded bundle",
				Command:     "promptforge bundle verify team-prompts-1.4.0.pfb",
			},
		},
	}
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

// readBundle loads a bundle file, transparently unsealing it when a
// key file is given. A sealed bundle without a key fails with the
// encrypted-bundle diagnostic from lib/bundle.
func readBundle(path, keyFile string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !bundle.IsEncrypted(data) {
		return data, nil
	}
	if keyFile == "" {
		return nil, fmt.Errorf("%s is encrypted: pass --key-file to unseal it", path)
	}
	key, err := secret.ReadFromPath(keyFile)
	if err != nil {
		return nil, err
	}
	defer key.Close()
	return bundle.Decrypt(data, key)
}
