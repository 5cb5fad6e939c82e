// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"fmt"
	"os"

	"github.com/promptforge-foundation/promptforge/lib/sealed"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// TokenEnvVar is the environment variable consulted for a registry
// token when no --token-file is given.
const TokenEnvVar = "PROMPTFORGE_REGISTRY_TOKEN"

// ErrNoToken reports that no registry token could be found anywhere.
// Its text is the operator-facing diagnostic: commands print it and
// exit without opening a single connection.
var ErrNoToken = errors.New(`registry token not set (set PROMPTFORGE_REGISTRY_TOKEN, pass --token-file, or run "promptforge registry login")`)

// ResolveToken finds the registry token, trying in order: the
// tokenFile path ("-" reads stdin), the PROMPTFORGE_REGISTRY_TOKEN
// environment variable, and the sealed keychain under keychainDir
// (empty means the default config directory). It returns ErrNoToken
// when every source comes up empty.
//
// Callers must resolve the token before constructing a Client; network
// I/O never happens on a missing credential.
func ResolveToken(tokenFile, keychainDir string) (*secret.Buffer, error) {
	if tokenFile != "" {
		token, err := secret.ReadFromPath(tokenFile)
		if err != nil {
			return nil, fmt.Errorf("reading token file: %w", err)
		}
		return token, nil
	}

	if env := os.Getenv(TokenEnvVar); env != "" {
		return secret.NewFromBytes([]byte(env))
	}

	keychain, err := sealed.Open(keychainDir)
	if err != nil {
		return nil, fmt.Errorf("opening keychain: %w", err)
	}
	token, err := keychain.LoadToken()
	if errors.Is(err, sealed.ErrNoToken) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("loading token from keychain: %w", err)
	}
	return token, nil
}
