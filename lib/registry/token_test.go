// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/sealed"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

func TestResolveTokenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("file-token\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	// The file beats the environment.
	t.Setenv(TokenEnvVar, "env-token")

	token, err := ResolveToken(path, t.TempDir())
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	defer token.Close()
	if !token.Equal([]byte("file-token")) {
		t.Errorf("token = %q, want file-token", token.String())
	}
}

func TestResolveTokenFromEnv(t *testing.T) {
	t.Setenv(TokenEnvVar, "env-token")
	token, err := ResolveToken("", t.TempDir())
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	defer token.Close()
	if !token.Equal([]byte("env-token")) {
		t.Errorf("token = %q, want env-token", token.String())
	}
}

func TestResolveTokenFromKeychain(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	dir := t.TempDir()
	keychain, err := sealed.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := secret.NewFromBytes([]byte("keychain-token"))
	if err != nil {
		t.Fatal(err)
	}
	if err := keychain.StoreToken(stored); err != nil {
		t.Fatalf("StoreToken: %v", err)
	}

	token, err := ResolveToken("", dir)
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	defer token.Close()
	if !token.Equal([]byte("keychain-token")) {
		t.Errorf("token = %q, want keychain-token", token.String())
	}
}

func TestResolveTokenMissing(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	_, err := ResolveToken("", t.TempDir())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("ResolveToken = %v, want ErrNoToken", err)
	}
}

func TestResolveTokenEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ResolveToken(path, t.TempDir()); err == nil {
		t.Error("ResolveToken accepted an empty token file")
	}
}
