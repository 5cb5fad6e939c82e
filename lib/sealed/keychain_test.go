// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/secret"
)

func storeToken(t *testing.T, keychain *Keychain, token string) {
	t.Helper()
	buffer, err := secret.NewFromBytes([]byte(token))
	if err != nil {
		t.Fatalf("NewFromBytes() error: %v", err)
	}
	defer buffer.Close()
	if err := keychain.StoreToken(buffer); err != nil {
		t.Fatalf("StoreToken() error: %v", err)
	}
}

func TestKeychain_StoreLoadRoundTrip(t *testing.T) {
	t.Parallel()

	keychain, err := Open(filepath.Join(t.TempDir(), "promptforge"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if keychain.HasToken() {
		t.Error("HasToken() true before any store")
	}

	storeToken(t, keychain, "token-one")

	loaded, err := keychain.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error: %v", err)
	}
	defer loaded.Close()
	if loaded.String() != "token-one" {
		t.Errorf("LoadToken() = %q, want %q", loaded.String(), "token-one")
	}
}

func TestKeychain_StoreOverwrites(t *testing.T) {
	t.Parallel()

	keychain, err := Open(filepath.Join(t.TempDir(), "promptforge"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	storeToken(t, keychain, "old-token")
	storeToken(t, keychain, "new-token")

	loaded, err := keychain.LoadToken()
	if err != nil {
		t.Fatalf("LoadToken() error: %v", err)
	}
	defer loaded.Close()
	if loaded.String() != "new-token" {
		t.Errorf("LoadToken() = %q, want %q", loaded.String(), "new-token")
	}
}

func TestKeychain_LoadWithoutStore(t *testing.T) {
	t.Parallel()

	keychain, err := Open(filepath.Join(t.TempDir(), "promptforge"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	if _, err := keychain.LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Errorf("LoadToken() error = %v, want ErrNoToken", err)
	}
}

func TestKeychain_DeleteToken(t *testing.T) {
	t.Parallel()

	keychain, err := Open(filepath.Join(t.TempDir(), "promptforge"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	// Deleting an absent token is fine.
	if err := keychain.DeleteToken(); err != nil {
		t.Errorf("DeleteToken() on empty keychain: %v", err)
	}

	storeToken(t, keychain, "token")
	if err := keychain.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() error: %v", err)
	}
	if keychain.HasToken() {
		t.Error("HasToken() true after delete")
	}
	if _, err := keychain.LoadToken(); !errors.Is(err, ErrNoToken) {
		t.Errorf("LoadToken() after delete = %v, want ErrNoToken", err)
	}
}

func TestKeychain_FilePermissions(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "promptforge")
	keychain, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	storeToken(t, keychain, "token")

	for _, name := range []string{identityFile, tokenFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("stat %s: %v", name, err)
		}
		if mode := info.Mode().Perm(); mode != 0o600 {
			t.Errorf("%s mode = %o, want 600", name, mode)
		}
	}
}

func TestKeychain_IdentityPersistsAcrossStores(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "promptforge")
	keychain, err := Open(dir)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	storeToken(t, keychain, "first")
	identityBefore, err := os.ReadFile(filepath.Join(dir, identityFile))
	if err != nil {
		t.Fatalf("reading identity: %v", err)
	}

	storeToken(t, keychain, "second")
	identityAfter, err := os.ReadFile(filepath.Join(dir, identityFile))
	if err != nil {
		t.Fatalf("reading identity: %v", err)
	}

	if string(identityBefore) != string(identityAfter) {
		t.Error("identity file changed between stores")
	}
}
