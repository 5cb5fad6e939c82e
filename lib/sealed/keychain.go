// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// ErrNoToken is returned by Keychain.LoadToken when no token has been
// stored. The registry token resolution chain branches on it: a
// missing keychain entry is the end of the chain, not a failure of
// the keychain itself.
var ErrNoToken = errors.New("no registry token in keychain")

const (
	identityFile = "identity.age"
	tokenFile    = "registry-token.age"
)

// Keychain stores the registry token age-encrypted under a directory,
// alongside the x25519 identity that can decrypt it. Both files are
// created with mode 0600; the directory with 0700.
type Keychain struct {
	dir string
}

// DefaultDir returns the standard keychain location,
// $XDG_CONFIG_HOME/promptforge (via os.UserConfigDir).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(base, "promptforge"), nil
}

// Open returns a Keychain rooted at dir. If dir is empty, the default
// location is used. The directory is not created until StoreToken.
func Open(dir string) (*Keychain, error) {
	if dir == "" {
		var err error
		dir, err = DefaultDir()
		if err != nil {
			return nil, err
		}
	}
	return &Keychain{dir: dir}, nil
}

// Dir returns the keychain directory.
func (k *Keychain) Dir() string { return k.dir }

// StoreToken encrypts token to the keychain identity and writes it to
// disk, creating the identity on first use. The token buffer is
// borrowed, not closed.
func (k *Keychain) StoreToken(token *secret.Buffer) error {
	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return fmt.Errorf("creating keychain directory: %w", err)
	}

	publicKey, err := k.ensureIdentity()
	if err != nil {
		return err
	}

	ciphertext, err := Encrypt(token.Bytes(), publicKey)
	if err != nil {
		return fmt.Errorf("sealing registry token: %w", err)
	}

	return writeFileAtomic(filepath.Join(k.dir, tokenFile), []byte(ciphertext+"\n"), 0o600)
}

// LoadToken decrypts and returns the stored registry token. Returns
// ErrNoToken if none has been stored. The caller must close the
// returned buffer.
func (k *Keychain) LoadToken() (*secret.Buffer, error) {
	ciphertext, err := os.ReadFile(filepath.Join(k.dir, tokenFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("reading keychain token: %w", err)
	}

	privateKey, err := k.loadIdentity()
	if err != nil {
		return nil, err
	}
	defer privateKey.Close()

	token, err := Decrypt(strings.TrimSpace(string(ciphertext)), privateKey)
	if err != nil {
		return nil, fmt.Errorf("unsealing registry token: %w", err)
	}
	return token, nil
}

// DeleteToken removes the stored token. Deleting an absent token is
// not an error. The identity file is left in place.
func (k *Keychain) DeleteToken() error {
	err := os.Remove(filepath.Join(k.dir, tokenFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing keychain token: %w", err)
	}
	return nil
}

// HasToken reports whether a token file exists, without decrypting it.
func (k *Keychain) HasToken() bool {
	_, err := os.Stat(filepath.Join(k.dir, tokenFile))
	return err == nil
}

// ensureIdentity loads the keychain identity, generating and
// persisting a fresh one if the identity file does not exist yet.
// Returns the identity's public key.
func (k *Keychain) ensureIdentity() (string, error) {
	privateKey, err := k.loadIdentity()
	if err == nil {
		defer privateKey.Close()
		return recipientOf(privateKey)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	keypair, err := GenerateKeypair()
	if err != nil {
		return "", err
	}
	defer keypair.Close()

	data := append(keypair.PrivateKey.Bytes(), '\n')
	if err := writeFileAtomic(filepath.Join(k.dir, identityFile), data, 0o600); err != nil {
		secret.Zero(data)
		return "", fmt.Errorf("writing keychain identity: %w", err)
	}
	secret.Zero(data)
	return keypair.PublicKey, nil
}

// loadIdentity reads the identity file into a secret.Buffer. The
// caller must close the returned buffer. A missing file surfaces as
// os.ErrNotExist for ensureIdentity to branch on.
func (k *Keychain) loadIdentity() (*secret.Buffer, error) {
	privateKey, err := secret.ReadFromPath(filepath.Join(k.dir, identityFile))
	if err != nil {
		return nil, err
	}
	if err := ParsePrivateKey(privateKey); err != nil {
		privateKey.Close()
		return nil, fmt.Errorf("keychain identity: %w", err)
	}
	return privateKey, nil
}

// recipientOf derives the public key from a private key buffer.
func recipientOf(privateKey *secret.Buffer) (string, error) {
	identity, err := age.ParseX25519Identity(privateKey.String())
	if err != nil {
		return "", fmt.Errorf("parsing private key: %w", err)
	}
	return identity.Recipient().String(), nil
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".keychain-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}
