// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// Encrypted bundles start with a 4-byte magic followed by a format
// version, a random XChaCha20 nonce, and the ciphertext. The magic and
// version are authenticated as associated data, so tampering with the
// header fails decryption rather than selecting a wrong code path.
var encryptedMagic = []byte("pfbe")

// encryptedVersion is the sealed-bundle format version.
const encryptedVersion = 0x01

// hkdfInfo domain-separates the derived key from any other use of the
// same secret material.
const hkdfInfo = "promptforge.bundle.seal.v1"

// deriveKey stretches caller-supplied secret material into a
// 256-bit XChaCha20-Poly1305 key with HKDF-SHA256.
func deriveKey(material []byte) ([]byte, error) {
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, material, nil, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}

// IsEncrypted reports whether data looks like a sealed bundle.
func IsEncrypted(data []byte) bool {
	return len(data) >= len(encryptedMagic) && bytes.Equal(data[:len(encryptedMagic)], encryptedMagic)
}

// Encrypt seals a packed bundle under a key derived from key's
// material.
func Encrypt(plainBundle []byte, key *secret.Buffer) ([]byte, error) {
	derived, err := deriveKey(key.Bytes())
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(derived)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	header := make([]byte, 0, len(encryptedMagic)+1+chacha20poly1305.NonceSizeX)
	header = append(header, encryptedMagic...)
	header = append(header, encryptedVersion)
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	header = append(header, nonce...)

	aad := header[:len(encryptedMagic)+1]
	return aead.Seal(header, nonce, plainBundle, aad), nil
}

// Decrypt opens a sealed bundle, returning the packed bundle bytes.
func Decrypt(data []byte, key *secret.Buffer) ([]byte, error) {
	if !IsEncrypted(data) {
		return nil, fmt.Errorf("not an encrypted bundle")
	}
	headerLen := len(encryptedMagic) + 1 + chacha20poly1305.NonceSizeX
	if len(data) < headerLen {
		return nil, fmt.Errorf("encrypted bundle is truncated: %d bytes", len(data))
	}
	version := data[len(encryptedMagic)]
	if version != encryptedVersion {
		return nil, fmt.Errorf("unsupported encrypted bundle version %d", version)
	}

	derived, err := deriveKey(key.Bytes())
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(derived)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	nonce := data[len(encryptedMagic)+1 : headerLen]
	aad := data[:len(encryptedMagic)+1]
	plain, err := aead.Open(nil, nonce, data[headerLen:], aad)
	if err != nil {
		return nil, fmt.Errorf("decrypting bundle: wrong key or corrupted data")
	}
	return plain, nil
}
