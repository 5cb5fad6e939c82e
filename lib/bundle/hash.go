// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 256-bit keyed BLAKE3 digest.
type Hash [32]byte

// Domain-separation keys for the two hash contexts in a bundle. BLAKE3
// keys are exactly 32 bytes, so the ASCII domain strings are
// zero-padded to width. A file hash can never be confused with a
// manifest digest.
var (
	fileHashKey     = makeDomainKey("promptforge.bundle.file")
	manifestHashKey = makeDomainKey("promptforge.bundle.manifest")
)

func makeDomainKey(domain string) [32]byte {
	var key [32]byte
	if len(domain) > len(key) {
		panic(fmt.Sprintf("bundle: domain %q exceeds 32 bytes", domain))
	}
	copy(key[:], domain)
	return key
}

func keyedHash(key [32]byte, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails on a wrong-length key.
		panic(fmt.Sprintf("bundle: keyed hasher: %v", err))
	}
	hasher.Write(data)
	var h Hash
	hasher.Digest().Read(h[:])
	return h
}

// HashFile computes the keyed BLAKE3 hash of a file's uncompressed
// content.
func HashFile(data []byte) Hash {
	return keyedHash(fileHashKey, data)
}

// HashManifest computes the keyed BLAKE3 hash of an encoded manifest.
func HashManifest(data []byte) Hash {
	return keyedHash(manifestHashKey, data)
}

// FormatHash renders a hash as lowercase hex.
func FormatHash(h Hash) string {
	return hex.EncodeToString(h[:])
}

// ParseHash parses the hex form produced by FormatHash.
func ParseHash(s string) (Hash, error) {
	var h Hash
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(raw) != len(h) {
		return Hash{}, fmt.Errorf("invalid hash %q: got %d bytes, want %d", s, len(raw), len(h))
	}
	copy(h[:], raw)
	return h, nil
}
