// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"crypto/subtle"
	"fmt"

	"github.com/zeebo/blake3"
)

// tokenMACKey domain-separates token MACs from every other BLAKE3 use
// in the toolchain. The ASCII domain string is zero-padded to the
// 32-byte key width.
var tokenMACKey = func() [32]byte {
	var key [32]byte
	copy(key[:], "promptforge.registry.token")
	return key
}()

// TokenMAC computes the keyed BLAKE3 MAC of a bearer token. The server
// stores MACs rather than raw tokens, so its in-memory token table
// never holds a credential in usable form.
func TokenMAC(token []byte) [32]byte {
	hasher, err := blake3.NewKeyed(tokenMACKey[:])
	if err != nil {
		panic(fmt.Sprintf("registry: keyed hasher: %v", err))
	}
	hasher.Write(token)
	var mac [32]byte
	hasher.Digest().Read(mac[:])
	return mac
}

// MACEqual compares two token MACs in constant time.
func MACEqual(a, b [32]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
