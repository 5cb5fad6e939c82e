// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealed provides the age-encrypted keychain that stores the
// registry token on disk. It wraps filippo.io/age for the specific
// operations Promptforge needs: generate an x25519 identity, encrypt
// the token to that identity, and decrypt it back.
//
// Ciphertext is base64-encoded for storage. Callers pass plaintext
// bytes to [Encrypt] and receive a base64 string; [Decrypt] accepts a
// base64 string and returns plaintext. Private keys and decrypted
// plaintext are returned as [secret.Buffer] values backed by mmap
// memory outside the Go heap (locked against swap, excluded from core
// dumps, zeroed on Close).
//
// [Keychain] ties it together: "promptforge registry login" stores
// the token under the user config directory, and the registry client
// reads it back when neither a token file nor the environment
// provides one.
//
// Depends on lib/secret for secure memory allocation.
package sealed
