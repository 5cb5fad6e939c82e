// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle packs a prompt collection into a single distributable
// .pfb file: a CBOR manifest followed by the collection's source files,
// each independently compressed and hashed.
//
// The on-disk layout is a 4-byte big-endian manifest length, the
// deterministically encoded manifest, and the file payloads in manifest
// order. Every file carries a keyed BLAKE3 hash so a bundle can be
// verified without unpacking it to disk, and the manifest itself has a
// digest that names the bundle for registry uploads.
//
// Bundles may optionally be sealed with XChaCha20-Poly1305 under a key
// derived from caller-supplied secret material.
package bundle
