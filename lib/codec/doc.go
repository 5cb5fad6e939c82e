// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Promptforge's standard CBOR encoding
// configuration.
//
// Promptforge uses two serialization formats with a clear boundary:
//
//   - JSON for external interfaces: registry HTTP API bodies and CLI
//     --json output.
//   - CBOR for the bundle container format: the manifest embedded in
//     every .pfb file.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Promptforge package encodes identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. Same logical data always
// produces identical bytes. That property is load-bearing: bundle
// digests are computed over the encoded manifest, so two builds of the
// same content must serialize to the same bytes.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
// Types that are serialized only as CBOR use `cbor` struct tags. Types
// that serve both JSON and CBOR (bundle manifests, which also appear in
// CLI --json output) use `json` tags alone: fxamacker/cbor v2 reads
// `json` tags as fallback when `cbor` tags are absent, so a single tag
// controls field naming and omitempty for both formats. Never use both
// tags on the same field.
package codec
