// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// The promptforge-registry command serves a token-gated bundle
// registry over HTTP. Bundles are stored content-addressed on disk
// and indexed in SQLite; clients authenticate with bearer tokens
// whose keyed-BLAKE3 MACs are loaded from a name:token file at
// startup.
package main
