// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Promptforge packages.
//
// [WriteCollection] materializes a prompt collection fixture (a map of
// relative filenames to YAML content) in a fresh temporary directory,
// so collection, bundle, and CLI tests can build their inputs inline
// instead of carrying testdata trees.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Promptforge-internal dependencies.
package testutil
