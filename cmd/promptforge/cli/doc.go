// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command tree framework for the promptforge
// CLI: command dispatch with typo suggestions, struct-tag flag binding
// on pflag, help printing, --json output support, and exit-code
// control.
package cli
