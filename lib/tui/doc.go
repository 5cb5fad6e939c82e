// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared building blocks for Promptforge's
// terminal UI: the color theme, fuzzy matching for the prompt browser's
// filter line, a terminal markdown renderer for prompt previews, and
// placeholder highlighting for template source.
package tui
