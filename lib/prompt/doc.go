// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt provides the core prompt template types: single
// templates with {{ name }} placeholders, bullet-formatted prompt
// lists, and multi-language containers with configurable fallback.
//
// A [Template] is parsed once at construction. Parsing records the
// parameter set and rejects malformed placeholder syntax, so a
// template that constructs successfully always renders or fails with
// a missing-parameter error — it never emits a half-substituted
// string.
//
// A [List] is an ordered set of prompt fragments rendered as " * "
// bullets. Multi-line fragments get hanging indentation so the result
// reads as one block inside a larger prompt.
//
// [Container] is a generic language→item map. [MultiTemplate] wraps
// it for templates and additionally enforces that every language
// variant exposes the same parameter set, and that no parameter name
// collides with the lookup arguments ("lang", "fallback").
//
// Language resolution is controlled by [Fallback]: error on a missing
// language, fall back to [DefaultLang], or accept any registered
// variant. FallbackAny resolves to the lexicographically smallest
// language code so repeated lookups are deterministic.
package prompt
