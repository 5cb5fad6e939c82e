// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import "fmt"

// LangCode identifies a language variant, e.g. "en" or "de". Codes
// are opaque to Promptforge — they are compared byte-for-byte, never
// interpreted as BCP 47.
type LangCode string

// DefaultLang is the language assigned to prompts that do not declare
// one. Collections written without a lang key land here, and
// FallbackDefault resolves to it.
const DefaultLang LangCode = "default"

// reservedParams are parameter names that would collide with the
// lookup arguments of multi-language accessors. MultiTemplate.Add and
// collection linting reject templates that declare them.
var reservedParams = map[string]bool{
	"lang":     true,
	"fallback": true,
}

// ReservedParam reports whether name is reserved for lookup arguments
// and therefore unusable as a template parameter.
func ReservedParam(name string) bool { return reservedParams[name] }

// Fallback selects what happens when a requested language has no
// registered variant.
type Fallback int

const (
	// FallbackError reports a missing language as an error.
	FallbackError Fallback = iota

	// FallbackAny resolves to the lexicographically smallest
	// registered language code. Deterministic: repeated lookups on
	// the same container always return the same variant.
	FallbackAny

	// FallbackDefault falls back to DefaultLang, and errors only if
	// neither the requested language nor DefaultLang is registered.
	FallbackDefault
)

// ParseFallback converts a configuration string to a Fallback mode.
// Accepted spellings: "error", "any", "default-lang", and
// "use_default_lang".
func ParseFallback(text string) (Fallback, error) {
	switch text {
	case "error":
		return FallbackError, nil
	case "any":
		return FallbackAny, nil
	case "default-lang", "use_default_lang":
		return FallbackDefault, nil
	}
	return 0, fmt.Errorf("unknown fallback mode %q (want error, any, or default-lang)", text)
}

// String returns the canonical configuration spelling.
func (f Fallback) String() string {
	switch f {
	case FallbackError:
		return "error"
	case FallbackAny:
		return "any"
	case FallbackDefault:
		return "default-lang"
	}
	return fmt.Sprintf("fallback(%d)", int(f))
}
