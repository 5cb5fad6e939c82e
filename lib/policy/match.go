// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"path"
	"strings"
)

// MatchPattern checks whether a tool name matches a glob pattern
// using Promptforge's hierarchical tool-name conventions:
//
//   - Exact match: "write_file" matches only "write_file"
//   - Single-segment wildcard: "bash/*" matches "bash/ls" but not
//     "bash/git/push"
//   - Recursive wildcard: "bash/**" matches "bash/ls", "bash/git/push"
//   - Universal: "**" matches any tool
//   - Interior recursive: "registry/**/push" matches "registry/push",
//     "registry/staging/push", etc.
//   - Character wildcards: "?" matches a single non-slash character
//
// Wildcards * and ? work in all positions, including around **. The
// single-segment wildcard "*" does not match "/" — this is the
// standard path.Match behavior and matches the gitignore convention.
// Use "**" to match across hierarchy boundaries.
//
// Returns false for malformed patterns (unmatched brackets, misplaced
// **) rather than propagating errors: a denylist entry that cannot be
// parsed must not silently deny unrelated tools. Validate reports
// such patterns so they get fixed instead of being ignored.
func MatchPattern(pattern, tool string) bool {
	// Universal match.
	if pattern == "**" {
		return true
	}

	// No ** in the pattern — delegate to path.Match which handles
	// single-segment * and ? correctly (not matching /).
	if !strings.Contains(pattern, "**") {
		matched, err := path.Match(pattern, tool)
		if err != nil {
			return false
		}
		return matched
	}

	// Pattern contains **. Handle the three cases: suffix, prefix,
	// interior.

	// Suffix: "bash/**" — match the prefix (with glob wildcards),
	// then anything after.
	if strings.HasSuffix(pattern, "/**") {
		prefix := pattern[:len(pattern)-3]
		// ** matches zero additional segments: the whole tool name
		// is the prefix.
		if matchGlob(prefix, tool) {
			return true
		}
		// ** matches one or more additional segments.
		return hasMatchingPrefix(prefix, tool)
	}

	// Prefix: "**/push" — match anything before, then the suffix.
	if strings.HasPrefix(pattern, "**/") {
		suffix := pattern[3:]
		if matchGlob(suffix, tool) {
			return true
		}
		return hasMatchingSuffix(suffix, tool)
	}

	// Interior: "registry/**/push" — split on the first /**, match
	// prefix and suffix independently.
	separatorIndex := strings.Index(pattern, "/**/")
	if separatorIndex >= 0 {
		prefix := pattern[:separatorIndex]
		suffix := pattern[separatorIndex+4:]

		// Zero-segment case: ** matches nothing, prefix and suffix
		// are adjacent. "registry/**/push" matches "registry/push".
		if matchGlob(prefix+"/"+suffix, tool) {
			return true
		}

		// Multi-segment case: prefix matches the start, suffix
		// matches the end, with at least one segment between for **
		// to consume.
		prefixDepth := strings.Count(prefix, "/") + 1
		suffixDepth := strings.Count(suffix, "/") + 1
		segments := strings.Split(tool, "/")

		if len(segments) < prefixDepth+1+suffixDepth {
			return false
		}

		prefixCandidate := strings.Join(segments[:prefixDepth], "/")
		if !matchGlob(prefix, prefixCandidate) {
			return false
		}

		suffixCandidate := strings.Join(segments[len(segments)-suffixDepth:], "/")
		if !matchGlob(suffix, suffixCandidate) {
			return false
		}

		// Segments consumed by ** must be non-empty (reject tool
		// names with consecutive slashes between prefix and suffix).
		for _, segment := range segments[prefixDepth : len(segments)-suffixDepth] {
			if segment == "" {
				return false
			}
		}
		return true
	}

	// Multiple ** segments or ** glued to other characters — not
	// supported. Matches nothing.
	return false
}

// CheckPattern reports why a pattern is malformed, or nil if it is
// well-formed. MatchPattern treats malformed patterns as matching
// nothing; CheckPattern exists so Validate can surface them.
func CheckPattern(pattern string) error {
	if pattern == "" {
		return fmt.Errorf("pattern is empty")
	}

	recursiveSegments := 0
	for _, segment := range strings.Split(pattern, "/") {
		if segment == "" {
			return fmt.Errorf("empty segment (consecutive or leading/trailing slashes)")
		}
		if strings.Contains(segment, "**") {
			if segment != "**" {
				return fmt.Errorf("** must be a whole segment, not part of %q", segment)
			}
			recursiveSegments++
			continue
		}
		// path.Match validates wildcard syntax segment by segment;
		// the probe string is irrelevant for syntax errors.
		if _, err := path.Match(segment, "probe"); err != nil {
			return fmt.Errorf("segment %q: %w", segment, err)
		}
	}
	if recursiveSegments > 1 {
		return fmt.Errorf("at most one ** segment is supported")
	}
	return nil
}

// matchGlob matches a pattern against a string using path.Match
// semantics (* and ? do not cross / boundaries). Returns false for
// malformed patterns.
func matchGlob(pattern, s string) bool {
	matched, err := path.Match(pattern, s)
	return err == nil && matched
}

// hasMatchingPrefix reports whether the tool name starts with
// segments that match the given glob pattern, with at least one
// additional segment after the matched portion.
func hasMatchingPrefix(pattern, tool string) bool {
	depth := strings.Count(pattern, "/") + 1
	segments := strings.SplitN(tool, "/", depth+1)
	if len(segments) <= depth {
		return false
	}
	candidate := strings.Join(segments[:depth], "/")
	return matchGlob(pattern, candidate)
}

// hasMatchingSuffix reports whether the tool name ends with segments
// that match the given glob pattern, with at least one additional
// segment before the matched portion.
func hasMatchingSuffix(pattern, tool string) bool {
	depth := strings.Count(pattern, "/") + 1
	segments := strings.Split(tool, "/")
	if len(segments) <= depth {
		return false
	}
	candidate := strings.Join(segments[len(segments)-depth:], "/")
	return matchGlob(pattern, candidate)
}
