// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches {{ name }} references in template text.
// Only the double-braced form is recognized. Interior whitespace is
// allowed. Parameter names must start with a letter or underscore and
// contain only letters, digits, and underscores.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Vars maps parameter names to render values. String values pass
// through verbatim; everything else is formatted with fmt's %v verb.
type Vars map[string]any

// Template is a named prompt template with {{ name }} placeholders.
// Construction parses the source exactly once; Render only
// substitutes. A Template is immutable after construction and safe
// for concurrent use.
type Template struct {
	name   string
	source string
	params []string
}

// NewTemplate parses source into a Template. Surrounding whitespace
// is trimmed from source before parsing. Returns an error if name is
// empty or if source contains a "{{" that does not open a
// well-formed placeholder.
func NewTemplate(name, source string) (*Template, error) {
	if name == "" {
		return nil, fmt.Errorf("template name must not be empty")
	}
	source = strings.TrimSpace(source)

	if err := checkPlaceholders(name, source); err != nil {
		return nil, err
	}

	// Record parameters in first-appearance order, once each.
	var params []string
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(source, -1) {
		param := match[1]
		if !seen[param] {
			seen[param] = true
			params = append(params, param)
		}
	}

	return &Template{
		name:   name,
		source: source,
		params: params,
	}, nil
}

// checkPlaceholders verifies that every "{{" in source opens a
// placeholder the pattern accepts. The regex alone cannot report
// malformed syntax — it simply skips it, which would silently leak
// literal braces into rendered output.
func checkPlaceholders(name, source string) error {
	starts := make(map[int]bool)
	for _, span := range placeholderPattern.FindAllStringIndex(source, -1) {
		starts[span[0]] = true
	}

	for offset := 0; ; {
		relative := strings.Index(source[offset:], "{{")
		if relative < 0 {
			return nil
		}
		position := offset + relative
		if !starts[position] {
			snippet := source[position:]
			if len(snippet) > 24 {
				snippet = snippet[:24]
			}
			return fmt.Errorf("template %q: malformed placeholder at offset %d: %q", name, position, snippet)
		}
		offset = position + 2
	}
}

// Name returns the template's name.
func (t *Template) Name() string { return t.name }

// Source returns the raw template text.
func (t *Template) Source() string { return t.source }

// Params returns the template's parameter names in first-appearance
// order, each listed once. The returned slice is a copy.
func (t *Template) Params() []string {
	params := make([]string, len(t.params))
	copy(params, t.params)
	return params
}

// Render substitutes every placeholder with its value from vars.
// Missing parameters fail fast: the error lists every missing name in
// first-appearance order, and no partially substituted text is
// returned. Vars entries that no placeholder references are ignored.
func (t *Template) Render(vars Vars) (string, error) {
	var missing []string
	reported := make(map[string]bool)

	result := placeholderPattern.ReplaceAllStringFunc(t.source, func(match string) string {
		// Extract the parameter name from {{ name }}.
		param := strings.TrimSpace(match[2 : len(match)-2])
		value, exists := vars[param]
		if !exists {
			if !reported[param] {
				reported[param] = true
				missing = append(missing, param)
			}
			return match
		}
		return formatValue(value)
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("template %q: missing parameters: %s", t.name, strings.Join(missing, ", "))
	}

	return result, nil
}

// formatValue converts a render value to its string form. Strings
// pass through verbatim so they are not re-quoted.
func formatValue(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	return fmt.Sprintf("%v", value)
}
