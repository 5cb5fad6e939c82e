// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
)

// exportedName converts a snake_case prompt name to an exported
// CamelCase Go identifier: "system_intro" becomes "SystemIntro".
// Runs of underscores collapse.
func exportedName(name string) string {
	var builder strings.Builder
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		builder.WriteRune(unicode.ToUpper(runes[0]))
		builder.WriteString(string(runes[1:]))
	}
	return builder.String()
}

// argName converts a snake_case parameter name to an unexported
// lowerCamel Go identifier. Go keywords get an "Arg" suffix so the
// generated file still parses ("type" becomes "typeArg").
func argName(name string) string {
	camel := exportedName(name)
	if camel == "" {
		return name
	}
	runes := []rune(camel)
	runes[0] = unicode.ToLower(runes[0])
	result := string(runes)
	if token.IsKeyword(result) {
		result += "Arg"
	}
	return result
}

// mangleAll maps prompt names to method names with the given prefix,
// rejecting collisions: two prompt names that mangle to the same
// method name produce an error listing both.
func mangleAll(prefix string, names []string) (map[string]string, error) {
	methods := make(map[string]string, len(names))
	byMethod := make(map[string]string, len(names))
	for _, name := range names {
		method := prefix + exportedName(name)
		if previous, exists := byMethod[method]; exists {
			return nil, fmt.Errorf("prompt names %q and %q both map to method %s", previous, name, method)
		}
		byMethod[method] = name
		methods[name] = method
	}
	return methods, nil
}
