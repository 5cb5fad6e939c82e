// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// placeholderPattern mirrors the template engine's placeholder syntax
// for display purposes only; validation is the engine's job.
var placeholderPattern = regexp.MustCompile(`\{\{\s*[A-Za-z_][A-Za-z0-9_]*\s*\}\}`)

// HighlightPlaceholders styles every {{ name }} span in template
// source for the browser's preview pane. Text outside placeholders is
// rendered in the theme's normal text color.
func HighlightPlaceholders(source string, theme Theme, renderer *lipgloss.Renderer) string {
	normal := renderer.NewStyle().Foreground(theme.NormalText)
	marked := renderer.NewStyle().Foreground(theme.Placeholder).Bold(true)

	var out strings.Builder
	last := 0
	for _, span := range placeholderPattern.FindAllStringIndex(source, -1) {
		if span[0] > last {
			out.WriteString(normal.Render(source[last:span[0]]))
		}
		out.WriteString(marked.Render(source[span[0]:span[1]]))
		last = span[1]
	}
	if last < len(source) {
		out.WriteString(normal.Render(source[last:]))
	}
	return out.String()
}
