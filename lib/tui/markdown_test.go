// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

// stripped renders markdown and returns ANSI-stripped visible text.
func stripped(input string, width int) string {
	return ansi.Strip(RenderMarkdown(input, DefaultTheme, width))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	if result := RenderMarkdown("", DefaultTheme, 80); result != "" {
		t.Errorf("expected empty string for empty input, got %q", result)
	}
}

func TestRenderMarkdownParagraphReflow(t *testing.T) {
	// Prompt source hard-wrapped at a narrow width must reflow.
	input := "You are a careful reviewer who\nreads the whole change before\ncommenting on any part of it."
	result := stripped(input, 120)

	if strings.Contains(result, "\n") {
		t.Errorf("expected no newlines at width=120, got:\n%s", result)
	}
	if !strings.Contains(result, "who reads the") {
		t.Errorf("expected soft break converted to space, got:\n%s", result)
	}
}

func TestRenderMarkdownWrapsAtWidth(t *testing.T) {
	input := "This paragraph should be wrapped at the target width without overlong lines."
	result := stripped(input, 30)
	for _, line := range strings.Split(result, "\n") {
		if len(line) > 30 {
			t.Errorf("line exceeds width 30: %q (len=%d)", line, len(line))
		}
	}
}

func TestRenderMarkdownHardLineBreak(t *testing.T) {
	// Two trailing spaces are a CommonMark hard break.
	input := "Line one  \nLine two"
	result := stripped(input, 80)
	if !strings.Contains(result, "Line one\nLine two") {
		t.Errorf("expected hard line break preserved, got:\n%s", result)
	}
}

func TestRenderMarkdownHeadingStyled(t *testing.T) {
	input := "# Instructions\n\nBody text."
	visible := stripped(input, 80)
	if !strings.Contains(visible, "Instructions") {
		t.Error("missing heading text")
	}
	if RenderMarkdown(input, DefaultTheme, 80) == visible {
		t.Error("expected ANSI styling in heading output")
	}
}

func TestRenderMarkdownLists(t *testing.T) {
	input := "- first\n- second\n\n1. alpha\n2. beta"
	result := stripped(input, 80)
	for _, want := range []string{"- first", "- second", "1. alpha", "2. beta"} {
		if !strings.Contains(result, want) {
			t.Errorf("missing %q in:\n%s", want, result)
		}
	}
}

func TestRenderMarkdownNestedListIndent(t *testing.T) {
	input := "- outer\n  - inner"
	result := stripped(input, 80)
	if !strings.Contains(result, "  - inner") {
		t.Errorf("expected indented inner bullet, got:\n%s", result)
	}
}

func TestRenderMarkdownBlockquotePrefix(t *testing.T) {
	input := "> quoted advice"
	result := stripped(input, 80)
	if !strings.Contains(result, "│ quoted advice") {
		t.Errorf("expected blockquote prefix, got:\n%s", result)
	}
}

func TestRenderMarkdownFencedCode(t *testing.T) {
	input := "```go\nfunc main() {}\n```"
	result := stripped(input, 80)
	if !strings.Contains(result, "func main() {}") {
		t.Errorf("missing code content, got:\n%s", result)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	input := "| Name | Lang |\n| --- | --- |\n| greeting | en |"
	result := stripped(input, 80)
	if !strings.Contains(result, "Name") || !strings.Contains(result, "greeting") {
		t.Errorf("missing table content, got:\n%s", result)
	}
	if !strings.Contains(result, "─") {
		t.Errorf("missing header separator, got:\n%s", result)
	}
}

func TestRenderMarkdownLinkShowsURL(t *testing.T) {
	input := "See [the docs](https://example.com)."
	result := stripped(input, 80)
	if !strings.Contains(result, "the docs (https://example.com)") {
		t.Errorf("expected link text with URL, got:\n%s", result)
	}
}

func TestRenderMarkdownTaskList(t *testing.T) {
	input := "- [x] done\n- [ ] pending"
	result := stripped(input, 80)
	if !strings.Contains(result, "[x] done") || !strings.Contains(result, "[ ] pending") {
		t.Errorf("missing task boxes, got:\n%s", result)
	}
}

func TestRenderMarkdownStripsHTML(t *testing.T) {
	input := "before <br/> after"
	result := stripped(input, 80)
	if strings.Contains(result, "<br") {
		t.Errorf("raw HTML leaked into output:\n%s", result)
	}
}
