// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for Promptforge's terminal UIs. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row in the prompt browser.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Kind badges in the browser list.
	TemplateBadge lipgloss.Color
	ListBadge     lipgloss.Color

	// Language tags next to prompt names.
	LangTag lipgloss.Color

	// {{ placeholder }} spans in template source.
	Placeholder lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Background tint for filter-matched characters.
	MatchBackground lipgloss.Color

	// Foreground for inline links in rendered markdown.
	LinkForeground lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	TemplateBadge: lipgloss.Color("75"),  // blue
	ListBadge:     lipgloss.Color("141"), // light purple
	LangTag:       lipgloss.Color("114"), // green
	Placeholder:   lipgloss.Color("220"), // amber

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchBackground: lipgloss.Color("58"), // dark amber

	LinkForeground: lipgloss.Color("75"),
}
