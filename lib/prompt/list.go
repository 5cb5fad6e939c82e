// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"strings"
)

// bullet prefixes each list item; continuation lines of a multi-line
// item are indented to align under the first character after it.
const (
	bullet       = " * "
	continuation = "   "
)

// List is a named, ordered collection of prompt fragments rendered as
// a bulleted block. A List is immutable after construction and safe
// for concurrent use.
type List struct {
	name  string
	items []string
}

// NewList builds a List. Each item is trimmed of surrounding
// whitespace. Returns an error if name is empty.
func NewList(name string, items []string) (*List, error) {
	if name == "" {
		return nil, fmt.Errorf("list name must not be empty")
	}

	trimmed := make([]string, len(items))
	for i, item := range items {
		trimmed[i] = strings.TrimSpace(item)
	}

	return &List{name: name, items: trimmed}, nil
}

// Name returns the list's name.
func (l *List) Name() string { return l.name }

// Items returns the list items. The returned slice is a copy.
func (l *List) Items() []string {
	items := make([]string, len(l.items))
	copy(items, l.items)
	return items
}

// Len returns the number of items.
func (l *List) Len() int { return len(l.items) }

// String renders the list as " * " bullets, one item per bullet.
// Lines after the first within an item are indented so the block
// reads cleanly when embedded in a larger prompt:
//
//	 * first item
//	 * a longer item whose
//	   second line aligns under the first
func (l *List) String() string {
	var builder strings.Builder
	for i, item := range l.items {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(bullet)
		lines := strings.Split(item, "\n")
		builder.WriteString(lines[0])
		for _, line := range lines[1:] {
			builder.WriteByte('\n')
			builder.WriteString(continuation)
			builder.WriteString(strings.TrimSpace(line))
		}
	}
	return builder.String()
}
