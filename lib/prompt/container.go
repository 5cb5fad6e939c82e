// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"sort"
)

// Container maps language codes to variants of one named prompt
// item. The zero value is not usable; construct with NewContainer.
// Container is not safe for concurrent mutation; build it fully, then
// share it.
type Container[T any] struct {
	name  string
	items map[LangCode]T
}

// NewContainer builds an empty container. Returns an error if name is
// empty.
func NewContainer[T any](name string) (*Container[T], error) {
	if name == "" {
		return nil, fmt.Errorf("container name must not be empty")
	}
	return &Container[T]{
		name:  name,
		items: make(map[LangCode]T),
	}, nil
}

// Name returns the container's name.
func (c *Container[T]) Name() string { return c.name }

// Len returns the number of registered language variants.
func (c *Container[T]) Len() int { return len(c.items) }

// Has reports whether lang has a registered variant. An empty lang is
// treated as DefaultLang.
func (c *Container[T]) Has(lang LangCode) bool {
	_, exists := c.items[normalizeLang(lang)]
	return exists
}

// Add registers a variant for lang. An empty lang is treated as
// DefaultLang. Registering a language twice is an error; use Replace
// to overwrite deliberately.
func (c *Container[T]) Add(lang LangCode, item T) error {
	lang = normalizeLang(lang)
	if _, exists := c.items[lang]; exists {
		return fmt.Errorf("prompt %q: language %q already registered", c.name, lang)
	}
	c.items[lang] = item
	return nil
}

// Replace registers a variant for lang, overwriting any existing one.
func (c *Container[T]) Replace(lang LangCode, item T) {
	c.items[normalizeLang(lang)] = item
}

// Get resolves the variant for lang according to the fallback mode.
// An empty lang is treated as DefaultLang.
func (c *Container[T]) Get(lang LangCode, fallback Fallback) (T, error) {
	var zero T
	lang = normalizeLang(lang)

	if item, exists := c.items[lang]; exists {
		return item, nil
	}

	switch fallback {
	case FallbackError:
		return zero, fmt.Errorf("prompt %q has no %q variant", c.name, lang)
	case FallbackDefault:
		if item, exists := c.items[DefaultLang]; exists {
			return item, nil
		}
		return zero, fmt.Errorf("prompt %q has neither a %q nor a %q variant", c.name, lang, DefaultLang)
	case FallbackAny:
		langs := c.Langs()
		if len(langs) == 0 {
			return zero, fmt.Errorf("prompt %q has no variants", c.name)
		}
		return c.items[langs[0]], nil
	}
	return zero, fmt.Errorf("prompt %q: unknown fallback mode %d", c.name, int(fallback))
}

// Langs returns the registered language codes in lexicographic order.
func (c *Container[T]) Langs() []LangCode {
	langs := make([]LangCode, 0, len(c.items))
	for lang := range c.items {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

func normalizeLang(lang LangCode) LangCode {
	if lang == "" {
		return DefaultLang
	}
	return lang
}
