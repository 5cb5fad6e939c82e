// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"

	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// Collection holds every prompt loaded from one directory: templates
// and lists, each potentially in several languages. Build it with
// Load or LoadFS; a Collection is immutable afterwards except for
// SetFallback.
type Collection struct {
	templates map[string]*prompt.MultiTemplate
	lists     map[string]*prompt.MultiList
	fallback  prompt.Fallback
}

// Load loads the collection in dir. Skipped non-YAML files are logged
// through slog.Default.
func Load(dir string) (*Collection, error) {
	return LoadFS(os.DirFS(dir), ".", slog.Default())
}

// LoadFS loads the collection rooted at dir inside fsys. logger
// receives a debug line per skipped non-YAML file; nil discards.
// Loading stops at the first problem: the error names the file (and
// for duplicates, both files) involved.
func LoadFS(fsys fs.FS, dir string, logger *slog.Logger) (*Collection, error) {
	files, err := readFiles(fsys, dir, logger)
	if err != nil {
		return nil, err
	}

	c := &Collection{
		templates: make(map[string]*prompt.MultiTemplate),
		lists:     make(map[string]*prompt.MultiList),
		fallback:  prompt.FallbackDefault,
	}

	// sources records which file registered each (name, lang) so
	// duplicate errors can name both files.
	sources := make(map[string]map[prompt.LangCode]string)

	for _, file := range files {
		if file.err != nil {
			return nil, fmt.Errorf("%s: %w", file.path, file.err)
		}
		for _, entry := range file.entries {
			if entry.err != nil {
				return nil, fmt.Errorf("%s: prompt %q: %w", file.path, entry.name, entry.err)
			}
			if err := c.add(file, entry, sources); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// add registers one entry, enforcing (name, lang) uniqueness and the
// rule that a name is either a template or a list, never both.
func (c *Collection) add(file rawFile, entry rawEntry, sources map[string]map[prompt.LangCode]string) error {
	if previous, exists := sources[entry.name][file.lang]; exists {
		return fmt.Errorf("%s: prompt %q (lang %q) already defined in %s", file.path, entry.name, file.lang, previous)
	}

	switch entry.kind {
	case kindTemplate:
		if _, isList := c.lists[entry.name]; isList {
			return fmt.Errorf("%s: %q is a template here but a list elsewhere in the collection", file.path, entry.name)
		}
		template, err := prompt.NewTemplate(entry.name, entry.source)
		if err != nil {
			return fmt.Errorf("%s: %w", file.path, err)
		}
		multi := c.templates[entry.name]
		if multi == nil {
			multi, err = prompt.NewMultiTemplate(entry.name)
			if err != nil {
				return fmt.Errorf("%s: %w", file.path, err)
			}
			c.templates[entry.name] = multi
		}
		if err := multi.Add(file.lang, template); err != nil {
			return fmt.Errorf("%s: %w", file.path, err)
		}

	case kindList:
		if _, isTemplate := c.templates[entry.name]; isTemplate {
			return fmt.Errorf("%s: %q is a list here but a template elsewhere in the collection", file.path, entry.name)
		}
		list, err := prompt.NewList(entry.name, entry.items)
		if err != nil {
			return fmt.Errorf("%s: %w", file.path, err)
		}
		multi := c.lists[entry.name]
		if multi == nil {
			multi, err = prompt.NewMultiList(entry.name)
			if err != nil {
				return fmt.Errorf("%s: %w", file.path, err)
			}
			c.lists[entry.name] = multi
		}
		if err := multi.Add(file.lang, list); err != nil {
			return fmt.Errorf("%s: %w", file.path, err)
		}
	}

	if sources[entry.name] == nil {
		sources[entry.name] = make(map[prompt.LangCode]string)
	}
	sources[entry.name][file.lang] = file.path
	return nil
}

// SetFallback sets the fallback mode used by Template, List, and
// Render. The default is prompt.FallbackDefault.
func (c *Collection) SetFallback(fallback prompt.Fallback) { c.fallback = fallback }

// Fallback returns the configured fallback mode.
func (c *Collection) Fallback() prompt.Fallback { return c.fallback }

// Template resolves the named template for lang using the
// collection's fallback mode.
func (c *Collection) Template(name string, lang prompt.LangCode) (*prompt.Template, error) {
	multi, err := c.MultiTemplate(name)
	if err != nil {
		return nil, err
	}
	return multi.Get(lang, c.fallback)
}

// MultiTemplate returns the named template with all its language
// variants.
func (c *Collection) MultiTemplate(name string) (*prompt.MultiTemplate, error) {
	multi, exists := c.templates[name]
	if !exists {
		if _, isList := c.lists[name]; isList {
			return nil, fmt.Errorf("%q is a list, not a template", name)
		}
		return nil, fmt.Errorf("no template named %q", name)
	}
	return multi, nil
}

// MultiList returns the named list with all its language variants.
func (c *Collection) MultiList(name string) (*prompt.MultiList, error) {
	multi, exists := c.lists[name]
	if !exists {
		if _, isTemplate := c.templates[name]; isTemplate {
			return nil, fmt.Errorf("%q is a template, not a list", name)
		}
		return nil, fmt.Errorf("no list named %q", name)
	}
	return multi, nil
}

// List resolves the named list for lang using the collection's
// fallback mode.
func (c *Collection) List(name string, lang prompt.LangCode) (*prompt.List, error) {
	multi, exists := c.lists[name]
	if !exists {
		if _, isTemplate := c.templates[name]; isTemplate {
			return nil, fmt.Errorf("%q is a template, not a list", name)
		}
		return nil, fmt.Errorf("no list named %q", name)
	}
	return multi.Get(lang, c.fallback)
}

// Render resolves the named template for lang and renders it.
func (c *Collection) Render(name string, lang prompt.LangCode, vars prompt.Vars) (string, error) {
	template, err := c.Template(name, lang)
	if err != nil {
		return "", err
	}
	return template.Render(vars)
}

// Params returns the named template's parameter set, sorted.
func (c *Collection) Params(name string) ([]string, error) {
	multi, err := c.MultiTemplate(name)
	if err != nil {
		return nil, err
	}
	return multi.Params(), nil
}

// TemplateNames returns every template name, sorted.
func (c *Collection) TemplateNames() []string {
	return sortedKeys(c.templates)
}

// ListNames returns every list name, sorted.
func (c *Collection) ListNames() []string {
	return sortedKeys(c.lists)
}

// Langs returns every language that appears anywhere in the
// collection, sorted.
func (c *Collection) Langs() []prompt.LangCode {
	seen := make(map[prompt.LangCode]bool)
	for _, multi := range c.templates {
		for _, lang := range multi.Langs() {
			seen[lang] = true
		}
	}
	for _, multi := range c.lists {
		for _, lang := range multi.Langs() {
			seen[lang] = true
		}
	}
	langs := make([]prompt.LangCode, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
