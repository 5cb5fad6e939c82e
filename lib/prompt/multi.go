// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// MultiTemplate holds language variants of one template and enforces
// that every variant exposes the same parameter set. Translations may
// reorder parameters freely; they may not add or drop them.
type MultiTemplate struct {
	container *Container[*Template]
}

// NewMultiTemplate builds an empty MultiTemplate. Returns an error if
// name is empty.
func NewMultiTemplate(name string) (*MultiTemplate, error) {
	container, err := NewContainer[*Template](name)
	if err != nil {
		return nil, err
	}
	return &MultiTemplate{container: container}, nil
}

// Name returns the template's name.
func (m *MultiTemplate) Name() string { return m.container.Name() }

// Langs returns the registered language codes in lexicographic order.
func (m *MultiTemplate) Langs() []LangCode { return m.container.Langs() }

// Len returns the number of registered language variants.
func (m *MultiTemplate) Len() int { return m.container.Len() }

// Has reports whether lang has a registered variant.
func (m *MultiTemplate) Has(lang LangCode) bool { return m.container.Has(lang) }

// Add registers a language variant. It rejects templates whose
// parameter set differs from already-registered variants, templates
// that declare reserved parameter names, and duplicate languages.
func (m *MultiTemplate) Add(lang LangCode, template *Template) error {
	if err := m.checkVariant(lang, template); err != nil {
		return err
	}
	return m.container.Add(lang, template)
}

// Replace registers a language variant, overwriting any existing one.
// The same parameter checks as Add apply, compared against the other
// registered languages.
func (m *MultiTemplate) Replace(lang LangCode, template *Template) error {
	if err := m.checkVariant(lang, template); err != nil {
		return err
	}
	m.container.Replace(lang, template)
	return nil
}

// checkVariant validates reserved names and parameter-set consistency
// against every variant other than the one being written.
func (m *MultiTemplate) checkVariant(lang LangCode, template *Template) error {
	for _, param := range template.Params() {
		if ReservedParam(param) {
			return fmt.Errorf("prompt %q: parameter %q is reserved for lookup arguments", m.Name(), param)
		}
	}

	lang = normalizeLang(lang)
	for _, existing := range m.container.Langs() {
		if existing == lang {
			continue
		}
		reference, err := m.container.Get(existing, FallbackError)
		if err != nil {
			return err
		}
		if !sameParamSet(reference.Params(), template.Params()) {
			return fmt.Errorf("prompt %q: language %q has parameters [%s] but %q has [%s]",
				m.Name(), lang, strings.Join(template.Params(), " "),
				existing, strings.Join(reference.Params(), " "))
		}
		// All variants agree with each other, so one witness suffices.
		break
	}
	return nil
}

// Get resolves the template for lang according to the fallback mode.
func (m *MultiTemplate) Get(lang LangCode, fallback Fallback) (*Template, error) {
	return m.container.Get(lang, fallback)
}

// Render resolves the template for lang and renders it with vars.
func (m *MultiTemplate) Render(lang LangCode, fallback Fallback, vars Vars) (string, error) {
	template, err := m.Get(lang, fallback)
	if err != nil {
		return "", err
	}
	return template.Render(vars)
}

// Params returns the shared parameter set in sorted order. Variants
// may list parameters in different source order, so the sorted set is
// the only stable answer. Empty if no variant is registered.
func (m *MultiTemplate) Params() []string {
	langs := m.container.Langs()
	if len(langs) == 0 {
		return nil
	}
	template, err := m.container.Get(langs[0], FallbackError)
	if err != nil {
		return nil
	}
	params := template.Params()
	sort.Strings(params)
	return params
}

// sameParamSet reports whether a and b contain the same names,
// ignoring order. Neither slice contains duplicates (Template.Params
// guarantees that).
func sameParamSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	members := make(map[string]bool, len(a))
	for _, name := range a {
		members[name] = true
	}
	for _, name := range b {
		if !members[name] {
			return false
		}
	}
	return true
}

// MultiList holds language variants of one prompt list. Lists carry
// no parameters, so no consistency checks apply beyond the
// container's own duplicate detection.
type MultiList = Container[*List]

// NewMultiList builds an empty MultiList. Returns an error if name is
// empty.
func NewMultiList(name string) (*MultiList, error) {
	return NewContainer[*List](name)
}
