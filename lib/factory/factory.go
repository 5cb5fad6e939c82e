// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

// Package factory generates a typed Go accessor file for a prompt
// collection: one CreateX method per template, one ListX method per
// list, so application code calls prompts by name with
// compiler-checked arity instead of passing strings around.
package factory

import (
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"

	"github.com/promptforge-foundation/promptforge/lib/collection"
	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

const modulePath = "github.com/promptforge-foundation/promptforge"

// Options configures factory generation.
type Options struct {
	// Package is the package name of the generated file. Required.
	Package string

	// Dir is the collection directory baked into the generated
	// constructor as the default location. Required.
	Dir string

	// Lang pins the language whose variants supply parameter order
	// for method signatures. Empty means the default language. The
	// variant is resolved with the collection's fallback mode, so a
	// collection that renders will also generate.
	Lang prompt.LangCode
}

// Generate emits the factory source for the collection. The output
// is gofmt-formatted; if the generated code does not parse, that is a
// generator bug and is surfaced as an error, never written to disk.
// Output is deterministic for a given collection and options.
func Generate(c *collection.Collection, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("factory: package name is required")
	}
	if opts.Dir == "" {
		return nil, fmt.Errorf("factory: collection directory is required")
	}

	templateMethods, err := mangleAll("Create", c.TemplateNames())
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	listMethods, err := mangleAll("List", c.ListNames())
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "// Code generated by promptforge factory generate; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", opts.Package)
	fmt.Fprintf(&b, "import (\n")
	fmt.Fprintf(&b, "\t%q\n", modulePath+"/lib/collection")
	fmt.Fprintf(&b, "\t%q\n", modulePath+"/lib/prompt")
	fmt.Fprintf(&b, ")\n\n")

	fmt.Fprintf(&b, "// PromptFactory retrieves and renders prompts from the collection\n")
	fmt.Fprintf(&b, "// in %s.\n", opts.Dir)
	fmt.Fprintf(&b, "type PromptFactory struct {\n")
	fmt.Fprintf(&b, "\tcollection *collection.Collection\n")
	fmt.Fprintf(&b, "\tlang prompt.LangCode\n")
	fmt.Fprintf(&b, "}\n\n")

	fmt.Fprintf(&b, "// NewPromptFactory loads the collection rooted at dir. An empty dir\n")
	fmt.Fprintf(&b, "// loads %s. Pass lang to pin a language for every\n", opts.Dir)
	fmt.Fprintf(&b, "// accessor; empty means the default language.\n")
	fmt.Fprintf(&b, "func NewPromptFactory(dir string, lang prompt.LangCode) (*PromptFactory, error) {\n")
	fmt.Fprintf(&b, "\tif dir == \"\" {\n")
	fmt.Fprintf(&b, "\t\tdir = %q\n", opts.Dir)
	fmt.Fprintf(&b, "\t}\n")
	fmt.Fprintf(&b, "\tc, err := collection.Load(dir)\n")
	fmt.Fprintf(&b, "\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprintf(&b, "\treturn &PromptFactory{collection: c, lang: lang}, nil\n")
	fmt.Fprintf(&b, "}\n")

	for _, name := range c.TemplateNames() {
		if err := writeTemplateMethod(&b, c, opts, name, templateMethods[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range c.ListNames() {
		fmt.Fprintf(&b, "\n// %s returns the %q list.\n", listMethods[name], name)
		fmt.Fprintf(&b, "func (f *PromptFactory) %s() (*prompt.List, error) {\n", listMethods[name])
		fmt.Fprintf(&b, "\treturn f.collection.List(%q, f.lang)\n", name)
		fmt.Fprintf(&b, "}\n")
	}

	formatted, err := format.Source([]byte(b.String()))
	if err != nil {
		return nil, fmt.Errorf("factory: generated code does not format (generator bug): %w", err)
	}
	return formatted, nil
}

// writeTemplateMethod emits one CreateX method. Parameters appear in
// the first-appearance order of the pinned language's variant.
func writeTemplateMethod(b *strings.Builder, c *collection.Collection, opts Options, name, method string) error {
	template, err := c.Template(name, opts.Lang)
	if err != nil {
		return fmt.Errorf("factory: resolving %q for parameter order: %w", name, err)
	}
	params := template.Params()

	args := make([]string, len(params))
	seen := make(map[string]string, len(params))
	for i, param := range params {
		arg := argName(param)
		if previous, exists := seen[arg]; exists {
			return fmt.Errorf("factory: template %q: parameters %q and %q both map to argument %s", name, previous, param, arg)
		}
		seen[arg] = param
		args[i] = arg + " any"
	}

	fmt.Fprintf(b, "\n// %s renders the %q prompt.\n", method, name)
	fmt.Fprintf(b, "func (f *PromptFactory) %s(%s) (string, error) {\n", method, strings.Join(args, ", "))
	if len(params) == 0 {
		fmt.Fprintf(b, "\treturn f.collection.Render(%q, f.lang, nil)\n", name)
	} else {
		fmt.Fprintf(b, "\treturn f.collection.Render(%q, f.lang, prompt.Vars{\n", name)
		for _, param := range params {
			fmt.Fprintf(b, "\t\t%q: %s,\n", param, argName(param))
		}
		fmt.Fprintf(b, "\t})\n")
	}
	fmt.Fprintf(b, "}\n")
	return nil
}

// WriteFile writes generated output atomically (tmp + rename), mode
// 0644, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("factory: creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".factory-*")
	if err != nil {
		return fmt.Errorf("factory: creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("factory: setting mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("factory: writing: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("factory: closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("factory: renaming into place: %w", err)
	}
	return nil
}
