// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// entryKind distinguishes the two prompt value shapes.
type entryKind int

const (
	kindTemplate entryKind = iota
	kindList
)

func (k entryKind) String() string {
	if k == kindList {
		return "list"
	}
	return "template"
}

// rawEntry is one parsed prompts: key before template construction.
type rawEntry struct {
	name   string
	kind   entryKind
	source string   // template source (kindTemplate)
	items  []string // list items (kindList)
	err    error    // value-shape problem, nil if well-formed
}

// rawFile is one parsed collection file. err covers whole-file
// problems (unreadable, invalid YAML, missing prompts key); entries
// carry their own per-key errors. Errors do not repeat the file path
// or prompt name; Load and Lint add that context.
type rawFile struct {
	path          string
	lang          prompt.LangCode
	entries       []rawEntry
	langInPrompts bool // a "lang" key appeared inside the prompts mapping
	err           error
}

// readFiles parses every .yml/.yaml file directly inside dir, in
// sorted filename order. Other files are skipped with a debug log
// line. Only directory access itself is a hard error; per-file
// problems are recorded in the returned rawFiles so that Lint can
// report all of them.
func readFiles(fsys fs.FS, dir string, logger *slog.Logger) ([]rawFile, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	dirEntries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading collection directory: %w", err)
	}

	var names []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			logger.Debug("skipping non-YAML file", "file", name)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	files := make([]rawFile, 0, len(names))
	for _, name := range names {
		path := name
		if dir != "." {
			path = dir + "/" + name
		}
		files = append(files, parseFile(fsys, path))
	}
	return files, nil
}

// parseFile parses one collection file into a rawFile.
func parseFile(fsys fs.FS, path string) rawFile {
	file := rawFile{path: path, lang: prompt.DefaultLang}

	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		file.err = err
		return file
	}

	var doc struct {
		Lang    string                `yaml:"lang"`
		Prompts map[string]yaml.Node `yaml:"prompts"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		file.err = err
		return file
	}
	if doc.Lang != "" {
		file.lang = prompt.LangCode(doc.Lang)
	}
	if doc.Prompts == nil {
		file.err = fmt.Errorf("missing prompts key")
		return file
	}

	// Sorted for deterministic error and issue ordering. YAML
	// rejects duplicate mapping keys, so names are unique here.
	names := make([]string, 0, len(doc.Prompts))
	for name := range doc.Prompts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if name == "lang" {
			// The language selector belongs at the top level; a
			// prompt named "lang" is almost certainly a misplaced
			// selector. Lint flags it, Load ignores it.
			file.langInPrompts = true
			continue
		}
		node := doc.Prompts[name]
		file.entries = append(file.entries, parseEntry(name, &node))
	}
	return file
}

// parseEntry converts one prompts: value node into a rawEntry.
// Strings become templates, sequences become lists, anything else is
// an error.
func parseEntry(name string, node *yaml.Node) rawEntry {
	entry := rawEntry{name: name}

	switch {
	case node == nil || node.Kind == 0:
		entry.err = fmt.Errorf("value is empty")

	case node.Kind == yaml.ScalarNode && node.Tag == "!!str":
		entry.kind = kindTemplate
		entry.source = node.Value

	case node.Kind == yaml.SequenceNode:
		entry.kind = kindList
		for index, item := range node.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				entry.err = fmt.Errorf("item %d is not a string", index)
				return entry
			}
			entry.items = append(entry.items, item.Value)
		}

	default:
		entry.err = fmt.Errorf("value must be a string or a sequence of strings")
	}
	return entry
}
