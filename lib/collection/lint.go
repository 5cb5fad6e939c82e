// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package collection

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// Issue is one structural problem found by Lint. File is always set;
// Name is empty for file-level problems.
type Issue struct {
	File    string `json:"file"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Name == "" {
		return fmt.Sprintf("%s: %s", i.File, i.Message)
	}
	return fmt.Sprintf("%s: prompt %q: %s", i.File, i.Name, i.Message)
}

// Lint checks every collection file in dir and reports all problems
// it can find, without stopping at the first one. An empty result
// means Load would succeed.
func Lint(dir string) []Issue {
	return LintFS(os.DirFS(dir), ".")
}

// LintFS is Lint over an fs.FS.
func LintFS(fsys fs.FS, dir string) []Issue {
	var issues []Issue
	report := func(file, name, format string, args ...any) {
		issues = append(issues, Issue{File: file, Name: name, Message: fmt.Sprintf(format, args...)})
	}

	files, err := readFiles(fsys, dir, nil)
	if err != nil {
		report(dir, "", "%v", err)
		return issues
	}

	// Shadow registries mirroring what Load would build, kept going
	// past errors so every file gets checked.
	templates := make(map[string]*prompt.MultiTemplate)
	lists := make(map[string]bool)
	sources := make(map[string]map[prompt.LangCode]string)

	for _, file := range files {
		if file.err != nil {
			report(file.path, "", "%v", file.err)
			continue
		}
		if file.langInPrompts {
			report(file.path, "", "\"lang\" key inside the prompts mapping; the language selector belongs at the top level")
		}

		for _, entry := range file.entries {
			if entry.err != nil {
				report(file.path, entry.name, "%v", entry.err)
				continue
			}

			if previous, exists := sources[entry.name][file.lang]; exists {
				report(file.path, entry.name, "already defined for lang %q in %s", file.lang, previous)
				continue
			}
			if sources[entry.name] == nil {
				sources[entry.name] = make(map[prompt.LangCode]string)
			}
			sources[entry.name][file.lang] = file.path

			switch entry.kind {
			case kindTemplate:
				issues = append(issues, lintTemplate(file, entry, templates, lists)...)
			case kindList:
				if _, isTemplate := templates[entry.name]; isTemplate {
					report(file.path, entry.name, "defined as a list here but as a template elsewhere")
					continue
				}
				lists[entry.name] = true
				if len(entry.items) == 0 {
					report(file.path, entry.name, "list is empty")
				}
			}
		}
	}
	return issues
}

// lintTemplate checks one template entry: placeholder syntax,
// emptiness, reserved parameters, kind collisions, and parameter
// consistency with already-seen language variants.
func lintTemplate(file rawFile, entry rawEntry, templates map[string]*prompt.MultiTemplate, lists map[string]bool) []Issue {
	var issues []Issue
	report := func(format string, args ...any) {
		issues = append(issues, Issue{File: file.path, Name: entry.name, Message: fmt.Sprintf(format, args...)})
	}

	if lists[entry.name] {
		report("defined as a template here but as a list elsewhere")
		return issues
	}

	template, err := prompt.NewTemplate(entry.name, entry.source)
	if err != nil {
		report("%v", err)
		return issues
	}
	if template.Source() == "" {
		report("template is empty")
	}
	for _, param := range template.Params() {
		if prompt.ReservedParam(param) {
			report("parameter %q is reserved for lookup arguments", param)
		}
	}

	multi := templates[entry.name]
	if multi == nil {
		multi, err = prompt.NewMultiTemplate(entry.name)
		if err != nil {
			report("%v", err)
			return issues
		}
		templates[entry.name] = multi
	}
	// Add reports parameter mismatches against other languages.
	// Reserved-name rejections would duplicate the check above, so
	// only surface errors for templates that passed it.
	if err := multi.Add(file.lang, template); err != nil {
		hasReserved := false
		for _, param := range template.Params() {
			if prompt.ReservedParam(param) {
				hasReserved = true
			}
		}
		if !hasReserved {
			report("%v", err)
		}
	}
	return issues
}
