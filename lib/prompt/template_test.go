// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewTemplate_Params(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			name:   "no parameters",
			source: "You are a helpful assistant.",
			want:   nil,
		},
		{
			name:   "single parameter",
			source: "You are {{ agent_name }}.",
			want:   []string{"agent_name"},
		},
		{
			name:   "first appearance order",
			source: "{{ task }} for {{ agent_name }} on {{ task }}",
			want:   []string{"task", "agent_name"},
		},
		{
			name:   "no interior whitespace",
			source: "Hello {{name}}!",
			want:   []string{"name"},
		},
		{
			name:   "underscore start",
			source: "{{ _internal }} value",
			want:   []string{"_internal"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			template, err := NewTemplate("test", test.source)
			if err != nil {
				t.Fatalf("NewTemplate() error: %v", err)
			}
			if got := template.Params(); !reflect.DeepEqual(got, test.want) {
				t.Errorf("Params() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestNewTemplate_TrimsSource(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("padded", "\n\n  Hello {{ name }}.  \n")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}
	if got := template.Source(); got != "Hello {{ name }}." {
		t.Errorf("Source() = %q, want trimmed text", got)
	}
}

func TestNewTemplate_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{name: "unterminated", source: "Hello {{ name"},
		{name: "empty placeholder", source: "Hello {{ }}"},
		{name: "name starts with digit", source: "Hello {{ 9lives }}"},
		{name: "dash in name", source: "Hello {{ agent-name }}"},
		{name: "brace cluster", source: "Hello {{{ name }}}"},
		{name: "space in name", source: "Hello {{ agent name }}"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewTemplate("test", test.source)
			if err == nil {
				t.Fatalf("NewTemplate(%q) succeeded, want malformed-placeholder error", test.source)
			}
			if !strings.Contains(err.Error(), "malformed placeholder") {
				t.Errorf("error = %q, want it to mention the malformed placeholder", err)
			}
		})
	}
}

func TestNewTemplate_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := NewTemplate("", "text"); err == nil {
		t.Error("NewTemplate with empty name should return an error")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("greeting", "You are {{ agent_name }}, attempt {{ count }}.")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}

	got, err := template.Render(Vars{"agent_name": "forge", "count": 3})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	want := "You are forge, attempt 3."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_RepeatedParameter(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("echo", "{{ word }} {{ word }} {{ word }}")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}

	got, err := template.Render(Vars{"word": "go"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "go go go" {
		t.Errorf("Render() = %q, want %q", got, "go go go")
	}
}

func TestRender_MissingParams(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("task", "{{ task }} for {{ agent_name }} in {{ repo }}, again {{ task }}")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}

	_, err = template.Render(Vars{"agent_name": "forge"})
	if err == nil {
		t.Fatal("Render() with missing parameters should return an error")
	}

	// Every missing name appears once, in first-appearance order.
	message := err.Error()
	if !strings.Contains(message, "task, repo") {
		t.Errorf("error = %q, want missing names listed as \"task, repo\"", message)
	}
	if strings.Count(message, "task") != 1 {
		t.Errorf("error = %q, want %q listed exactly once", message, "task")
	}
}

func TestRender_ExtraVarsIgnored(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("plain", "Static text.")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}

	got, err := template.Render(Vars{"unused": "value"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "Static text." {
		t.Errorf("Render() = %q, want unchanged text", got)
	}
}

func TestRender_EmptySource(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("empty", "")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}
	if params := template.Params(); len(params) != 0 {
		t.Errorf("Params() = %v, want none", params)
	}

	got, err := template.Render(nil)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if got != "" {
		t.Errorf("Render() = %q, want empty string", got)
	}
}

func TestParams_ReturnsCopy(t *testing.T) {
	t.Parallel()

	template, err := NewTemplate("copy", "{{ a }} {{ b }}")
	if err != nil {
		t.Fatalf("NewTemplate() error: %v", err)
	}

	first := template.Params()
	first[0] = "mutated"
	second := template.Params()
	if second[0] != "a" {
		t.Errorf("Params() affected by caller mutation: got %v", second)
	}
}
