// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"reflect"
	"testing"
)

func TestContainerAdd_Duplicate(t *testing.T) {
	t.Parallel()

	container, err := NewContainer[string]("greeting")
	if err != nil {
		t.Fatalf("NewContainer() error: %v", err)
	}

	if err := container.Add("en", "hello"); err != nil {
		t.Fatalf("first Add() error: %v", err)
	}
	if err := container.Add("en", "hi"); err == nil {
		t.Error("second Add() for the same language should return an error")
	}

	// Replace overwrites deliberately.
	container.Replace("en", "hi")
	got, err := container.Get("en", FallbackError)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "hi" {
		t.Errorf("Get() after Replace = %q, want %q", got, "hi")
	}
}

func TestContainerGet_FallbackError(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[string]("greeting")
	container.Add("en", "hello")

	if _, err := container.Get("de", FallbackError); err == nil {
		t.Error("Get() for unregistered language with FallbackError should fail")
	}

	got, err := container.Get("en", FallbackError)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Get() = %q, want %q", got, "hello")
	}
}

func TestContainerGet_FallbackDefault(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[string]("greeting")
	container.Add(DefaultLang, "hello")
	container.Add("de", "hallo")

	// Registered language wins over the default.
	got, err := container.Get("de", FallbackDefault)
	if err != nil {
		t.Fatalf("Get(de) error: %v", err)
	}
	if got != "hallo" {
		t.Errorf("Get(de) = %q, want %q", got, "hallo")
	}

	// Unregistered language falls back to the default.
	got, err = container.Get("fr", FallbackDefault)
	if err != nil {
		t.Fatalf("Get(fr) error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Get(fr) = %q, want default variant %q", got, "hello")
	}

	// Neither present: the error names both languages.
	empty, _ := NewContainer[string]("empty")
	empty.Add("en", "hello")
	if _, err := empty.Get("fr", FallbackDefault); err == nil {
		t.Error("Get() should fail when neither requested nor default language exists")
	}
}

func TestContainerGet_FallbackAnyDeterministic(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[string]("greeting")
	container.Add("sv", "hej")
	container.Add("de", "hallo")
	container.Add("en", "hello")

	// Smallest language code wins, regardless of insertion order.
	for range 20 {
		got, err := container.Get("fr", FallbackAny)
		if err != nil {
			t.Fatalf("Get() error: %v", err)
		}
		if got != "hallo" {
			t.Fatalf("Get() with FallbackAny = %q, want %q (de sorts first)", got, "hallo")
		}
	}
}

func TestContainerGet_FallbackAnyEmpty(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[string]("empty")
	if _, err := container.Get("en", FallbackAny); err == nil {
		t.Error("Get() with FallbackAny on an empty container should fail")
	}
}

func TestContainerLangs_Sorted(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[int]("counts")
	for _, lang := range []LangCode{"sv", "en", "de", DefaultLang} {
		if err := container.Add(lang, 1); err != nil {
			t.Fatalf("Add(%q) error: %v", lang, err)
		}
	}

	want := []LangCode{"de", "default", "en", "sv"}
	if got := container.Langs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Langs() = %v, want %v", got, want)
	}
}

func TestContainerEmptyLang_IsDefault(t *testing.T) {
	t.Parallel()

	container, _ := NewContainer[string]("greeting")
	if err := container.Add("", "hello"); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	if !container.Has(DefaultLang) {
		t.Error("Add(\"\") should register under DefaultLang")
	}

	got, err := container.Get("", FallbackError)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Get(\"\") = %q, want %q", got, "hello")
	}
}

func TestNewContainer_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := NewContainer[string](""); err == nil {
		t.Error("NewContainer with empty name should return an error")
	}
}
