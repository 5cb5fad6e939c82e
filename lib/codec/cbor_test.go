// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"
)

// sampleEntry is a representative internal record using cbor struct
// tags (the convention for purely-internal types).
type sampleEntry struct {
	Name  string `cbor:"name"`
	Lang  string `cbor:"lang,omitempty"`
	Count int    `cbor:"count"`
}

// sampleManifest uses json struct tags (the convention for types that
// serve both JSON and CBOR, relying on fxamacker's fallback).
type sampleManifest struct {
	Version int    `json:"version"`
	Name    string `json:"name"`
}

func TestMarshalUnmarshalRoundtrip(t *testing.T) {
	original := sampleEntry{
		Name:  "greeting",
		Lang:  "en",
		Count: 42,
	}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("Marshal produced empty output")
	}

	var decoded sampleEntry
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	entry := sampleEntry{
		Name:  "farewell",
		Lang:  "de",
		Count: 7,
	}

	first, err := Marshal(entry)
	if err != nil {
		t.Fatalf("first Marshal: %v", err)
	}

	second, err := Marshal(entry)
	if err != nil {
		t.Fatalf("second Marshal: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("deterministic encoding violated: %x != %x", first, second)
	}
}

func TestEncoderDecoderStreamRoundtrip(t *testing.T) {
	entries := []sampleEntry{
		{Name: "greeting", Lang: "en", Count: 1},
		{Name: "farewell", Lang: "fr", Count: 2},
		{Name: "system", Count: 0},
	}

	var buffer bytes.Buffer
	encoder := NewEncoder(&buffer)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			t.Fatalf("Encode: %v", err)
		}
	}

	decoder := NewDecoder(&buffer)
	for i, want := range entries {
		var got sampleEntry
		if err := decoder.Decode(&got); err != nil {
			t.Fatalf("Decode entry %d: %v", i, err)
		}
		if got != want {
			t.Errorf("entry %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestJSONTagFallback(t *testing.T) {
	// Types with json tags (no cbor tags) should encode/decode
	// correctly through our modes, using json tag names as CBOR
	// map keys.
	original := sampleManifest{Version: 1, Name: "onboarding"}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded sampleManifest
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if decoded != original {
		t.Errorf("json-tag roundtrip mismatch: got %+v, want %+v", decoded, original)
	}
}

func TestDefaultMapType(t *testing.T) {
	data, err := Marshal(map[string]any{"name": "greeting", "version": int64(1)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded any
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	asMap, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("decoded type = %T, want map[string]any", decoded)
	}
	if asMap["name"] != "greeting" {
		t.Errorf("decoded name = %v, want greeting", asMap["name"])
	}
}

func TestUnmarshalInvalidCBOR(t *testing.T) {
	var entry sampleEntry
	err := Unmarshal([]byte{0xFF, 0xFE, 0xFD}, &entry)
	if err == nil {
		t.Error("Unmarshal should reject invalid CBOR")
	}
}

func TestByteStringRoundtrip(t *testing.T) {
	// Verify that []byte fields encode as CBOR byte strings (major
	// type 2), not text strings. Bundle payload digests travel as
	// raw bytes.
	type envelope struct {
		Digest []byte `cbor:"digest"`
	}

	original := envelope{Digest: []byte{0x01, 0x02, 0xCA, 0xFE}}

	data, err := Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded envelope
	if err := Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if !bytes.Equal(decoded.Digest, original.Digest) {
		t.Errorf("byte string roundtrip: got %x, want %x", decoded.Digest, original.Digest)
	}
}

func TestDiagnose(t *testing.T) {
	data, err := Marshal(map[string]any{"name": "greeting"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	notation, err := Diagnose(data)
	if err != nil {
		t.Fatalf("Diagnose: %v", err)
	}

	if !strings.Contains(notation, `"name"`) {
		t.Errorf("notation %q does not contain \"name\"", notation)
	}
	if !strings.Contains(notation, `"greeting"`) {
		t.Errorf("notation %q does not contain \"greeting\"", notation)
	}
}

func BenchmarkMarshal(b *testing.B) {
	entry := sampleEntry{
		Name:  "greeting",
		Lang:  "en",
		Count: 42,
	}

	b.ReportAllocs()
	for b.Loop() {
		Marshal(entry)
	}
}
