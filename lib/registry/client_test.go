// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/clock"
	"github.com/promptforge-foundation/promptforge/lib/secret"
	"github.com/promptforge-foundation/promptforge/lib/testutil"
)

// fakeRegistry is a minimal in-memory registry for client tests.
type fakeRegistry struct {
	token    string
	bundles  map[string][]byte // digest → raw bundle
	requests atomic.Int64
}

func newFakeRegistry(token string) *fakeRegistry {
	return &fakeRegistry{token: token, bundles: make(map[string][]byte)}
}

func (f *fakeRegistry) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.requests.Add(1)
	if r.Header.Get("Authorization") != "Bearer "+f.token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/bundles":
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		manifest, err := bundle.Verify(data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		digest, err := manifest.Digest()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		f.bundles[digest] = data
		json.NewEncoder(w).Encode(PushResult{
			Digest:  digest,
			Name:    manifest.Name,
			Version: manifest.Version,
		})
	case strings.HasPrefix(r.URL.Path, "/v1/bundles/"):
		digest := strings.TrimPrefix(r.URL.Path, "/v1/bundles/")
		data, ok := f.bundles[digest]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.Write(data)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func testClient(t *testing.T, serverURL, token string) *Client {
	t.Helper()
	buf, err := secret.NewFromBytes([]byte(token))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { buf.Close() })
	client, err := NewClient(ClientConfig{BaseURL: serverURL, Token: buf})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func buildClientTestBundle(t *testing.T) (string, string) {
	t.Helper()
	dir := testutil.WriteCollection(t, map[string]string{
		"prompts.en.yaml": "lang: en\nprompts:\n  greeting: \"Hello, {{ name }}!\"\n",
	})
	out := filepath.Join(t.TempDir(), "test.pfb")
	manifest, err := bundle.Build(dir, "greetings", "1.0.0", out, bundle.BuildOptions{
		Clock: clock.Fake(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatal(err)
	}
	digest, err := manifest.Digest()
	if err != nil {
		t.Fatal(err)
	}
	return out, digest
}

func TestPushAndFetch(t *testing.T) {
	t.Parallel()
	registry := newFakeRegistry("s3cret")
	server := httptest.NewServer(registry)
	defer server.Close()

	bundlePath, digest := buildClientTestBundle(t)
	client := testClient(t, server.URL, "s3cret")

	result, err := client.Push(context.Background(), bundlePath)
	if err != nil {
		t.Fatalf("Push: %v", err)
	}
	if result.Digest != digest {
		t.Errorf("Push digest = %s, want %s", result.Digest, digest)
	}
	if result.Name != "greetings" || result.Version != "1.0.0" {
		t.Errorf("Push result = %s/%s", result.Name, result.Version)
	}

	ok, err := client.Exists(context.Background(), digest)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !ok {
		t.Error("Exists = false after push")
	}
	ok, err = client.Exists(context.Background(), strings.Repeat("0", 64))
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("Exists = true for an unknown digest")
	}

	dest := filepath.Join(t.TempDir(), "fetched.pfb")
	manifest, err := client.Fetch(context.Background(), digest, dest)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if manifest.Name != "greetings" {
		t.Errorf("fetched manifest name = %s", manifest.Name)
	}
	want, err := os.ReadFile(bundlePath)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(want) {
		t.Error("fetched bundle differs from pushed bundle")
	}
}

func TestPushUnauthorized(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(newFakeRegistry("right"))
	defer server.Close()

	bundlePath, _ := buildClientTestBundle(t)
	client := testClient(t, server.URL, "wrong")
	_, err := client.Push(context.Background(), bundlePath)
	if err == nil {
		t.Fatal("Push succeeded with the wrong token")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error %q does not name the 401", err)
	}
}

func TestPushDigestCrossCheck(t *testing.T) {
	t.Parallel()
	// A registry that acknowledges with a wrong digest must be caught.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		json.NewEncoder(w).Encode(PushResult{Digest: strings.Repeat("f", 64)})
	}))
	defer server.Close()

	bundlePath, _ := buildClientTestBundle(t)
	client := testClient(t, server.URL, "token")
	if _, err := client.Push(context.Background(), bundlePath); err == nil {
		t.Fatal("Push accepted a mismatched server digest")
	}
}

func TestFetchRejectsCorruptedDownload(t *testing.T) {
	t.Parallel()
	bundlePath, digest := buildClientTestBundle(t)
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		t.Fatal(err)
	}
	// Serve the bundle with its last byte flipped.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		corrupt := append([]byte(nil), data...)
		corrupt[len(corrupt)-1] ^= 0xff
		w.Write(corrupt)
	}))
	defer server.Close()

	client := testClient(t, server.URL, "token")
	dest := filepath.Join(t.TempDir(), "fetched.pfb")
	if _, err := client.Fetch(context.Background(), digest, dest); err == nil {
		t.Fatal("Fetch accepted a corrupted download")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Fetch left a corrupted file at the destination")
	}
}

func TestMissingTokenMakesNoRequests(t *testing.T) {
	t.Setenv(TokenEnvVar, "")
	registry := newFakeRegistry("token")
	server := httptest.NewServer(registry)
	defer server.Close()

	// The push flow resolves the token before constructing a client.
	// With every source empty, nothing may reach the server.
	token, err := ResolveToken("", t.TempDir())
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("ResolveToken = %v, want ErrNoToken", err)
	}
	if _, err := NewClient(ClientConfig{BaseURL: server.URL, Token: token}); err == nil {
		t.Fatal("NewClient accepted a nil token")
	}
	if n := registry.requests.Load(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	t.Parallel()
	token, err := secret.NewFromBytes([]byte("token"))
	if err != nil {
		t.Fatal(err)
	}
	defer token.Close()
	if _, err := NewClient(ClientConfig{BaseURL: "ftp://registry", Token: token}); err == nil {
		t.Error("NewClient accepted a non-HTTP URL")
	}
}

func TestTokenMAC(t *testing.T) {
	t.Parallel()
	a := TokenMAC([]byte("alpha"))
	b := TokenMAC([]byte("beta"))
	if MACEqual(a, b) {
		t.Error("MACs of distinct tokens compare equal")
	}
	if !MACEqual(a, TokenMAC([]byte("alpha"))) {
		t.Error("MAC of the same token is not stable")
	}
}
