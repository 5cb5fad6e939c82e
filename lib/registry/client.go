// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/netutil"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// ClientConfig configures a registry Client.
type ClientConfig struct {
	// BaseURL is the registry root, e.g. "https://registry.example.com".
	BaseURL string
	// Token is the bearer token. Required.
	Token *secret.Buffer
	// HTTPClient overrides the default client (60s timeout).
	HTTPClient *http.Client
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client talks to a bundle registry.
type Client struct {
	baseURL    string
	token      *secret.Buffer
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the configuration and returns a Client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Token == nil {
		return nil, ErrNoToken
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL %q: %w", cfg.BaseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid registry URL %q: scheme must be http or https", cfg.BaseURL)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	var request *http.Request
	var err error
	if reader != nil {
		request, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "Bearer "+c.token.String())
	return request, nil
}

// PushResult is the registry's record of an accepted upload.
type PushResult struct {
	Digest  string `json:"digest"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Push uploads the bundle at bundlePath in a single POST. The server's
// reported digest is cross-checked against the local manifest digest;
// a mismatch means the registry stored something other than what was
// sent. Push never retries — a failure is reported and the operator
// re-runs the command.
func (c *Client) Push(ctx context.Context, bundlePath string) (*PushResult, error) {
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("reading bundle: %w", err)
	}
	manifest, err := bundle.Read(data)
	if err != nil {
		return nil, fmt.Errorf("parsing bundle: %w", err)
	}
	localDigest, err := manifest.Digest()
	if err != nil {
		return nil, err
	}

	c.logger.Info("pushing bundle",
		"name", manifest.Name,
		"version", manifest.Version,
		"digest", localDigest,
		"size", len(data))

	request, err := c.newRequest(ctx, http.MethodPost, "/v1/bundles", data)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/octet-stream")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("push: HTTP %d: %s", response.StatusCode,
			strings.TrimSpace(netutil.ErrorBody(response.Body)))
	}
	var result PushResult
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	if result.Digest != localDigest {
		return nil, fmt.Errorf("push: registry reported digest %s, local bundle is %s",
			result.Digest, localDigest)
	}
	return &result, nil
}

// Exists reports whether the registry holds a bundle with the digest.
func (c *Client) Exists(ctx context.Context, digest string) (bool, error) {
	request, err := c.newRequest(ctx, http.MethodHead, "/v1/bundles/"+url.PathEscape(digest), nil)
	if err != nil {
		return false, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("exists: HTTP %d", response.StatusCode)
	}
}

// Fetch downloads the bundle with the digest to destPath. The download
// is fully verified — payload hashes and manifest digest — before the
// file lands, so destPath never holds a bundle that does not match the
// requested digest.
func (c *Client) Fetch(ctx context.Context, digest, destPath string) (*bundle.Manifest, error) {
	request, err := c.newRequest(ctx, http.MethodGet, "/v1/bundles/"+url.PathEscape(digest), nil)
	if err != nil {
		return nil, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("fetch: bundle %s not found", digest)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: HTTP %d: %s", response.StatusCode,
			strings.TrimSpace(netutil.ErrorBody(response.Body)))
	}
	data, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	manifest, err := bundle.Verify(data)
	if err != nil {
		return nil, fmt.Errorf("fetch: downloaded bundle failed verification: %w", err)
	}
	gotDigest, err := manifest.Digest()
	if err != nil {
		return nil, err
	}
	if gotDigest != digest {
		return nil, fmt.Errorf("fetch: requested digest %s, downloaded bundle is %s", digest, gotDigest)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("writing bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing bundle: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return nil, fmt.Errorf("renaming bundle: %w", err)
	}
	return manifest, nil
}

// IndexEntry is one bundle in the registry's index listing.
type IndexEntry struct {
	Digest     string `json:"digest"`
	Name       string `json:"name"`
	Version    string `json:"version"`
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// Index lists every bundle the registry holds.
func (c *Client) Index(ctx context.Context) ([]IndexEntry, error) {
	request, err := c.newRequest(ctx, http.MethodGet, "/v1/bundles", nil)
	if err != nil {
		return nil, err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index: HTTP %d: %s", response.StatusCode,
			strings.TrimSpace(netutil.ErrorBody(response.Body)))
	}
	var entries []IndexEntry
	if err := netutil.DecodeResponse(response.Body, &entries); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	return entries, nil
}
