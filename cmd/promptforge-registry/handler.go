// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/clock"
	"github.com/promptforge-foundation/promptforge/lib/netutil"
	"github.com/promptforge-foundation/promptforge/lib/registry"
	"github.com/promptforge-foundation/promptforge/lib/sqlitepool"
)

// server holds the registry's runtime state: the bundle store
// directory, the SQLite index, and the accepted token MACs.
type server struct {
	bundlesDir string
	pool       *sqlitepool.Pool
	tokens     *tokenSet
	logger     *slog.Logger
	clock      clock.Clock
}

func newServer(storeDir string, pool *sqlitepool.Pool, tokens *tokenSet, clk clock.Clock, logger *slog.Logger) (*server, error) {
	bundlesDir := filepath.Join(storeDir, "bundles")
	if err := os.MkdirAll(bundlesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating bundle store: %w", err)
	}
	return &server{
		bundlesDir: bundlesDir,
		pool:       pool,
		tokens:     tokens,
		logger:     logger,
		clock:      clk,
	}, nil
}

// routes builds the HTTP mux. Every /v1 endpoint sits behind the
// bearer-token gate; only the liveness probe is open.
func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("POST /v1/bundles", s.requireAuth(s.handleUpload))
	mux.Handle("GET /v1/bundles", s.requireAuth(s.handleIndex))
	mux.Handle("GET /v1/bundles/{digest}", s.requireAuth(s.handleGet))
	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

// requireAuth rejects requests without a known bearer token. The
// check runs before any body bytes are read, so an unauthenticated
// upload costs the server only the request headers.
func (s *server) requireAuth(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, isBearer := strings.CutPrefix(header, "Bearer ")
		if !isBearer || token == "" {
			s.unauthorized(w, r, "missing bearer token")
			return
		}
		client, ok := s.tokens.authenticate(token)
		if !ok {
			s.unauthorized(w, r, "unknown token")
			return
		}
		s.logger.Debug("request authenticated",
			"client", client,
			"method", r.Method,
			"path", r.URL.Path)
		next(w, r)
	})
}

func (s *server) unauthorized(w http.ResponseWriter, r *http.Request, reason string) {
	s.logger.Warn("request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"remote", r.RemoteAddr)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// handleUpload stores an uploaded bundle under its content digest.
// The bundle is fully verified before anything reaches the store
// path, and the final rename is atomic: a crashed upload leaves no
// partial file, and the store never holds data whose digest does not
// match its name. Re-uploading an existing digest is an idempotent
// success.
func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, netutil.MaxResponseSize))
	if err != nil {
		http.Error(w, fmt.Sprintf("reading upload: %v", err), http.StatusBadRequest)
		return
	}
	manifest, err := bundle.Verify(data)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid bundle: %v", err), http.StatusBadRequest)
		return
	}
	digest, err := manifest.Digest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	finalPath := filepath.Join(s.bundlesDir, digest+".pfb")
	if _, err := os.Stat(finalPath); err == nil {
		s.logger.Info("duplicate upload", "digest", digest)
		s.respondStored(w, digest, manifest)
		return
	}

	tmp, err := os.CreateTemp(s.bundlesDir, ".upload-*")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		os.Remove(tmp.Name())
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := s.indexInsert(r, digest, manifest, int64(len(data))); err != nil {
		s.logger.Error("indexing uploaded bundle", "digest", digest, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Info("bundle stored",
		"digest", digest,
		"name", manifest.Name,
		"version", manifest.Version,
		"size", len(data))
	s.respondStored(w, digest, manifest)
}

func (s *server) respondStored(w http.ResponseWriter, digest string, manifest *bundle.Manifest) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(registry.PushResult{
		Digest:  digest,
		Name:    manifest.Name,
		Version: manifest.Version,
	})
}

// handleGet serves a stored bundle. ServeFile handles HEAD requests
// itself, so one handler covers both existence checks and downloads.
func (s *server) handleGet(w http.ResponseWriter, r *http.Request) {
	digest := r.PathValue("digest")
	if _, err := bundle.ParseHash(digest); err != nil {
		http.Error(w, fmt.Sprintf("invalid digest: %v", err), http.StatusBadRequest)
		return
	}
	path := filepath.Join(s.bundlesDir, digest+".pfb")
	if _, err := os.Stat(path); err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, path)
}

// handleIndex lists every stored bundle from the SQLite index.
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	conn, err := s.pool.Take(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer s.pool.Put(conn)

	entries := []registry.IndexEntry{}
	err = sqlitex.Execute(conn,
		`SELECT digest, name, version, size, uploaded_at FROM bundles ORDER BY uploaded_at, digest`,
		&sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				entries = append(entries, registry.IndexEntry{
					Digest:     stmt.ColumnText(0),
					Name:       stmt.ColumnText(1),
					Version:    stmt.ColumnText(2),
					Size:       stmt.ColumnInt64(3),
					UploadedAt: stmt.ColumnText(4),
				})
				return nil
			},
		})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// indexInsert records an uploaded bundle in the SQLite index. The
// digest is the primary key, so a concurrent duplicate upload
// degrades to a harmless no-op.
func (s *server) indexInsert(r *http.Request, digest string, manifest *bundle.Manifest, size int64) error {
	conn, err := s.pool.Take(r.Context())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	return sqlitex.Execute(conn,
		`INSERT OR IGNORE INTO bundles (digest, name, version, size, uploaded_at) VALUES (?, ?, ?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []any{
				digest,
				manifest.Name,
				manifest.Version,
				size,
				s.clock.Now().UTC().Format(time.RFC3339),
			},
		})
}
