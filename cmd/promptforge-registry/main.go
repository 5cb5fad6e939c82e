// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/promptforge-foundation/promptforge/lib/clock"
	"github.com/promptforge-foundation/promptforge/lib/sqlitepool"
	"github.com/promptforge-foundation/promptforge/lib/version"
)

const indexSchema = `
CREATE TABLE IF NOT EXISTS bundles (
	digest      TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	version     TEXT NOT NULL,
	size        INTEGER NOT NULL,
	uploaded_at TEXT NOT NULL
);
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		showVersion bool
		listenAddr  string
		storeDir    string
		tokenFile   string
		verbose     bool
	)
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.StringVar(&listenAddr, "listen", ":8474", "address to listen on")
	flag.StringVar(&storeDir, "store-dir", "", "bundle store root directory (required)")
	flag.StringVar(&tokenFile, "token-file", "", "file of name:token lines (required)")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("promptforge-registry %s\n", version.Info())
		return nil
	}
	if storeDir == "" {
		return fmt.Errorf("--store-dir is required")
	}
	if tokenFile == "" {
		return fmt.Errorf("--token-file is required")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tokens, err := loadTokens(tokenFile)
	if err != nil {
		return err
	}
	logger.Info("tokens loaded", "count", len(tokens.entries))

	if err := os.MkdirAll(storeDir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   filepath.Join(storeDir, "index.db"),
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, indexSchema, nil)
		},
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	srv, err := newServer(storeDir, pool, tokens, clock.Real(), logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         listenAddr,
		Handler:      srv.routes(),
		ReadTimeout:  5 * time.Minute,
		WriteTimeout: 5 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("registry listening", "addr", listenAddr, "store", storeDir)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
