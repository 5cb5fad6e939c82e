// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strings"

	"github.com/promptforge-foundation/promptforge/lib/registry"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

// tokenSet holds the MACs of the tokens the server accepts. Raw token
// bytes are discarded after startup; only keyed BLAKE3 MACs are kept,
// so a heap dump of the running server never exposes a credential.
type tokenSet struct {
	entries []tokenEntry
}

type tokenEntry struct {
	name string
	mac  [32]byte
}

// loadTokens reads a token file of "name:token" lines. Blank lines
// and #-comments are skipped. The file contents pass through guarded
// memory and are zeroed once the MACs are computed.
func loadTokens(path string) (*tokenSet, error) {
	buffer, err := secret.ReadFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	defer buffer.Close()

	set := &tokenSet{}
	for lineNumber, line := range strings.Split(string(buffer.Bytes()), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		name, token, found := strings.Cut(line, ":")
		if !found || name == "" || token == "" {
			return nil, fmt.Errorf("token file line %d: expected name:token", lineNumber+1)
		}
		set.entries = append(set.entries, tokenEntry{
			name: name,
			mac:  registry.TokenMAC([]byte(token)),
		})
	}
	if len(set.entries) == 0 {
		return nil, fmt.Errorf("token file %s holds no tokens", path)
	}
	return set, nil
}

// authenticate checks a presented bearer token against every known
// MAC in constant time and returns the matching client name. The
// scan always visits every entry so timing does not reveal which
// entry matched.
func (s *tokenSet) authenticate(token string) (string, bool) {
	presented := registry.TokenMAC([]byte(token))
	matched := ""
	found := false
	for _, entry := range s.entries {
		if registry.MACEqual(entry.mac, presented) {
			matched = entry.name
			found = true
		}
	}
	return matched, found
}
