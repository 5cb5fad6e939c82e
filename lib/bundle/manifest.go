// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"

	"github.com/promptforge-foundation/promptforge/lib/codec"
)

// FormatVersion is the current bundle format. Readers reject bundles
// with a version they do not know.
const FormatVersion = 1

// FileEntry describes one packed file.
type FileEntry struct {
	// Path is the file's location relative to the collection root,
	// always forward-slash separated.
	Path string `cbor:"path"`
	// Size is the uncompressed length in bytes.
	Size int64 `cbor:"size"`
	// Compression is the codec the payload is stored with.
	Compression CompressionTag `cbor:"compression"`
	// CompressedSize is the stored payload length in bytes.
	CompressedSize int64 `cbor:"compressed_size"`
	// Hash is the hex keyed BLAKE3 hash of the uncompressed content.
	Hash string `cbor:"hash"`
}

// Manifest is the bundle's table of contents. It is encoded with
// deterministic CBOR, so the same collection packed twice with the same
// timestamp produces byte-identical manifests.
type Manifest struct {
	FormatVersion int    `cbor:"format_version"`
	Name          string `cbor:"name"`
	Version       string `cbor:"version"`
	// CreatedAt is the pack time in UTC RFC 3339.
	CreatedAt string      `cbor:"created_at"`
	Files     []FileEntry `cbor:"files"`
	// Languages, TemplateNames, and ListNames summarize the packed
	// collection so a registry can index a bundle without unpacking it.
	Languages     []string `cbor:"languages"`
	TemplateNames []string `cbor:"template_names"`
	ListNames     []string `cbor:"list_names"`
	// TotalSize is the sum of all uncompressed file sizes.
	TotalSize int64 `cbor:"total_size"`
}

// Encode renders the manifest with deterministic CBOR.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := codec.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// Digest returns the hex keyed BLAKE3 digest of the encoded manifest.
// Because the encoding is deterministic, the digest is stable across
// pack, read, and registry round-trips.
func (m *Manifest) Digest() (string, error) {
	data, err := m.Encode()
	if err != nil {
		return "", err
	}
	return FormatHash(HashManifest(data)), nil
}

func decodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := codec.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if m.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported bundle format version %d", m.FormatVersion)
	}
	return &m, nil
}
