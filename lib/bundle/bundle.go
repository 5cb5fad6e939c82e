// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/promptforge-foundation/promptforge/lib/clock"
	"github.com/promptforge-foundation/promptforge/lib/collection"
)

// manifestLenSize is the length prefix framing the manifest: a 4-byte
// big-endian count of manifest bytes at the start of the file.
const manifestLenSize = 4

// maxManifestSize bounds the length prefix so a corrupt or hostile
// file cannot drive a huge allocation.
const maxManifestSize = 16 << 20

// BuildOptions tunes Build. The zero value is ready to use.
type BuildOptions struct {
	// Clock supplies the manifest timestamp. Nil means wall clock.
	Clock clock.Clock
	// Compression forces a codec for every file. Empty means
	// per-file probing.
	Compression string
}

// Build validates the collection under dir, packs its source files
// into a bundle at outPath, and returns the manifest. The collection
// must load cleanly; a bundle never ships a broken collection.
func Build(dir, name, version, outPath string, opts BuildOptions) (*Manifest, error) {
	coll, err := collection.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading collection: %w", err)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	var forced CompressionTag
	if opts.Compression != "" {
		forced, err = ParseCompressionTag(opts.Compression)
		if err != nil {
			return nil, err
		}
	}

	paths, err := sourceFiles(dir)
	if err != nil {
		return nil, err
	}

	manifest := &Manifest{
		FormatVersion: FormatVersion,
		Name:          name,
		Version:       version,
		CreatedAt:     clk.Now().UTC().Format(time.RFC3339),
		TemplateNames: coll.TemplateNames(),
		ListNames:     coll.ListNames(),
	}
	for _, lang := range coll.Langs() {
		manifest.Languages = append(manifest.Languages, string(lang))
	}

	var payloads [][]byte
	for _, rel := range paths {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", rel, err)
		}
		tag := forced
		if opts.Compression == "" {
			tag = selectCompression(data)
		}
		stored, tag, err := compressAuto(data, tag)
		if err != nil {
			return nil, fmt.Errorf("compressing %s: %w", rel, err)
		}
		manifest.Files = append(manifest.Files, FileEntry{
			Path:           rel,
			Size:           int64(len(data)),
			Compression:    tag,
			CompressedSize: int64(len(stored)),
			Hash:           FormatHash(HashFile(data)),
		})
		manifest.TotalSize += int64(len(data))
		payloads = append(payloads, stored)
	}

	encoded, err := manifest.Encode()
	if err != nil {
		return nil, err
	}
	if err := writeBundle(outPath, encoded, payloads); err != nil {
		return nil, err
	}
	return manifest, nil
}

// sourceFiles lists the collection's YAML files relative to dir, sorted
// and forward-slash separated.
func sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading collection directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		paths = append(paths, entry.Name())
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return nil, fmt.Errorf("no collection files in %s", dir)
	}
	return paths, nil
}

// writeBundle assembles the framed bundle and lands it atomically.
func writeBundle(outPath string, manifest []byte, payloads [][]byte) error {
	if len(manifest) > maxManifestSize {
		return fmt.Errorf("manifest is %d bytes, limit %d", len(manifest), maxManifestSize)
	}
	var out []byte
	out = binary.BigEndian.AppendUint32(out, uint32(len(manifest)))
	out = append(out, manifest...)
	for _, p := range payloads {
		out = append(out, p...)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outPath), ".bundle-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing bundle: %w", err)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("renaming bundle: %w", err)
	}
	return nil
}

// Read parses the manifest of the bundle in data without touching the
// payloads.
func Read(data []byte) (*Manifest, error) {
	manifest, _, err := splitBundle(data)
	return manifest, err
}

// ReadFile parses the manifest of the bundle at path.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Read(data)
}

func splitBundle(data []byte) (*Manifest, []byte, error) {
	if IsEncrypted(data) {
		return nil, nil, fmt.Errorf("bundle is encrypted")
	}
	if len(data) < manifestLenSize {
		return nil, nil, fmt.Errorf("bundle is truncated: %d bytes", len(data))
	}
	manifestLen := binary.BigEndian.Uint32(data[:manifestLenSize])
	if manifestLen > maxManifestSize {
		return nil, nil, fmt.Errorf("manifest length %d exceeds limit %d", manifestLen, maxManifestSize)
	}
	if int64(len(data)-manifestLenSize) < int64(manifestLen) {
		return nil, nil, fmt.Errorf("bundle is truncated: manifest needs %d bytes, have %d",
			manifestLen, len(data)-manifestLenSize)
	}
	manifest, err := decodeManifest(data[manifestLenSize : manifestLenSize+int(manifestLen)])
	if err != nil {
		return nil, nil, err
	}
	return manifest, data[manifestLenSize+int(manifestLen):], nil
}

// Verify decompresses every payload in data and checks it against the
// manifest's sizes and hashes. It returns the manifest on success.
func Verify(data []byte) (*Manifest, error) {
	manifest, _, err := unpack(data)
	return manifest, err
}

// unpack splits, decompresses, and verifies a bundle, returning the
// manifest and the uncompressed file contents in manifest order.
func unpack(data []byte) (*Manifest, [][]byte, error) {
	manifest, payload, err := splitBundle(data)
	if err != nil {
		return nil, nil, err
	}
	var contents [][]byte
	for _, file := range manifest.Files {
		if int64(len(payload)) < file.CompressedSize {
			return nil, nil, fmt.Errorf("%s: payload truncated: need %d bytes, have %d",
				file.Path, file.CompressedSize, len(payload))
		}
		stored := payload[:file.CompressedSize]
		payload = payload[file.CompressedSize:]

		content, err := decompressPayload(stored, file.Compression, file.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		want, err := ParseHash(file.Hash)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		if HashFile(content) != want {
			return nil, nil, fmt.Errorf("%s: hash mismatch", file.Path)
		}
		contents = append(contents, content)
	}
	if len(payload) != 0 {
		return nil, nil, fmt.Errorf("bundle has %d trailing bytes", len(payload))
	}
	return manifest, contents, nil
}

// Extract verifies the bundle in data and writes its files under
// destDir. Manifest paths that would escape destDir are refused.
func Extract(data []byte, destDir string) (*Manifest, error) {
	manifest, contents, err := unpack(data)
	if err != nil {
		return nil, err
	}
	for i, file := range manifest.Files {
		if err := checkExtractPath(file.Path); err != nil {
			return nil, err
		}
		dest := filepath.Join(destDir, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := os.WriteFile(dest, contents[i], 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", file.Path, err)
		}
	}
	return manifest, nil
}

// checkExtractPath refuses absolute paths and paths that climb out of
// the destination directory.
func checkExtractPath(p string) error {
	if p == "" {
		return fmt.Errorf("manifest contains an empty path")
	}
	if strings.HasPrefix(p, "/") || filepath.IsAbs(filepath.FromSlash(p)) {
		return fmt.Errorf("refusing absolute path %q", p)
	}
	clean := filepath.ToSlash(filepath.Clean(filepath.FromSlash(p)))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("refusing path %q: escapes destination", p)
	}
	return nil
}
