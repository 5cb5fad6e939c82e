// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the codec applied to a file payload. The
// numeric values are stored in the manifest and must never be reused.
type CompressionTag uint8

const (
	// CompressionNone stores the payload verbatim.
	CompressionNone CompressionTag = 0
	// CompressionLZ4 applies lz4 block compression.
	CompressionLZ4 CompressionTag = 1
	// CompressionZstd applies zstd at the default level.
	CompressionZstd CompressionTag = 2
)

// String returns the canonical name of the tag.
func (t CompressionTag) String() string {
	switch t {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// ParseCompressionTag maps a codec name to its tag.
func ParseCompressionTag(s string) (CompressionTag, error) {
	switch s {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

// Shared zstd coders. Both are stateless at the API level and safe for
// concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic(fmt.Sprintf("bundle: zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("bundle: zstd decoder: %v", err))
	}
}

// errIncompressible reports that compression would not shrink the
// payload.
var errIncompressible = errors.New("payload is incompressible")

// compressPayload compresses data with the requested codec. It returns
// errIncompressible when the compressed form would be no smaller than
// the input; the caller should store the payload with CompressionNone.
func compressPayload(data []byte, tag CompressionTag) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return data, nil
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 || n >= len(data) {
			return nil, errIncompressible
		}
		return buf[:n], nil
	case CompressionZstd:
		out := zstdEncoder.EncodeAll(data, nil)
		if len(out) >= len(data) {
			return nil, errIncompressible
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
}

// decompressPayload reverses compressPayload. size is the expected
// uncompressed length from the manifest; a mismatch is an error.
func decompressPayload(data []byte, tag CompressionTag, size int64) ([]byte, error) {
	var out []byte
	switch tag {
	case CompressionNone:
		out = data
	case CompressionLZ4:
		out = make([]byte, size)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		out = out[:n]
	case CompressionZstd:
		var err error
		out, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown compression tag %d", tag)
	}
	if int64(len(out)) != size {
		return nil, fmt.Errorf("decompressed to %d bytes, manifest says %d", len(out), size)
	}
	return out, nil
}

// selectCompression probes data and picks the codec worth its cost:
// zstd when it reaches a 1.5x ratio, lz4 when it reaches 1.1x, and
// verbatim storage otherwise.
func selectCompression(data []byte) CompressionTag {
	if len(data) == 0 {
		return CompressionNone
	}
	compressed, err := compressPayload(data, CompressionZstd)
	if err != nil {
		return CompressionNone
	}
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

// compressAuto compresses data with tag, falling back to verbatim
// storage when the payload turns out to be incompressible. It returns
// the stored bytes and the tag actually used.
func compressAuto(data []byte, tag CompressionTag) ([]byte, CompressionTag, error) {
	out, err := compressPayload(data, tag)
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return out, tag, nil
}
