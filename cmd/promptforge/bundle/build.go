// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/bundle"
	"github.com/promptforge-foundation/promptforge/lib/clock"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

type buildParams struct {
	cli.JSONOutput
	Collection  string `flag:"collection,c" desc:"collection directory (default: config root)"`
	Name        string `flag:"name,n" desc:"bundle name (default: collection directory name)"`
	Version     string `flag:"version" desc:"bundle version (default: config bundle version)"`
	Output      string `flag:"output,o" desc:"output path (default: <output-dir>/<name>-<version>.pfb)"`
	Compression string `flag:"compression" desc:"force compression: none, lz4, zstd"`
	Encrypt     bool   `flag:"encrypt" desc:"seal the bundle with a symmetric key"`
	KeyFile     string `flag:"key-file" desc:"key material file for --encrypt, \"-\" for stdin"`
}

type buildResult struct {
	Path    string `json:"path"`
	Digest  string `json:"digest"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Files   int    `json:"files"`
	Sealed  bool   `json:"sealed"`
}

func buildCommand() *cli.Command {
	var params buildParams

	return &cli.Command{
		Name:    "build",
		Summary: "Build a bundle from a collection",
		Description: `Build a .pfb bundle from a collection directory. The collection must
load cleanly; a directory that fails to load cannot be bundled.
Compression is chosen per file by probing unless forced. With
--encrypt the packed bundle is sealed with XChaCha20-Poly1305 using
key material from --key-file.`,
		Usage: "promptforge bundle build [flags]",
		Examples: []cli.Example{
			{
				Description: "Build with an explicit version",
				Command:     "promptforge bundle build --version 1.4.0",
			},
			{
				Description: "Build a sealed bundle",
				Command:     "promptforge bundle build --encrypt --key-file bundle.key",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("build", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge bundle build [flags]")
			}
			if params.Encrypt && params.KeyFile == "" {
				return fmt.Errorf("--encrypt requires --key-file")
			}

			cfg, err := cli.LoadConfig()
			if err != nil {
				return err
			}

			root := params.Collection
			if root == "" {
				root = cfg.Collection.Root
			}
			name := params.Name
			if name == "" {
				absRoot, err := filepath.Abs(root)
				if err != nil {
					return err
				}
				name = filepath.Base(absRoot)
			}
			version := params.Version
			if version == "" {
				version = cfg.Bundle.Version
			}
			compression := params.Compression
			if compression == "" {
				compression = cfg.Bundle.Compression
			}
			outPath := params.Output
			if outPath == "" {
				outPath = filepath.Join(cfg.Bundle.OutputDir, fmt.Sprintf("%s-%s.pfb", name, version))
			}

			manifest, err := bundle.Build(root, name, version, outPath, bundle.BuildOptions{
				Clock:       clock.Real(),
				Compression: compression,
			})
			if err != nil {
				return err
			}
			digest, err := manifest.Digest()
			if err != nil {
				return err
			}

			if params.Encrypt {
				if err := sealBundle(outPath, params.KeyFile); err != nil {
					return err
				}
			}

			if done, err := params.EmitJSON(buildResult{
				Path:    outPath,
				Digest:  digest,
				Name:    manifest.Name,
				Version: manifest.Version,
				Files:   len(manifest.Files),
				Sealed:  params.Encrypt,
			}); done {
				return err
			}
			fmt.Printf("wrote %s (%d files, digest %s)\n", outPath, len(manifest.Files), digest)
			return nil
		},
	}
}

// sealBundle encrypts the bundle at path in place via tmp+rename, so
// a failed seal never leaves a half-written file behind.
func sealBundle(path, keyFile string) error {
	key, err := secret.ReadFromPath(keyFile)
	if err != nil {
		return err
	}
	defer key.Close()

	plain, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sealed, err := bundle.Encrypt(plain, key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".seal-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(sealed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
