// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/promptforge-foundation/promptforge/lib/prompt"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for Promptforge, loaded from
// promptforge.yaml.
type Config struct {
	// Environment identifies the deployment type (development,
	// staging, production).
	Environment Environment `yaml:"environment"`

	// Collection configures prompt collection loading.
	Collection CollectionConfig `yaml:"collection"`

	// Registry configures the bundle registry client.
	Registry RegistryConfig `yaml:"registry"`

	// Bundle configures bundle building.
	Bundle BundleConfig `yaml:"bundle"`

	// Generate configures factory code generation.
	Generate GenerateConfig `yaml:"generate"`

	// Per-environment overrides, applied after the base config is
	// loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
type Overrides struct {
	Collection *CollectionConfig `yaml:"collection,omitempty"`
	Registry   *RegistryConfig   `yaml:"registry,omitempty"`
	Bundle     *BundleConfig     `yaml:"bundle,omitempty"`
	Generate   *GenerateConfig   `yaml:"generate,omitempty"`
}

// CollectionConfig configures prompt collection loading.
type CollectionConfig struct {
	// Root is the directory containing the collection's YAML files.
	Root string `yaml:"root"`

	// DefaultLang is the language used when a command does not pass
	// --lang. Default: "default".
	DefaultLang string `yaml:"default_lang"`

	// Fallback selects the behavior when a requested language has no
	// variant: "error", "any", or "default-lang".
	// Default: default-lang.
	Fallback string `yaml:"fallback"`
}

// RegistryConfig configures the bundle registry client.
type RegistryConfig struct {
	// URL is the registry base URL, e.g. https://registry.example.com.
	URL string `yaml:"url"`

	// TokenFile is a path to a file holding the registry token. The
	// PROMPTFORGE_REGISTRY_TOKEN environment variable and the
	// --token-file flag take precedence; see the registry command
	// documentation for the full resolution order.
	TokenFile string `yaml:"token_file"`
}

// BundleConfig configures bundle building.
type BundleConfig struct {
	// Version is the bundle version string stamped into manifests.
	Version string `yaml:"version"`

	// OutputDir is where built .pfb files are written.
	// Default: current directory.
	OutputDir string `yaml:"output_dir"`

	// Compression forces a compression tag for every payload:
	// "none", "lz4", or "zstd". Empty selects per-file automatically.
	Compression string `yaml:"compression"`
}

// GenerateConfig configures factory code generation.
type GenerateConfig struct {
	// Package is the package name of the generated file.
	// Default: prompts.
	Package string `yaml:"package"`

	// Output is the path the generated file is written to.
	// Default: prompt_factory.go.
	Output string `yaml:"output"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file; they ensure all fields
// have sensible zero-values, not that the file is optional.
func Default() *Config {
	return &Config{
		Environment: Development,
		Collection: CollectionConfig{
			Root:        ".",
			DefaultLang: string(prompt.DefaultLang),
			Fallback:    prompt.FallbackDefault.String(),
		},
		Bundle: BundleConfig{
			Version:   "0.0.0-dev",
			OutputDir: ".",
		},
		Generate: GenerateConfig{
			Package: "prompts",
			Output:  "prompt_factory.go",
		},
	}
}

// EnvVar names the environment variable holding the config file path.
const EnvVar = "PROMPTFORGE_CONFIG"

// Load loads configuration from the PROMPTFORGE_CONFIG environment
// variable. There are no fallbacks: if PROMPTFORGE_CONFIG is not set,
// this fails.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("PROMPTFORGE_CONFIG environment variable not set; " +
			"set it to the path of your promptforge.yaml config file, or use --config flag")
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override config values. The only expansion performed is ${VAR} and
// ${VAR:-default} in path values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// applyEnvironmentOverrides applies the section matching the
// configured environment over the base values.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if o := overrides.Collection; o != nil {
		if o.Root != "" {
			c.Collection.Root = o.Root
		}
		if o.DefaultLang != "" {
			c.Collection.DefaultLang = o.DefaultLang
		}
		if o.Fallback != "" {
			c.Collection.Fallback = o.Fallback
		}
	}
	if o := overrides.Registry; o != nil {
		if o.URL != "" {
			c.Registry.URL = o.URL
		}
		if o.TokenFile != "" {
			c.Registry.TokenFile = o.TokenFile
		}
	}
	if o := overrides.Bundle; o != nil {
		if o.Version != "" {
			c.Bundle.Version = o.Version
		}
		if o.OutputDir != "" {
			c.Bundle.OutputDir = o.OutputDir
		}
		if o.Compression != "" {
			c.Bundle.Compression = o.Compression
		}
	}
	if o := overrides.Generate; o != nil {
		if o.Package != "" {
			c.Generate.Package = o.Package
		}
		if o.Output != "" {
			c.Generate.Output = o.Output
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// values.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Collection.Root = expandVars(c.Collection.Root, vars)
	c.Registry.TokenFile = expandVars(c.Registry.TokenFile, vars)
	c.Bundle.OutputDir = expandVars(c.Bundle.OutputDir, vars)
	c.Generate.Output = expandVars(c.Generate.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Provided vars win over the environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. All problems are
// reported in one joined error.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}
	if c.Collection.Root == "" {
		errs = append(errs, fmt.Errorf("collection.root is required"))
	}
	if _, err := prompt.ParseFallback(c.Collection.Fallback); err != nil {
		errs = append(errs, fmt.Errorf("collection.fallback: %w", err))
	}

	compressionValues := []string{"", "none", "lz4", "zstd"}
	if !slices.Contains(compressionValues, c.Bundle.Compression) {
		errs = append(errs, fmt.Errorf("bundle.compression must be one of: none, lz4, zstd"))
	}
	if c.Generate.Package == "" {
		errs = append(errs, fmt.Errorf("generate.package is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Fallback returns the parsed fallback mode. Call Validate first;
// an unparseable value falls back to FallbackDefault here.
func (c *Config) Fallback() prompt.Fallback {
	fallback, err := prompt.ParseFallback(c.Collection.Fallback)
	if err != nil {
		return prompt.FallbackDefault
	}
	return fallback
}
