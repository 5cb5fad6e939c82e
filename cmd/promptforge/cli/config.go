// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/promptforge-foundation/promptforge/lib/config"
)

// LoadConfig returns the project configuration. When
// PROMPTFORGE_CONFIG is set the named file must load and validate;
// without it commands run on built-in defaults and rely on flags.
func LoadConfig() (*config.Config, error) {
	if os.Getenv(config.EnvVar) == "" {
		return config.Default(), nil
	}
	return config.Load()
}
