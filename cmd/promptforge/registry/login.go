// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
	"github.com/promptforge-foundation/promptforge/lib/sealed"
	"github.com/promptforge-foundation/promptforge/lib/secret"
)

type loginParams struct {
	KeychainDir string `flag:"keychain-dir" desc:"keychain directory (default: user config dir)"`
}

func loginCommand() *cli.Command {
	var params loginParams

	return &cli.Command{
		Name:    "login",
		Summary: "Store a registry token in the sealed keychain",
		Description: `Prompt for a registry token and store it age-encrypted in the local
keychain. On a terminal the prompt hides the input; otherwise one line
is read from stdin, so tokens can be piped in.`,
		Usage: "promptforge registry login [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("login", &params)
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: promptforge registry login [flags]")
			}
			token, err := promptToken()
			if err != nil {
				return err
			}
			defer token.Close()

			keychain, err := sealed.Open(params.KeychainDir)
			if err != nil {
				return err
			}
			if err := keychain.StoreToken(token); err != nil {
				return err
			}
			fmt.Printf("token stored in %s\n", keychain.Dir())
			return nil
		},
	}
}

// promptToken reads the token from the user: echo-off on a terminal,
// one plain line otherwise.
func promptToken() (*secret.Buffer, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "registry token: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("reading token: %w", err)
		}
		return tokenBuffer(string(raw))
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading token from stdin: %w", err)
	}
	return tokenBuffer(line)
}

func tokenBuffer(raw string) (*secret.Buffer, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("empty token")
	}
	return secret.NewFromBytes([]byte(trimmed))
}
