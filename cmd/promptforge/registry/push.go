// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/promptforge-foundation/promptforge/cmd/promptforge/cli"
)

type pushParams struct {
	cli.JSONOutput
	connectionParams
}

func pushCommand() *cli.Command {
	var params pushParams

	return &cli.Command{
		Name:    "push",
		Summary: "Upload a bundle to the registry",
		Description: `Upload a bundle in a single POST. The server stores it under its
content digest and replies with the digest it computed; the upload
fails if that digest does not match the local one. There are no
retries: a failed push is reported and left to the operator.`,
		Usage: "promptforge registry push [flags] <path>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("push", &params)
		},
		Run: func(args []string) error {
			path, err := oneArg(args, "promptforge registry push [flags] <path>")
			if err != nil {
				return err
			}
			client, err := params.newClient()
			if err != nil {
				return err
			}
			result, err := client.Push(context.Background(), path)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("pushed %s %s (digest %s)\n", result.Name, result.Version, result.Digest)
			return nil
		},
	}
}
