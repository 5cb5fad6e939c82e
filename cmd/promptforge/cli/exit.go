// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. When a command handler returns an ExitError, main
// exits with the specified code without printing the error string —
// the command has already written its own output.
//
// This is for commands where a non-zero exit is a valid outcome
// ("policy check" returning 1 for a denied tool, "registry exists"
// returning 1 for not-found) rather than an unexpected error.
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. main checks for this interface on
// returned errors to distinguish a handled non-zero exit from an
// unexpected error to display.
func (e ExitError) ExitCode() int {
	return e.Code
}
