// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"io"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/clock"
	"github.com/bureau-foundation/faketime/lib/environ"
)

// Process collaborators, replaced in tests.
var (
	processEnvironment = environ.OS
	execFunc           = unix.Exec
	realClock          = clock.Real()
)

// Root builds the faketime command tree writing command output to
// stdout.
func Root(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name: "faketime",
		Description: `faketime: run programs at a fake instant through libfaketime.

Loads the libfaketime shim into processes and advertises the instant
they should observe through FAKETIME, FAKETIME_FMT and TZ.`,
		Subcommands: []*cli.Command{
			envCommand(stdout),
			execCommand(),
			nowCommand(stdout),
			uuidCommand(stdout),
			versionCommand(stdout),
		},
	}
}
