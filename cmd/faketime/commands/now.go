// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/clock"
	"github.com/bureau-foundation/faketime/lib/protocol"
)

// nowLayout keeps the microsecond precision of the wire format.
const nowLayout = "2006-01-02T15:04:05.000000Z07:00"

func nowCommand(stdout io.Writer) *cli.Command {
	var (
		utc    bool
		strict bool
	)
	return &cli.Command{
		Name:    "now",
		Summary: "Print the instant the environment advertises",
		Description: `Decode FAKETIME (or FAKETIME_TIMESTAMP_FILE) and TZ from the current
environment and print the instant a process started with them would
observe. Without an advertised instant the real time is printed, or,
with --strict, nothing is printed and the exit code is 1.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("now", pflag.ContinueOnError)
			flagSet.BoolVar(&utc, "utc", false, "print in UTC instead of the advertised zone")
			flagSet.BoolVar(&strict, "strict", false, "exit 1 when no fake instant is advertised")
			return flagSet
		},
		Run: func(args []string) error {
			env := processEnvironment()
			_, advertised, err := protocol.Decode(env, time.Local)
			if err != nil {
				return err
			}
			if !advertised && strict {
				return &cli.ExitError{Code: 1}
			}

			now := clock.Shim(env, realClock).Now()
			if utc {
				now = now.UTC()
			}
			fmt.Fprintln(stdout, now.Format(nowLayout))
			return nil
		},
	}
}
