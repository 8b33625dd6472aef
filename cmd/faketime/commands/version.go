// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/platform"
	"github.com/bureau-foundation/faketime/lib/version"
)

func versionCommand(stdout io.Writer) *cli.Command {
	var (
		shim  shimFlags
		short bool
	)
	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("version", pflag.ContinueOnError)
			shim.register(flagSet)
			flagSet.BoolVar(&short, "short", false, "print only the version number")
			return flagSet
		},
		Run: func(args []string) error {
			if short {
				fmt.Fprintln(stdout, version.Short())
				return nil
			}
			_, profile, _, err := shim.resolve()
			if errors.Is(err, platform.ErrUnsupportedPlatform) {
				fmt.Fprintln(stdout, version.Info())
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, version.Full(profile.Library))
			return nil
		},
	}
}
