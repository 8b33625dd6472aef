// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/bootstrap"
	"github.com/bureau-foundation/faketime/lib/protocol"
)

func envCommand(stdout io.Writer) *cli.Command {
	var (
		shim    shimFlags
		instant instantFlags
	)
	return &cli.Command{
		Name:    "env",
		Summary: "Print shell exports that load libfaketime",
		Description: `Print the export lines a shell needs to start programs with the
libfaketime shim loaded, including the FAKETIME_DID_REEXEC sentinel so
test binaries that bootstrap themselves do not restart.

With --at, also print the variables that advertise a fake instant.`,
		Usage: "faketime env [--at SPEC] [flags]",
		Examples: []cli.Example{
			{Description: "Load the shim into the current shell", Command: `eval "$(faketime env)"`},
			{Description: "Load the shim and fake the year 2000", Command: `eval "$(faketime env --at 2000-01-01)"`},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("env", pflag.ContinueOnError)
			shim.register(flagSet)
			instant.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			cfg, profile, _, err := shim.resolve()
			if err != nil {
				return err
			}

			for _, variable := range bootstrap.Exports(profile) {
				fmt.Fprintf(stdout, "export %s=%s\n", variable.Name, shellQuote(variable.Value))
			}
			if instant.at == "" {
				return nil
			}

			resolved, err := instant.normalize(cfg)
			if err != nil {
				return err
			}
			timestampFile := instant.timestampPath(cfg)
			if timestampFile != "" {
				if err := protocol.WriteTimestampFile(timestampFile, resolved); err != nil {
					return err
				}
			}
			for _, assignment := range protocol.Encode(resolved, timestampFile) {
				if assignment.Unset {
					fmt.Fprintf(stdout, "unset %s\n", assignment.Name)
				} else {
					fmt.Fprintf(stdout, "export %s=%s\n", assignment.Name, shellQuote(assignment.Value))
				}
			}
			return nil
		},
	}
}

var shellEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")

// shellQuote double-quotes value for POSIX shells.
func shellQuote(value string) string {
	return `"` + shellEscaper.Replace(value) + `"`
}
