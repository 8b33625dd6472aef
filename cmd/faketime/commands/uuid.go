// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/affinity"
	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/faketime"
	instantpkg "github.com/bureau-foundation/faketime/lib/instant"
	"github.com/bureau-foundation/faketime/lib/uuidguard"
)

// UUID registry and guard, replaced in tests.
var (
	uuidSlots = uuidguard.Default()
	uuidGuard = uuidguard.DefaultGuard()
)

func uuidCommand(stdout io.Writer) *cli.Command {
	var (
		shim    shimFlags
		instant instantFlags
	)
	return &cli.Command{
		Name:    "uuid",
		Summary: "Print a time-based UUID",
		Description: `Print a version 1 UUID. Without --at it comes from the system uuidgen
tool when one is on PATH. With --at it is generated while a fake time
override is active, when the system tool is set aside and the UUID is
computed in process.`,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("uuid", pflag.ContinueOnError)
			shim.register(flagSet)
			instant.register(flagSet)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument %q", args[0])
			}
			if instant.at == "" {
				generated, err := uuidSlots.NewTimeUUID()
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, generated)
				return nil
			}

			cfg, _, logger, err := shim.resolve()
			if err != nil {
				return err
			}
			options := []faketime.Option{
				faketime.WithEnvironment(environ.Copy(processEnvironment())),
				faketime.WithGate(affinity.AnyThread()),
				faketime.WithGuard(uuidGuard),
				faketime.WithLogger(logger),
			}
			if hours, ok := instant.offsetHours(cfg); ok {
				options = append(options, faketime.OffsetHours(hours))
			}
			override, err := faketime.New(instantpkg.Text(instant.at), options...)
			if err != nil {
				return err
			}
			generated, err := faketime.WrapValue(override, uuidSlots.NewTimeUUID)()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, generated)
			return nil
		},
	}
}
