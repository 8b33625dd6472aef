// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/affinity"
	"github.com/bureau-foundation/faketime/lib/bootstrap"
	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/faketime"
	instantpkg "github.com/bureau-foundation/faketime/lib/instant"
	"github.com/bureau-foundation/faketime/lib/uuidguard"
)

func execCommand() *cli.Command {
	var (
		shim    shimFlags
		instant instantFlags
	)
	return &cli.Command{
		Name:    "exec",
		Summary: "Run a command at a fake instant",
		Description: `Replace this process with COMMAND, started with the libfaketime shim
loaded and the fake instant advertised. The environment is otherwise
inherited unchanged.`,
		Usage: "faketime exec --at SPEC [flags] -- COMMAND [ARGS...]",
		Examples: []cli.Example{
			{Description: "Show the date in 2000, three hours ahead of UTC", Command: "faketime exec --at 2000-01-01 --offset 3 -- date"},
			{Description: "Share the instant with other processes through a file", Command: "faketime exec --at 2012-09-17 --timestamp-file /tmp/faketime -- ./server"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			shim.register(flagSet)
			instant.register(flagSet)
			flagSet.SetInterspersed(false)
			return flagSet
		},
		Run: func(args []string) error {
			if instant.at == "" {
				return errors.New("--at is required")
			}
			if len(args) == 0 {
				return errors.New("command required after --")
			}
			cfg, profile, logger, err := shim.resolve()
			if err != nil {
				return err
			}

			child := environ.Copy(processEnvironment())
			options := []faketime.Option{
				faketime.WithEnvironment(child),
				faketime.WithGate(affinity.AnyThread()),
				faketime.WithLogger(logger),
				// The process is replaced, so the override is never
				// stopped and must not hold the process-wide guard.
				faketime.WithGuard(uuidguard.NewGuard(uuidguard.NewSlots())),
			}
			if hours, ok := instant.offsetHours(cfg); ok {
				options = append(options, faketime.OffsetHours(hours))
			}
			if path := instant.timestampPath(cfg); path != "" {
				options = append(options, faketime.TimestampFile(path))
			}
			override, err := faketime.New(instantpkg.Text(instant.at), options...)
			if err != nil {
				return err
			}
			if err := override.Start(); err != nil {
				return err
			}
			for _, variable := range bootstrap.Exports(profile) {
				if err := child.Set(variable.Name, variable.Value); err != nil {
					return err
				}
			}

			path, err := exec.LookPath(args[0])
			if err != nil {
				return fmt.Errorf("finding %s: %w", args[0], err)
			}
			logger.Debug("exec under libfaketime",
				"command", path,
				"instant", override.Instant().String(),
				"library", profile.Library,
			)
			err = execFunc(path, args, child.Environ())
			return fmt.Errorf("exec %s: %w", path, err)
		},
	}
}
