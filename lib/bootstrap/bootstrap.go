// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sys/unix"

	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/platform"
)

const (
	// SentinelName marks a process that has already been restarted
	// with the shim activation variables.
	SentinelName = "FAKETIME_DID_REEXEC"

	// SentinelValue is the only value of SentinelName that counts as
	// restarted.
	SentinelValue = "true"
)

// ExecFunc replaces the current process image. It matches unix.Exec.
type ExecFunc func(path string, argv []string, env []string) error

// ReloadInformation reports whether the process still has to restart
// to load the shim, and the variables the restarted process needs.
func ReloadInformation(env environ.Environment, profile platform.Profile) (needsReload bool, additions []platform.Variable) {
	value, ok := env.Lookup(SentinelName)
	return !ok || value != SentinelValue, profile.Variables
}

// Exports returns the activation variables followed by the sentinel:
// everything a shell must export for a command to start with the shim
// loaded.
func Exports(profile platform.Profile) []platform.Variable {
	exports := make([]platform.Variable, 0, len(profile.Variables)+1)
	exports = append(exports, profile.Variables...)
	return append(exports, platform.Variable{Name: SentinelName, Value: SentinelValue})
}

// Bootstrapper restarts the current process with the shim loaded.
// Zero-valued fields other than Profile fall back to the real process:
// the OS environment, unix.Exec, os.Executable and os.Args.
type Bootstrapper struct {
	Profile     platform.Profile
	Environment environ.Environment
	Exec        ExecFunc
	Executable  func() (string, error)
	Args        []string
	Logger      *slog.Logger
}

// New returns a Bootstrapper for the running platform. An empty library
// selects the platform's default shim path. Fails with
// platform.ErrUnsupportedPlatform on platforms the shim does not
// support.
func New(library string, logger *slog.Logger) (*Bootstrapper, error) {
	profile, err := platform.Current(library)
	if err != nil {
		return nil, err
	}
	return &Bootstrapper{Profile: profile, Logger: logger}, nil
}

func (b *Bootstrapper) environment() environ.Environment {
	if b.Environment == nil {
		return environ.OS()
	}
	return b.Environment
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b.Logger
}

// ReexecIfNeeded restarts the process with the shim activation
// variables unless it already carries the sentinel. On success the
// restart does not return. When no restart is needed and
// removeInjectedVarsAfter is set, the activation variables are removed
// from the environment; the sentinel is kept.
func (b *Bootstrapper) ReexecIfNeeded(removeInjectedVarsAfter bool) error {
	return b.Strategy(removeInjectedVarsAfter).Run()
}

// Strategy returns the step ReexecIfNeeded would take.
func (b *Bootstrapper) Strategy(removeInjectedVarsAfter bool) Strategy {
	needsReload, additions := ReloadInformation(b.environment(), b.Profile)
	if needsReload {
		return &Restart{bootstrapper: b, additions: additions}
	}
	return &AlreadyActive{bootstrapper: b, removeInjectedVars: removeInjectedVarsAfter}
}

// Strategy is one way of getting the shim loaded.
type Strategy interface {
	Run() error
}

// AlreadyActive is the strategy for a process that was started with
// the shim loaded.
type AlreadyActive struct {
	bootstrapper       *Bootstrapper
	removeInjectedVars bool
}

// Run removes the activation variables if requested.
func (a *AlreadyActive) Run() error {
	if !a.removeInjectedVars {
		return nil
	}
	env := a.bootstrapper.environment()
	for _, name := range a.bootstrapper.Profile.Names() {
		if err := env.Unset(name); err != nil {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

// Restart is the strategy that replaces the process image.
type Restart struct {
	bootstrapper *Bootstrapper
	additions    []platform.Variable
}

// Run execs the same executable and arguments with the activation
// variables and the sentinel added. It only returns on failure.
func (r *Restart) Run() error {
	b := r.bootstrapper

	executable := b.Executable
	if executable == nil {
		executable = os.Executable
	}
	path, err := executable()
	if err != nil {
		return fmt.Errorf("locating executable for re-exec: %w", err)
	}

	argv := b.Args
	if argv == nil {
		argv = os.Args
	}

	names := make([]string, 0, len(r.additions)+1)
	values := make(map[string]string, len(r.additions)+1)
	for _, variable := range r.additions {
		names = append(names, variable.Name)
		values[variable.Name] = variable.Value
	}
	names = append(names, SentinelName)
	values[SentinelName] = SentinelValue
	env := environ.Merge(b.environment().Environ(), names, values)

	execFunction := b.Exec
	if execFunction == nil {
		execFunction = unix.Exec
	}

	b.logger().Info("re-exec with libfaketime dependencies",
		"executable", path,
		"platform", b.Profile.Platform,
		"library", b.Profile.Library,
	)
	err = execFunction(path, argv, env)

	// Reaching this point means the process was not replaced.
	return fmt.Errorf("re-exec %s: %w", path, err)
}
