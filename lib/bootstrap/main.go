// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"log/slog"
	"os"

	"github.com/bureau-foundation/faketime/lib/config"
	"github.com/bureau-foundation/faketime/lib/platform"
)

// TestRunner is the part of *testing.M used by Main.
type TestRunner interface {
	Run() int
}

// MainOption configures Main.
type MainOption func(*mainSettings)

type mainSettings struct {
	library    string
	platform   string
	removeVars bool
	logger     *slog.Logger
	bootstrap  func(*Bootstrapper)
}

// WithLibrary selects the shim library path.
func WithLibrary(path string) MainOption {
	return func(s *mainSettings) { s.library = path }
}

// WithConfig takes the shim library, the platform, and the variable
// removal policy from cfg. Later options override it.
func WithConfig(cfg *config.Config) MainOption {
	return func(s *mainSettings) {
		s.library = cfg.Shim.Library
		s.platform = cfg.Shim.Platform
		s.removeVars = cfg.Bootstrap.RemoveInjectedVars
	}
}

// KeepInjectedVars leaves the activation variables in the environment
// after the restart. By default they are removed.
func KeepInjectedVars() MainOption {
	return func(s *mainSettings) { s.removeVars = false }
}

// WithMainLogger sets the logger. The default writes to stderr.
func WithMainLogger(logger *slog.Logger) MainOption {
	return func(s *mainSettings) { s.logger = logger }
}

// withBootstrapper lets tests substitute the exec and environment of
// the Bootstrapper Main builds.
func withBootstrapper(configure func(*Bootstrapper)) MainOption {
	return func(s *mainSettings) { s.bootstrap = configure }
}

// Main restarts the test binary with the shim loaded if needed and then
// runs m, returning its exit code. Call it from TestMain before any
// other setup:
//
//	func TestMain(m *testing.M) {
//	    os.Exit(bootstrap.Main(m))
//	}
//
// Returns 1 without running m when bootstrap fails.
func Main(m TestRunner, options ...MainOption) int {
	settings := mainSettings{removeVars: true}
	for _, option := range options {
		option(&settings)
	}
	if settings.logger == nil {
		settings.logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	bootstrapper, err := New(settings.library, settings.logger)
	if settings.platform != "" {
		var profile platform.Profile
		profile, err = platform.Lookup(settings.platform, settings.library)
		bootstrapper = &Bootstrapper{Profile: profile, Logger: settings.logger}
	}
	if err != nil {
		settings.logger.Error("faketime bootstrap", "error", err)
		return 1
	}
	if settings.bootstrap != nil {
		settings.bootstrap(bootstrapper)
	}
	if err := bootstrapper.ReexecIfNeeded(settings.removeVars); err != nil {
		settings.logger.Error("faketime bootstrap", "error", err)
		return 1
	}
	return m.Run()
}
