// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/faketime/cmd/faketime/cli"
	"github.com/bureau-foundation/faketime/lib/config"
	"github.com/bureau-foundation/faketime/lib/instant"
	"github.com/bureau-foundation/faketime/lib/platform"
)

// shimFlags are the flags every command shares.
type shimFlags struct {
	configPath string
	library    string
	platform   string
}

func (f *shimFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.configPath, "config", "", "config file (default: $"+config.EnvironmentVariable+")")
	flagSet.StringVar(&f.library, "library", "", "libfaketime shared library path (default: platform default)")
	flagSet.StringVar(&f.platform, "platform", "", "platform tag: linux or darwin (default: running platform)")
}

// load reads the configuration and applies the flag overrides.
func (f *shimFlags) load() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case f.configPath != "":
		cfg, err = config.LoadFile(f.configPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.Default()
	}
	if err != nil {
		return nil, err
	}

	if f.library != "" {
		library, err := filepath.Abs(f.library)
		if err != nil {
			return nil, fmt.Errorf("resolving --library: %w", err)
		}
		cfg.Shim.Library = library
	}
	if f.platform != "" {
		cfg.Shim.Platform = f.platform
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolve loads the configuration and the shim profile it selects.
func (f *shimFlags) resolve() (*config.Config, platform.Profile, *slog.Logger, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, platform.Profile{}, nil, err
	}
	logger := cli.NewCommandLogger(cfg.Logging.Level, cfg.Logging.Format)
	profile, err := cfg.Profile()
	if err != nil {
		return nil, platform.Profile{}, nil, err
	}
	return cfg, profile, logger, nil
}

// instantFlags select the fake instant.
type instantFlags struct {
	at            string
	offset        int
	timestampFile string
	flagSet       *pflag.FlagSet
}

func (f *instantFlags) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&f.at, "at", "", `instant to fake, e.g. "2000-01-01 10:00:05" or "September 17th, 2012 at 10:09am"`)
	flagSet.IntVar(&f.offset, "offset", 0, "hours ahead of UTC for an instant without a zone")
	flagSet.StringVar(&f.timestampFile, "timestamp-file", "", "advertise the instant through this file instead of FAKETIME")
	f.flagSet = flagSet
}

// offsetHours returns the offset from the flag, else from the config.
func (f *instantFlags) offsetHours(cfg *config.Config) (int, bool) {
	if f.flagSet != nil && f.flagSet.Changed("offset") {
		return f.offset, true
	}
	if cfg.Override.OffsetHours != nil {
		return *cfg.Override.OffsetHours, true
	}
	return 0, false
}

// timestampPath returns the file-backed path from the flag, else from
// the config.
func (f *instantFlags) timestampPath(cfg *config.Config) string {
	if f.timestampFile != "" {
		return f.timestampFile
	}
	return cfg.Override.TimestampFile
}

// normalize resolves the --at instant.
func (f *instantFlags) normalize(cfg *config.Config) (instant.Instant, error) {
	var options []instant.Option
	if hours, ok := f.offsetHours(cfg); ok {
		options = append(options, instant.OffsetHours(hours))
	}
	return instant.Normalize(instant.Text(f.at), options...)
}
