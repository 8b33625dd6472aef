// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/faketime/lib/platform"
)

// EnvironmentVariable names the config file for Load.
const EnvironmentVariable = "FAKETIME_CONFIG"

// Config is the faketime configuration.
type Config struct {
	// Root is a base directory other paths may refer to as
	// ${FAKETIME_ROOT}.
	Root string `yaml:"root"`

	// Shim selects the libfaketime library.
	Shim ShimConfig `yaml:"shim"`

	// Bootstrap configures the re-exec step.
	Bootstrap BootstrapConfig `yaml:"bootstrap"`

	// Override holds defaults for fake time overrides.
	Override OverrideConfig `yaml:"override"`

	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`
}

// ShimConfig selects the shim library.
type ShimConfig struct {
	// Library is the shim shared library path. Empty selects the
	// platform default.
	Library string `yaml:"library"`

	// Platform overrides the platform tag. Empty uses the running
	// platform.
	Platform string `yaml:"platform"`
}

// BootstrapConfig configures the re-exec step.
type BootstrapConfig struct {
	// RemoveInjectedVars removes the preload variables from the
	// environment after the restart, so child processes do not inherit
	// the shim. Default: true
	RemoveInjectedVars bool `yaml:"remove_injected_vars"`
}

// OverrideConfig holds defaults for fake time overrides.
type OverrideConfig struct {
	// OnlyMainThread restricts activation to the designated thread.
	// Default: true
	OnlyMainThread bool `yaml:"only_main_thread"`

	// TimestampFile selects the file-backed encoding when set.
	TimestampFile string `yaml:"timestamp_file"`

	// OffsetHours places zone-less instants in a fixed zone this many
	// hours ahead of UTC when set.
	OffsetHours *int `yaml:"offset_hours,omitempty"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error. Default: info
	Level string `yaml:"level"`

	// Format is one of auto, text, json. Auto picks text on a terminal
	// and JSON otherwise. Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration. It is the base the config
// file is decoded over.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Root: filepath.Join(homeDir, ".cache", "faketime"),
		Bootstrap: BootstrapConfig{
			RemoveInjectedVars: true,
		},
		Override: OverrideConfig{
			OnlyMainThread: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by FAKETIME_CONFIG.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your faketime.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"FAKETIME_ROOT": c.Root,
		"HOME":          os.Getenv("HOME"),
	}

	c.Root = expandVars(c.Root, vars)
	vars["FAKETIME_ROOT"] = c.Root

	c.Shim.Library = expandVars(c.Shim.Library, vars)
	c.Override.TimestampFile = expandVars(c.Override.TimestampFile, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, preferring
// vars over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"auto", "text", "json"}
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Shim.Platform != "" && !platform.Supported(c.Shim.Platform) {
		errs = append(errs, fmt.Errorf("shim.platform: %w %s", platform.ErrUnsupportedPlatform, c.Shim.Platform))
	}
	if c.Shim.Library != "" && !filepath.IsAbs(c.Shim.Library) {
		errs = append(errs, fmt.Errorf("shim.library must be an absolute path, got %q", c.Shim.Library))
	}
	if c.Override.TimestampFile != "" && !filepath.IsAbs(c.Override.TimestampFile) {
		errs = append(errs, fmt.Errorf("override.timestamp_file must be an absolute path, got %q", c.Override.TimestampFile))
	}
	if hours := c.Override.OffsetHours; hours != nil && (*hours < -24 || *hours > 24) {
		errs = append(errs, fmt.Errorf("override.offset_hours must be between -24 and 24, got %d", *hours))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", logLevels))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format must be one of: %v", logFormats))
	}

	return errors.Join(errs...)
}

// Profile resolves the shim activation variables for the configured
// platform and library.
func (c *Config) Profile() (platform.Profile, error) {
	if c.Shim.Platform == "" {
		return platform.Current(c.Shim.Library)
	}
	return platform.Lookup(c.Shim.Platform, c.Shim.Library)
}
