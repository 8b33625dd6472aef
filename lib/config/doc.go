// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the faketime
// command and for test binaries that bootstrap the shim.
//
// Configuration is loaded from a single file named either by the
// FAKETIME_CONFIG environment variable (via [Load]) or by a --config
// flag (via [LoadFile]). When neither is given, callers use [Default].
// There is no file discovery.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${FAKETIME_ROOT} and ${VAR:-default} patterns are expanded.
// Environment variables never override values set in the file.
//
// Key exports:
//
//   - [Config] -- shim, bootstrap, override and logging sections
//   - [Default] -- a Config with the platform's default shim path
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [Config.Validate] -- checks values the loaders cannot
//
// Depends on lib/platform to validate platform tags.
package config
