// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the faketime command tree:
//
//   - "faketime env" prints the shell exports that load the shim, and
//     optionally a fake instant, without restarting anything.
//   - "faketime exec" replaces itself with a command running under the
//     shim at a fake instant.
//   - "faketime now" prints the instant the current environment
//     advertises.
//   - "faketime uuid" prints a time-based UUID, optionally generated
//     while a fake time override guards the system generator.
//   - "faketime version" prints build and shim information.
//
// Every command reads the same configuration (see lib/config): the file
// named by --config, else by FAKETIME_CONFIG, else the defaults. The
// --library and --platform flags override the file.
package commands
