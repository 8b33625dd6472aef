// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Faketime is the command-line entry point for running programs under
// the libfaketime shim. See package commands for the command tree.
package main
