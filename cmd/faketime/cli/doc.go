// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli is the small command framework behind the faketime
// binary: a tree of [Command] values with pflag flag sets, generated
// help, and edit-distance suggestions for mistyped commands and flags.
//
// Handlers return errors. An [ExitError] carries an exit code for
// outcomes the command has already reported itself; main exits with
// that code without printing anything more. [NewCommandLogger] builds
// the slog logger commands log through.
package cli
