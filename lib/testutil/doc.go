// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for faketime packages.
//
// [RequireReceive] bounds a channel receive with a timeout so a test
// waiting on a goroutine fails instead of hanging. Affinity tests use it
// to collect what a goroutine that is not designated observed.
//
// [WriteFile] and [Executable] create fixtures in a per-test temporary
// directory: configuration files, timestamp files, and stand-in
// programs for exec tests.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no faketime-internal dependencies.
package testutil
