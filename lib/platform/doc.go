// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package platform holds the static table of environment variables that
// activate the native libfaketime shim on each supported operating
// system.
//
// The table is keyed by a short platform tag matching runtime.GOOS
// ("linux", "darwin"). Each [Profile] lists, in a fixed order, the
// library preload variable for that platform followed by the auxiliary
// flags every activation carries:
//
//   - DONT_FAKE_MONOTONIC=1 -- monotonic clocks keep running so timeouts
//     and schedulers inside the faked process still make progress
//   - FAKETIME_NO_CACHE=1 -- the shim re-reads FAKETIME on every call,
//     which is what lets a running process move between fake instants
//
// [Lookup] is pure: no environment access, no filesystem access. An
// unknown tag fails with [ErrUnsupportedPlatform].
//
// This package depends on no other packages in this module.
package platform
