// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable source of the current time.
//
// The libfaketime shim changes what the C library's clock calls return;
// it does not change the Go runtime, which reads the kernel clock
// through the vDSO. Go code that must agree with a faked process
// therefore reads time through a Clock instead of calling time.Now:
//
//	type Scheduler struct {
//	    clock clock.Clock
//	}
//
//	s := &Scheduler{clock: clock.Shim(environ.OS(), clock.Real())}
//
// [Shim] decodes the instant currently advertised through FAKETIME (or
// FAKETIME_TIMESTAMP_FILE) and TZ, and defers to its fallback whenever
// nothing is advertised. [Real] is the standard library clock. [Fake]
// is a manually advanced clock for tests.
package clock
