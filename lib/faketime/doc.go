// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package faketime makes a process believe it is at a chosen instant by
// advertising that instant to an already-loaded libfaketime shim.
//
// An [Override] is built once from an instant specification and then
// activated any number of times. Each activation pushes a frame: the
// prior values of FAKETIME, FAKETIME_FMT, FAKETIME_TIMESTAMP_FILE and
// TZ are captured, the fake instant is written, zone rules are
// refreshed, and the time-based UUID accelerator is suppressed for the
// outermost frame. Deactivation pops the frame and restores exactly
// what was captured. Frames from any number of overrides nest as a
// strict stack:
//
//	override, err := faketime.New(instant.Text("2000-01-01 10:00:05"))
//	if err != nil {
//	    return err
//	}
//	err = override.Run(func() {
//	    // the shim reports 2000-01-01 10:00:05 UTC here
//	    override.Tick(time.Hour)
//	    // and 11:00:05 here
//	})
//
// # Thread affinity
//
// The process environment is one unlocked global. By default an
// override only acts on the designated thread (see lib/affinity):
// activation from any other goroutine is a silent no-op, and so is the
// matching deactivation. [OnlyMainThread](false) lifts the restriction
// and accepts the resulting races on the environment.
//
// Tests run on their own goroutines, so [Override.Activate] designates
// the calling test goroutine for the duration of the test, and
// [Override.Main] does the same for a whole package from TestMain.
//
// # Wrapping
//
// [Override.Wrap], [WrapValue] and [Override.Run] bracket a single
// function. [Override.WrapAll] wraps an explicit list of named entry
// points, and [Override.WrapSuite] brackets a suite-level setup and
// teardown pair instead of the individual bodies.
//
// The shim itself must already be loaded; lib/bootstrap arranges that
// by re-executing the process with the preload variables set.
package faketime
