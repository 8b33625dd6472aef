// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faketime

import (
	"testing"

	"github.com/bureau-foundation/faketime/lib/affinity"
)

// TestRunner is the part of *testing.M used by Main.
type TestRunner interface {
	Run() int
}

// Activate starts a frame for the rest of tb and stops it during
// cleanup. The test goroutine becomes the designated thread until the
// test ends. The environment is process-wide, so tests that call
// Activate must not run in parallel.
func (o *Override) Activate(tb testing.TB) {
	tb.Helper()
	release := affinity.Designate()
	tb.Cleanup(release)
	if err := o.Start(); err != nil {
		tb.Fatalf("starting fake time: %v", err)
	}
	tb.Cleanup(func() {
		if err := o.Stop(); err != nil {
			tb.Errorf("stopping fake time: %v", err)
		}
	})
}

// Main runs m inside a frame, for use from TestMain:
//
//	func TestMain(m *testing.M) {
//	    override, err := faketime.New(instant.Text("2000-01-01"))
//	    if err != nil {
//	        process.Fatal(err)
//	    }
//	    os.Exit(override.Main(m))
//	}
//
// Returns 1 without running m when the frame cannot start.
func (o *Override) Main(m TestRunner) int {
	release := affinity.Designate()
	defer release()

	if err := o.Start(); err != nil {
		o.logger.Error("starting fake time", "error", err)
		return 1
	}
	code := m.Run()
	if err := o.Stop(); err != nil {
		o.logger.Error("stopping fake time", "error", err)
		if code == 0 {
			code = 1
		}
	}
	return code
}
