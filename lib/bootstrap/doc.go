// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bootstrap makes sure the libfaketime shim is loaded into the
// current process before anything else runs.
//
// The shim can only be loaded by the dynamic linker at process start,
// through LD_PRELOAD on Linux or DYLD_INSERT_LIBRARIES on macOS. A
// process that was started without those variables therefore replaces
// itself: [Bootstrapper.ReexecIfNeeded] copies the environment, adds
// the platform activation variables (see lib/platform) and the
// FAKETIME_DID_REEXEC=true sentinel, and execs the same executable with
// the same arguments. Exec does not return on success, and everything
// the process did before the call is discarded, so bootstrap must run
// first: from main, or from TestMain through [Main].
//
//	func TestMain(m *testing.M) {
//	    os.Exit(bootstrap.Main(m))
//	}
//
// The sentinel rather than the presence of the preload variable decides
// whether a restart is needed. An ambient LD_PRELOAD naming some other
// library is not mistaken for the shim, and a restarted process never
// restarts again.
//
// After the restart the activation variables have done their work: the
// linker has already loaded the shim. Passing removeInjectedVarsAfter
// deletes them from the environment so child processes do not inherit
// the preload. The sentinel stays, so the decision is stable.
//
// [Exports] produces the same variables for shells that want to load
// the shim without going through a restart ("faketime env").
//
// Depends on lib/platform for the activation variables and lib/environ
// for the environment port.
package bootstrap
