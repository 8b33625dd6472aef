// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package process provides binary entrypoint helpers. They centralize
// the raw stderr write and os.Exit call that happen after run()
// returns, when the structured logger may not exist.
//
//   - [Fatal] reports an unexpected error and exits 1.
//   - [Exit] maps a run() result to an exit: silent for nil and for
//     errors that carry their own exit code, Fatal otherwise.
package process
