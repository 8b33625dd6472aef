// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package protocol implements the environment-variable contract between
// this module and the native libfaketime shim.
//
// # Variables
//
//   - FAKETIME -- the fake instant as local wall time, formatted
//     "YYYY-MM-DD HH:MM:SS.ffffff"
//   - FAKETIME_FMT -- the strftime format above ("%Y-%m-%d %T.%f"),
//     advertised so the shim parses FAKETIME consistently
//   - FAKETIME_TIMESTAMP_FILE -- path of a file holding the instant in
//     the same format, for fake time shared between cooperating
//     processes. A frame uses either FAKETIME or the timestamp file,
//     never both: [Encode] unsets whichever one the frame does not use.
//   - TZ -- the zone the wall time is expressed in. Every write or
//     restore of TZ must be followed by a [ZoneRefresher] call so zone
//     dependent code in this process observes the change.
//
// # Restore sets
//
// [Capture] records the value or absence of every variable a frame is
// about to touch; [RestoreSet.Apply] puts each one back verbatim,
// re-setting present variables from their own saved value and unsetting
// absent ones. [RestoreSet.CaptureFile] adds the content or absence of
// a timestamp file, which frames sharing one path overwrite in turn.
// Frames capture after any enclosing frame has written, so restoring
// returns exactly to the enclosing frame's state.
//
// [Decode] is the read side of the same fixed format and is used by
// lib/clock to observe the advertised instant from Go code.
package protocol
