// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package uuidguard keeps time-based UUID generation away from the
// operating system's generator while fake time is active.
//
// System time-based UUID generators (libuuid's uuid_generate_time and
// its uuidd daemon, Windows UuidCreateSequential) read the clock through
// the same calls the libfaketime shim intercepts and can deadlock under
// it. [Slots] is the process-wide registry through which such a
// generator is reached: a named slot holds a [Generator], and
// [Slots.NewTimeUUID] prefers the first non-empty slot in [SlotNames]
// priority order, falling back to the pure algorithmic generator in
// github.com/google/uuid. The process-wide registry starts with the
// system uuidgen tool installed when it is on PATH; [NewTimeUUID] draws
// from it.
//
// A [Guard] empties the highest-priority present slot for the lifetime
// of the outermost fake-time frame and restores the exact previous
// reference afterwards. Nested frames only count depth; they never
// capture the already-empty slot as "the original". A slot that did not
// exist before the guard engaged is removed again on restore, so
// "never existed" and "existed and was empty" stay distinguishable.
package uuidguard
