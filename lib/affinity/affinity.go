// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package affinity decides whether the calling goroutine may mutate the
// process environment on behalf of a fake-time frame.
//
// The environment is a single unlocked global. By default only one
// designated goroutine ever writes it, so concurrent goroutines never
// race on it. The designation starts out as the goroutine that ran
// package initialization, which is the main goroutine. [Designate] moves
// it to the calling goroutine. Tests, which run outside the main
// goroutine, call Designate at their start.
//
// Identity is the goroutine id, not the OS thread: the scheduler moves
// goroutines between threads, so a thread id would give a different
// answer for the same goroutine over time.
package affinity

import "sync/atomic"

// Gate reports whether the calling goroutine should act.
type Gate interface {
	ShouldAct() bool
}

var designated atomic.Int64

func init() {
	designated.Store(goroutineID())
}

// IsMain reports whether the caller is the designated goroutine.
func IsMain() bool {
	return goroutineID() == designated.Load()
}

type mainThreadGate struct{}

func (mainThreadGate) ShouldAct() bool { return IsMain() }

// MainThread returns the gate that admits only the designated
// goroutine.
func MainThread() Gate { return mainThreadGate{} }

type anyThreadGate struct{}

func (anyThreadGate) ShouldAct() bool { return true }

// AnyThread returns a gate that admits every caller. Frames using it
// from more than one goroutine race on the environment.
func AnyThread() Gate { return anyThreadGate{} }

// GateFunc adapts a function to Gate.
type GateFunc func() bool

func (f GateFunc) ShouldAct() bool { return f() }

// Designate makes the calling goroutine the designated one. The
// returned release function restores the previous designation.
// Designations nest: a subtest may designate itself while
// its parent holds the designation. Designations from goroutines that
// run concurrently, such as parallel tests, overwrite each other.
func Designate() (release func()) {
	previous := designated.Swap(goroutineID())
	return func() {
		designated.Store(previous)
	}
}
