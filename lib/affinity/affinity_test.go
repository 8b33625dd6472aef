// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package affinity

import (
	"runtime"
	"testing"
	"time"

	"github.com/bureau-foundation/faketime/lib/testutil"
)

func TestDesignate(t *testing.T) {
	release := Designate()
	defer release()

	if !IsMain() {
		t.Fatal("IsMain() = false on the designated goroutine")
	}
	if !MainThread().ShouldAct() {
		t.Fatal("MainThread gate refused the designated goroutine")
	}

	results := make(chan bool, 1)
	go func() {
		results <- MainThread().ShouldAct()
	}()
	if testutil.RequireReceive(t, results, 5*time.Second, "other goroutine gate result") {
		t.Error("MainThread gate admitted a goroutine other than the designated one")
	}
}

func TestDesignate_ReleaseRestoresPrevious(t *testing.T) {
	before := designated.Load()
	release := Designate()
	release()
	if designated.Load() != before {
		t.Errorf("designation after release = %d, want %d", designated.Load(), before)
	}
}

func TestAnyThread(t *testing.T) {
	results := make(chan bool, 1)
	go func() {
		results <- AnyThread().ShouldAct()
	}()
	if !testutil.RequireReceive(t, results, 5*time.Second, "any-thread gate result") {
		t.Error("AnyThread gate refused a goroutine")
	}
}

func TestGateFunc(t *testing.T) {
	var gate Gate = GateFunc(func() bool { return false })
	if gate.ShouldAct() {
		t.Error("GateFunc ignored its function")
	}
}

func TestDesignate_Nested(t *testing.T) {
	outer := Designate()
	defer outer()

	inner := Designate()
	if !IsMain() {
		t.Fatal("IsMain() = false inside nested designation")
	}
	inner()
	if !IsMain() {
		t.Fatal("nested release dropped the outer designation")
	}
}

// Admission must not depend on which OS thread a goroutine lands on.
// With a single P every goroutine shares the thread that ran init.
func TestMainThread_RefusesOtherGoroutinesOnSingleProc(t *testing.T) {
	defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(1))

	const goroutines = 200
	results := make(chan bool, goroutines)
	for _i := 0; _i < goroutines; _i++ {
		go func() {
			results <- MainThread().ShouldAct()
		}()
	}
	for i := 0; i < goroutines; i++ {
		if testutil.RequireReceive(t, results, 5*time.Second, "goroutine %d gate result", i) {
			t.Fatalf("goroutine %d admitted without designation", i)
		}
	}
}

func TestDesignate_StableAcrossReschedule(t *testing.T) {
	release := Designate()
	defer release()

	for _i := 0; _i < 100; _i++ {
		runtime.Gosched()
		if !IsMain() {
			t.Fatal("designated goroutine refused after rescheduling")
		}
	}
}

func TestGoroutineID_Distinct(t *testing.T) {
	own := goroutineID()
	if own <= 0 {
		t.Fatalf("goroutineID() = %d, want positive", own)
	}
	results := make(chan int64, 1)
	go func() {
		results <- goroutineID()
	}()
	if other := testutil.RequireReceive(t, results, 5*time.Second, "other goroutine id"); other == own {
		t.Errorf("two goroutines share id %d", own)
	}
}
