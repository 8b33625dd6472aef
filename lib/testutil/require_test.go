// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"testing"
	"time"
)

// recorder captures Fatalf instead of stopping the test. Fatalf panics
// so the helper under test stops where a real FailNow would.
type recorder struct {
	message string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.message = fmt.Sprintf(format, args...)
	panic(r)
}

func receiveFailure[T any](ch <-chan T, timeout time.Duration, msgAndArgs ...any) (message string) {
	r := &recorder{}
	defer func() {
		if recovered := recover(); recovered != nil {
			if recovered != r {
				panic(recovered)
			}
			message = r.message
		}
	}()
	RequireReceive(r, ch, timeout, msgAndArgs...)
	return ""
}

func TestRequireReceive(t *testing.T) {
	ch := make(chan int, 1)
	ch <- 7
	if got := RequireReceive(t, ch, time.Second, "value"); got != 7 {
		t.Errorf("RequireReceive = %d, want 7", got)
	}
}

func TestRequireReceive_Closed(t *testing.T) {
	ch := make(chan int)
	close(ch)
	if message := receiveFailure(ch, time.Second, "gate %d", 3); message != "channel closed before a value arrived: gate 3" {
		t.Errorf("message = %q", message)
	}
}

func TestRequireReceive_Timeout(t *testing.T) {
	message := receiveFailure(make(chan int), time.Millisecond)
	if message != "no value after 1ms: (no message)" {
		t.Errorf("message = %q", message)
	}
}
