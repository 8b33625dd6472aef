// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"fmt"
	"os"
	"time"

	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/instant"
)

// ZoneRefresher re-reads TZ after it changes so zone-dependent calls
// observe the new zone immediately.
type ZoneRefresher interface {
	Refresh(env environ.Environment) error
}

// initialLocal is the process zone as loaded before any frame touched
// TZ, and initialTZ the TZ value it was loaded from. Calling String
// forces time.Local to initialize now rather than lazily after a frame
// has rewritten TZ.
var (
	initialLocal = func() *time.Location {
		_ = time.Local.String()
		return time.Local
	}()
	initialTZ, initialTZSet = os.LookupEnv(VarTZ)
)

// LocalRefresher points time.Local at the zone named by TZ, and back at
// the process's original zone when TZ returns to its original state. Assigning time.Local
// races with goroutines reading the clock concurrently; it is subject to
// the same single-thread discipline as the environment itself.
type LocalRefresher struct{}

func (LocalRefresher) Refresh(env environ.Environment) error {
	zone, ok := env.Lookup(VarTZ)
	if ok == initialTZSet && zone == initialTZ {
		time.Local = initialLocal
		return nil
	}
	if !ok {
		time.Local = systemLocal()
		return nil
	}
	location, err := instant.Location(zone)
	if err != nil {
		return fmt.Errorf("refreshing zone rules: %w", err)
	}
	time.Local = location
	return nil
}

// RefreshFunc adapts a function to ZoneRefresher.
type RefreshFunc func(env environ.Environment) error

func (f RefreshFunc) Refresh(env environ.Environment) error { return f(env) }

// systemLocal loads the zone the process would use with TZ unset.
func systemLocal() *time.Location {
	if !initialTZSet {
		return initialLocal
	}
	data, err := os.ReadFile("/etc/localtime")
	if err != nil {
		return time.UTC
	}
	location, err := time.LoadLocationFromTZData("Local", data)
	if err != nil {
		return time.UTC
	}
	return location
}
