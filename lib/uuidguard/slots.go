// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package uuidguard

import (
	"bytes"
	"fmt"
	"os/exec"
	"sync"

	"github.com/google/uuid"
)

// SlotNames are the historical names of the system time-based UUID
// generator, in the order the guard looks for them.
var SlotNames = []string{
	"uuid_generate_time",
	"uuid_generate_time_safe",
	"UuidCreateSequential",
}

// Generator produces a time-based UUID.
type Generator func() (uuid.UUID, error)

// Slots is a registry of named generator slots. A slot may be absent,
// present but empty (nil generator), or present with a generator. Safe
// for concurrent use.
type Slots struct {
	mu      sync.Mutex
	entries map[string]Generator
}

// NewSlots returns an empty registry.
func NewSlots() *Slots {
	return &Slots{entries: make(map[string]Generator)}
}

var defaultSlots = NewSlots()

func init() {
	InstallSystem(defaultSlots, exec.LookPath)
}

// Default returns the process-wide registry. At startup its
// highest-priority slot holds the system uuidgen tool when one is on
// PATH, and is absent otherwise.
func Default() *Slots { return defaultSlots }

// NewTimeUUID returns a version 1 UUID from the process-wide registry.
// While a fake-time frame guards the registry it comes from the
// algorithmic generator, never the system tool.
func NewTimeUUID() (uuid.UUID, error) { return defaultSlots.NewTimeUUID() }

// InstallSystem puts a CommandGenerator for uuidgen, resolved with
// lookPath, in the highest-priority slot. Reports whether the tool was
// found; when it was not, slots is left untouched.
func InstallSystem(slots *Slots, lookPath func(string) (string, error)) bool {
	path, err := lookPath("uuidgen")
	if err != nil {
		return false
	}
	slots.Install(SlotNames[0], CommandGenerator(path))
	return true
}

// Install puts generator in the named slot. A nil generator leaves the
// slot present but empty.
func (s *Slots) Install(name string, generator Generator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = generator
}

// Remove deletes the named slot.
func (s *Slots) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, name)
}

// Lookup returns the slot's generator and whether the slot exists.
func (s *Slots) Lookup(name string) (Generator, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	generator, ok := s.entries[name]
	return generator, ok
}

// NewTimeUUID returns a version 1 UUID from the first non-empty slot,
// or from the algorithmic generator when every slot is empty or absent.
func (s *Slots) NewTimeUUID() (uuid.UUID, error) {
	s.mu.Lock()
	var generator Generator
	for _, name := range SlotNames {
		if candidate := s.entries[name]; candidate != nil {
			generator = candidate
			break
		}
	}
	s.mu.Unlock()

	if generator != nil {
		return generator()
	}
	return uuid.NewUUID()
}

// CommandGenerator returns a Generator that runs the system uuidgen
// tool in time-based mode. This is the system path the guard exists to
// avoid while the shim is active.
func CommandGenerator(path string) Generator {
	return func() (uuid.UUID, error) {
		output, err := exec.Command(path, "--time").Output()
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("running %s: %w", path, err)
		}
		generated, err := uuid.ParseBytes(bytes.TrimSpace(output))
		if err != nil {
			return uuid.UUID{}, fmt.Errorf("parsing %s output: %w", path, err)
		}
		return generated, nil
	}
}
