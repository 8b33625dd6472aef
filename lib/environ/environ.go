// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package environ abstracts the process environment table so code that
// mutates it can be tested against an in-memory copy.
//
// [OS] is the real table backed by os.LookupEnv, os.Setenv and
// os.Unsetenv. [Map] is a mutex-protected in-memory table for tests.
// Neither implementation adds ordering guarantees beyond what callers
// impose: the override engine relies on strict LIFO save/restore, not
// on locking, for correctness.
package environ

import (
	"os"
	"sort"
	"strings"
	"sync"
)

// Environment is the get/set/unset port over a process environment.
type Environment interface {
	// Lookup returns the value and true if the variable is set.
	Lookup(name string) (string, bool)

	// Set assigns the variable.
	Set(name, value string) error

	// Unset removes the variable. Removing an absent variable is not
	// an error.
	Unset(name string) error

	// Environ returns the table as "NAME=value" entries, suitable for
	// passing to exec.
	Environ() []string
}

type osEnvironment struct{}

// OS returns the real process environment.
func OS() Environment { return osEnvironment{} }

func (osEnvironment) Lookup(name string) (string, bool) { return os.LookupEnv(name) }
func (osEnvironment) Set(name, value string) error { return os.Setenv(name, value) }
func (osEnvironment) Unset(name string) error { return os.Unsetenv(name) }
func (osEnvironment) Environ() []string { return os.Environ() }

// Map is an in-memory Environment. Safe for concurrent use.
type Map struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMap returns a Map seeded with a copy of initial.
func NewMap(initial map[string]string) *Map {
	values := make(map[string]string, len(initial))
	for name, value := range initial {
		values[name] = value
	}
	return &Map{values: values}
}

// Copy returns a Map holding the current entries of env. Entries
// without "=" are skipped.
func Copy(env Environment) *Map {
	values := make(map[string]string)
	for _, entry := range env.Environ() {
		if name, value, ok := strings.Cut(entry, "="); ok {
			values[name] = value
		}
	}
	return &Map{values: values}
}

func (m *Map) Lookup(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[name]
	return value, ok
}

func (m *Map) Set(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}

func (m *Map) Unset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}

// Environ returns the entries sorted by name.
func (m *Map) Environ() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]string, 0, len(m.values))
	for name, value := range m.values {
		entries = append(entries, name+"="+value)
	}
	sort.Strings(entries)
	return entries
}

// Snapshot returns a copy of the current table.
func (m *Map) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make(map[string]string, len(m.values))
	for name, value := range m.values {
		result[name] = value
	}
	return result
}

// Merge returns env with every name in additions set to its value.
// Existing entries are replaced in place; new entries are appended in
// the order given by names. The input slice is not modified.
func Merge(env []string, names []string, additions map[string]string) []string {
	result := make([]string, len(env), len(env)+len(names))
	copy(result, env)
	for _, name := range names {
		result = setEntry(result, name, additions[name])
	}
	return result
}

// setEntry appends or replaces an environment variable in env.
func setEntry(env []string, key, value string) []string {
	prefix := key + "="
	for index, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			env[index] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
