// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package uuidguard

import "sync"

// Token is the state captured by the outermost MaybeSuppress call.
type Token struct {
	name      string
	generator Generator
	present   bool
}

// Guard suppresses one slot of a registry for the duration of the
// outermost active frame.
type Guard struct {
	slots *Slots

	mu    sync.Mutex
	depth int
}

// NewGuard returns a Guard over slots.
func NewGuard(slots *Slots) *Guard {
	return &Guard{slots: slots}
}

var defaultGuard = NewGuard(defaultSlots)

// DefaultGuard returns the Guard over the process-wide registry.
func DefaultGuard() *Guard { return defaultGuard }

// Depth returns the number of frames currently holding the guard.
func (g *Guard) Depth() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth
}

// MaybeSuppress engages the guard for one frame. When act is false the
// call does nothing and returns nil. The outermost call empties the
// highest-priority present slot (or the first slot name when none is
// present) and returns a Token recording its previous state; nested
// calls only increase the depth. Every call with act true must be
// paired with Restore.
func (g *Guard) MaybeSuppress(act bool) *Token {
	if !act {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.depth++
	if g.depth > 1 {
		return &Token{}
	}

	g.slots.mu.Lock()
	defer g.slots.mu.Unlock()

	name := SlotNames[0]
	for _, candidate := range SlotNames {
		if _, ok := g.slots.entries[candidate]; ok {
			name = candidate
			break
		}
	}
	generator, present := g.slots.entries[name]
	g.slots.entries[name] = nil
	return &Token{name: name, generator: generator, present: present}
}

// Restore releases one frame's hold. A nil token is ignored. When the
// outermost frame releases, the suppressed slot gets back exactly the
// reference captured by MaybeSuppress, or is removed if it was absent.
func (g *Guard) Restore(token *Token) {
	if token == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.depth == 0 {
		return
	}
	g.depth--
	if token.name == "" {
		return
	}

	g.slots.mu.Lock()
	defer g.slots.mu.Unlock()
	if token.present {
		g.slots.entries[token.name] = token.generator
	} else {
		delete(g.slots.entries, token.name)
	}
}
