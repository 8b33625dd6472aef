// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faketime

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bureau-foundation/faketime/lib/instant"
	"github.com/bureau-foundation/faketime/lib/protocol"
	"github.com/bureau-foundation/faketime/lib/uuidguard"
)

// ErrNotActive is returned by Stop when the override has no active
// frame on an acting thread.
var ErrNotActive = errors.New("fake time override is not active")

// frame is one acting activation.
type frame struct {
	restore protocol.RestoreSet
	token   *uuidguard.Token
}

// Override advertises a fake instant while active. The zero value is
// not usable; construct with New.
type Override struct {
	settings

	// mu guards current and frames. It does not guard the process
	// environment, which relies on the affinity gate.
	mu      sync.Mutex
	current instant.Instant
	frames  []frame
}

// New resolves spec into a fake instant. The environment is not touched
// until Start.
func New(spec instant.Spec, options ...Option) (*Override, error) {
	s := defaultSettings()
	for _, option := range options {
		option(&s)
	}
	s.resolve()

	var normalizeOptions []instant.Option
	if s.offsetHours != nil {
		normalizeOptions = append(normalizeOptions, instant.OffsetHours(*s.offsetHours))
	}

	var resolved instant.Instant
	var err error
	if s.compat {
		resolved, err = instant.Compat(spec, s.compatZone, normalizeOptions...)
	} else {
		resolved, err = instant.Normalize(spec, normalizeOptions...)
	}
	if err != nil {
		return nil, fmt.Errorf("creating fake time override: %w", err)
	}

	return &Override{settings: s, current: resolved}, nil
}

// Instant returns the instant the override advertises.
func (o *Override) Instant() instant.Instant {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Depth returns the number of active frames of this override.
func (o *Override) Depth() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.frames)
}

// Active reports whether the override has at least one active frame.
func (o *Override) Active() bool { return o.Depth() > 0 }

// Start pushes a frame: it captures the protocol variables (and the
// timestamp file in file-backed mode), writes the
// fake instant, refreshes zone rules, and suppresses the UUID
// accelerator if no other frame already has. On a goroutine the gate
// refuses, Start does nothing. A failure part way through restores
// everything already written and runs the OnEnd hooks.
func (o *Override) Start() error {
	if !o.gate.ShouldAct() {
		o.logger.Debug("fake time start skipped on non-designated thread")
		return nil
	}

	for _, hook := range o.onBegin {
		hook(o)
	}
	if err := o.push(); err != nil {
		// OnBegin has run, so OnEnd runs too.
		for _, hook := range o.onEnd {
			hook(o)
		}
		return err
	}
	return nil
}

func (o *Override) push() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	restore := protocol.Capture(o.env, protocol.Names...)
	if o.timestampFile != "" {
		var err error
		if restore, err = restore.CaptureFile(o.timestampFile); err != nil {
			return fmt.Errorf("activating fake time: %w", err)
		}
	}
	if err := protocol.Write(o.env, o.current, o.timestampFile); err != nil {
		return errors.Join(fmt.Errorf("activating fake time: %w", err), o.rollback(restore))
	}
	if err := o.refresher.Refresh(o.env); err != nil {
		return errors.Join(fmt.Errorf("activating fake time: %w", err), o.rollback(restore))
	}
	token := o.guard.MaybeSuppress(true)

	o.frames = append(o.frames, frame{restore: restore, token: token})
	o.logger.Debug("fake time started",
		"instant", o.current.String(),
		"zone", o.current.Zone(),
		"depth", len(o.frames),
	)
	return nil
}

// rollback undoes a partially written frame.
func (o *Override) rollback(restore protocol.RestoreSet) error {
	if err := restore.Apply(o.env); err != nil {
		return fmt.Errorf("rolling back fake time: %w", err)
	}
	if err := o.refresher.Refresh(o.env); err != nil {
		return fmt.Errorf("rolling back fake time: %w", err)
	}
	return nil
}

// Stop pops the most recent frame: it restores the UUID accelerator,
// then every captured variable to its exact prior value or absence,
// then zone rules. On a goroutine the gate refuses, Stop does nothing.
// Returns ErrNotActive when there is no frame to pop.
func (o *Override) Stop() error {
	if !o.gate.ShouldAct() {
		return nil
	}

	if err := o.pop(); err != nil {
		return err
	}
	for _, hook := range o.onEnd {
		hook(o)
	}
	return nil
}

func (o *Override) pop() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.frames) == 0 {
		return ErrNotActive
	}
	top := o.frames[len(o.frames)-1]
	o.frames = o.frames[:len(o.frames)-1]

	o.guard.Restore(top.token)
	var errs []error
	if err := top.restore.Apply(o.env); err != nil {
		errs = append(errs, err)
	}
	if err := o.refresher.Refresh(o.env); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("deactivating fake time: %w", err)
	}
	o.logger.Debug("fake time stopped", "depth", len(o.frames))
	return nil
}

// Tick advances the instant by delta. While a frame is active the new
// instant is advertised at once; restore sets are left untouched. Tick
// is not safe for concurrent use with other Ticks on the same override.
func (o *Override) Tick(delta time.Duration) error {
	if !o.gate.ShouldAct() {
		return nil
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.current = o.current.Add(delta)
	if len(o.frames) == 0 {
		return nil
	}
	if err := protocol.Write(o.env, o.current, o.timestampFile); err != nil {
		return fmt.Errorf("advancing fake time: %w", err)
	}
	return nil
}
