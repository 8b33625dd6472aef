// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faketime

import (
	"io"
	"log/slog"
	"time"

	"github.com/bureau-foundation/faketime/lib/affinity"
	"github.com/bureau-foundation/faketime/lib/config"
	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/protocol"
	"github.com/bureau-foundation/faketime/lib/uuidguard"
)

// Option configures an Override.
type Option func(*settings)

type settings struct {
	onlyMainThread bool
	offsetHours    *int
	timestampFile  string
	compat         bool
	compatZone     *time.Location

	env       environ.Environment
	refresher protocol.ZoneRefresher
	guard     *uuidguard.Guard
	gate      affinity.Gate
	logger    *slog.Logger

	onBegin []func(*Override)
	onEnd   []func(*Override)
}

func defaultSettings() settings {
	return settings{
		onlyMainThread: true,
		guard:          uuidguard.DefaultGuard(),
	}
}

// OnlyMainThread restricts activation to the designated thread. It is
// true by default; false makes every goroutine act, which races on the
// process environment when more than one does so at once.
func OnlyMainThread(only bool) Option {
	return func(s *settings) { s.onlyMainThread = only }
}

// OffsetHours places a zone-less instant in a fixed zone this many
// hours ahead of UTC. Combined with a zone-aware instant it makes New
// fail with instant.ErrConfigurationConflict.
func OffsetHours(hours int) Option {
	return func(s *settings) { s.offsetHours = &hours }
}

// TimestampFile selects the file-backed encoding: the instant is
// written to path and advertised through FAKETIME_TIMESTAMP_FILE.
func TimestampFile(path string) Option {
	return func(s *settings) { s.timestampFile = path }
}

// FromConfig applies the override defaults of a configuration file:
// thread restriction, the timestamp file, and the offset when set.
// Options after it override individual settings.
func FromConfig(cfg config.OverrideConfig) Option {
	return func(s *settings) {
		s.onlyMainThread = cfg.OnlyMainThread
		s.timestampFile = cfg.TimestampFile
		if cfg.OffsetHours != nil {
			hours := *cfg.OffsetHours
			s.offsetHours = &hours
		}
	}
}

// Compat resolves the instant the way a zone-naive faking API does: the
// UTC instant is re-expressed as wall time in ambient (time.Local when
// nil) and TZ is left alone. Only the absolute instant survives; the
// zone the caller supplied is not carried.
func Compat(ambient *time.Location) Option {
	return func(s *settings) {
		s.compat = true
		s.compatZone = ambient
	}
}

// WithEnvironment replaces the process environment. Zone refresh is
// disabled for a replaced environment unless WithRefresher is also
// given, since refreshing reassigns the process-wide time.Local.
func WithEnvironment(env environ.Environment) Option {
	return func(s *settings) { s.env = env }
}

// WithRefresher replaces the zone-rules refresh run after TZ changes.
func WithRefresher(refresher protocol.ZoneRefresher) Option {
	return func(s *settings) { s.refresher = refresher }
}

// WithGuard replaces the process-wide UUID guard.
func WithGuard(guard *uuidguard.Guard) Option {
	return func(s *settings) { s.guard = guard }
}

// WithGate replaces the affinity gate chosen by OnlyMainThread.
func WithGate(gate affinity.Gate) Option {
	return func(s *settings) { s.gate = gate }
}

// WithLogger sets the logger. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// OnBegin registers a function called just before each acting
// activation writes the environment.
func OnBegin(hook func(*Override)) Option {
	return func(s *settings) { s.onBegin = append(s.onBegin, hook) }
}

// OnEnd registers a function called just after each acting
// deactivation has restored the environment, and after a failed Start
// has rolled back.
func OnEnd(hook func(*Override)) Option {
	return func(s *settings) { s.onEnd = append(s.onEnd, hook) }
}

// resolve fills in the collaborators left unset.
func (s *settings) resolve() {
	if s.gate == nil {
		if s.onlyMainThread {
			s.gate = affinity.MainThread()
		} else {
			s.gate = affinity.AnyThread()
		}
	}
	if s.refresher == nil {
		if s.env == nil {
			s.refresher = protocol.LocalRefresher{}
		} else {
			s.refresher = protocol.RefreshFunc(func(environ.Environment) error { return nil })
		}
	}
	if s.env == nil {
		s.env = environ.OS()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}
