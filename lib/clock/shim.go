// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"time"

	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/protocol"
)

// Shim returns a Clock that reports the instant advertised in env to
// the libfaketime shim, frozen as the shim would report it. When no
// instant is advertised, or the advertisement cannot be decoded, it
// reports fallback's time.
func Shim(env environ.Environment, fallback Clock) Clock {
	return &shimClock{env: env, fallback: fallback}
}

type shimClock struct {
	env      environ.Environment
	fallback Clock
}

func (c *shimClock) Now() time.Time {
	advertised, ok, err := protocol.Decode(c.env, time.Local)
	if err != nil || !ok {
		return c.fallback.Now()
	}
	return advertised
}
