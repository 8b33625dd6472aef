// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bureau-foundation/faketime/lib/environ"
	"github.com/bureau-foundation/faketime/lib/instant"
)

// Variable names read by the shim.
const (
	VarTime          = "FAKETIME"
	VarFormat        = "FAKETIME_FMT"
	VarTimestampFile = "FAKETIME_TIMESTAMP_FILE"
	VarTZ            = "TZ"
)

// Format is the strftime format advertised in FAKETIME_FMT.
const Format = "%Y-%m-%d %T.%f"

// layout is Format expressed as a Go reference layout.
const layout = "2006-01-02 15:04:05.000000"

// Names lists every variable a frame may write, in capture order.
var Names = []string{VarTime, VarFormat, VarTimestampFile, VarTZ}

// ErrUnsupportedFormat is returned by Decode when FAKETIME_FMT names a
// format other than Format.
var ErrUnsupportedFormat = errors.New("unsupported FAKETIME_FMT")

// FormatInstant renders the wall-clock fields of t in the fixed format.
func FormatInstant(t time.Time) string {
	return t.Format(layout)
}

// ParseInstant reads a value in the fixed format as wall time in
// location.
func ParseInstant(value string, location *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(layout, strings.TrimSpace(value), location)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing fake time %q: %w", value, err)
	}
	return parsed, nil
}

// Assignment is one write the protocol performs. Unset assignments
// remove the variable.
type Assignment struct {
	Name  string
	Value string
	Unset bool
}

// Encode returns the writes that advertise inst. An empty timestampFile
// selects the in-memory encoding (FAKETIME); otherwise the file-backed
// encoding (FAKETIME_TIMESTAMP_FILE) is used and FAKETIME is removed.
// TZ is written only when the instant carries a zone identifier.
func Encode(inst instant.Instant, timestampFile string) []Assignment {
	assignments := make([]Assignment, 0, 4)
	if zone := inst.Zone(); zone != "" {
		assignments = append(assignments, Assignment{Name: VarTZ, Value: zone})
	}
	if timestampFile == "" {
		assignments = append(assignments,
			Assignment{Name: VarTimestampFile, Unset: true},
			Assignment{Name: VarTime, Value: FormatInstant(inst.Time())},
		)
	} else {
		assignments = append(assignments,
			Assignment{Name: VarTime, Unset: true},
			Assignment{Name: VarTimestampFile, Value: timestampFile},
		)
	}
	return append(assignments, Assignment{Name: VarFormat, Value: Format})
}

// Apply performs the assignments in order.
func Apply(env environ.Environment, assignments []Assignment) error {
	for _, assignment := range assignments {
		var err error
		if assignment.Unset {
			err = env.Unset(assignment.Name)
		} else {
			err = env.Set(assignment.Name, assignment.Value)
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", assignment.Name, err)
		}
	}
	return nil
}

// Write advertises inst through env, writing the timestamp file first
// in file-backed mode so the shim never sees a path without content.
func Write(env environ.Environment, inst instant.Instant, timestampFile string) error {
	if timestampFile != "" {
		if err := WriteTimestampFile(timestampFile, inst); err != nil {
			return err
		}
	}
	return Apply(env, Encode(inst, timestampFile))
}

// Decode reads the instant currently advertised in env. Returns false
// when neither FAKETIME nor FAKETIME_TIMESTAMP_FILE is set. The wall
// time is interpreted in the zone named by TZ, or in ambient when TZ is
// absent.
func Decode(env environ.Environment, ambient *time.Location) (time.Time, bool, error) {
	var value string
	if path, ok := env.Lookup(VarTimestampFile); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("reading timestamp file: %w", err)
		}
		value = string(data)
	} else if fakeTime, ok := env.Lookup(VarTime); ok {
		value = fakeTime
	} else {
		return time.Time{}, false, nil
	}

	if format, ok := env.Lookup(VarFormat); ok && format != Format {
		return time.Time{}, false, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}

	location := ambient
	if zone, ok := env.Lookup(VarTZ); ok {
		resolved, err := instant.Location(zone)
		if err != nil {
			return time.Time{}, false, err
		}
		location = resolved
	}
	if location == nil {
		location = time.Local
	}

	parsed, err := ParseInstant(value, location)
	if err != nil {
		return time.Time{}, false, err
	}
	return parsed, true, nil
}
