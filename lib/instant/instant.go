// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package instant

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
)

var (
	// ErrTimeParse is returned for text specifications the date grammar
	// cannot read.
	ErrTimeParse = errors.New("cannot parse time specification")

	// ErrConfigurationConflict is returned when an explicit offset is
	// combined with an instant that already carries a zone.
	ErrConfigurationConflict = errors.New("cannot set timezone offset when the instant already has a timezone")
)

// Instant is a fake instant: an absolute time held in the location of
// its zone, plus the zone identifier the protocol writes to TZ. An empty
// zone means the ambient zone is left in effect.
type Instant struct {
	at   time.Time
	zone string
}

// Time returns the instant in its zone location. Its wall-clock fields
// are what the shim reports as local time.
func (i Instant) Time() time.Time { return i.at }

// Zone returns the TZ identifier, or "" for a compatibility instant.
func (i Instant) Zone() string { return i.zone }

// UTC returns the absolute instant in UTC.
func (i Instant) UTC() time.Time { return i.at.UTC() }

// Add returns the instant advanced by d, keeping the zone.
func (i Instant) Add(d time.Duration) Instant {
	return Instant{at: i.at.Add(d), zone: i.zone}
}

// Equal reports whether both instants have the same absolute time and
// zone identifier.
func (i Instant) Equal(other Instant) bool {
	return i.at.Equal(other.at) && i.zone == other.zone
}

func (i Instant) String() string {
	if i.zone == "" {
		return i.at.Format("2006-01-02 15:04:05.000000")
	}
	return i.at.Format("2006-01-02 15:04:05.000000") + " " + i.zone
}

// Spec is a time specification accepted by Normalize and Compat.
type Spec interface {
	resolve() (t time.Time, aware bool, err error)
}

// Text is parsed twice, in two probe locations with different offsets.
// A text without a zone of its own lands on a different absolute
// instant in each; one carrying a zone, "Z" and "+00:00" included, lands
// on the same instant in both.
var (
	firstProbe  = time.FixedZone("", 3600)
	secondProbe = time.FixedZone("", 7200)
)

type textSpec string

// Text returns a Spec parsed with a permissive date grammar.
func Text(text string) Spec { return textSpec(text) }

func (s textSpec) resolve() (time.Time, bool, error) {
	normalized := normalizeText(string(s))
	if normalized == "" {
		return time.Time{}, false, fmt.Errorf("%w: empty specification", ErrTimeParse)
	}
	first, err := dateparse.ParseIn(normalized, firstProbe)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w %q: %v", ErrTimeParse, string(s), err)
	}
	second, err := dateparse.ParseIn(normalized, secondProbe)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w %q: %v", ErrTimeParse, string(s), err)
	}
	if !first.Equal(second) {
		return first, false, nil
	}

	// The text named its zone. ParseIn reuses the probe location when
	// the parsed offset equals the probe's, so take the result whose
	// location is not a probe; an absolute instant with no zone at all
	// (a Unix timestamp) is reported in UTC.
	switch {
	case first.Location() != firstProbe:
		return first, true, nil
	case second.Location() != secondProbe:
		return second, true, nil
	default:
		return first.UTC(), true, nil
	}
}

type naiveSpec time.Time

// Naive returns a Spec using the wall-clock fields of t, ignoring its
// location.
func Naive(t time.Time) Spec { return naiveSpec(t) }

func (s naiveSpec) resolve() (time.Time, bool, error) { return time.Time(s), false, nil }

type awareSpec time.Time

// At returns a zone-aware Spec. Every location counts as a zone, UTC
// included; use Naive for wall-clock fields without one.
func At(t time.Time) Spec { return awareSpec(t) }

func (s awareSpec) resolve() (time.Time, bool, error) { return time.Time(s), true, nil }

// Option adjusts normalization.
type Option func(*settings)

type settings struct {
	offsetHours int
	offsetSet   bool
}

// OffsetHours requests a fixed zone that many hours ahead of UTC for a
// naive instant. Positive values read ahead of UTC.
func OffsetHours(hours int) Option {
	return func(s *settings) {
		s.offsetHours = hours
		s.offsetSet = true
	}
}

func collect(options []Option) settings {
	var result settings
	for _, option := range options {
		option(&result)
	}
	return result
}

// Normalize resolves spec into a fake instant.
func Normalize(spec Spec, options ...Option) (Instant, error) {
	config := collect(options)
	t, aware, err := spec.resolve()
	if err != nil {
		return Instant{}, err
	}
	if aware && config.offsetSet {
		return Instant{}, ErrConfigurationConflict
	}
	if aware {
		return Instant{at: t.Truncate(time.Microsecond), zone: ZoneName(t)}, nil
	}

	utc := wallIn(t, time.UTC)
	if !config.offsetSet {
		return Instant{at: utc, zone: "UTC"}, nil
	}
	location := FixedOffset(config.offsetHours)
	return Instant{at: utc.In(location), zone: location.String()}, nil
}

// Compat resolves spec the way a naive-local-time faking API expects:
// the instant is taken as UTC (or converted to UTC when aware), shifted
// back by the explicit offset if one is given, and re-expressed in
// ambient with no zone identifier. A nil ambient uses time.Local.
func Compat(spec Spec, ambient *time.Location, options ...Option) (Instant, error) {
	config := collect(options)
	t, aware, err := spec.resolve()
	if err != nil {
		return Instant{}, err
	}
	if aware && config.offsetSet {
		return Instant{}, ErrConfigurationConflict
	}

	var utc time.Time
	if aware {
		utc = t.Truncate(time.Microsecond).UTC()
	} else {
		utc = wallIn(t, time.UTC)
	}
	if config.offsetSet {
		utc = utc.Add(-time.Duration(config.offsetHours) * time.Hour)
	}
	if ambient == nil {
		ambient = time.Local
	}
	return Instant{at: utc.In(ambient)}, nil
}

// wallIn rebuilds the wall-clock fields of t in location, dropping
// precision below a microsecond.
func wallIn(t time.Time, location *time.Location) time.Time {
	microseconds := t.Nanosecond() / 1000
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
		microseconds*1000, location)
}

// FixedOffset returns a fixed location hours ahead of UTC, named with
// the identifier written to TZ.
func FixedOffset(hours int) *time.Location {
	seconds := hours * 3600
	return time.FixedZone(offsetZoneName(seconds), seconds)
}

// ZoneName derives the TZ identifier for an aware time: its location
// name when that is a loadable IANA zone, otherwise a name derived from
// its UTC offset at t.
func ZoneName(t time.Time) string {
	location := t.Location()
	if location == time.UTC {
		return "UTC"
	}
	name := location.String()
	if name != "" && name != "Local" {
		if _, err := time.LoadLocation(name); err == nil {
			return name
		}
	}
	_, offset := t.Zone()
	return offsetZoneName(offset)
}

// offsetZoneName names a fixed offset. Whole-hour offsets inside the
// Etc/GMT range use those zones, whose sign is inverted (Etc/GMT-3 is
// three hours ahead of UTC). Anything else uses a POSIX TZ string.
func offsetZoneName(seconds int) string {
	if seconds%3600 == 0 {
		hours := seconds / 3600
		if hours >= -12 && hours <= 14 {
			return fmt.Sprintf("Etc/GMT%+d", -hours)
		}
	}
	sign, posixSign := '+', '-'
	magnitude := seconds
	if seconds < 0 {
		sign, posixSign = '-', '+'
		magnitude = -seconds
	}
	hours, minutes := magnitude/3600, (magnitude%3600)/60
	return fmt.Sprintf("<%c%02d%02d>%c%02d:%02d", sign, hours, minutes, posixSign, hours, minutes)
}

var posixPattern = regexp.MustCompile(`^<([+-])(\d{2})(\d{2})>[+-]\d{2}:\d{2}$`)

// Location resolves a TZ identifier produced by this package (or any
// IANA name) to a location.
func Location(zone string) (*time.Location, error) {
	if zone == "" || zone == "UTC" {
		return time.UTC, nil
	}
	if match := posixPattern.FindStringSubmatch(zone); match != nil {
		hours, _ := strconv.Atoi(match[2])
		minutes, _ := strconv.Atoi(match[3])
		seconds := hours*3600 + minutes*60
		if match[1] == "-" {
			seconds = -seconds
		}
		return time.FixedZone(zone, seconds), nil
	}
	location, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("unknown zone %q: %w", zone, err)
	}
	return location, nil
}

var (
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)
	atPattern      = regexp.MustCompile(`(?i)\s+at\s+`)
)

// normalizeText strips the English ordinal suffixes and "at" joiners the
// date grammar does not read on its own.
func normalizeText(text string) string {
	text = strings.TrimSpace(text)
	text = ordinalPattern.ReplaceAllString(text, "$1")
	return atPattern.ReplaceAllString(text, " ")
}
