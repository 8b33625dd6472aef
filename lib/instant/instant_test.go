// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package instant

import (
	"errors"
	"testing"
	"time"
)

func mustNormalize(t *testing.T, spec Spec, options ...Option) Instant {
	t.Helper()
	result, err := Normalize(spec, options...)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return result
}

func TestNormalize_TextAssumesUTC(t *testing.T) {
	result := mustNormalize(t, Text("2000-01-01 10:00:05"))

	if result.Zone() != "UTC" {
		t.Errorf("zone = %q, want UTC", result.Zone())
	}
	want := time.Date(2000, 1, 1, 10, 0, 5, 0, time.UTC)
	if !result.Time().Equal(want) {
		t.Errorf("time = %v, want %v", result.Time(), want)
	}
}

func TestNormalize_TextGrammar(t *testing.T) {
	cases := []struct {
		text string
		want time.Time
	}{
		{"1/1/2000", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2001-01-01", time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"September 17th, 2012 at 10:09am", time.Date(2012, 9, 17, 10, 9, 0, 0, time.UTC)},
	}
	for _, testCase := range cases {
		t.Run(testCase.text, func(t *testing.T) {
			result := mustNormalize(t, Text(testCase.text))
			if !result.UTC().Equal(testCase.want) {
				t.Errorf("Normalize(%q) = %v, want %v", testCase.text, result.UTC(), testCase.want)
			}
		})
	}
}

func TestNormalize_MalformedText(t *testing.T) {
	for _, text := range []string{"", "   ", "2000-13-45"} {
		if _, err := Normalize(Text(text)); !errors.Is(err, ErrTimeParse) {
			t.Errorf("Normalize(%q) error = %v, want ErrTimeParse", text, err)
		}
	}
}

func TestNormalize_ExplicitOffset(t *testing.T) {
	result := mustNormalize(t, Text("2000-01-01 10:00:05"), OffsetHours(3))

	if result.Zone() != "Etc/GMT-3" {
		t.Errorf("zone = %q, want Etc/GMT-3", result.Zone())
	}
	local := result.Time()
	if local.Hour() != 13 || local.Minute() != 0 || local.Second() != 5 {
		t.Errorf("local wall clock = %s, want 13:00:05", local.Format("15:04:05"))
	}
	if got := result.UTC(); !got.Equal(time.Date(2000, 1, 1, 10, 0, 5, 0, time.UTC)) {
		t.Errorf("UTC = %v, want 10:00:05", got)
	}
}

func TestNormalize_GeneratedZonesAreLoadable(t *testing.T) {
	for offset := -2; offset <= 2; offset++ {
		result := mustNormalize(t, Naive(time.Now()), OffsetHours(offset))
		if _, err := time.LoadLocation(result.Zone()); err != nil {
			t.Errorf("offset %d: zone %q not loadable: %v", offset, result.Zone(), err)
		}
	}
}

func TestNormalize_AwareKeepsZone(t *testing.T) {
	brussels, err := time.LoadLocation("Europe/Brussels")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	result := mustNormalize(t, At(time.Date(2017, 1, 2, 15, 2, 0, 0, brussels)))

	if result.Zone() != "Europe/Brussels" {
		t.Errorf("zone = %q, want Europe/Brussels", result.Zone())
	}
	if result.Time().Hour() != 15 {
		t.Errorf("local hour = %d, want 15", result.Time().Hour())
	}
	if result.UTC().Hour() != 14 {
		t.Errorf("UTC hour = %d, want 14", result.UTC().Hour())
	}
}

func TestNormalize_AwareWithOffsetConflicts(t *testing.T) {
	havana, err := time.LoadLocation("America/Havana")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	_, err = Normalize(At(time.Date(2012, 10, 2, 21, 38, 0, 0, havana)), OffsetHours(5))
	if !errors.Is(err, ErrConfigurationConflict) {
		t.Errorf("error = %v, want ErrConfigurationConflict", err)
	}

	_, err = Normalize(Text("2009-08-12T22:15:09-07:00"), OffsetHours(5))
	if !errors.Is(err, ErrConfigurationConflict) {
		t.Errorf("text with offset: error = %v, want ErrConfigurationConflict", err)
	}

	// An explicit UTC marker is a zone like any other.
	for _, text := range []string{
		"2000-01-01T10:00:05Z",
		"2000-01-01 10:00:05+00:00",
		"2000-01-01T10:00:05+01:00",
		"2000-01-01T10:00:05+02:00",
	} {
		if _, err := Normalize(Text(text), OffsetHours(3)); !errors.Is(err, ErrConfigurationConflict) {
			t.Errorf("Text(%q) with offset: error = %v, want ErrConfigurationConflict", text, err)
		}
	}
	if _, err := Normalize(At(time.Date(2000, 1, 1, 10, 0, 5, 0, time.UTC)), OffsetHours(5)); !errors.Is(err, ErrConfigurationConflict) {
		t.Errorf("At(UTC) with offset: error = %v, want ErrConfigurationConflict", err)
	}
	if _, err := Compat(Text("2000-01-01T10:00:05Z"), time.UTC, OffsetHours(3)); !errors.Is(err, ErrConfigurationConflict) {
		t.Errorf("Compat with UTC text and offset: error = %v, want ErrConfigurationConflict", err)
	}
}

func TestNormalize_ExplicitUTCKeepsInstant(t *testing.T) {
	want := time.Date(2000, 1, 1, 10, 0, 5, 0, time.UTC)
	for _, text := range []string{"2000-01-01T10:00:05Z", "2000-01-01 10:00:05+00:00"} {
		result := mustNormalize(t, Text(text))
		if !result.UTC().Equal(want) {
			t.Errorf("Text(%q): UTC = %v, want %v", text, result.UTC(), want)
		}
		if _, offset := result.Time().Zone(); offset != 0 {
			t.Errorf("Text(%q): offset = %d, want 0", text, offset)
		}
	}

	// Offsets equal to a parse probe's keep their own zone.
	result := mustNormalize(t, Text("2000-01-01T10:00:05+01:00"))
	if result.Zone() != "Etc/GMT-1" {
		t.Errorf("zone = %q, want Etc/GMT-1", result.Zone())
	}
	if !result.UTC().Equal(time.Date(2000, 1, 1, 9, 0, 5, 0, time.UTC)) {
		t.Errorf("UTC = %v", result.UTC())
	}

	result = mustNormalize(t, At(want))
	if result.Zone() != "UTC" || !result.UTC().Equal(want) {
		t.Errorf("At(UTC) = %v in %q", result.UTC(), result.Zone())
	}
}

func TestNormalize_UTCEquivalence(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	inputs := []time.Time{
		time.Date(2017, 1, 2, 15, 2, 0, 0, kolkata),
		time.Date(2015, 7, 7, 0, 0, 0, 0, time.FixedZone("", -7*3600)),
		time.Date(2020, 2, 29, 23, 59, 59, 999999000, time.FixedZone("odd", 5*3600+1800)),
	}
	for _, input := range inputs {
		result := mustNormalize(t, At(input))
		if !result.UTC().Equal(input.UTC()) {
			t.Errorf("At(%v): UTC = %v, want %v", input, result.UTC(), input.UTC())
		}
		location, err := Location(result.Zone())
		if err != nil {
			t.Fatalf("Location(%q): %v", result.Zone(), err)
		}
		_, wantOffset := input.Zone()
		if _, gotOffset := input.In(location).Zone(); gotOffset != wantOffset {
			t.Errorf("zone %q offset = %d, want %d", result.Zone(), gotOffset, wantOffset)
		}
	}
}

func TestNormalize_TextWithZoneIsAware(t *testing.T) {
	result := mustNormalize(t, Text("2009-08-12T22:15:09-07:00"))
	if result.Zone() != "Etc/GMT+7" {
		t.Errorf("zone = %q, want Etc/GMT+7", result.Zone())
	}
	if !result.UTC().Equal(time.Date(2009, 8, 13, 5, 15, 9, 0, time.UTC)) {
		t.Errorf("UTC = %v", result.UTC())
	}
}

func TestNormalize_MicrosecondPrecision(t *testing.T) {
	result := mustNormalize(t, Naive(time.Date(2014, 1, 1, 0, 0, 0, 123456789, time.Local)))
	if result.Time().Nanosecond() != 123456000 {
		t.Errorf("nanosecond = %d, want 123456000", result.Time().Nanosecond())
	}
}

func TestInstant_Add(t *testing.T) {
	start := mustNormalize(t, Text("2000-01-01 10:00:05"))
	later := start.Add(time.Hour + 250*time.Microsecond)

	if later.Zone() != start.Zone() {
		t.Errorf("zone changed from %q to %q", start.Zone(), later.Zone())
	}
	if got := later.UTC().Sub(start.UTC()); got != time.Hour+250*time.Microsecond {
		t.Errorf("difference = %v", got)
	}
	if start.Equal(later) {
		t.Error("Add returned an equal instant")
	}
}

func TestCompat(t *testing.T) {
	ambient := time.FixedZone("ambient", 2*3600)

	result, err := Compat(Text("2000-01-01 10:00:05"), ambient)
	if err != nil {
		t.Fatalf("Compat: %v", err)
	}
	if result.Zone() != "" {
		t.Errorf("compat zone = %q, want empty", result.Zone())
	}
	if got := result.Time().Format("15:04:05"); got != "12:00:05" {
		t.Errorf("ambient wall clock = %s, want 12:00:05", got)
	}

	shifted, err := Compat(Text("2000-01-01 10:00:05"), ambient, OffsetHours(3))
	if err != nil {
		t.Fatalf("Compat with offset: %v", err)
	}
	if !shifted.UTC().Equal(time.Date(2000, 1, 1, 7, 0, 5, 0, time.UTC)) {
		t.Errorf("shifted UTC = %v, want 07:00:05", shifted.UTC())
	}

	aware, err := Compat(Text("2000-01-01T10:00:05+01:00"), ambient)
	if err != nil {
		t.Fatalf("Compat aware: %v", err)
	}
	if !aware.UTC().Equal(time.Date(2000, 1, 1, 9, 0, 5, 0, time.UTC)) {
		t.Errorf("aware UTC = %v, want 09:00:05", aware.UTC())
	}
}

func TestOffsetZoneName(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "Etc/GMT+0"},
		{3 * 3600, "Etc/GMT-3"},
		{-5 * 3600, "Etc/GMT+5"},
		{5*3600 + 1800, "<+0530>-05:30"},
		{-(9*3600 + 1800), "<-0930>+09:30"},
	}
	for _, testCase := range cases {
		if got := offsetZoneName(testCase.seconds); got != testCase.want {
			t.Errorf("offsetZoneName(%d) = %q, want %q", testCase.seconds, got, testCase.want)
		}
	}
}

func TestLocation_POSIX(t *testing.T) {
	location, err := Location("<+0530>-05:30")
	if err != nil {
		t.Fatalf("Location: %v", err)
	}
	_, offset := time.Date(2020, 1, 1, 0, 0, 0, 0, location).Zone()
	if offset != 5*3600+1800 {
		t.Errorf("offset = %d, want %d", offset, 5*3600+1800)
	}
	if _, err := Location("Not/AZone"); err == nil {
		t.Error("Location(Not/AZone) succeeded")
	}
}
