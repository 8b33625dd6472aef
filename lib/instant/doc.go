// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package instant turns heterogeneous time specifications into the
// canonical fake instant the libfaketime environment protocol encodes:
// a local wall-clock value plus the zone identifier written to TZ.
//
// A [Spec] is one of:
//
//   - [Text] -- a permissive date grammar ("2000-01-01 10:00:05",
//     "1/1/2000", "September 17th, 2012 at 10:09am", RFC 3339 with an
//     offset). Text that names an explicit non-UTC offset is zone-aware.
//   - [Naive] -- a time.Time whose wall-clock fields are used and whose
//     location is ignored.
//   - [At] -- a zone-aware time.Time. A time in time.UTC is treated as
//     naive UTC, which yields the same instant.
//
// [Normalize] applies the rules in order: parse, reject an aware instant
// combined with [OffsetHours] ([ErrConfigurationConflict]), keep the zone
// of an aware instant, assume UTC for a naive one, and for a naive
// instant with an explicit offset shift into a fixed "Etc/GMT" zone that
// many hours ahead of UTC.
//
// [Compat] is the zone-discarding path used as a drop-in for faking APIs
// that only understand naive local time: the resulting instant is moved
// into the ambient local zone and its zone identifier is dropped. Only
// the absolute instant survives; callers that expect zone information
// back from a compatibility instant will not get it.
//
// The IANA database is embedded (time/tzdata) so zone identifiers
// resolve identically on hosts without /usr/share/zoneinfo.
package instant
