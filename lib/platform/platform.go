// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned when no shim activation profile
// exists for the requested platform tag.
var ErrUnsupportedPlatform = errors.New("libfaketime does not support platform")

// Auxiliary flag names shared by every profile.
const (
	DontFakeMonotonic = "DONT_FAKE_MONOTONIC"
	NoCache           = "FAKETIME_NO_CACHE"
)

// Variable is one environment variable assignment required for shim
// activation.
type Variable struct {
	Name  string
	Value string
}

// Profile is the activation recipe for one platform.
type Profile struct {
	// Platform is the tag the profile was looked up with.
	Platform string

	// Library is the absolute path of the shim shared library the
	// preload variable points at.
	Library string

	// Variables are the assignments in the order they should be
	// applied. The preload variable is always first.
	Variables []Variable
}

// Names returns the variable names of the profile in order.
func (p Profile) Names() []string {
	names := make([]string, len(p.Variables))
	for index, variable := range p.Variables {
		names[index] = variable.Name
	}
	return names
}

// Map returns the profile variables as a name -> value map.
func (p Profile) Map() map[string]string {
	result := make(map[string]string, len(p.Variables))
	for _, variable := range p.Variables {
		result[variable.Name] = variable.Value
	}
	return result
}

type entry struct {
	preload        string
	defaultLibrary func(arch string) string
	extra          []Variable
}

var profiles = map[string]entry{
	"linux": {
		preload:        "LD_PRELOAD",
		defaultLibrary: linuxLibrary,
	},
	"darwin": {
		preload:        "DYLD_INSERT_LIBRARIES",
		defaultLibrary: darwinLibrary,
		extra:          []Variable{{Name: "DYLD_FORCE_FLAT_NAMESPACE", Value: "1"}},
	},
}

// multiarchTriplets maps GOARCH to the Debian multiarch directory the
// faketime package installs into.
var multiarchTriplets = map[string]string{
	"amd64":   "x86_64-linux-gnu",
	"arm64":   "aarch64-linux-gnu",
	"386":     "i386-linux-gnu",
	"arm":     "arm-linux-gnueabihf",
	"ppc64le": "powerpc64le-linux-gnu",
	"s390x":   "s390x-linux-gnu",
	"riscv64": "riscv64-linux-gnu",
}

func linuxLibrary(arch string) string {
	if triplet, ok := multiarchTriplets[arch]; ok {
		return "/usr/lib/" + triplet + "/faketime/libfaketime.so.1"
	}
	return "/usr/lib/faketime/libfaketime.so.1"
}

// darwinLibrary follows the Homebrew prefix, which differs between
// Apple silicon and Intel.
func darwinLibrary(arch string) string {
	if arch == "arm64" {
		return "/opt/homebrew/lib/faketime/libfaketime.1.dylib"
	}
	return "/usr/local/lib/faketime/libfaketime.1.dylib"
}

// DefaultLibrary returns the shim path a platform's package manager
// installs for arch.
func DefaultLibrary(tag, arch string) (string, error) {
	platformEntry, ok := profiles[tag]
	if !ok {
		return "", fmt.Errorf("%w %s", ErrUnsupportedPlatform, tag)
	}
	return platformEntry.defaultLibrary(arch), nil
}

// Lookup returns the activation profile for the platform tag. An empty
// library selects the platform's default shim install location for the
// running architecture.
func Lookup(tag, library string) (Profile, error) {
	platformEntry, ok := profiles[tag]
	if !ok {
		return Profile{}, fmt.Errorf("%w %s", ErrUnsupportedPlatform, tag)
	}
	if library == "" {
		library = platformEntry.defaultLibrary(runtime.GOARCH)
	}

	variables := make([]Variable, 0, 3+len(platformEntry.extra))
	variables = append(variables, Variable{Name: platformEntry.preload, Value: library})
	variables = append(variables, platformEntry.extra...)
	variables = append(variables,
		Variable{Name: DontFakeMonotonic, Value: "1"},
		Variable{Name: NoCache, Value: "1"},
	)

	return Profile{Platform: tag, Library: library, Variables: variables}, nil
}

// Current returns the profile for the running operating system.
func Current(library string) (Profile, error) {
	return Lookup(runtime.GOOS, library)
}

// Supported returns true if a profile exists for the tag.
func Supported(tag string) bool {
	_, ok := profiles[tag]
	return ok
}
