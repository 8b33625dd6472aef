// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package protocol

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/bureau-foundation/faketime/lib/environ"
)

// savedVariable is the prior state of one variable.
type savedVariable struct {
	name    string
	value   string
	present bool
}

// savedFile is the prior state of a timestamp file.
type savedFile struct {
	path    string
	content []byte
	present bool
}

// RestoreSet is the captured prior state of the variables a frame is
// about to overwrite, and of its timestamp file in file-backed mode.
type RestoreSet struct {
	saved []savedVariable
	file  *savedFile
}

// Capture records the current value or absence of each name.
func Capture(env environ.Environment, names ...string) RestoreSet {
	saved := make([]savedVariable, 0, len(names))
	for _, name := range names {
		value, present := env.Lookup(name)
		saved = append(saved, savedVariable{name: name, value: value, present: present})
	}
	return RestoreSet{saved: saved}
}

// CaptureFile returns r extended with the current content or absence
// of the timestamp file at path. A file that cannot be read for any
// reason other than absence is an error.
func (r RestoreSet) CaptureFile(path string) (RestoreSet, error) {
	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		r.file = &savedFile{path: path, content: content, present: true}
	case errors.Is(err, fs.ErrNotExist):
		r.file = &savedFile{path: path}
	default:
		return r, fmt.Errorf("capturing timestamp file: %w", err)
	}
	return r, nil
}

// Lookup returns the captured value of name, whether it was present,
// and whether name was captured at all.
func (r RestoreSet) Lookup(name string) (value string, present, captured bool) {
	for _, entry := range r.saved {
		if entry.name == name {
			return entry.value, entry.present, true
		}
	}
	return "", false, false
}

// Len returns the number of captured variables.
func (r RestoreSet) Len() int { return len(r.saved) }

// Apply restores the timestamp file, then every captured variable in
// reverse capture order. Everything is attempted; failures are joined.
func (r RestoreSet) Apply(env environ.Environment) error {
	var errs []error
	if err := r.file.restore(); err != nil {
		errs = append(errs, err)
	}
	for index := len(r.saved) - 1; index >= 0; index-- {
		entry := r.saved[index]
		var err error
		if entry.present {
			err = env.Set(entry.name, entry.value)
		} else {
			err = env.Unset(entry.name)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", entry.name, err))
		}
	}
	return errors.Join(errs...)
}

func (f *savedFile) restore() error {
	if f == nil {
		return nil
	}
	if f.present {
		if err := writeFileAtomic(f.path, f.content); err != nil {
			return fmt.Errorf("restoring timestamp file: %w", err)
		}
		return nil
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing timestamp file: %w", err)
	}
	return nil
}
