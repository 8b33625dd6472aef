// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package faketime

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Wrap returns fn bracketed by Start and Stop. Stop runs on every exit
// path, including a panic, which keeps propagating. The wrapped
// function returns fn's error; a Stop failure is returned only when fn
// succeeded.
func (o *Override) Wrap(fn func() error) func() error {
	return func() (err error) {
		if err := o.Start(); err != nil {
			return err
		}
		defer func() {
			if stopErr := o.Stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}()
		return fn()
	}
}

// WrapValue is Wrap for functions that also return a value.
func WrapValue[T any](o *Override, fn func() (T, error)) func() (T, error) {
	return func() (T, error) {
		var value T
		err := o.Wrap(func() error {
			var err error
			value, err = fn()
			return err
		})()
		return value, err
	}
}

// Run calls fn inside a frame.
func (o *Override) Run(fn func()) error {
	return o.Wrap(func() error {
		fn()
		return nil
	})()
}

// Target is a named entry point of a test suite.
type Target struct {
	Name string
	Func func() error
}

// WrapAll wraps every exported target with Wrap. Targets are listed
// most-derived first; a later target with an already-seen name is
// dropped, as are targets whose name is unexported or starts with an
// underscore, and targets with a nil Func. The order of the remaining
// targets is kept.
func (o *Override) WrapAll(targets []Target) []Target {
	seen := make(map[string]bool, len(targets))
	wrapped := make([]Target, 0, len(targets))
	for _, target := range targets {
		if seen[target.Name] {
			continue
		}
		seen[target.Name] = true
		if target.Func == nil || !exported(target.Name) {
			continue
		}
		wrapped = append(wrapped, Target{Name: target.Name, Func: o.Wrap(target.Func)})
	}
	return wrapped
}

func exported(name string) bool {
	if name == "" || strings.HasPrefix(name, "_") {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(first)
}

// WrapSuite brackets a whole-suite fixture instead of its individual
// bodies: the returned setup starts a frame before calling setup, and
// the returned teardown stops it after calling teardown. Either
// function may be nil. A failing setup stops the frame before
// returning, since a suite whose setup failed is not torn down.
func (o *Override) WrapSuite(setup, teardown func() error) (wrappedSetup, wrappedTeardown func() error) {
	wrappedSetup = func() error {
		if err := o.Start(); err != nil {
			return err
		}
		if setup == nil {
			return nil
		}
		if err := setup(); err != nil {
			return errors.Join(err, o.Stop())
		}
		return nil
	}
	wrappedTeardown = func() (err error) {
		defer func() {
			if stopErr := o.Stop(); stopErr != nil {
				err = errors.Join(err, stopErr)
			}
		}()
		if teardown == nil {
			return nil
		}
		if err := teardown(); err != nil {
			return fmt.Errorf("suite teardown: %w", err)
		}
		return nil
	}
	return wrappedSetup, wrappedTeardown
}
