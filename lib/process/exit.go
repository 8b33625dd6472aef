// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

// Fatal writes "error: err" to stderr and exits with code 1.
func Fatal(err error) {
	fatal(os.Stderr, err)
}

func fatal(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
	exitFunc(1)
}

// coder is implemented by errors that already reported themselves and
// only need the process to exit with a specific code.
type coder interface {
	ExitCode() int
}

// ExitCode returns the exit code for a run() result: 0 for nil, the
// carried code for an error with an ExitCode method anywhere in its
// chain, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var withCode coder
	if errors.As(err, &withCode) {
		return withCode.ExitCode()
	}
	return 1
}

// Exit terminates the process for a run() result. Nil returns without
// exiting. Errors carrying an exit code exit with it without printing;
// anything else goes through Fatal.
func Exit(err error) {
	exit(os.Stderr, err)
}

func exit(w io.Writer, err error) {
	if err == nil {
		return
	}
	var withCode coder
	if errors.As(err, &withCode) {
		exitFunc(withCode.ExitCode())
		return
	}
	fatal(w, err)
}
