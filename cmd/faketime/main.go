// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/bureau-foundation/faketime/cmd/faketime/commands"
	"github.com/bureau-foundation/faketime/lib/process"
)

func main() {
	process.Exit(run())
}

func run() error {
	return commands.Root(os.Stdout).Execute(os.Args[1:])
}
