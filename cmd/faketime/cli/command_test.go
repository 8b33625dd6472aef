// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "faketime",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "env",
				Run: func(args []string) error {
					called = "env"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"env"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "env" {
		t.Errorf("dispatched to %q, want %q", called, "env")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var library string
	var receivedArgs []string

	command := &Command{
		Name: "env",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("env", pflag.ContinueOnError)
			flagSet.StringVar(&library, "library", "", "shim library")
			return flagSet
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"--library", "/opt/libfaketime.so.1", "extra"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if library != "/opt/libfaketime.so.1" {
		t.Errorf("library = %q", library)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "extra" {
		t.Errorf("args = %v, want [extra]", receivedArgs)
	}
}

func TestCommand_Execute_DoubleDashPassesArguments(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name: "exec",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
			flagSet.String("at", "", "instant")
			flagSet.SetInterspersed(false)
			return flagSet
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"--at", "2000-01-01", "--", "date", "-u"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if strings.Join(receivedArgs, " ") != "date -u" {
		t.Errorf("args = %q, want [date -u]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "env",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("env", pflag.ContinueOnError)
			flagSet.String("library", "", "shim library")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--libary", "/x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --library?") {
		t.Errorf("error = %q, want suggestion for --library", err)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "faketime",
		Subcommands: []*Command{
			{Name: "version", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"verison"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "version"?`) {
		t.Errorf("error = %q, want suggestion for version", err)
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "faketime",
		Subcommands: []*Command{
			{Name: "version", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"completely-different"})
	if err == nil {
		t.Fatal("expected error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, want no suggestion", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	called := false
	command := &Command{
		Name:       "env",
		Summary:    "Print shell exports",
		HelpOutput: &help,
		Run: func(args []string) error {
			called = true
			return nil
		},
	}

	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called {
		t.Error("Run called for --help")
	}
	if !strings.Contains(help.String(), "Print shell exports") {
		t.Errorf("help = %q", help.String())
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "faketime",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "env", Summary: "Print shell exports", Run: func(args []string) error { return nil }},
		},
	}

	if err := root.Execute(nil); err == nil {
		t.Fatal("expected error when no subcommand given")
	}
	if !strings.Contains(help.String(), "env") {
		t.Errorf("help does not list subcommands: %q", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var subHelp bytes.Buffer
	root := &Command{
		Name:       "faketime",
		HelpOutput: &subHelp,
		Subcommands: []*Command{
			{
				Name:        "exec",
				Summary:     "Run a command at a fake instant",
				Description: "Run a command with libfaketime preloaded.",
				Usage:       "faketime exec --at SPEC -- COMMAND [ARGS...]",
				Examples: []Example{
					{Description: "Run date in 2000", Command: "faketime exec --at 2000-01-01 -- date"},
				},
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
					flagSet.String("at", "", "instant to fake")
					return flagSet
				},
				Run: func(args []string) error { return nil },
			},
		},
	}

	if err := root.Execute([]string{"exec", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	output := subHelp.String()
	for _, want := range []string{
		"Run a command with libfaketime preloaded.",
		"faketime exec --at SPEC -- COMMAND [ARGS...]",
		"--at string",
		"# Run date in 2000",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "faketime"}
	child := &Command{Name: "env", parent: root}
	if got := child.fullName(); got != "faketime env" {
		t.Errorf("fullName() = %q, want %q", got, "faketime env")
	}
}
