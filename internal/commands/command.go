// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tasker/internal/config"
	"tasker/internal/task"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command operates on the task store.
	// Commands like help, version, calc, login, logout return false.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, backend, flags).
	// tasks is nil if NeedsStore() returns false.
	// args contains positional arguments after flag parsing.
	// in is read for confirmation prompts.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int
}
