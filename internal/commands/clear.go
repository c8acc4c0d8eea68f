package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
)

// NothingToClear is printed when clear finds no completed tasks.
const NothingToClear = "No completed tasks to clear!"

func init() {
	Register(&ClearCmd{})
}

// ClearCmd implements the clear command.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return nil }
func (c *ClearCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string     { return "tasker clear [common flags]" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	n := len(tasks.Completed())
	if n == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, NothingToClear)
		}
		return exitcode.Success
	}

	if !cfg.Yes && !confirm(ctx, in, errOut, fmt.Sprintf("Delete %d completed %s?", n, plural(n, "task"))) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "cancelled")
		}
		return exitcode.Success
	}

	if _, err := tasks.ClearCompleted(ctx); err != nil {
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "cleared %d\n", n)
	}
	return exitcode.Success
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
