package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/output"
	"tasker/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasker` (no args) and `tasker list`.
type ListCmd struct {
	completed bool
}

// SetCompleted restricts output to completed tasks (for testing).
func (c *ListCmd) SetCompleted(completed bool) {
	c.completed = completed
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "tasker list [common flags] [--completed]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.completed, "completed", false, "")
	fs.BoolVar(&c.completed, "c", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var shown []task.Task
	if c.completed {
		shown = tasks.Completed()
	} else {
		shown = tasks.All()
	}
	output.FormatTasks(out, shown)

	if !cfg.Quiet {
		if len(shown) > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, output.Counter(tasks.Counts()))
	}
	return exitcode.Success
}
