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

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. Running it on a completed task
// reopens it.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completed flag" }
func (c *DoneCmd) Usage() string     { return "tasker done [common flags] <id>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	id, rest, ok := parseTaskIDOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	toggled, err := tasks.ToggleCompleted(ctx, id)
	if err != nil {
		return storageError(errOut, err)
	}
	if !toggled {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		t, _ := tasks.Get(id)
		if t.Completed {
			fmt.Fprintln(out, "completed")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}
