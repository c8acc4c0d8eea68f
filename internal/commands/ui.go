package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
	"tasker/internal/ui"
)

func init() {
	Register(&UICmd{})
}

// UICmd runs the interactive task list.
type UICmd struct{}

func (c *UICmd) Name() string      { return "ui" }
func (c *UICmd) Aliases() []string { return []string{"tui"} }
func (c *UICmd) Synopsis() string  { return "Open the interactive task list" }
func (c *UICmd) Usage() string     { return "tasker ui [common flags]" }
func (c *UICmd) NeedsStore() bool  { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: ui requires a terminal")
		return exitcode.UserError
	}
	if err := ui.Run(ctx, tasks, in, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.StorageError
	}
	return exitcode.Success
}
