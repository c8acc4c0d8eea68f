package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"rename"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's text" }
func (c *EditCmd) Usage() string     { return "tasker edit [common flags] <id> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	id, rest, ok := parseTaskIDOrReport(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if _, ok := lookupTask(tasks, id, errOut); !ok {
		return exitcode.UserError
	}

	text := strings.Join(rest, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	renamed, err := tasks.Rename(ctx, id, text)
	if err != nil {
		return storageError(errOut, err)
	}
	if !renamed {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
		return exitcode.UserError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
