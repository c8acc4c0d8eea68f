package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "tasker add [common flags] <text...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		fmt.Fprintln(errOut, "error: text required")
		return exitcode.UserError
	}

	t, err := tasks.Create(ctx, text)
	if err != nil {
		if errors.Is(err, task.ErrEmptyText) {
			fmt.Fprintln(errOut, "error: text required")
			return exitcode.UserError
		}
		if errors.Is(err, task.ErrIDSpaceExhausted) {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		return storageError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "added %d\n", t.ID)
	}
	return exitcode.Success
}
