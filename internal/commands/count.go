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
	Register(&CountCmd{})
}

// CountCmd implements the count command.
type CountCmd struct{}

func (c *CountCmd) Name() string      { return "count" }
func (c *CountCmd) Aliases() []string { return nil }
func (c *CountCmd) Synopsis() string  { return "Print the remaining-task counter" }
func (c *CountCmd) Usage() string     { return "tasker count [common flags]" }
func (c *CountCmd) NeedsStore() bool  { return true }

func (c *CountCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CountCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprintln(out, output.Counter(tasks.Counts()))
	return exitcode.Success
}
