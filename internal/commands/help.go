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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasker help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasker                                    List all tasks
  tasker list [common flags] [--completed]  List tasks and the remaining counter
  tasker add [common flags] <text...>
  tasker create [common flags] <text...>
  tasker edit [common flags] <id> <text...>
  tasker done [common flags] <id>           Toggle completed (alias: toggle)
  tasker rm [common flags] <id>
  tasker clear [common flags]               Delete all completed tasks
  tasker count [common flags]
  tasker export [common flags] [--format json|csv|pdf] [--output <file>]
  tasker ui [common flags]
  tasker calc <keys...>
  tasker login [common flags]
  tasker logout [common flags]
  tasker help
  tasker version

Common flags:
  --config <dir>     Override config directory
  --backend <name>   Blob store: memory, file, redis, postgres, mysql, drive
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
  --yes              Skip confirmation prompts
`
