package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/export"
	"tasker/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

// SetFormat sets the export format and output path (for testing).
func (c *ExportCmd) SetFormat(format, output string) {
	c.format = format
	c.output = output
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write all tasks as json, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "tasker export [common flags] [--format json|csv|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "json", "")
	fs.StringVar(&c.format, "f", "json", "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format := strings.ToLower(c.format)
	if format == "" {
		format = "json"
	}
	if !slices.Contains(export.Formats, format) {
		fmt.Fprintf(errOut, "error: unknown format: %s\n", c.format)
		return exitcode.UserError
	}
	if export.Binary(format) && c.output == "" {
		fmt.Fprintln(errOut, "error: --output required for pdf")
		return exitcode.UserError
	}

	data, err := export.Export(tasks.All(), tasks.Counts(), format)
	if err != nil {
		fmt.Fprintf(errOut, "error: export failed: %v\n", err)
		return exitcode.UserError
	}

	if c.output == "" {
		out.Write(data)
		return exitcode.Success
	}
	if err := os.WriteFile(c.output, data, 0644); err != nil {
		fmt.Fprintf(errOut, "error: failed to write %s: %v\n", c.output, err)
		return exitcode.UserError
	}
	if !cfg.Quiet {
		fmt.Fprintf(out, "wrote %s\n", c.output)
	}
	return exitcode.Success
}
