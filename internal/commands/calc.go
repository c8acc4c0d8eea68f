package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"

	"tasker/internal/calc"
	"tasker/internal/config"
	"tasker/internal/exitcode"
	"tasker/internal/task"
)

func init() {
	Register(&CalcCmd{})
}

// CalcCmd feeds its arguments to the keypad calculator and prints the
// display. An implicit "=" is pressed at the end.
type CalcCmd struct{}

func (c *CalcCmd) Name() string      { return "calc" }
func (c *CalcCmd) Aliases() []string { return nil }
func (c *CalcCmd) Synopsis() string  { return "Evaluate keypad input left to right" }
func (c *CalcCmd) Usage() string     { return "tasker calc <keys...>  (e.g. tasker calc 1 + 2 x 3)" }
func (c *CalcCmd) NeedsStore() bool  { return false }

func (c *CalcCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CalcCmd) Run(ctx context.Context, cfg *config.Config, tasks task.Manager, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: keys required")
		return exitcode.UserError
	}

	k := calc.New()
	for _, key := range append(slices.Clone(args), "=") {
		if err := k.Press(key); err != nil {
			if errors.Is(err, calc.ErrDivisionByZero) {
				fmt.Fprintln(out, k.Display())
			}
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}

	fmt.Fprintln(out, k.Display())
	return exitcode.Success
}
