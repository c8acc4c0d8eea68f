package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrorDisplay is shown after a failed evaluation.
const ErrorDisplay = "Error"

// Calculator is the keypad state machine: digits build the current entry,
// an operator stores it as the left operand, and equals evaluates.
// Pressing a second operator evaluates the pending one first, so input is
// evaluated strictly left to right.
type Calculator struct {
	current  string
	previous float64
	op       Op
	pending  bool // previous and op are set
	reset    bool // next digit starts a new entry
	err      error
}

// New returns a calculator showing 0.
func New() *Calculator {
	return &Calculator{current: "0"}
}

// Display returns the text the display shows.
func (c *Calculator) Display() string {
	if c.err != nil {
		return ErrorDisplay
	}
	return c.current
}

// Err returns the error from the last evaluation, if the display still
// shows it.
func (c *Calculator) Err() error {
	return c.err
}

// Digit enters a digit or the decimal point. Other runes are ignored.
func (c *Calculator) Digit(r rune) {
	if (r < '0' || r > '9') && r != '.' {
		return
	}
	c.err = nil
	if c.reset {
		c.current = ""
		c.reset = false
	}
	if r == '.' && strings.Contains(c.current, ".") {
		return
	}
	switch {
	case c.current == "0" && r != '.':
		c.current = string(r)
	case c.current == "" && r == '.':
		c.current = "0."
	default:
		c.current += string(r)
	}
}

// Operator stores the current entry as the left operand of op.
// A pending operation is evaluated first; its error is returned.
func (c *Calculator) Operator(op Op) error {
	if c.pending && !c.reset {
		if err := c.Equals(); err != nil {
			return err
		}
	}
	c.err = nil
	c.previous = c.value()
	c.op = op
	c.pending = true
	c.reset = true
	return nil
}

// Equals evaluates the pending operation. Without one it does nothing.
// On ErrDivisionByZero the pending state is discarded and the display
// shows ErrorDisplay until the next input.
func (c *Calculator) Equals() error {
	if !c.pending {
		return nil
	}
	result, err := Apply(c.previous, c.value(), c.op)
	c.pending = false
	c.op = 0
	c.previous = 0
	c.reset = true
	if err != nil {
		c.current = "0"
		c.err = err
		return err
	}
	c.current = FormatNumber(result)
	return nil
}

// Clear resets to the initial state.
func (c *Calculator) Clear() {
	*c = Calculator{current: "0"}
}

func (c *Calculator) value() float64 {
	v, err := strconv.ParseFloat(c.current, 64)
	if err != nil {
		return 0
	}
	return v
}

// Press feeds one keypad token: a number (entered digit by digit), an
// operator, "=" or "C".
func (c *Calculator) Press(key string) error {
	switch strings.ToUpper(key) {
	case "=":
		return c.Equals()
	case "C", "AC":
		c.Clear()
		return nil
	}
	if op, err := ParseOp(key); err == nil {
		return c.Operator(op)
	}
	for _, r := range key {
		if (r < '0' || r > '9') && r != '.' {
			return fmt.Errorf("unknown key: %s", key)
		}
	}
	for _, r := range key {
		c.Digit(r)
	}
	return nil
}
