// Package calc implements a four-function keypad calculator.
package calc

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDivisionByZero is returned when the divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// Op is an arithmetic operator.
type Op int

const (
	Add Op = iota + 1
	Subtract
	Multiply
	Divide
)

// String returns the keypad glyph for op.
func (op Op) String() string {
	switch op {
	case Add:
		return "+"
	case Subtract:
		return "−"
	case Multiply:
		return "×"
	case Divide:
		return "÷"
	default:
		return "?"
	}
}

// ParseOp accepts ASCII operators and the keypad glyphs.
func ParseOp(s string) (Op, error) {
	switch s {
	case "+":
		return Add, nil
	case "-", "−":
		return Subtract, nil
	case "*", "x", "×":
		return Multiply, nil
	case "/", "÷":
		return Divide, nil
	default:
		return 0, fmt.Errorf("unknown operator: %s", s)
	}
}

// Apply evaluates a op b.
func Apply(a, b float64, op Op) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("unknown operator: %d", op)
	}
}

// FormatNumber renders v the way the display shows it: shortest exact
// decimal, no exponent for ordinary magnitudes.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
