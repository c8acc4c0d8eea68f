package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"tasker/internal/exitcode"
	"tasker/internal/task"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = errors.New("task id required")

// ParseTaskID parses the task id from the first argument and returns the
// remaining arguments.
//
// Parsing rules:
// 1. No args → ErrTaskIDRequired
// 2. First arg is all digits and at least 1 → task id
// 3. Otherwise → error: invalid task id: <arg>
func ParseTaskID(args []string) (int64, []string, error) {
	if len(args) == 0 {
		return 0, nil, ErrTaskIDRequired
	}

	first := args[0]
	if !isAllDigits(first) {
		return 0, nil, fmt.Errorf("invalid task id: %s", first)
	}
	id, err := strconv.ParseInt(first, 10, 64)
	if err != nil || id < 1 {
		return 0, nil, fmt.Errorf("invalid task id: %s", first)
	}
	return id, args[1:], nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// parseTaskIDOrReport parses the id and reports usage errors on errOut.
// ok is false when the command should exit with exitcode.UserError.
func parseTaskIDOrReport(args []string, errOut io.Writer) (int64, []string, bool) {
	id, rest, err := ParseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, nil, false
	}
	return id, rest, true
}

// lookupTask resolves id against the store, reporting a miss on errOut.
func lookupTask(tasks task.Manager, id int64, errOut io.Writer) (task.Task, bool) {
	t, ok := tasks.Get(id)
	if !ok {
		fmt.Fprintf(errOut, "error: task not found: %d\n", id)
	}
	return t, ok
}

// storageError reports a blob store failure and returns its exit code.
func storageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.StorageError
}

// confirm writes prompt to errOut and reads one answer line from in.
// Only "y" or "yes" (any case) confirm; EOF declines.
func confirm(ctx context.Context, in io.Reader, errOut io.Writer, prompt string) bool {
	if ctx.Err() != nil || in == nil {
		return false
	}
	fmt.Fprintf(errOut, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(errOut)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
