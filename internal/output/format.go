// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"tasker/internal/task"
)

const (
	// DoneMark and OpenMark prefix completed and open tasks.
	DoneMark = "[x]"
	OpenMark = "[ ]"
)

// FormatTask formats one task line.
// Format: "{ID:>4}  {MARK} {TEXT}\n" (4-wide right-aligned id, two spaces,
// completion mark, text)
func FormatTask(w io.Writer, t task.Task) {
	mark := OpenMark
	if t.Completed {
		mark = DoneMark
	}
	fmt.Fprintf(w, "%4d  %s %s\n", t.ID, mark, normalizeText(t.Text))
}

// FormatTasks formats every task in order.
func FormatTasks(w io.Writer, tasks []task.Task) {
	for _, t := range tasks {
		FormatTask(w, t)
	}
}

// Counter returns the summary line shown under the list.
func Counter(c task.Counts) string {
	switch {
	case c.Total == 0:
		return "0 tasks"
	case c.Remaining == 0:
		return "All tasks completed!"
	default:
		return fmt.Sprintf("%d of %d tasks remaining", c.Remaining, c.Total)
	}
}

// normalizeText normalizes a task text for display.
// - Empty or whitespace-only text becomes "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
