// Package task implements the task store: an ordered list of to-do records
// mirrored into a blob store after every mutation.
package task

import (
	"context"
	"errors"
)

var (
	// ErrEmptyText is returned by Create when the text is blank after trimming.
	ErrEmptyText = errors.New("task text is empty")

	// ErrIDSpaceExhausted is returned by Create once every id has been issued.
	ErrIDSpaceExhausted = errors.New("no task ids left")
)

// Task is a single to-do record.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Counts summarizes the collection for counter displays.
type Counts struct {
	Total     int
	Completed int
	Remaining int
}

// Manager is the set of operations the presentation layer drives.
// Lookup misses are reported as false, never as errors; the error return
// carries blob store failures only.
type Manager interface {
	// Create appends a task with the trimmed text.
	// Returns ErrEmptyText if nothing remains after trimming and
	// ErrIDSpaceExhausted once the id counter has run out.
	Create(ctx context.Context, text string) (Task, error)

	// Rename replaces a task's text with the trimmed value.
	// Blank text is rejected: returns false and leaves the task unchanged.
	Rename(ctx context.Context, id int64, text string) (bool, error)

	// Delete removes a task.
	Delete(ctx context.Context, id int64) (bool, error)

	// ToggleCompleted flips a task's completed flag.
	ToggleCompleted(ctx context.Context, id int64) (bool, error)

	// ClearCompleted removes every completed task.
	// Reports whether anything was removed.
	ClearCompleted(ctx context.Context) (bool, error)

	// Get looks up a single task.
	Get(id int64) (Task, bool)

	// All returns every task in insertion order.
	All() []Task

	// Completed returns the completed tasks in insertion order.
	Completed() []Task

	// Counts returns total, completed and remaining counts.
	Counts() Counts
}
