// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError covers bad arguments, unknown task ids, empty text and
	// calculator errors.
	UserError = 1

	// AuthError indicates a missing or invalid credential or config file.
	AuthError = 2

	// StorageError indicates the blob store could not be read or written.
	StorageError = 3
)
