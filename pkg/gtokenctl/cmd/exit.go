package cmd

import (
	"errors"
	"fmt"
	"io"
)

// ExitError carries the process exit status for an error.
type ExitError struct {
	Code int
	Err  error
	// Reported is set when the user has already been told what went wrong.
	Reported bool
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode reports err on w, unless already reported, and returns the status
// the process should exit with.
func ExitCode(err error, w io.Writer) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Reported {
			_, _ = fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return 1
}
