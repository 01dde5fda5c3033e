package cli

import "fmt"

// ExitCoder is an error carrying an explicit process exit code. Run inspects
// errors returned by a Command for this interface; anything else exits 1.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError indicates the invocation itself was wrong (an unknown flag, a
// malformed value). It exits 2, distinct from runtime failures, and Run
// follows it with the command's usage text.
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError wraps an error with a chosen exit code. Commands use it when the
// run partially succeeded (ex: some inputs handled, one unreadable) and the
// code should reflect that without the usage-error treatment.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }
