package release

import "fmt"

// A ConfigurationError reports a missing or empty required configuration
// value, such as the build-output environment variable.
type ConfigurationError struct {
	Variable string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration variable %s: %s", e.Variable, e.Reason)
}

// An ExecutionError reports an external tool that could not be run or exited
// with a nonzero status.
type ExecutionError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *ExecutionError) Error() string {
	msg := fmt.Sprintf("execution of %q failed", e.Command)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stderr != "" {
		msg += " (stderr: " + e.Stderr + ")"
	}
	return msg
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// A FilesystemError reports a failed filesystem operation along the
// packaging path.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}
