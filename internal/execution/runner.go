package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command describes a single external tool invocation.
type Command struct {
	// Path is the executable to run, either absolute or resolved via PATH.
	Path string
	// Args are the arguments passed to the executable, without the program name.
	Args []string
	// Dir is the working directory; empty means the caller's working directory.
	Dir string
	// DiscardStdout drops the tool's standard output instead of capturing it.
	DiscardStdout bool
}

// String renders the command line for diagnostics.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result captures the observable outcome of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes external commands synchronously and returns their captured
// output. Implementations must return a non-nil error for commands that could
// not be started or that exited with a nonzero status; the Result is populated
// as far as it is known in either case.
type Runner interface {
	Run(ctx context.Context, command Command) (Result, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, command Command) (Result, error) {
	if strings.TrimSpace(command.Path) == "" {
		return Result{ExitCode: -1}, errors.New("command path is required")
	}

	cmd := exec.CommandContext(ctx, command.Path, command.Args...)
	cmd.Dir = command.Dir

	var stdout, stderr bytes.Buffer
	if command.DiscardStdout {
		cmd.Stdout = io.Discard
	} else {
		cmd.Stdout = &stdout
	}
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("command %q exited with status %d", command.String(), result.ExitCode)
	default:
		result.ExitCode = -1
		return result, fmt.Errorf("command %q could not be run: %w", command.String(), err)
	}
}
