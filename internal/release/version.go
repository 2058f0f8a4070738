package release

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/parquery/releasery/internal/execution"
)

// Ensure BinaryVersionResolver satisfies the resolver interface.
var _ VersionResolver = (*BinaryVersionResolver)(nil)

// BinaryVersionResolver asks the built executable for its version by running
// it with --version and capturing standard output.
type BinaryVersionResolver struct {
	Runner execution.Runner
	Logger *slog.Logger
}

func (r *BinaryVersionResolver) logger() *slog.Logger {
	if r != nil && r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// Resolve returns the whitespace-trimmed version token emitted by the
// executable. The token must be non-empty and safe to embed in file names
// and package metadata.
func (r *BinaryVersionResolver) Resolve(ctx context.Context, binaryPath string) (string, error) {
	command := execution.Command{
		Path: binaryPath,
		Args: []string{"--version"},
	}

	result, err := r.Runner.Run(ctx, command)
	if err != nil {
		return "", &ExecutionError{Command: command.String(), Stderr: result.Stderr, Err: err}
	}

	version := strings.TrimSpace(result.Stdout)
	if err := validateVersion(version); err != nil {
		return "", &ExecutionError{Command: command.String(), Err: err}
	}

	r.logger().Info("resolved version", "version", version)
	return version, nil
}

func validateVersion(version string) error {
	if version == "" {
		return fmt.Errorf("version output is empty")
	}
	if strings.ContainsAny(version, " \t\n\r/\\") {
		return fmt.Errorf("version %q contains characters unsafe for file names", version)
	}
	return nil
}
