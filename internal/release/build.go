package release

import (
	"context"
	"log/slog"

	"github.com/parquery/releasery/internal/execution"
)

// Ensure GoInstallInvoker satisfies the build invoker interface.
var _ BuildInvoker = (*GoInstallInvoker)(nil)

// GoInstallInvoker builds the source tree with `go install ./...` so that
// the executable is installed into the first build-output root.
type GoInstallInvoker struct {
	Runner    execution.Runner
	SourceDir string
	Logger    *slog.Logger
}

func (b *GoInstallInvoker) logger() *slog.Logger {
	if b != nil && b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

// Build runs the build toolchain against the source tree root. Any nonzero
// exit aborts the release.
func (b *GoInstallInvoker) Build(ctx context.Context) error {
	command := execution.Command{
		Path: "go",
		Args: []string{"install", "./..."},
		Dir:  b.SourceDir,
	}

	b.logger().Info("building source tree", "source_dir", b.SourceDir)

	result, err := b.Runner.Run(ctx, command)
	if err != nil {
		return &ExecutionError{Command: command.String(), Stderr: result.Stderr, Err: err}
	}

	b.logger().Info("build completed")
	return nil
}
