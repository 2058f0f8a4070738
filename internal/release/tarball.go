package release

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/parquery/releasery/internal/execution"
	"github.com/parquery/releasery/internal/models"
)

// Ensure TarballPackager satisfies the packager interface.
var _ Packager = (*TarballPackager)(nil)

// TarballPackager assembles the versioned binary tarball. The archive is
// created with the workspace as working directory so that its internal paths
// are rooted at the package directory and never leak the workspace location.
type TarballPackager struct {
	Runner execution.Runner
	// TempDir overrides the base directory for the private workspace;
	// empty means the system default.
	TempDir string
	Logger  *slog.Logger
}

func (p *TarballPackager) logger() *slog.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Kind reports the artifact kind produced by this packager.
func (p *TarballPackager) Kind() models.ArtifactKind {
	return models.TarballArtifact
}

// Package stages <tool>-<version>-linux-x64/bin/<tool>, archives it and
// delivers the tarball into the release directory, replacing any previous
// artifact of the same name.
func (p *TarballPackager) Package(ctx context.Context, input PackageInput) (models.Artifact, error) {
	workspace, err := NewWorkspace(p.TempDir, ToolName+"-tarball")
	if err != nil {
		return models.Artifact{}, err
	}
	defer workspace.Close()

	rootName := TarballRootName(input.Version)
	binDir := filepath.Join(workspace.Root(), rootName, "bin")
	if err := ensureDir(binDir); err != nil {
		return models.Artifact{}, err
	}
	if err := copyFile(input.BinaryPath, filepath.Join(binDir, ToolName), 0o755); err != nil {
		return models.Artifact{}, err
	}

	archiveName := TarballName(input.Version)
	command := execution.Command{
		Path: "tar",
		Args: []string{"-czf", archiveName, rootName},
		Dir:  workspace.Root(),
	}

	p.logger().Info("archiving binary package", "archive", archiveName)

	result, err := p.Runner.Run(ctx, command)
	if err != nil {
		return models.Artifact{}, &ExecutionError{Command: command.String(), Stderr: result.Stderr, Err: err}
	}

	destination := filepath.Join(input.ReleaseDir, archiveName)
	if err := moveFile(filepath.Join(workspace.Root(), archiveName), destination); err != nil {
		return models.Artifact{}, err
	}

	p.logger().Info("delivered tarball", "path", destination)
	return models.Artifact{
		Kind: models.TarballArtifact,
		Name: archiveName,
		Path: destination,
	}, nil
}
