package release

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquery/releasery/internal/execution"
	"github.com/parquery/releasery/internal/models"
)

// Ensure DebPackager satisfies the packager interface.
var _ Packager = (*DebPackager)(nil)

// DebPackager stages a Debian control-file tree and invokes dpkg-deb against
// it. Informational output of the packaging utility is suppressed; its error
// output and exit status are surfaced.
type DebPackager struct {
	Runner execution.Runner
	// Metadata is the static control metadata; the version field is filled
	// from the resolved version at packaging time.
	Metadata models.ControlMetadata
	// TempDir overrides the base directory for the private workspace;
	// empty means the system default.
	TempDir string
	Logger  *slog.Logger
}

func (p *DebPackager) logger() *slog.Logger {
	if p != nil && p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Kind reports the artifact kind produced by this packager.
func (p *DebPackager) Kind() models.ArtifactKind {
	return models.DebArtifact
}

// Package stages <tool>_<version>_amd64/usr/bin/<tool> plus DEBIAN/control,
// builds the package and delivers the .deb into the release directory,
// replacing any previous artifact of the same name.
func (p *DebPackager) Package(ctx context.Context, input PackageInput) (models.Artifact, error) {
	workspace, err := NewWorkspace(p.TempDir, ToolName+"-deb")
	if err != nil {
		return models.Artifact{}, err
	}
	defer workspace.Close()

	rootName := DebRootName(input.Version)
	packageDir := filepath.Join(workspace.Root(), rootName)

	binDir := filepath.Join(packageDir, "usr", "bin")
	if err := ensureDir(binDir); err != nil {
		return models.Artifact{}, err
	}
	if err := copyFile(input.BinaryPath, filepath.Join(binDir, ToolName), 0o755); err != nil {
		return models.Artifact{}, err
	}

	controlDir := filepath.Join(packageDir, "DEBIAN")
	if err := ensureDir(controlDir); err != nil {
		return models.Artifact{}, err
	}

	meta := p.Metadata
	meta.Version = input.Version
	controlPath := filepath.Join(controlDir, "control")
	if err := os.WriteFile(controlPath, []byte(RenderControl(meta)), 0o644); err != nil {
		return models.Artifact{}, &FilesystemError{Op: "write control file", Path: controlPath, Err: err}
	}

	command := execution.Command{
		Path:          "dpkg-deb",
		Args:          []string{"--build", packageDir},
		Dir:           workspace.Root(),
		DiscardStdout: true,
	}

	p.logger().Info("building debian package", "package", rootName)

	result, err := p.Runner.Run(ctx, command)
	if err != nil {
		return models.Artifact{}, &ExecutionError{Command: command.String(), Stderr: result.Stderr, Err: err}
	}

	debName := DebName(input.Version)
	destination := filepath.Join(input.ReleaseDir, debName)
	if err := moveFile(filepath.Join(workspace.Root(), debName), destination); err != nil {
		return models.Artifact{}, err
	}

	p.logger().Info("delivered debian package", "path", destination)
	return models.Artifact{
		Kind: models.DebArtifact,
		Name: debName,
		Path: destination,
	}, nil
}
