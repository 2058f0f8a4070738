package release

import (
	"context"

	"github.com/parquery/releasery/internal/models"
)

// BuildInvoker triggers a full build of the source tree so that the
// executable lands in the build environment's output location.
type BuildInvoker interface {
	Build(ctx context.Context) error
}

// BinaryLocator resolves the filesystem path of the freshly built executable.
type BinaryLocator interface {
	Locate() (string, error)
}

// VersionResolver obtains the self-reported version of the built executable.
type VersionResolver interface {
	Resolve(ctx context.Context, binaryPath string) (string, error)
}

// PackageInput carries the immutable values every packager needs.
type PackageInput struct {
	BinaryPath string
	Version    string
	ReleaseDir string
}

// Packager assembles one distributable artifact and delivers it into the
// release directory.
type Packager interface {
	Kind() models.ArtifactKind
	Package(ctx context.Context, input PackageInput) (models.Artifact, error)
}
