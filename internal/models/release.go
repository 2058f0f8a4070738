package models

// Environment describes where the build toolchain installs executables.
// The first root is authoritative; the remaining entries are kept only for
// diagnostics.
type Environment struct {
	BuildRoots []string
}

// PrimaryRoot returns the authoritative build-output root, or the empty
// string if no roots are configured.
func (e Environment) PrimaryRoot() string {
	if len(e.BuildRoots) == 0 {
		return ""
	}
	return e.BuildRoots[0]
}

// ArtifactKind distinguishes the distributable formats produced by a release.
type ArtifactKind string

// Supported artifact kinds.
const (
	TarballArtifact ArtifactKind = "tarball"
	DebArtifact     ArtifactKind = "deb"
)

// Artifact is a distributable file delivered into the release directory.
type Artifact struct {
	Kind ArtifactKind
	Name string
	Path string
}

// ControlMetadata holds the fields rendered into the Debian control file.
// Version is resolved at release time; the other fields are static
// configuration.
type ControlMetadata struct {
	Package      string
	Version      string
	Maintainer   string
	Architecture string
	Description  string
}
