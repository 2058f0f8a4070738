package release

import "fmt"

// Fixed identity of the packaged program. The pipeline releases a single
// tool for a single target platform.
const (
	// ToolName is the program name of the packaged executable.
	ToolName = "revproxyry"
	// PlatformTag tags the binary tarball with its target platform.
	PlatformTag = "linux-x64"
	// DebianArchitecture is the architecture recorded in the Debian package.
	DebianArchitecture = "amd64"
	// ChecksumFileName is the checksum manifest written beside the artifacts.
	ChecksumFileName = "SHA256SUMS"
	// EnvironmentVariable names the required variable holding the
	// build-output roots.
	EnvironmentVariable = "GOPATH"
)

// Defaults for the Debian control metadata, matching the historical release
// process.
const (
	DefaultMaintainer  = "Marko Ristin (marko@parquery.com)"
	DefaultDescription = "revproxyry is a reverse proxy with integrated Let's encrypt client that " +
		"automatically renews SSL certificates."
)

// TarballRootName is the top-level directory inside the binary tarball.
func TarballRootName(version string) string {
	return fmt.Sprintf("%s-%s-%s", ToolName, version, PlatformTag)
}

// TarballName is the file name of the binary tarball artifact.
func TarballName(version string) string {
	return TarballRootName(version) + ".tar.gz"
}

// DebRootName is the staged directory tree handed to dpkg-deb.
func DebRootName(version string) string {
	return fmt.Sprintf("%s_%s_%s", ToolName, version, DebianArchitecture)
}

// DebName is the file name of the Debian package artifact.
func DebName(version string) string {
	return DebRootName(version) + ".deb"
}
