package release

import (
	"path/filepath"

	"github.com/parquery/releasery/internal/models"
)

// Ensure EnvironmentLocator satisfies the locator interface.
var _ BinaryLocator = (*EnvironmentLocator)(nil)

// EnvironmentLocator derives the executable path from the first build-output
// root. It performs no existence check; a missing binary surfaces when the
// version query runs.
type EnvironmentLocator struct {
	Environment models.Environment
}

// Locate joins the authoritative root with the fixed binary subpath and
// program name.
func (l *EnvironmentLocator) Locate() (string, error) {
	root := l.Environment.PrimaryRoot()
	if root == "" {
		return "", &ConfigurationError{
			Variable: EnvironmentVariable,
			Reason:   "expected at least one build-output root, got none",
		}
	}
	return filepath.Join(root, "bin", ToolName), nil
}
