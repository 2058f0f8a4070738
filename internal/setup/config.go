package setup

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/parquery/releasery/internal/models"
	"github.com/parquery/releasery/internal/release"
)

// LoadEnvironment reads the build environment from the process environment.
// The required variable holds a path-list of build-output roots; its absence
// or emptiness is a fatal configuration error.
func LoadEnvironment() (models.Environment, error) {
	v := viper.New()
	if err := v.BindEnv("build_roots", release.EnvironmentVariable); err != nil {
		return models.Environment{}, err
	}

	raw := strings.TrimSpace(v.GetString("build_roots"))
	if raw == "" {
		return models.Environment{}, &release.ConfigurationError{
			Variable: release.EnvironmentVariable,
			Reason:   "expected it in the environment, but it is unset or empty",
		}
	}

	roots := splitPathList(raw)
	if len(roots) == 0 {
		return models.Environment{}, &release.ConfigurationError{
			Variable: release.EnvironmentVariable,
			Reason:   "expected at least one build-output root, got none",
		}
	}

	getLogger().Debug("resolved build environment", "roots", strings.Join(roots, ", "))
	return models.Environment{BuildRoots: roots}, nil
}

// splitPathList splits a platform path-list and drops empty entries.
func splitPathList(raw string) []string {
	var roots []string
	for _, entry := range filepath.SplitList(raw) {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			roots = append(roots, entry)
		}
	}
	return roots
}
