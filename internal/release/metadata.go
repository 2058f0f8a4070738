package release

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/parquery/releasery/internal/models"
)

// DefaultControlMetadata returns the static package metadata with the
// version left blank; packagers fill it from the resolved version.
func DefaultControlMetadata() models.ControlMetadata {
	return models.ControlMetadata{
		Package:      ToolName,
		Maintainer:   DefaultMaintainer,
		Architecture: DebianArchitecture,
		Description:  DefaultDescription,
	}
}

// LoadControlManifest reads maintainer and description overrides from a YAML
// manifest. An empty path yields the defaults.
func LoadControlManifest(path string) (models.ControlMetadata, error) {
	meta := DefaultControlMetadata()
	if path == "" {
		return meta, nil
	}

	// Internal DTO for YAML deserialization.
	type yamlManifest struct {
		Maintainer  string `yaml:"maintainer"`
		Description string `yaml:"description"`
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.ControlMetadata{}, &FilesystemError{Op: "read manifest", Path: path, Err: err}
	}

	var dto yamlManifest
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return models.ControlMetadata{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	if maintainer := strings.TrimSpace(dto.Maintainer); maintainer != "" {
		meta.Maintainer = maintainer
	}
	if description := strings.TrimSpace(dto.Description); description != "" {
		meta.Description = description
	}
	return meta, nil
}

// RenderControl renders the control metadata in the format required by
// dpkg-deb: the five fields in fixed order, newline-joined, terminated by a
// trailing blank line.
func RenderControl(meta models.ControlMetadata) string {
	return strings.Join([]string{
		"Package: " + meta.Package,
		"Version: " + meta.Version,
		"Maintainer: " + meta.Maintainer,
		"Architecture: " + meta.Architecture,
		"Description: " + meta.Description,
		"",
	}, "\n")
}
