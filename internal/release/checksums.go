package release

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquery/releasery/internal/models"
)

// WriteChecksums writes a SHA256SUMS manifest into the release directory
// listing one "<hex>  <name>" line per delivered artifact. Re-running the
// release overwrites the manifest.
func WriteChecksums(releaseDir string, artifacts []models.Artifact) (string, error) {
	var builder strings.Builder
	for _, artifact := range artifacts {
		digest, err := FileSHA256(artifact.Path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&builder, "%s  %s\n", digest, artifact.Name)
	}

	path := filepath.Join(releaseDir, ChecksumFileName)
	if err := os.WriteFile(path, []byte(builder.String()), 0o644); err != nil {
		return "", &FilesystemError{Op: "write checksums", Path: path, Err: err}
	}
	return path, nil
}

// FileSHA256 returns the hex-encoded SHA-256 digest of the file contents.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &FilesystemError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", &FilesystemError{Op: "hash", Path: path, Err: err}
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
