// Package inspect verifies released artifacts: it reads the Debian package
// and the binary tarball back and checks their metadata and layout against
// the resolved version, without invoking any external tool.
package inspect

import (
	"archive/tar"
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/blakesmith/ar"

	"github.com/parquery/releasery/internal/release"
)

// DebSummary captures the control fields extracted from a .deb file.
type DebSummary struct {
	Package      string
	Version      string
	Architecture string
	Control      string
}

// Report lists the artifacts that passed verification.
type Report struct {
	Version     string
	DebPath     string
	TarballPath string
	Checksummed []string
}

// VerifyRelease checks the artifacts for the given version inside the
// release directory: the Debian package's control fields, the tarball's
// internal layout, and the checksum manifest.
func VerifyRelease(releaseDir, version string) (Report, error) {
	report := Report{Version: version}

	debPath := filepath.Join(releaseDir, release.DebName(version))
	summary, err := ReadDebControl(debPath)
	if err != nil {
		return report, err
	}
	if summary.Package != release.ToolName {
		return report, fmt.Errorf("%s: control names package %q, expected %q", debPath, summary.Package, release.ToolName)
	}
	if summary.Version != version {
		return report, fmt.Errorf("%s: control names version %q, expected %q", debPath, summary.Version, version)
	}
	if summary.Architecture != release.DebianArchitecture {
		return report, fmt.Errorf("%s: control names architecture %q, expected %q", debPath, summary.Architecture, release.DebianArchitecture)
	}
	report.DebPath = debPath

	tarballPath := filepath.Join(releaseDir, release.TarballName(version))
	if err := VerifyTarball(tarballPath, version); err != nil {
		return report, err
	}
	report.TarballPath = tarballPath

	checked, err := VerifyChecksums(releaseDir)
	if err != nil {
		return report, err
	}
	report.Checksummed = checked

	return report, nil
}

// ReadDebControl extracts the control file from a .deb archive and parses
// its Package, Version and Architecture fields. A .deb is an ar archive
// whose control.tar(.gz) member holds the control file.
func ReadDebControl(path string) (DebSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return DebSummary{}, fmt.Errorf("open debian package: %w", err)
	}
	defer f.Close()

	reader := ar.NewReader(f)
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return DebSummary{}, fmt.Errorf("read ar member of %s: %w", path, err)
		}

		name := strings.TrimSuffix(strings.TrimSpace(header.Name), "/")
		if !strings.HasPrefix(name, "control.tar") {
			continue
		}

		control, err := controlFromTar(reader, strings.HasSuffix(name, ".gz"))
		if err != nil {
			return DebSummary{}, fmt.Errorf("extract control from %s: %w", path, err)
		}
		return parseControl(control), nil
	}
	return DebSummary{}, fmt.Errorf("%s: no control archive found", path)
}

func controlFromTar(r io.Reader, gzipped bool) (string, error) {
	if gzipped {
		gzr, err := gzip.NewReader(r)
		if err != nil {
			return "", err
		}
		defer gzr.Close()
		r = gzr
	}

	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if filepath.Base(header.Name) != "control" {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return "", fmt.Errorf("control file not found")
}

func parseControl(control string) DebSummary {
	summary := DebSummary{Control: control}
	for _, line := range strings.Split(control, "\n") {
		switch {
		case strings.HasPrefix(line, "Package:"):
			summary.Package = strings.TrimSpace(strings.TrimPrefix(line, "Package:"))
		case strings.HasPrefix(line, "Version:"):
			summary.Version = strings.TrimSpace(strings.TrimPrefix(line, "Version:"))
		case strings.HasPrefix(line, "Architecture:"):
			summary.Architecture = strings.TrimSpace(strings.TrimPrefix(line, "Architecture:"))
		}
	}
	return summary
}

// VerifyTarball checks that the archive yields exactly the expected binary
// path with executable permission and contains no path escaping the package
// root.
func VerifyTarball(path, version string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tarball: %w", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("decompress %s: %w", path, err)
	}
	defer gzr.Close()

	rootName := release.TarballRootName(version)
	expected := rootName + "/bin/" + release.ToolName
	found := false

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		name := strings.TrimPrefix(header.Name, "./")
		if strings.HasPrefix(name, "/") || strings.Contains(name, "..") {
			return fmt.Errorf("%s: archive path %q escapes the package root", path, header.Name)
		}
		if !strings.HasPrefix(name, rootName+"/") && strings.TrimSuffix(name, "/") != rootName {
			return fmt.Errorf("%s: archive path %q is outside %s/", path, header.Name, rootName)
		}

		if header.Typeflag == tar.TypeReg && name == expected {
			if header.FileInfo().Mode().Perm()&0o111 == 0 {
				return fmt.Errorf("%s: %s is not executable", path, expected)
			}
			found = true
		}
	}

	if !found {
		return fmt.Errorf("%s: expected member %s not found", path, expected)
	}
	return nil
}

// VerifyChecksums recomputes the digest of every file listed in the checksum
// manifest and returns the verified file names.
func VerifyChecksums(releaseDir string) ([]string, error) {
	manifestPath := filepath.Join(releaseDir, release.ChecksumFileName)
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("open checksum manifest: %w", err)
	}
	defer f.Close()

	var checked []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s: malformed line %q", manifestPath, line)
		}
		digest, name := fields[0], fields[1]

		actual, err := release.FileSHA256(filepath.Join(releaseDir, name))
		if err != nil {
			return nil, err
		}
		if actual != digest {
			return nil, fmt.Errorf("%s: checksum mismatch for %s", manifestPath, name)
		}
		checked = append(checked, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", manifestPath, err)
	}
	return checked, nil
}
