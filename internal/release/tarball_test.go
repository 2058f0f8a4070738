package release

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquery/releasery/internal/execution"
	"github.com/parquery/releasery/internal/models"
)

func writeFakeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "revproxyry")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTarballPackagerStagesAndDelivers(t *testing.T) {
	binaryPath := writeFakeBinary(t)
	releaseDir := t.TempDir()
	tempBase := t.TempDir()

	var stagedMode os.FileMode
	runner := &fakeRunner{
		handler: func(command execution.Command) (execution.Result, error) {
			if command.Path != "tar" {
				return execution.Result{}, fmt.Errorf("unexpected tool %q", command.Path)
			}
			// The staged binary must already be in place, relative to the
			// archive's working directory, when the archiver runs.
			staged := filepath.Join(command.Dir, command.Args[2], "bin", "revproxyry")
			info, err := os.Stat(staged)
			if err != nil {
				return execution.Result{}, err
			}
			stagedMode = info.Mode()

			archive := filepath.Join(command.Dir, command.Args[1])
			return execution.Result{}, os.WriteFile(archive, []byte("archive"), 0o644)
		},
	}

	packager := &TarballPackager{Runner: runner, TempDir: tempBase}

	artifact, err := packager.Package(context.Background(), PackageInput{
		BinaryPath: binaryPath,
		Version:    "2.3.1",
		ReleaseDir: releaseDir,
	})
	if err != nil {
		t.Fatalf("packaging failed: %v", err)
	}

	if artifact.Kind != models.TarballArtifact {
		t.Fatalf("unexpected artifact kind: %q", artifact.Kind)
	}
	if artifact.Name != "revproxyry-2.3.1-linux-x64.tar.gz" {
		t.Fatalf("unexpected artifact name: %q", artifact.Name)
	}
	if _, err := os.Stat(filepath.Join(releaseDir, artifact.Name)); err != nil {
		t.Fatalf("artifact not delivered: %v", err)
	}

	if stagedMode&0o111 == 0 {
		t.Fatalf("staged binary lost its executable permission: %v", stagedMode)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected one archiver invocation, got %d", len(runner.calls))
	}
	call := runner.calls[0]
	if call.Args[0] != "-czf" || call.Args[2] != "revproxyry-2.3.1-linux-x64" {
		t.Fatalf("unexpected archiver args: %v", call.Args)
	}

	entries, err := os.ReadDir(tempBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("workspace not cleaned up, %d entries left", len(entries))
	}
}

func TestTarballPackagerOverwritesPriorArtifact(t *testing.T) {
	binaryPath := writeFakeBinary(t)
	releaseDir := t.TempDir()

	prior := filepath.Join(releaseDir, "revproxyry-2.3.1-linux-x64.tar.gz")
	if err := os.WriteFile(prior, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := &fakeRunner{
		handler: func(command execution.Command) (execution.Result, error) {
			archive := filepath.Join(command.Dir, command.Args[1])
			return execution.Result{}, os.WriteFile(archive, []byte("new"), 0o644)
		},
	}
	packager := &TarballPackager{Runner: runner, TempDir: t.TempDir()}

	if _, err := packager.Package(context.Background(), PackageInput{
		BinaryPath: binaryPath,
		Version:    "2.3.1",
		ReleaseDir: releaseDir,
	}); err != nil {
		t.Fatalf("re-packaging failed: %v", err)
	}

	content, err := os.ReadFile(prior)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "new" {
		t.Fatalf("prior artifact not overwritten: %q", content)
	}
}

func TestTarballPackagerCleansUpOnArchiverFailure(t *testing.T) {
	binaryPath := writeFakeBinary(t)
	releaseDir := t.TempDir()
	tempBase := t.TempDir()

	runner := &fakeRunner{
		handler: func(command execution.Command) (execution.Result, error) {
			return execution.Result{Stderr: "tar: boom", ExitCode: 2}, fmt.Errorf("exited with status 2")
		},
	}
	packager := &TarballPackager{Runner: runner, TempDir: tempBase}

	_, err := packager.Package(context.Background(), PackageInput{
		BinaryPath: binaryPath,
		Version:    "2.3.1",
		ReleaseDir: releaseDir,
	})
	if err == nil {
		t.Fatal("expected an error when the archiver fails")
	}
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected an ExecutionError, got %T: %v", err, err)
	}

	entries, err := os.ReadDir(releaseDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("no artifact must reach the release directory on failure, found %d entries", len(entries))
	}

	leftovers, err := os.ReadDir(tempBase)
	if err != nil {
		t.Fatal(err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("workspace not cleaned up after failure, %d entries left", len(leftovers))
	}
}

func TestTarballPackagerFailsOnMissingBinary(t *testing.T) {
	runner := &fakeRunner{}
	packager := &TarballPackager{Runner: runner, TempDir: t.TempDir()}

	_, err := packager.Package(context.Background(), PackageInput{
		BinaryPath: filepath.Join(t.TempDir(), "missing"),
		Version:    "2.3.1",
		ReleaseDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected a FilesystemError, got %T: %v", err, err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("archiver must not run when the copy fails, got %d calls", len(runner.calls))
	}
}
