package config

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/parquery/releasery/internal/logging"
	"github.com/parquery/releasery/internal/release"
)

func TestReleaseFailsFastWithoutBuildEnvironment(t *testing.T) {
	t.Setenv("GOPATH", "")

	logger := logging.NewCLI(io.Discard, nil)
	releaseDir := t.TempDir()

	_, err := Release(context.Background(), releaseDir, t.TempDir(), "", logger)
	if err == nil {
		t.Fatal("expected a configuration error when GOPATH is empty")
	}

	var confErr *release.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected a ConfigurationError, got %T: %v", err, err)
	}
	if confErr.Variable != "GOPATH" {
		t.Fatalf("error should name GOPATH, got %q", confErr.Variable)
	}
}

func TestReleaseRequiresReleaseDir(t *testing.T) {
	logger := logging.NewCLI(io.Discard, nil)

	if _, err := Release(context.Background(), "", ".", "", logger); err == nil {
		t.Fatal("expected an error for a missing release directory")
	}
}

func TestVerifyRequiresVersion(t *testing.T) {
	logger := logging.NewCLI(io.Discard, nil)

	if _, err := Verify(t.TempDir(), "", logger); err == nil {
		t.Fatal("expected an error for a missing version")
	}
}
