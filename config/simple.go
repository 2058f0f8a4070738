// Package config wires the concrete adapters into runnable flows for the
// CLI: the end-to-end release pipeline and the artifact verification.
package config

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/parquery/releasery/internal/execution"
	"github.com/parquery/releasery/internal/inspect"
	"github.com/parquery/releasery/internal/logging"
	"github.com/parquery/releasery/internal/release"
	"github.com/parquery/releasery/internal/setup"
)

// DefaultSourceDir is the source tree built when no override is given.
var DefaultSourceDir = "."

// Release executes the end-to-end flow: resolve the build environment,
// build the source tree, resolve the version and deliver both artifacts
// into releaseDir.
func Release(ctx context.Context, releaseDir, sourceDir, manifestPath string, logger *slog.Logger) (*release.ReleaseResult, error) {
	logger = logging.Ensure(logger).With("component", "config.release")
	setup.SetLogger(logger.With("component", "setup"))

	if releaseDir == "" {
		return nil, fmt.Errorf("release directory is required")
	}
	if sourceDir == "" {
		sourceDir = DefaultSourceDir
	}

	environment, err := setup.LoadEnvironment()
	if err != nil {
		return nil, err
	}

	metadata, err := release.LoadControlManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	runner := execution.ExecRunner{}

	service := &release.ReleaseService{
		Logger: logger.With("service", "release"),
		Builder: &release.GoInstallInvoker{
			Runner:    runner,
			SourceDir: sourceDir,
			Logger:    logger.With("stage", "build"),
		},
		Locator: &release.EnvironmentLocator{Environment: environment},
		Versions: &release.BinaryVersionResolver{
			Runner: runner,
			Logger: logger.With("stage", "version"),
		},
		Packagers: []release.Packager{
			&release.TarballPackager{Runner: runner, Logger: logger.With("packager", "tarball")},
			&release.DebPackager{Runner: runner, Metadata: metadata, Logger: logger.With("packager", "deb")},
		},
	}

	return service.Run(ctx, &release.ReleaseRequest{ReleaseDir: releaseDir})
}

// Verify checks the previously released artifacts for the given version.
func Verify(releaseDir, version string, logger *slog.Logger) (inspect.Report, error) {
	logger = logging.Ensure(logger).With("component", "config.verify")

	if releaseDir == "" {
		return inspect.Report{}, fmt.Errorf("release directory is required")
	}
	if version == "" {
		return inspect.Report{}, fmt.Errorf("version is required")
	}

	report, err := inspect.VerifyRelease(releaseDir, version)
	if err != nil {
		return report, err
	}

	logger.Info("artifacts verified",
		"deb", report.DebPath,
		"tarball", report.TarballPath,
		"checksummed", len(report.Checksummed),
	)
	return report, nil
}
