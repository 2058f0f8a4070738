package release

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/parquery/releasery/internal/models"
)

// ReleaseRequest describes one invocation of the pipeline.
type ReleaseRequest struct {
	// ReleaseDir is the destination directory for the artifacts. It is
	// created if absent, including parents.
	ReleaseDir string
}

// ReleaseResult reports the delivered artifacts.
type ReleaseResult struct {
	RunID        string
	ReleaseDir   string
	Version      string
	Artifacts    []models.Artifact
	ChecksumPath string
}

// ReleaseService coordinates the pipeline: build, locate, resolve version,
// then run each packager in order. Execution is strictly sequential; the
// first failure aborts the remaining stages. Artifacts already delivered by
// an earlier packager are not rolled back.
type ReleaseService struct {
	Logger    *slog.Logger
	Builder   BuildInvoker
	Locator   BinaryLocator
	Versions  VersionResolver
	Packagers []Packager
}

func (s *ReleaseService) Run(ctx context.Context, request *ReleaseRequest) (*ReleaseResult, error) {
	if request == nil || request.ReleaseDir == "" {
		return nil, errors.New("release directory is required")
	}
	if s.Builder == nil || s.Locator == nil || s.Versions == nil {
		return nil, errors.New("release service is not fully configured")
	}

	runID := uuid.NewString()
	logger := s.logger().With("run_id", runID)

	releaseDir, err := absolutePath(request.ReleaseDir)
	if err != nil {
		return nil, err
	}
	if err := ensureDir(releaseDir); err != nil {
		return nil, err
	}

	logger.Info("starting release", "release_dir", releaseDir)

	if err := s.Builder.Build(ctx); err != nil {
		return nil, err
	}

	binaryPath, err := s.Locator.Locate()
	if err != nil {
		return nil, err
	}
	logger.Info("located binary", "path", binaryPath)

	version, err := s.Versions.Resolve(ctx, binaryPath)
	if err != nil {
		return nil, err
	}

	input := PackageInput{
		BinaryPath: binaryPath,
		Version:    version,
		ReleaseDir: releaseDir,
	}

	artifacts := make([]models.Artifact, 0, len(s.Packagers))
	for _, packager := range s.Packagers {
		artifact, err := packager.Package(ctx, input)
		if err != nil {
			return nil, err
		}
		logger.Info("packaged artifact", "kind", string(artifact.Kind), "name", artifact.Name)
		artifacts = append(artifacts, artifact)
	}

	checksumPath, err := WriteChecksums(releaseDir, artifacts)
	if err != nil {
		return nil, err
	}

	logger.Info("released", "destination", releaseDir, "version", version, "artifacts", len(artifacts))

	return &ReleaseResult{
		RunID:        runID,
		ReleaseDir:   releaseDir,
		Version:      version,
		Artifacts:    artifacts,
		ChecksumPath: checksumPath,
	}, nil
}

func (s *ReleaseService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
