package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/parquery/releasery/config"
	"github.com/parquery/releasery/internal/logging"
)

const defaultLogLevel = "info"

func main() {
	var levelVar slog.LevelVar
	levelVar.Set(slog.LevelInfo)

	logger := logging.NewCLI(os.Stderr, &levelVar)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand(logger, &levelVar)
	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("command interrupted", "error", err)
			os.Exit(130)
		}
		logger.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand(logger *slog.Logger, levelVar *slog.LevelVar) *cobra.Command {
	logLevel := defaultLogLevel

	root := &cobra.Command{
		Use:           "releasery",
		Short:         "Package the revproxyry binary into release artifacts",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", defaultLogLevel, "Set log verbosity (debug, info, warning, error)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level, err := parseLogLevel(logLevel)
		if err != nil {
			return err
		}
		if levelVar != nil {
			levelVar.Set(level)
		}
		return nil
	}

	root.AddCommand(
		newReleaseCommand(logger),
		newVerifyCommand(logger),
	)
	return root
}

func newReleaseCommand(logger *slog.Logger) *cobra.Command {
	var (
		releaseDir   string
		sourceDir    string
		manifestPath string
	)

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Build the source tree and deliver the tarball and debian package",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "release")

			cmdLogger.Info("starting release", "release_dir", releaseDir, "source_dir", sourceDir)

			result, err := config.Release(cmd.Context(), releaseDir, sourceDir, manifestPath, cmdLogger)
			if err != nil {
				cmdLogger.Error("release failed", "error", err)
				return err
			}

			fmt.Printf("Released to: %s\n", result.ReleaseDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&releaseDir, "release-dir", "", "Directory where to put the release artifacts")
	cmd.Flags().StringVar(&sourceDir, "source-dir", config.DefaultSourceDir, "Root of the source tree to build")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Optional YAML manifest overriding maintainer and description")
	_ = cmd.MarkFlagRequired("release-dir")

	return cmd
}

func newVerifyCommand(logger *slog.Logger) *cobra.Command {
	var (
		releaseDir string
		version    string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify previously released artifacts for a version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdLogger := logger.With("command", "verify")

			report, err := config.Verify(releaseDir, strings.TrimSpace(version), cmdLogger)
			if err != nil {
				cmdLogger.Error("verification failed", "error", err)
				return err
			}

			fmt.Printf("Verified %s and %s\n", report.DebPath, report.TarballPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&releaseDir, "release-dir", "", "Directory holding the release artifacts")
	cmd.Flags().StringVar(&version, "version", "", "Version the artifacts were released under")
	_ = cmd.MarkFlagRequired("release-dir")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}
