package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Matrix/internal/config"
	"github.com/MikeSquared-Agency/Matrix/internal/scoring"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "matrix",
		Short:         "Weighted decision matrix for comparing relocation options",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newServeCmd(&configPath),
		newAnalyzeCmd(&configPath),
		newSeedCmd(&configPath),
		newWatchCmd(&configPath),
	)
	return root
}

func newLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// loadSeed returns the configured seed file's rows, or the built-in seed when none is set.
func loadSeed(cfg *config.Config) ([]scoring.Criterion, error) {
	if cfg.Matrix.SeedFile == "" {
		return scoring.DefaultSeed(), nil
	}
	seed, err := scoring.LoadSeed(cfg.Matrix.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return seed, nil
}
