package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/samerge/internal/config"
	"github.com/vk/samerge/internal/ctxlog"
	"github.com/vk/samerge/internal/engine"
	"github.com/vk/samerge/internal/fsutil"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
}

// NewApp is the constructor for the main application. Produced artifact paths
// are printed to outW, logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}

// Job resolves the merge job: job-file values first, then command-line
// fragments appended and command-line output dir and CPU taking precedence.
func (a *App) Job(ctx context.Context) (*config.Model, error) {
	job := &config.Model{}
	if a.config.JobPath != "" {
		loaded, err := a.loader.Load(ctx, a.config.JobPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load job file: %w", err)
		}
		job = loaded
	}

	job.Fragments = append(job.Fragments, a.config.Fragments...)
	if a.config.OutputDir != "" {
		job.OutputDir = a.config.OutputDir
	}
	if a.config.TargetCPU != "" {
		job.TargetCPU = a.config.TargetCPU
	}
	if job.TargetCPU == "" {
		job.TargetCPU = DefaultTargetCPU
	}

	if job.OutputDir == "" {
		return nil, errors.New("no output directory: set -o or output_dir in the job file")
	}
	return job, nil
}

// Run executes one merge run and prints every produced artifact path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	job, err := a.Job(ctx)
	if err != nil {
		return err
	}

	fragments, err := fsutil.ExpandInputs(job.Fragments, ".xml")
	if err != nil {
		return fmt.Errorf("failed to collect fragments: %w", err)
	}
	if len(fragments) == 0 {
		a.logger.Warn("No fragments found, nothing to merge.")
		return nil
	}
	a.logger.Debug("Job resolved.", "fragments", len(fragments), "output_dir", job.OutputDir, "target_cpu", job.TargetCPU)

	eng := engine.New(engine.Options{Target64Bit: Is64Bit(job.TargetCPU)})
	artifacts, err := eng.Merge(ctx, fragments, job.OutputDir)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	for _, p := range artifacts {
		fmt.Fprintln(a.outW, p)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
