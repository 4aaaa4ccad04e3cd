package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/skeleton/internal/batch"
	"github.com/mvp-joe/skeleton/internal/config"
	"go.uber.org/zap"
)

// project ties a root directory and its configuration to the batch pipeline.
type project struct {
	rootDir   string
	cfg       *config.Config
	discovery *batch.FileDiscovery
	logger    *zap.Logger
}

func newProject(rootDir string, cfg *config.Config, logger *zap.Logger) (*project, error) {
	discovery, err := batch.NewFileDiscovery(rootDir, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &project{
		rootDir:   rootDir,
		cfg:       cfg,
		discovery: discovery,
		logger:    logger,
	}, nil
}

// outputDir returns the absolute directory skeletons are written to.
func (p *project) outputDir() string {
	dir := p.cfg.Batch.OutputDir
	if dir == "" {
		return filepath.Join(p.rootDir, config.ConfigDir, "out")
	}
	if !filepath.IsAbs(dir) {
		return filepath.Join(p.rootDir, dir)
	}
	return dir
}

func (p *project) processor(progress batch.ProgressReporter) *batch.Processor {
	return batch.NewProcessor(batch.Options{
		RootDir:       p.rootDir,
		OutputDir:     p.outputDir(),
		Suffix:        p.cfg.Batch.Suffix,
		Workers:       p.cfg.Batch.Workers,
		KeepConstants: p.cfg.Skeleton.KeepConstants,
	}, p.logger, progress)
}

// runAll skeletonizes every file discovery finds under the root.
func (p *project) runAll(ctx context.Context, progress batch.ProgressReporter) (*batch.Stats, error) {
	if progress == nil {
		progress = &batch.NoOpProgressReporter{}
	}

	files, err := p.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	progress.OnDiscoveryComplete(len(files))

	_, stats, err := p.processor(progress).Process(ctx, files)
	return stats, err
}

// refresh re-skeletonizes changed files and drops the output of files that
// no longer exist.
func (p *project) refresh(ctx context.Context, changed []string) (*batch.Stats, error) {
	proc := p.processor(nil)

	var existing []string
	for _, path := range changed {
		if !p.discovery.Matches(path) {
			continue
		}
		_, err := os.Stat(path)
		switch {
		case err == nil:
			existing = append(existing, path)
		case errors.Is(err, os.ErrNotExist):
			if err := proc.RemoveOutput(path); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	_, stats, err := proc.Process(ctx, existing)
	return stats, err
}
