package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/skeleton/internal/skeleton"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options configures a Processor.
type Options struct {
	// RootDir is the directory output paths are made relative to.
	RootDir string
	// OutputDir receives one skeleton per input file. Empty keeps results in memory only.
	OutputDir string
	// Suffix is appended to each output file name.
	Suffix        string
	Workers       int
	KeepConstants bool
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string // input path as given
	RelPath    string // slash-separated, relative to RootDir
	OutputPath string // empty when nothing was written
	Skeleton   string
	Parsed     bool // false when the file did not parse and was passed through
	BytesIn    int
	BytesOut   int
}

// Stats tracks what was processed.
type Stats struct {
	Files          int
	Reduced        int
	Passthrough    int
	BytesIn        int64
	BytesOut       int64
	ProcessingTime time.Duration
}

// Ratio returns output bytes over input bytes, or 1 for empty input.
func (s *Stats) Ratio() float64 {
	if s.BytesIn == 0 {
		return 1
	}
	return float64(s.BytesOut) / float64(s.BytesIn)
}

// Processor skeletonizes many independent files with bounded parallelism.
type Processor struct {
	opts     Options
	logger   *zap.Logger
	progress ProgressReporter
}

// NewProcessor creates a new Processor. A nil logger or progress reporter
// disables that output.
func NewProcessor(opts Options, logger *zap.Logger, progress ProgressReporter) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Processor{
		opts:     opts,
		logger:   logger,
		progress: progress,
	}
}

// Process skeletonizes files and returns their results in input order.
// A read or write failure stops the run; unparseable files do not.
func (p *Processor) Process(ctx context.Context, files []string) ([]FileResult, *Stats, error) {
	start := time.Now()
	p.progress.OnProcessingStart(len(files))

	results := make([]FileResult, len(files))
	var progressMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Workers)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			result, err := p.processFile(path)
			if err != nil {
				return err
			}
			results[i] = result

			progressMu.Lock()
			p.progress.OnFileProcessed(result)
			progressMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &Stats{Files: len(results), ProcessingTime: time.Since(start)}
	for _, r := range results {
		if r.Parsed {
			stats.Reduced++
		} else {
			stats.Passthrough++
			p.logger.Warn("file did not parse, kept verbatim", zap.String("file", r.RelPath))
		}
		stats.BytesIn += int64(r.BytesIn)
		stats.BytesOut += int64(r.BytesOut)
	}

	p.logger.Info("batch complete",
		zap.Int("files", stats.Files),
		zap.Int("reduced", stats.Reduced),
		zap.Int("passthrough", stats.Passthrough),
		zap.Float64("ratio", stats.Ratio()),
		zap.Duration("took", stats.ProcessingTime))

	p.progress.OnComplete(stats)
	return results, stats, nil
}

func (p *Processor) processFile(path string) (FileResult, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	reduced := skeleton.Reduce(string(source), p.opts.KeepConstants)
	result := FileResult{
		Path:     path,
		RelPath:  p.relPath(path),
		Skeleton: reduced.Text,
		Parsed:   reduced.Parsed,
		BytesIn:  len(source),
		BytesOut: len(reduced.Text),
	}

	p.logger.Debug("skeletonized file",
		zap.String("file", result.RelPath),
		zap.Bool("parsed", result.Parsed),
		zap.Int("bytes_in", result.BytesIn),
		zap.Int("bytes_out", result.BytesOut))

	if p.opts.OutputDir == "" {
		return result, nil
	}

	result.OutputPath = p.outputPath(result.RelPath)
	if err := os.MkdirAll(filepath.Dir(result.OutputPath), 0755); err != nil {
		return FileResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(result.OutputPath, []byte(result.Skeleton), 0644); err != nil {
		return FileResult{}, fmt.Errorf("failed to write %s: %w", result.OutputPath, err)
	}

	return result, nil
}

// RemoveOutput deletes the skeleton written for path, if any. It is used when
// the source file itself has been removed.
func (p *Processor) RemoveOutput(path string) error {
	if p.opts.OutputDir == "" {
		return nil
	}
	out := p.outputPath(p.relPath(path))
	if err := os.Remove(out); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", out, err)
	}
	p.logger.Debug("removed skeleton", zap.String("file", out))
	return nil
}

func (p *Processor) outputPath(relPath string) string {
	return filepath.Join(p.opts.OutputDir, filepath.FromSlash(relPath)+p.opts.Suffix)
}

// relPath returns path relative to the root, falling back to the base name
// for files outside it.
func (p *Processor) relPath(path string) string {
	if p.opts.RootDir != "" {
		if rel, err := filepath.Rel(p.opts.RootDir, path); err == nil {
			rel = filepath.ToSlash(rel)
			if rel != ".." && !strings.HasPrefix(rel, "../") {
				return rel
			}
		}
	}
	return filepath.Base(path)
}
