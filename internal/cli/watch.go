package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mvp-joe/skeleton/internal/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchFlags batchFlags

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Skeletonize a directory, then keep skeletons up to date",
	Long: `Run the same batch as 'skeleton dir', then watch root for changes and
re-skeletonize changed files after a quiet period (watch.debounce_ms).
Skeletons of deleted files are removed. Stop with Ctrl+C.

Examples:
  skeleton watch
  skeleton watch ./src --out /tmp/skeletons`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	p, err := setupProject(cmd, args, &watchFlags)
	if err != nil {
		return err
	}

	w, err := p.newWatcher()
	if err != nil {
		return err
	}
	defer w.Stop()

	// Changes made during the initial run are held until it finishes.
	w.Pause()
	if err := w.Start(ctx, p.onChange(ctx)); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	progress := NewCLIProgressReporter(cmd.OutOrStdout(), watchFlags.quiet)
	if _, err := p.runAll(ctx, progress); err != nil {
		return fmt.Errorf("initial skeletonize failed: %w", err)
	}
	w.Resume()

	if !watchFlags.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", p.rootDir)
	}
	<-ctx.Done()
	return nil
}

func (p *project) newWatcher() (watcher.FileWatcher, error) {
	w, err := watcher.NewFileWatcher(
		[]string{p.rootDir},
		p.cfg.GetSourceExtensions(),
		watcher.WithDebounce(time.Duration(p.cfg.Watch.DebounceMs)*time.Millisecond),
		watcher.WithLogger(p.logger),
		watcher.WithFilter(p.discovery.Matches),
		watcher.WithSkipDir(p.discovery.IgnoresDir),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return w, nil
}

// onChange returns the watcher callback.
func (p *project) onChange(ctx context.Context) func(files []string) {
	return func(files []string) {
		stats, err := p.refresh(ctx, files)
		if err != nil {
			p.logger.Error("refresh failed", zap.Error(err))
			return
		}
		p.logger.Info("skeletons refreshed",
			zap.Int("changed", len(files)),
			zap.Int("written", stats.Files))
	}
}
