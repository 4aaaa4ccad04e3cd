package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/skeleton/internal/config"
	"github.com/spf13/cobra"
)

// batchFlags holds the flags of one batch command. dir and watch each own
// a copy so a run of one never sees values parsed for the other.
type batchFlags struct {
	out         string
	workers     int
	quiet       bool
	noConstants bool
}

var dirFlags batchFlags

var dirCmd = &cobra.Command{
	Use:   "dir [root]",
	Short: "Skeletonize every Python file under a directory",
	Long: `Skeletonize every file matched by paths.include under root (default: the
current directory) and write one skeleton per file to the output directory,
mirroring the source tree.

The output directory defaults to <root>/.skeleton/out and every skeleton is
named after its source with the configured suffix appended (default: .skel).

Examples:
  skeleton dir
  skeleton dir ./src --out /tmp/skeletons --workers 8
  skeleton dir --quiet --no-constants`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDir,
}

func init() {
	rootCmd.AddCommand(dirCmd)
	dirFlags.register(dirCmd)
}

// register binds f to the flags of cmd.
func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (overrides batch.output_dir)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel workers (overrides batch.workers)")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Disable progress bars and non-error output")
	cmd.Flags().BoolVar(&f.noConstants, "no-constants", false, "Drop top-level name = value assignments")
}

// apply overlays the flags explicitly set on cmd onto cfg.
func (f *batchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("out") {
		cfg.Batch.OutputDir = f.out
	}
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = f.workers
	}
	if cmd.Flags().Changed("no-constants") && f.noConstants {
		cfg.Skeleton.KeepConstants = false
	}
	return config.Validate(cfg)
}

func runDir(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	p, err := setupProject(cmd, args, &dirFlags)
	if err != nil {
		return err
	}

	progress := NewCLIProgressReporter(cmd.OutOrStdout(), dirFlags.quiet)
	if _, err := p.runAll(ctx, progress); err != nil {
		return fmt.Errorf("skeletonize failed: %w", err)
	}
	return nil
}

func setupProject(cmd *cobra.Command, args []string, flags *batchFlags) (*project, error) {
	rootDir, err := resolveRoot(args)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(rootDir)
	if err != nil {
		return nil, err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return newProject(rootDir, cfg, getLogger())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
