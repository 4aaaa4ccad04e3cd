package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvp-joe/skeleton/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool
	logger  *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "skeleton",
	Short: "Reduce Python sources to their declarative skeleton",
	Long: `skeleton reduces Python files to what an LLM needs to navigate them:
the module docstring, class and function signatures with their decorators,
docstrings, and optionally top-level constants. Function bodies become '...'.

Files that do not parse are passed through unchanged.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = newLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/.skeleton/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the stderr logger. Only warnings and errors are shown
// unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// getLogger returns the command logger, or a no-op logger outside a command run.
func getLogger() *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loadConfig loads configuration for rootDir, honouring --config.
func loadConfig(rootDir string) (*config.Config, error) {
	var l config.Loader
	if cfgFile != "" {
		l = config.NewFileLoader(rootDir, cfgFile)
	} else {
		l = config.NewLoader(rootDir)
	}

	cfg, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// resolveRoot returns the absolute project root from an optional argument,
// defaulting to the working directory.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}
	return abs, nil
}
