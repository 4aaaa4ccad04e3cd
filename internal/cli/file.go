package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mvp-joe/skeleton/internal/skeleton"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fileNoConstants bool

var fileCmd = &cobra.Command{
	Use:   "file <path>...",
	Short: "Print the skeleton of one or more Python files",
	Long: `Print the skeleton of each file to stdout.

With a single file the skeleton is printed as is. With several files each one
is introduced by a "### File: <path> ###" header and wrapped in a python code
fence, ready to paste into a prompt.

Examples:
  skeleton file pkg/models.py
  skeleton file --no-constants pkg/*.py`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFile,
}

func init() {
	rootCmd.AddCommand(fileCmd)
	fileCmd.Flags().BoolVar(&fileNoConstants, "no-constants", false, "Drop top-level name = value assignments")
}

func runFile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	keepConstants := cfg.Skeleton.KeepConstants && !fileNoConstants
	return writeSkeletons(cmd.OutOrStdout(), args, keepConstants)
}

// writeSkeletons writes the skeleton of each path to w.
func writeSkeletons(w io.Writer, paths []string, keepConstants bool) error {
	for i, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		result := skeleton.Reduce(string(source), keepConstants)
		if !result.Parsed {
			getLogger().Warn("file did not parse, printing it verbatim", zap.String("file", path))
		}

		if len(paths) == 1 {
			_, err = io.WriteString(w, result.Text)
			return err
		}

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "### File: %s ###\n```python\n%s```\n", path, withTrailingNewline(result.Text))
	}
	return nil
}

func withTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
