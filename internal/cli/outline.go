package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mvp-joe/skeleton/internal/skeleton"
	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <path>",
	Short: "List the classes, functions and methods a skeleton keeps",
	Long: `List the module-level classes and functions of a Python file, and the
methods of its classes, one per line in source order. Fails for files that
do not parse.

Example:
  skeleton outline pkg/models.py`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeOutline(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}

func writeOutline(w io.Writer, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	decls, err := skeleton.Outline(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	for _, d := range decls {
		fmt.Fprintf(w, "%s: %s\n", d.Kind, d.QualifiedName())
	}
	return nil
}
