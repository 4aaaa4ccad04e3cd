package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/skeleton/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server exposing the skeletonize tool",
	Long: `Start a Model Context Protocol (MCP) server on stdio so coding assistants
can request skeletons directly.

Tools:
  skeletonize       reduce inline source or a file under the current directory
  skeleton_outline  list the classes, functions and methods of a file as JSON

Example:
  skeleton mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	projectPath, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := loadConfig(projectPath)
	if err != nil {
		return err
	}

	server, err := mcp.NewMCPServer(cfg, projectPath, Version, getLogger())
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return server.Serve(cmd.Context())
}
