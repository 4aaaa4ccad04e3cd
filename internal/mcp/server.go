package mcp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/skeleton/internal/config"
	"go.uber.org/zap"
)

// ServerName is the name reported during the MCP handshake.
const ServerName = "skeleton-mcp"

// MCPServer manages the MCP server lifecycle.
type MCPServer struct {
	config *config.Config
	logger *zap.Logger
	mcp    *server.MCPServer
}

// NewMCPServer creates an MCP server exposing the skeleton tools for files
// under rootDir. A nil config uses config.Default().
func NewMCPServer(cfg *config.Config, rootDir, version string, logger *zap.Logger) (*MCPServer, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if rootDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		rootDir = wd
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	opts := ToolOptions{
		RootDir:       rootDir,
		KeepConstants: cfg.Skeleton.KeepConstants,
		Logger:        logger,
	}
	AddSkeletonizeTool(mcpServer, opts)
	AddOutlineTool(mcpServer, opts)

	return &MCPServer{
		config: cfg,
		logger: logger,
		mcp:    mcpServer,
	}, nil
}

// Serve runs the MCP server on stdio and blocks until stdin closes, a
// shutdown signal arrives, or ctx is cancelled.
func (s *MCPServer) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting MCP server on stdio")
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		s.logger.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
