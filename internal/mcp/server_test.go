package mcp

import (
	"testing"

	"github.com/mvp-joe/skeleton/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMCPServer(t *testing.T) {
	t.Parallel()

	s, err := NewMCPServer(config.Default(), t.TempDir(), "test", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, s.mcp)
	assert.True(t, s.config.Skeleton.KeepConstants)
}

func TestNewMCPServer_Defaults(t *testing.T) {
	t.Parallel()

	s, err := NewMCPServer(nil, "", "test", nil)
	require.NoError(t, err)
	assert.NotNil(t, s.config)
	assert.NotNil(t, s.logger)
}
