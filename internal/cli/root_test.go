package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// resetFlags restores every flag of cmd to its default. cobra keeps parsed
// values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
}

// execute runs rootCmd with args and returns what it wrote to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		for _, cmd := range rootCmd.Commands() {
			resetFlags(cmd)
		}
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func TestResolveRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	root, err := resolveRoot([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, dir, root)

	wd, err := os.Getwd()
	require.NoError(t, err)
	root, err = resolveRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, wd, root)

	file := writeSource(t, dir, "mod.py", "")
	_, err = resolveRoot([]string{file})
	assert.ErrorContains(t, err, "is not a directory")

	_, err = resolveRoot([]string{filepath.Join(dir, "missing")})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	quiet, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel), "debug disabled by default")

	loud, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.DebugLevel), "debug enabled with --verbose")
}

// Commands share package-level flag state, so these run sequentially.

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "skeleton "+Version)
}

func TestDirCommand_ConfigFlag(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "pkg/mod.py", modelsSource)
	cfgPath := writeSource(t, t.TempDir(), "custom.yml", "batch:\n  suffix: \".stub\"\n")

	out, err := execute(t, "dir", root, "--quiet", "--no-constants", "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, ".skeleton", "out", "pkg", "mod.py.stub"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "VERSION")
	assert.Empty(t, out)
}

func TestBatchFlags_NotSharedBetweenCommands(t *testing.T) {
	root := t.TempDir()
	path := writeSource(t, root, "mod.py", modelsSource)

	_, err := execute(t, "dir", root, "--quiet", "--no-constants", "--workers", "2")
	require.NoError(t, err)

	assert.True(t, dirFlags.noConstants)
	assert.Equal(t, batchFlags{}, watchFlags, "watch must not see flags parsed for dir")
	assert.False(t, fileNoConstants, "file must not see flags parsed for dir")

	out, err := execute(t, "file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "VERSION", "file keeps constants unless its own flag is set")
}
