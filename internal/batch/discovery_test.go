package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; contents default to a tiny module.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		if content == "" {
			content = "def f():\n    return 1\n"
		}
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	rels := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	return rels
}

func TestFileDiscovery_DiscoverFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"setup.py":                        "",
		"pkg/__init__.py":                 "",
		"pkg/core.py":                     "",
		"pkg/types.pyi":                   "",
		"pkg/README.md":                   "# docs",
		"pkg/__pycache__/core.cpython.py": "",
		".venv/lib/site.py":               "",
		".skeleton/out/pkg/core.py.skel":  "",
		"build/lib/pkg/core.py":           "",
	})

	fd, err := NewFileDiscovery(root, []string{"**/*.py", "**/*.pyi"}, []string{".venv/**", "build/**", "**/__pycache__/**"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"pkg/__init__.py", "pkg/core.py", "pkg/types.pyi", "setup.py"}, relAll(t, root, files))
}

func TestFileDiscovery_Matches(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fd, err := NewFileDiscovery(root, []string{"**/*.py"}, []string{"vendor/**"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"main.py", true},
		{"pkg/mod.py", true},
		{filepath.Join(root, "pkg", "abs.py"), true},
		{"vendor/lib.py", false},
		{"notes.txt", false},
		{".skeleton/out/main.py", false},
		{filepath.Join(filepath.Dir(root), "outside.py"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, fd.Matches(tt.path), tt.path)
	}
}

func TestNewFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[*.py"}, nil)
	assert.Error(t, err)
}

func TestFileDiscovery_IgnoresDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	fd, err := NewFileDiscovery(root, []string{"**/*.py"}, []string{".venv/**", "**/__pycache__/**"})
	require.NoError(t, err)

	assert.False(t, fd.IgnoresDir(root))
	assert.False(t, fd.IgnoresDir(filepath.Join(root, "pkg")))
	assert.True(t, fd.IgnoresDir(filepath.Join(root, ".venv")))
	assert.True(t, fd.IgnoresDir(filepath.Join(root, "pkg", "__pycache__")))
	assert.True(t, fd.IgnoresDir(filepath.Join(root, ".skeleton")))
}
