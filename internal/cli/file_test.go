package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mvp-joe/skeleton/internal/skeleton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelsSource = `"""Models."""
VERSION = "1.0"


class User:
    def name(self):
        return self._name
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestWriteSkeletons_SingleFile(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "models.py", modelsSource)

	var buf bytes.Buffer
	require.NoError(t, writeSkeletons(&buf, []string{path}, true))

	assert.Equal(t, `"""Models."""
VERSION = "1.0"


class User:
    def name(self):
        ...
`, buf.String())
}

func TestWriteSkeletons_NoConstants(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "models.py", modelsSource)

	var buf bytes.Buffer
	require.NoError(t, writeSkeletons(&buf, []string{path}, false))

	assert.NotContains(t, buf.String(), "VERSION")
}

func TestWriteSkeletons_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeSource(t, dir, "a.py", "def a():\n    return 1\n")
	b := writeSource(t, dir, "b.py", "x = (")

	var buf bytes.Buffer
	require.NoError(t, writeSkeletons(&buf, []string{a, b}, true))

	expected := "### File: " + a + " ###\n```python\ndef a():\n    ...\n```\n" +
		"\n" +
		"### File: " + b + " ###\n```python\nx = (\n```\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteSkeletons_MissingFile(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeSkeletons(&buf, []string{filepath.Join(t.TempDir(), "missing.py")}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestWriteOutline(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "models.py", modelsSource+"\n\ndef load():\n    pass\n")

	var buf bytes.Buffer
	require.NoError(t, writeOutline(&buf, path))
	assert.Equal(t, "class: User\nmethod: User.name\nfunction: load\n", buf.String())
}

func TestWriteOutline_Unparseable(t *testing.T) {
	t.Parallel()

	path := writeSource(t, t.TempDir(), "bad.py", "def (:\n")

	var buf bytes.Buffer
	err := writeOutline(&buf, path)
	assert.ErrorIs(t, err, skeleton.ErrUnparseable)
}
