package skeleton

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/python"

// Each fixture <name>.py has its expected skeleton, constants kept, in
// <name>.py.skel.
func TestSkeletonize_Fixtures(t *testing.T) {
	t.Parallel()

	sources, err := filepath.Glob(filepath.Join(fixtureDir, "*.py"))
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	for _, path := range sources {
		t.Run(filepath.Base(path), func(t *testing.T) {
			t.Parallel()

			source, err := os.ReadFile(path)
			require.NoError(t, err)
			expected, err := os.ReadFile(path + ".skel")
			require.NoError(t, err)

			got := Default(string(source))
			if diff := cmp.Diff(string(expected), got); diff != "" {
				t.Errorf("skeleton mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, got, Default(got), "skeleton should be a fixed point")
		})
	}
}

func TestSkeletonize_FixtureOutline(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile(filepath.Join(fixtureDir, "service.py"))
	require.NoError(t, err)

	decls, err := Outline(string(source))
	require.NoError(t, err)

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		names = append(names, d.QualifiedName())
	}
	assert.Equal(t, "Endpoint Endpoint.url Endpoint.parse Empty fetch helper", strings.Join(names, " "))

	skel, err := Outline(Default(string(source)))
	require.NoError(t, err)
	assert.Equal(t, decls, skel)
}
