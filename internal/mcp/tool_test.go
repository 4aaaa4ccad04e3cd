package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toolSource = `"""Shapes."""
SIDES = 4


class Square:
    def area(self):
        return self.side ** 2


def unit():
    """The unit square."""
    return Square()
`

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args interface{}) (string, bool) {
	t.Helper()

	result, err := handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	})
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "content should be text")
	return textContent.Text, result.IsError
}

func TestSkeletonizeHandler_InlineSource(t *testing.T) {
	t.Parallel()

	handler := createSkeletonizeHandler(ToolOptions{RootDir: t.TempDir(), KeepConstants: true})

	text, isError := callTool(t, handler, map[string]interface{}{"source": toolSource})
	assert.False(t, isError)
	assert.Equal(t, `"""Shapes."""
SIDES = 4


class Square:
    def area(self):
        ...


def unit():
    """The unit square."""
`, text)
}

func TestSkeletonizeHandler_KeepConstantsArgument(t *testing.T) {
	t.Parallel()

	handler := createSkeletonizeHandler(ToolOptions{RootDir: t.TempDir(), KeepConstants: true})

	text, isError := callTool(t, handler, map[string]interface{}{
		"source":         toolSource,
		"keep_constants": false,
	})
	assert.False(t, isError)
	assert.NotContains(t, text, "SIDES")
	assert.Contains(t, text, "class Square:")
}

func TestSkeletonizeHandler_StringBool(t *testing.T) {
	t.Parallel()

	handler := createSkeletonizeHandler(ToolOptions{RootDir: t.TempDir(), KeepConstants: true})

	text, isError := callTool(t, handler, map[string]interface{}{
		"source":         toolSource,
		"keep_constants": "false",
	})
	assert.False(t, isError)
	assert.NotContains(t, text, "SIDES")
}

func TestSkeletonizeHandler_DefaultFromOptions(t *testing.T) {
	t.Parallel()

	handler := createSkeletonizeHandler(ToolOptions{RootDir: t.TempDir(), KeepConstants: false})

	text, _ := callTool(t, handler, map[string]interface{}{"source": toolSource})
	assert.NotContains(t, text, "SIDES")
}

func TestSkeletonizeHandler_Path(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "shapes.py"), []byte(toolSource), 0644))

	handler := createSkeletonizeHandler(ToolOptions{RootDir: root, KeepConstants: true})

	text, isError := callTool(t, handler, map[string]interface{}{"path": "pkg/shapes.py"})
	assert.False(t, isError)
	assert.Contains(t, text, "def unit():\n    \"\"\"The unit square.\"\"\"\n")
}

func TestSkeletonizeHandler_Unparseable(t *testing.T) {
	t.Parallel()

	handler := createSkeletonizeHandler(ToolOptions{RootDir: t.TempDir()})

	broken := "def broken(:\n    pass\n"
	text, isError := callTool(t, handler, map[string]interface{}{"source": broken})
	assert.False(t, isError, "unparseable source is passed through, not an error")
	assert.Equal(t, broken, text)
}

func TestSkeletonizeHandler_InvalidArguments(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	handler := createSkeletonizeHandler(ToolOptions{RootDir: root})

	tests := []struct {
		name    string
		args    interface{}
		message string
	}{
		{"not a map", "invalid string instead of map", "invalid arguments format"},
		{"nothing given", map[string]interface{}{}, "either source or path is required"},
		{"both given", map[string]interface{}{"source": "x = 1", "path": "a.py"}, "mutually exclusive"},
		{"bad bool", map[string]interface{}{"source": "x = 1", "keep_constants": "maybe"}, "invalid arguments"},
		{"unknown argument", map[string]interface{}{"source": "x = 1", "query": "x"}, "query"},
		{"missing file", map[string]interface{}{"path": "missing.py"}, "failed to read missing.py"},
		{"outside root", map[string]interface{}{"path": "../escape.py"}, "outside the project root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			text, isError := callTool(t, handler, tt.args)
			assert.True(t, isError, "should be error result")
			assert.Contains(t, text, tt.message)
		})
	}
}

func TestOutlineHandler(t *testing.T) {
	t.Parallel()

	handler := createOutlineHandler(ToolOptions{RootDir: t.TempDir()})

	text, isError := callTool(t, handler, map[string]interface{}{"source": toolSource})
	require.False(t, isError)

	var response OutlineResponse
	require.NoError(t, json.Unmarshal([]byte(text), &response))

	assert.Equal(t, 3, response.Total)
	assert.Equal(t, []OutlineEntry{
		{Kind: "class", Name: "Square"},
		{Kind: "method", Name: "Square.area"},
		{Kind: "function", Name: "unit"},
	}, response.Declarations)
}

func TestOutlineHandler_Unparseable(t *testing.T) {
	t.Parallel()

	handler := createOutlineHandler(ToolOptions{RootDir: t.TempDir()})

	text, isError := callTool(t, handler, map[string]interface{}{"source": "class (:\n"})
	assert.True(t, isError)
	assert.Contains(t, text, "not parseable")
}
