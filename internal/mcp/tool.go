package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	mcputils "github.com/mvp-joe/skeleton/internal/mcp-utils"
	"github.com/mvp-joe/skeleton/internal/skeleton"
	"go.uber.org/zap"
)

// ToolOptions carries what the tool handlers need from the server.
type ToolOptions struct {
	RootDir       string
	KeepConstants bool // default for the keep_constants argument
	Logger        *zap.Logger
}

func (o ToolOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// AddSkeletonizeTool registers the skeletonize tool with an MCP server.
func AddSkeletonizeTool(s *server.MCPServer, opts ToolOptions) {
	tool := mcp.NewTool(
		"skeletonize",
		mcp.WithDescription("Reduce a Python file to its skeleton: module docstring, class and function signatures with decorators, docstrings, and optionally top-level constants. Bodies become '...'. Source that does not parse is returned unchanged."),
		mcp.WithString("source",
			mcp.Description("Python source text to reduce. Mutually exclusive with path.")),
		mcp.WithString("path",
			mcp.Description("File to reduce, relative to the project root. Mutually exclusive with source.")),
		mcp.WithBoolean("keep_constants",
			mcp.Description(fmt.Sprintf("Keep top-level 'name = value' assignments (default: %t)", opts.KeepConstants))),
	)

	s.AddTool(tool, createSkeletonizeHandler(opts))
}

func createSkeletonizeHandler(opts ToolOptions) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resolver := sourceResolver{rootDir: opts.RootDir}
	logger := opts.logger()

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := bindToolArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		source, label, err := resolver.resolve(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		keepConstants := opts.KeepConstants
		if args.KeepConstants != nil {
			keepConstants = *args.KeepConstants
		}

		result := skeleton.Reduce(source, keepConstants)
		logger.Debug("skeletonize",
			zap.String("source", label),
			zap.Bool("parsed", result.Parsed),
			zap.Int("bytes_in", len(source)),
			zap.Int("bytes_out", len(result.Text)))

		return mcp.NewToolResultText(result.Text), nil
	}
}

// bindToolArgs decodes the request arguments, returning a tool error result
// when they are malformed.
func bindToolArgs(request mcp.CallToolRequest) (toolArgs, *mcp.CallToolResult) {
	var args toolArgs
	if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
		return args, mcp.NewToolResultError("invalid arguments format")
	}
	if err := mcputils.BindArguments(request, &args); err != nil {
		return args, mcp.NewToolResultError(err.Error())
	}
	return args, nil
}

// OutlineResponse is the JSON body of the outline tool.
type OutlineResponse struct {
	Declarations []OutlineEntry `json:"declarations"`
	Total        int            `json:"total"`
}

// OutlineEntry is one declaration in an OutlineResponse.
type OutlineEntry struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// AddOutlineTool registers the skeleton_outline tool, which lists the classes,
// functions and methods a skeleton of the same source would contain.
func AddOutlineTool(s *server.MCPServer, opts ToolOptions) {
	tool := mcp.NewTool(
		"skeleton_outline",
		mcp.WithDescription("List the module-level classes and functions, and class methods, of a Python file as JSON. Fails for source that does not parse."),
		mcp.WithString("source",
			mcp.Description("Python source text. Mutually exclusive with path.")),
		mcp.WithString("path",
			mcp.Description("File to outline, relative to the project root. Mutually exclusive with source.")),
	)

	s.AddTool(tool, createOutlineHandler(opts))
}

func createOutlineHandler(opts ToolOptions) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resolver := sourceResolver{rootDir: opts.RootDir}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, errResult := bindToolArgs(request)
		if errResult != nil {
			return errResult, nil
		}

		source, label, err := resolver.resolve(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		decls, err := skeleton.Outline(source)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", label, err)), nil
		}

		response := OutlineResponse{
			Declarations: make([]OutlineEntry, 0, len(decls)),
			Total:        len(decls),
		}
		for _, d := range decls {
			response.Declarations = append(response.Declarations, OutlineEntry{
				Kind: string(d.Kind),
				Name: d.QualifiedName(),
			})
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
