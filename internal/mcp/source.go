package mcp

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// toolArgs are the arguments shared by the skeleton tools.
type toolArgs struct {
	Source        *string `json:"source,omitempty"`
	Path          string  `json:"path,omitempty"`
	KeepConstants *bool   `json:"keep_constants,omitempty"`
}

// errNoSource is returned when neither source nor path was given.
var errNoSource = errors.New("either source or path is required")

// sourceResolver loads the Python text a tool call refers to.
type sourceResolver struct {
	rootDir string
}

// resolve returns the source text named by args and a label for logs.
func (r sourceResolver) resolve(args toolArgs) (string, string, error) {
	if args.Source != nil {
		if args.Path != "" {
			return "", "", errors.New("source and path are mutually exclusive")
		}
		return *args.Source, "<inline>", nil
	}
	if args.Path == "" {
		return "", "", errNoSource
	}

	full, err := r.locate(args.Path)
	if err != nil {
		return "", "", err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", args.Path, err)
	}
	return string(data), args.Path, nil
}

// locate joins path onto the root and rejects anything that leaves it.
func (r sourceResolver) locate(path string) (string, error) {
	full := path
	if !filepath.IsAbs(full) {
		full = filepath.Join(r.rootDir, full)
	}
	rel, err := filepath.Rel(r.rootDir, full)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside the project root", path)
	}
	return full, nil
}
