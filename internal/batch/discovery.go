package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// skeletonDir holds project config and default output; it is never scanned.
const skeletonDir = ".skeleton"

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery handles file discovery with glob patterns and ignore rules.
type FileDiscovery struct {
	rootDir         string
	includePatterns []compiledPattern
	ignorePatterns  []compiledPattern
}

// NewFileDiscovery creates a new file discovery instance.
func NewFileDiscovery(rootDir string, includePatterns, ignorePatterns []string) (*FileDiscovery, error) {
	fd := &FileDiscovery{
		rootDir: rootDir,
	}

	var err error
	if fd.includePatterns, err = compilePatterns(includePatterns); err != nil {
		return nil, err
	}
	if fd.ignorePatterns, err = compilePatterns(ignorePatterns); err != nil {
		return nil, err
	}

	return fd, nil
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// RootDir returns the directory discovery is relative to.
func (fd *FileDiscovery) RootDir() string {
	return fd.rootDir
}

// DiscoverFiles walks the directory tree and returns the matching source
// files, joined onto the root, in lexical order.
func (fd *FileDiscovery) DiscoverFiles() ([]string, error) {
	files := []string{}

	err := filepath.Walk(fd.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := fd.relative(path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if relPath != "." && fd.shouldIgnore(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.shouldIgnore(relPath) {
			return nil
		}

		if fd.matchesAnyPattern(relPath, fd.includePatterns) {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}

// Matches reports whether path (absolute or relative to the root) would be
// returned by DiscoverFiles.
func (fd *FileDiscovery) Matches(path string) bool {
	if !filepath.IsAbs(path) {
		path = filepath.Join(fd.rootDir, path)
	}
	relPath, err := fd.relative(path)
	if err != nil || strings.HasPrefix(relPath, "../") || relPath == ".." {
		return false
	}
	return !fd.shouldIgnore(relPath) && fd.matchesAnyPattern(relPath, fd.includePatterns)
}

// IgnoresDir reports whether DiscoverFiles would skip the directory at path.
func (fd *FileDiscovery) IgnoresDir(path string) bool {
	relPath, err := fd.relative(path)
	if err != nil || relPath == "." {
		return false
	}
	return fd.shouldIgnore(relPath)
}

// relative returns path relative to the root with forward slashes.
func (fd *FileDiscovery) relative(path string) (string, error) {
	relPath, err := filepath.Rel(fd.rootDir, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(relPath), nil
}

// shouldIgnore checks if a path matches any ignore pattern.
func (fd *FileDiscovery) shouldIgnore(relPath string) bool {
	if strings.HasPrefix(relPath, skeletonDir+"/") || relPath == skeletonDir {
		return true
	}

	if fd.matchesAnyPattern(relPath, fd.ignorePatterns) {
		return true
	}

	// "node_modules" should match pattern "node_modules/**"
	return fd.matchesAnyPattern(relPath+"/**", fd.ignorePatterns)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func (fd *FileDiscovery) matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// "**/*.py" should match both "setup.py" and "pkg/mod.py".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}
