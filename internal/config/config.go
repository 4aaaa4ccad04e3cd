package config

// Config represents the complete skeleton configuration.
// It can be loaded from .skeleton/config.yml with environment variable overrides.
type Config struct {
	Skeleton SkeletonConfig `yaml:"skeleton" mapstructure:"skeleton"`
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Batch    BatchConfig    `yaml:"batch" mapstructure:"batch"`
	Watch    WatchConfig    `yaml:"watch" mapstructure:"watch"`
}

// SkeletonConfig configures the transform itself.
type SkeletonConfig struct {
	KeepConstants bool `yaml:"keep_constants" mapstructure:"keep_constants"` // keep top-level name = value statements
}

// PathsConfig defines which files to skeletonize and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
}

// BatchConfig controls directory runs.
type BatchConfig struct {
	Workers   int    `yaml:"workers" mapstructure:"workers"`       // parallel files
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"` // empty means .skeleton/out under the root
	Suffix    string `yaml:"suffix" mapstructure:"suffix"`         // appended to each output file name
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	return &Config{
		Skeleton: SkeletonConfig{
			KeepConstants: true,
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.py",
				"**/*.pyi",
			},
			Ignore: []string{
				".git/**",
				".venv/**",
				"venv/**",
				"__pycache__/**",
				"**/__pycache__/**",
				"build/**",
				"dist/**",
				"*.egg-info/**",
			},
		},
		Batch: BatchConfig{
			Workers:   4,
			OutputDir: "",
			Suffix:    ".skel",
		},
		Watch: WatchConfig{
			DebounceMs: 500,
		},
	}
}

// GetSourceExtensions extracts unique file extensions from include patterns.
// Returns extensions with leading dot (e.g., []string{".py", ".pyi"}).
func (c *Config) GetSourceExtensions() []string {
	seen := make(map[string]bool)
	var extensions []string
	for _, pattern := range c.Paths.Include {
		if ext := extractExtension(pattern); ext != "" && !seen[ext] {
			seen[ext] = true
			extensions = append(extensions, ext)
		}
	}
	return extensions
}

// extractExtension extracts the file extension from a glob pattern.
// Returns empty string if pattern doesn't match a simple extension pattern.
// Examples: "**/*.py" -> ".py", "*.pyi" -> ".pyi"
func extractExtension(pattern string) string {
	for i := len(pattern) - 1; i >= 1; i-- {
		if pattern[i] == '.' && pattern[i-1] == '*' {
			return pattern[i:]
		}
	}
	return ""
}
