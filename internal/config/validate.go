package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidWorkers indicates a non-positive worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrEmptySuffix indicates an output suffix that would overwrite sources
	ErrEmptySuffix = errors.New("empty output suffix")

	// ErrEmptyInclude indicates no include patterns
	ErrEmptyInclude = errors.New("empty include patterns")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidDebounce indicates a negative debounce window
	ErrInvalidDebounce = errors.New("invalid debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateBatch(&cfg.Batch); err != nil {
		errs = append(errs, err)
	}

	if err := validateWatch(&cfg.Watch); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	if len(cfg.Include) == 0 {
		errs = append(errs, fmt.Errorf("%w: at least one include pattern required", ErrEmptyInclude))
	}

	for _, pattern := range append(append([]string{}, cfg.Include...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateBatch(cfg *BatchConfig) error {
	var errs []error

	if cfg.Workers <= 0 {
		errs = append(errs, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidWorkers, cfg.Workers))
	}

	if strings.TrimSpace(cfg.Suffix) == "" {
		errs = append(errs, fmt.Errorf("%w: suffix is required", ErrEmptySuffix))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateWatch(cfg *WatchConfig) error {
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("%w: debounce_ms cannot be negative, got %d", ErrInvalidDebounce, cfg.DebounceMs)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches each wrapped sentinel with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	return &validationError{errs: errs}
}

type validationError struct {
	errs []error
}

func (e *validationError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

func (e *validationError) Unwrap() []error {
	return e.errs
}
