package watcher

import "context"

// FileWatcher monitors source files for changes with debouncing and pause/resume support.
type FileWatcher interface {
	// Start begins watching, calling callback with each debounced batch of changed files.
	Start(ctx context.Context, callback func(files []string)) error

	// Stop stops the file watcher and releases the fsnotify handle.
	Stop() error

	// Pause stops firing callbacks but continues accumulating events.
	Pause()

	// Resume resumes firing callbacks. If events accumulated during pause, fires immediately.
	Resume()
}

// Option configures a FileWatcher.
type Option func(*fileWatcher)
