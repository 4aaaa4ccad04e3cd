package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a batch of changes is reported.
const DefaultDebounce = 500 * time.Millisecond

// fileWatcher implements FileWatcher on top of fsnotify.
type fileWatcher struct {
	watcher      *fsnotify.Watcher
	extensions   map[string]bool
	debounceTime time.Duration
	filter       func(path string) bool // nil accepts every file with a watched extension
	skipDir      func(path string) bool // nil watches every directory
	logger       *zap.Logger

	callback func(files []string)
	cancel   context.CancelFunc

	paused   bool
	pausedMu sync.RWMutex

	pending   map[string]struct{}
	pendingMu sync.Mutex

	timer   *time.Timer
	timerMu sync.Mutex
	// fire asks the loop to flush; only the loop runs the callback.
	fire chan struct{}

	stopOnce sync.Once
	doneCh   chan struct{}
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(fw *fileWatcher) {
		if d > 0 {
			fw.debounceTime = d
		}
	}
}

// WithLogger sets the logger used for watch errors.
func WithLogger(logger *zap.Logger) Option {
	return func(fw *fileWatcher) {
		if logger != nil {
			fw.logger = logger
		}
	}
}

// WithFilter restricts reported files to those accepted by filter.
func WithFilter(filter func(path string) bool) Option {
	return func(fw *fileWatcher) {
		fw.filter = filter
	}
}

// WithSkipDir prevents matching directories, and everything below them,
// from being watched.
func WithSkipDir(skip func(path string) bool) Option {
	return func(fw *fileWatcher) {
		fw.skipDir = skip
	}
}

// NewFileWatcher creates a watcher over dirs, recursively, reporting files
// whose extension is in extensions (e.g. []string{".py", ".pyi"}).
func NewFileWatcher(dirs []string, extensions []string, opts ...Option) (FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &fileWatcher{
		watcher:      w,
		extensions:   make(map[string]bool, len(extensions)),
		debounceTime: DefaultDebounce,
		logger:       zap.NewNop(),
		pending:      make(map[string]struct{}),
		fire:         make(chan struct{}, 1),
		doneCh:       make(chan struct{}),
	}
	for _, ext := range extensions {
		fw.extensions[ext] = true
	}
	for _, opt := range opts {
		opt(fw)
	}

	for _, dir := range dirs {
		if err := fw.addTree(dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	return fw, nil
}

// Start begins watching for file changes. A nil callback is a no-op.
func (fw *fileWatcher) Start(ctx context.Context, callback func(files []string)) error {
	if callback == nil {
		return nil
	}

	fw.callback = callback
	ctx, fw.cancel = context.WithCancel(ctx)

	go fw.loop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (fw *fileWatcher) Stop() error {
	var err error
	fw.stopOnce.Do(func() {
		if fw.cancel != nil {
			fw.cancel()
			<-fw.doneCh
		} else {
			close(fw.doneCh)
		}
		err = fw.watcher.Close()
	})
	return err
}

// Pause stops firing callbacks but continues accumulating events.
func (fw *fileWatcher) Pause() {
	fw.pausedMu.Lock()
	defer fw.pausedMu.Unlock()
	fw.paused = true
}

// Resume resumes firing callbacks. Anything accumulated while paused is
// flushed by the watch loop, never on the caller's goroutine.
func (fw *fileWatcher) Resume() {
	fw.pausedMu.Lock()
	wasPaused := fw.paused
	fw.paused = false
	fw.pausedMu.Unlock()

	if wasPaused {
		fw.signal()
	}
}

func (fw *fileWatcher) loop(ctx context.Context) {
	defer close(fw.doneCh)

	for {
		select {
		case <-ctx.Done():
			fw.stopTimer()
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.addTree(event.Name); err != nil {
						fw.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					continue
				}
			}

			if !fw.accepts(event) {
				continue
			}

			fw.pendingMu.Lock()
			fw.pending[event.Name] = struct{}{}
			fw.pendingMu.Unlock()

			fw.resetTimer()

		case <-fw.fire:
			fw.pausedMu.RLock()
			paused := fw.paused
			fw.pausedMu.RUnlock()
			if !paused {
				fw.flush()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// flush hands the accumulated changes, sorted, to the callback.
func (fw *fileWatcher) flush() {
	fw.pendingMu.Lock()
	if len(fw.pending) == 0 {
		fw.pendingMu.Unlock()
		return
	}
	files := make([]string, 0, len(fw.pending))
	for file := range fw.pending {
		files = append(files, file)
	}
	fw.pending = make(map[string]struct{})
	fw.pendingMu.Unlock()

	sort.Strings(files)
	fw.logger.Debug("files changed", zap.Int("count", len(files)))

	if fw.callback != nil {
		fw.callback(files)
	}
}

// signal wakes the loop without blocking. A pending wake-up already covers
// this one.
func (fw *fileWatcher) signal() {
	select {
	case fw.fire <- struct{}{}:
	default:
	}
}

func (fw *fileWatcher) resetTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(fw.debounceTime, fw.signal)
}

func (fw *fileWatcher) stopTimer() {
	fw.timerMu.Lock()
	defer fw.timerMu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
		fw.timer = nil
	}
}

// accepts reports whether event is a write, create, remove or rename of a
// file the caller cares about.
func (fw *fileWatcher) accepts(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	if !fw.extensions[filepath.Ext(event.Name)] {
		return false
	}
	return fw.filter == nil || fw.filter(event.Name)
}

// addTree registers root and every directory below it that is not skipped.
func (fw *fileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fw.logger.Warn("error accessing path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && fw.skipDir != nil && fw.skipDir(path) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			fw.logger.Warn("failed to watch directory", zap.String("dir", path), zap.Error(err))
		}
		return nil
	})
}
