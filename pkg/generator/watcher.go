package generator

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid successive writes to the same file into one
	// rebuild. Defaults to 200ms.
	DebounceMs int
	// Output is the combined library JSON path rewritten after every
	// change. Empty disables writing.
	Output string
}

// Watcher rebuilds schemas incrementally as spec files change on disk.
// Only the changed file is rebuilt; deletions remove the module from the
// store.
type Watcher struct {
	gen     *Generator
	watcher *fsnotify.Watcher
	options WatchOptions
	cfg     Config
	rootDir string
	log     *slog.Logger

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopOnce sync.Once
	mu       sync.Mutex
	started  bool
}

// NewWatcher creates a watcher over the generator's store.
func NewWatcher(gen *Generator, cfg Config, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		gen:            gen,
		watcher:        fsWatcher,
		options:        options,
		cfg:            cfg,
		log:            logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start begins watching rootDir and its subdirectories in a background
// goroutine. Safe to call once.
func (w *Watcher) Start(rootDir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return fmt.Errorf("watcher already started")
	}

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return fmt.Errorf("resolve watch root: %w", err)
	}
	w.rootDir = absRoot

	if err := w.addDirsRecursive(absRoot); err != nil {
		return err
	}
	w.started = true

	go w.loop()
	w.log.Info("watching for spec file changes", "root", absRoot)
	return nil
}

// Stop stops the watcher and releases fsnotify resources.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)
		w.watcher.Close()
	})
}

func (w *Watcher) addDirsRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr == nil {
			rel = filepath.ToSlash(rel)
			for _, pattern := range w.cfg.Exclude {
				if matched := matchDirExclude(pattern, rel); matched {
					return filepath.SkipDir
				}
			}
		}
		return w.watcher.Add(path)
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// New directories must be watched too.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addDirsRecursive(event.Name)
			return
		}
	}

	if !MatchesFile(w.rootDir, w.cfg, event.Name) {
		return
	}

	switch {
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.gen.Invalidate(event.Name)
		w.gen.Store().Remove(ModuleName(event.Name))
		w.log.Info("spec file removed", "file", event.Name)
		w.writeOutput()
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		w.debounceRebuild(event.Name)
	}
}

// debounceRebuild schedules a rebuild after the debounce window, resetting
// the timer on every further write to the same path.
func (w *Watcher) debounceRebuild(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounceTimers[path]; ok {
		timer.Stop()
	}
	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
			w.rebuild(path)
		})
}

func (w *Watcher) rebuild(path string) {
	w.gen.Invalidate(path)
	start := time.Now()
	if _, err := w.gen.BuildFile(path); err != nil {
		w.log.Warn("schema rebuild failed", "file", path, "error", err)
		return
	}
	w.log.Info("schema rebuilt", "file", path, "ms", time.Since(start).Milliseconds())
	w.writeOutput()
}

func (w *Watcher) writeOutput() {
	if w.options.Output == "" {
		return
	}
	if err := WriteLibrary(w.gen.Store().Library(), w.options.Output); err != nil {
		w.log.Warn("failed to write library output", "error", err)
	}
}

// matchDirExclude matches directory-shaped exclude patterns ("dist/**")
// against a directory path.
func matchDirExclude(pattern, rel string) bool {
	if matched, _ := filepath.Match(pattern, rel); matched {
		return true
	}
	// "dir/**" should exclude "dir" itself so the walker can skip it.
	if len(pattern) > 3 && pattern[len(pattern)-3:] == "/**" {
		return pattern[:len(pattern)-3] == rel
	}
	return false
}
