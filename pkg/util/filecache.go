// FileCache provides read access to component spec files through
// memory-mapped regions, so repeated parses during watch mode and MCP
// serving never re-read unchanged files from disk.
//
// Files are mapped lazily on first access and stay mapped until Close().
// If mmap fails (permissions, exotic filesystems) the file is read into
// memory once and served from a fallback cache instead.
package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/edsrzf/mmap-go"
)

// FileCache is safe for concurrent use. Reads run in parallel; only first
// loads and Close take the write lock.
type FileCache interface {
	// Get returns the mapped file, loading it on first access.
	Get(filePath string) (*MappedFile, error)

	// ReadAll returns the full contents of the file. The returned slice
	// aliases the mapped region and must not be mutated or retained past
	// Close().
	ReadAll(filePath string) ([]byte, error)

	// Invalidate drops a cached entry, unmapping it. Used by the watcher
	// when a file changes on disk.
	Invalidate(filePath string)

	// Size returns the number of currently cached files.
	Size() int

	// Stats returns current cache metrics.
	Stats() FileCacheStats

	// Close unmaps all files and releases file descriptors.
	Close() error
}

// FileCacheConfig controls FileCache behavior.
type FileCacheConfig struct {
	// MaxFiles caps the number of cached files. 0 means unlimited.
	MaxFiles int

	// Logger for warnings. Nil uses slog.Default().
	Logger *slog.Logger
}

// DefaultFileCacheConfig covers component libraries of a few thousand
// spec files without tuning.
func DefaultFileCacheConfig() *FileCacheConfig {
	return &FileCacheConfig{MaxFiles: 10000}
}

// MappedFile is one cached file.
type MappedFile struct {
	Path string
	// Data is the mapped region (or the fallback copy). Nil for empty files.
	Data mmap.MMap
	// File is the descriptor kept open for the mapping. Nil for fallback
	// entries.
	File     *os.File
	Size     int64
	MappedAt time.Time
}

// FileCacheStats tracks cache behavior over the cache's lifetime.
type FileCacheStats struct {
	FilesLoaded  int64
	FilesCached  int
	CacheHits    int64
	CacheMisses  int64
	MmapFailures int64
}

// NewFileCache creates a FileCache. A nil config uses defaults.
func NewFileCache(config *FileCacheConfig) FileCache {
	if config == nil {
		config = DefaultFileCacheConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &fileCacheImpl{
		config: config,
		cache:  make(map[string]*MappedFile),
		logger: config.Logger,
	}
}

type fileCacheImpl struct {
	config *FileCacheConfig
	logger *slog.Logger

	cache map[string]*MappedFile
	mu    sync.RWMutex

	stats   FileCacheStats
	statsMu sync.Mutex
}

func (fc *fileCacheImpl) Get(filePath string) (*MappedFile, error) {
	fc.mu.RLock()
	if mf, ok := fc.cache[filePath]; ok {
		fc.mu.RUnlock()
		fc.bump(func(s *FileCacheStats) { s.CacheHits++ })
		return mf, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Another goroutine may have loaded it while we waited for the lock.
	if mf, ok := fc.cache[filePath]; ok {
		fc.bump(func(s *FileCacheStats) { s.CacheHits++ })
		return mf, nil
	}

	fc.bump(func(s *FileCacheStats) { s.CacheMisses++ })

	if fc.config.MaxFiles > 0 && len(fc.cache) >= fc.config.MaxFiles {
		return nil, fmt.Errorf("file cache limit reached: %d files; increase FileCacheConfig.MaxFiles", len(fc.cache))
	}

	mf, err := fc.loadFile(filePath)
	if err != nil {
		return nil, err
	}
	fc.cache[filePath] = mf
	fc.bump(func(s *FileCacheStats) { s.FilesLoaded++ })
	return mf, nil
}

// loadFile opens and maps a file, falling back to os.ReadFile when the
// mapping fails. Must be called holding mu.
func (fc *fileCacheImpl) loadFile(filePath string) (*MappedFile, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", filePath, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat %q: %w", filePath, err)
	}

	// Zero-byte files cannot be mapped.
	if stat.Size() == 0 {
		return &MappedFile{Path: filePath, File: file, MappedAt: time.Now()}, nil
	}

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		fc.logger.Warn("mmap failed, using fallback read",
			"file", filePath, "size", stat.Size(), "error", err)
		fc.bump(func(s *FileCacheStats) { s.MmapFailures++ })

		raw, readErr := os.ReadFile(filePath)
		file.Close()
		if readErr != nil {
			return nil, fmt.Errorf("mmap and fallback read both failed for %q: mmap: %v, read: %w",
				filePath, err, readErr)
		}
		return &MappedFile{
			Path:     filePath,
			Data:     mmap.MMap(raw),
			Size:     int64(len(raw)),
			MappedAt: time.Now(),
		}, nil
	}

	return &MappedFile{
		Path:     filePath,
		Data:     data,
		File:     file,
		Size:     stat.Size(),
		MappedAt: time.Now(),
	}, nil
}

func (fc *fileCacheImpl) ReadAll(filePath string) ([]byte, error) {
	mf, err := fc.Get(filePath)
	if err != nil {
		return nil, err
	}
	return mf.Data, nil
}

func (fc *fileCacheImpl) Invalidate(filePath string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	mf, ok := fc.cache[filePath]
	if !ok {
		return
	}
	delete(fc.cache, filePath)
	fc.releaseLocked(filePath, mf)
}

func (fc *fileCacheImpl) releaseLocked(path string, mf *MappedFile) {
	if mf.File != nil && mf.Data != nil {
		if err := mf.Data.Unmap(); err != nil {
			fc.logger.Warn("failed to unmap file", "path", path, "error", err)
		}
	}
	if mf.File != nil {
		if err := mf.File.Close(); err != nil {
			fc.logger.Warn("failed to close file", "path", path, "error", err)
		}
	}
}

func (fc *fileCacheImpl) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.cache)
}

func (fc *fileCacheImpl) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.cache)
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	stats := fc.stats
	stats.FilesCached = cached
	return stats
}

func (fc *fileCacheImpl) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	for path, mf := range fc.cache {
		fc.releaseLocked(path, mf)
	}
	fc.cache = make(map[string]*MappedFile)

	fc.logger.Debug("file cache closed",
		"files_loaded", fc.stats.FilesLoaded,
		"cache_hits", fc.stats.CacheHits,
		"cache_misses", fc.stats.CacheMisses,
		"mmap_failures", fc.stats.MmapFailures)
	return nil
}

func (fc *fileCacheImpl) bump(update func(*FileCacheStats)) {
	fc.statsMu.Lock()
	update(&fc.stats)
	fc.statsMu.Unlock()
}
