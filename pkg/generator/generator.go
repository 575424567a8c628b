package generator

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gnana997/nativegen/pkg/builder"
	"github.com/gnana997/nativegen/pkg/parser"
	"github.com/gnana997/nativegen/pkg/resolver"
	"github.com/gnana997/nativegen/pkg/schema"
	"github.com/gnana997/nativegen/pkg/util"
)

// Generator builds component schemas for a library of spec files.
type Generator struct {
	pm    *parser.Manager
	files util.FileCache
	cache *SchemaCache
	store *Store
	log   *slog.Logger
}

// New creates a generator with all required dependencies. A nil logger uses
// slog.Default(). Close() must be called to release parser and mmap
// resources.
func New(logger *slog.Logger) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := NewSchemaCache(0)
	if err != nil {
		return nil, err
	}
	return &Generator{
		pm:    parser.NewManager(logger),
		files: util.NewFileCache(&util.FileCacheConfig{Logger: logger}),
		cache: cache,
		store: NewStore(),
		log:   logger,
	}, nil
}

// Store returns the generator's schema store, shared with watch mode and
// the MCP server.
func (g *Generator) Store() *Store {
	return g.store
}

// Close releases parser pools and mapped files.
func (g *Generator) Close() error {
	err := g.files.Close()
	if cerr := g.pm.Close(); err == nil {
		err = cerr
	}
	return err
}

// Run discovers and builds every spec file under rootDir. A file that
// fails to build is logged and counted but does not abort the run; the
// hard stop is per file, not per library.
func (g *Generator) Run(rootDir string, cfg Config) (*schema.Library, *Stats, error) {
	totalStart := time.Now()
	stats := &Stats{}

	discoveryStart := time.Now()
	files, err := DiscoverFiles(rootDir, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("discovery failed: %w", err)
	}
	stats.FilesDiscovered = len(files)
	stats.DiscoveryTimeMs = time.Since(discoveryStart).Milliseconds()

	g.log.Info("discovery complete", "files", len(files), "ms", stats.DiscoveryTimeMs)

	buildStart := time.Now()
	g.buildAll(files, stats)
	stats.BuildTimeMs = time.Since(buildStart).Milliseconds()
	stats.TotalTimeMs = time.Since(totalStart).Milliseconds()

	g.log.Info("build complete",
		"built", stats.FilesBuilt, "failed", stats.FilesFailed,
		"cache_hits", stats.CacheHits, "ms", stats.BuildTimeMs)

	return g.store.Library(), stats, nil
}

// buildAll builds files concurrently, sized to the parser pool so workers
// never block waiting for a parser.
func (g *Generator) buildAll(files []string, stats *Stats) {
	workers := util.GetOptimalPoolSize()
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		return
	}

	paths := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				built, cached, err := g.buildFile(path)
				mu.Lock()
				if err != nil {
					stats.FilesFailed++
					mu.Unlock()
					g.log.Warn("schema build failed", "file", path, "error", err)
					continue
				}
				stats.FilesBuilt++
				if cached {
					stats.CacheHits++
				}
				mu.Unlock()
				g.store.Put(built)
			}
		}()
	}

	for _, path := range files {
		paths <- path
	}
	close(paths)
	wg.Wait()
}

// BuildFile builds (or returns the cached) schema for one spec file and
// records it in the store.
func (g *Generator) BuildFile(path string) (*schema.ComponentSchema, error) {
	built, _, err := g.buildFile(path)
	if err != nil {
		return nil, err
	}
	g.store.Put(built)
	return built, nil
}

func (g *Generator) buildFile(path string) (*schema.ComponentSchema, bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, false, err
	}

	if cached, ok := g.cache.Lookup(abs, info); ok {
		return cached, true, nil
	}

	source, err := g.files.ReadAll(abs)
	if err != nil {
		return nil, false, err
	}

	tree, err := g.pm.ParseFile(source, abs)
	if err != nil {
		return nil, false, err
	}
	defer tree.Close()

	built, err := builder.Build(ModuleName(abs), tree.RootNode(), source, resolver.New(source))
	if err != nil {
		return nil, false, err
	}

	g.cache.Put(abs, info, built)
	return built, false, nil
}

// Invalidate drops all cached state for a file so the next build re-reads
// it from disk. Used by the watcher on change events.
func (g *Generator) Invalidate(path string) {
	if abs, err := filepath.Abs(path); err == nil {
		g.cache.Remove(abs)
		g.files.Invalidate(abs)
	}
}

// ModuleName returns the schema module name for a spec file path: the base
// name without extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteLibrary writes the combined library JSON to path. Map keys marshal
// in sorted order, so the output is deterministic.
func WriteLibrary(library *schema.Library, path string) error {
	data, err := json.MarshalIndent(library, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal library: %w", err)
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write library: %w", err)
	}
	return nil
}
