// Package parser manages tree-sitter parsers for the languages component
// spec files are written in (TypeScript, TSX, JavaScript).
package parser

import (
	"fmt"
	"log/slog"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/nativegen/pkg/util"
)

// poolKey uniquely identifies a parser pool (language + TSX variant).
type poolKey struct {
	lang  Language
	isTSX bool
}

// Manager manages tree-sitter parsers with lazy per-language pools.
//
// Callers own returned Tree instances and must call tree.Close() after use;
// the Manager owns the pools and must itself be closed via Close().
// Safe for concurrent use: multiple goroutines can parse the same language
// simultaneously, bounded by the pool size.
type Manager struct {
	pools map[poolKey]*parserPool
	mutex sync.RWMutex

	logger *slog.Logger

	stats struct {
		parsesCalled int
	}
}

// NewManager creates a Manager. A nil logger uses slog.Default().
// The returned Manager must be closed via Close() to free parser resources.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:  make(map[poolKey]*parserPool),
		logger: logger,
	}
}

// Parse parses source code using the given language grammar. The isTSX flag
// is only meaningful for TypeScript, where it enables JSX support.
//
// Returns a Tree that MUST be closed by the caller via tree.Close().
func (m *Manager) Parse(source []byte, lang Language, isTSX bool) (*ts.Tree, error) {
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("cannot parse unknown language")
	}

	m.mutex.Lock()
	m.stats.parsesCalled++
	m.mutex.Unlock()

	pool, err := m.getOrCreatePool(lang, isTSX)
	if err != nil {
		return nil, fmt.Errorf("failed to get pool for %s: %w", lang, err)
	}

	parser, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire parser: %w", err)
	}
	tree := parser.Parse(source, nil)
	pool.release(parser)

	if tree == nil {
		return nil, fmt.Errorf("parser returned nil tree")
	}

	// Partial trees are still useful to the schema builder; just log.
	if tree.RootNode().HasError() {
		m.logger.Warn("parse tree contains errors", "language", lang.String())
	}

	return tree, nil
}

// ParseFile parses a file's contents, detecting the language from the path.
//
// Returns a Tree that MUST be closed by the caller via tree.Close().
func (m *Manager) ParseFile(source []byte, filePath string) (*ts.Tree, error) {
	lang := DetectLanguage(filePath)
	if lang == LanguageUnknown {
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}
	return m.Parse(source, lang, IsTSXFile(filePath))
}

// Close releases all parser pools. The Manager cannot be used afterwards.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for key, pool := range m.pools {
		if pool != nil {
			pool.close()
			m.logger.Debug("closed parser pool",
				"language", key.lang.String(), "isTSX", key.isTSX)
		}
	}
	m.pools = make(map[poolKey]*parserPool)
	return nil
}

// getOrCreatePool returns an existing parser pool or creates a new one,
// using double-checked locking so pool creation happens once per key.
func (m *Manager) getOrCreatePool(lang Language, isTSX bool) (*parserPool, error) {
	key := poolKey{lang: lang, isTSX: isTSX}

	m.mutex.RLock()
	pool, exists := m.pools[key]
	m.mutex.RUnlock()
	if exists {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	if pool, exists = m.pools[key]; exists {
		return pool, nil
	}

	langPtr, err := languagePointer(lang, isTSX)
	if err != nil {
		return nil, err
	}

	poolSize := util.GetOptimalPoolSize()
	pool = newParserPool(lang, langPtr, isTSX, poolSize, m.logger)
	m.pools[key] = pool

	m.logger.Debug("created parser pool",
		"language", lang.String(), "isTSX", isTSX, "maxSize", poolSize)
	return pool, nil
}

// languagePointer returns the tree-sitter grammar pointer for a language.
func languagePointer(lang Language, isTSX bool) (unsafe.Pointer, error) {
	switch lang {
	case LanguageTypeScript:
		if isTSX {
			return ts_typescript.LanguageTSX(), nil
		}
		return ts_typescript.LanguageTypescript(), nil
	case LanguageJavaScript:
		return ts_javascript.Language(), nil
	default:
		return nil, fmt.Errorf("unsupported language: %s", lang.String())
	}
}

// Stats contains parser usage counters.
type Stats struct {
	// ParsersCreated is the total number of parser instances created.
	ParsersCreated int
	// ParsesCalled is the total number of Parse() calls.
	ParsesCalled int
}

// GetStats returns parser usage statistics.
func (m *Manager) GetStats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	total := 0
	for _, pool := range m.pools {
		total += pool.getCreatedCount()
	}
	return Stats{ParsersCreated: total, ParsesCalled: m.stats.parsesCalled}
}
