package generator

import (
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gnana997/nativegen/pkg/schema"
)

// defaultCacheSize bounds the number of cached per-file schemas. Component
// libraries rarely exceed a few hundred spec files.
const defaultCacheSize = 512

type cacheEntry struct {
	modTime time.Time
	size    int64
	schema  *schema.ComponentSchema
}

// SchemaCache memoizes built schemas keyed by absolute file path,
// invalidated by mtime/size changes. It exists for watch mode and MCP
// serving, where the same unchanged files are rebuilt repeatedly.
type SchemaCache struct {
	entries *lru.Cache[string, cacheEntry]
}

// NewSchemaCache creates a cache holding up to size entries; size <= 0 uses
// the default.
func NewSchemaCache(size int) (*SchemaCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &SchemaCache{entries: entries}, nil
}

// Lookup returns the cached schema when the file is unchanged since it was
// built.
func (c *SchemaCache) Lookup(path string, info fs.FileInfo) (*schema.ComponentSchema, bool) {
	entry, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	if !entry.modTime.Equal(info.ModTime()) || entry.size != info.Size() {
		c.entries.Remove(path)
		return nil, false
	}
	return entry.schema, true
}

// Put records a freshly built schema.
func (c *SchemaCache) Put(path string, info fs.FileInfo, s *schema.ComponentSchema) {
	c.entries.Add(path, cacheEntry{modTime: info.ModTime(), size: info.Size(), schema: s})
}

// Remove drops a cached entry (file deleted or invalidated).
func (c *SchemaCache) Remove(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached schemas.
func (c *SchemaCache) Len() int {
	return c.entries.Len()
}
