package generator

import (
	"sort"
	"strings"
	"sync"

	"github.com/gnana997/nativegen/pkg/schema"
)

// Store holds the current set of built component schemas, keyed by module
// filename. It is the shared state between a generation run, watch mode,
// and the MCP server, and is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	modules map[string]*schema.ComponentSchema
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{modules: make(map[string]*schema.ComponentSchema)}
}

// Put inserts or replaces the schema for its module filename.
func (s *Store) Put(componentSchema *schema.ComponentSchema) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules[componentSchema.Filename] = componentSchema
}

// Remove drops a module from the store. Used when a spec file is deleted.
func (s *Store) Remove(filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.modules, filename)
}

// Get returns the schema for a component by its component name.
func (s *Store) Get(componentName string) (*schema.ComponentSchema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, module := range s.modules {
		if module.ComponentName == componentName {
			return module, true
		}
	}
	return nil, false
}

// Summary is a lightweight component listing entry.
type Summary struct {
	ComponentName string `json:"componentName"`
	Filename      string `json:"filename"`
	Props         int    `json:"props"`
	Events        int    `json:"events"`
	Commands      int    `json:"commands"`
	HasState      bool   `json:"hasState"`
}

// List returns summaries for every stored component, sorted by name.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]Summary, 0, len(s.modules))
	for _, module := range s.modules {
		summaries = append(summaries, summarize(module))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ComponentName < summaries[j].ComponentName
	})
	return summaries
}

// Search returns summaries whose component name or filename contains the
// keyword, case-insensitively. An empty keyword matches everything.
func (s *Store) Search(keyword string) []Summary {
	keyword = strings.ToLower(keyword)
	var matches []Summary
	for _, summary := range s.List() {
		if keyword == "" ||
			strings.Contains(strings.ToLower(summary.ComponentName), keyword) ||
			strings.Contains(strings.ToLower(summary.Filename), keyword) {
			matches = append(matches, summary)
		}
	}
	return matches
}

// Library snapshots the store as a combined library document.
func (s *Store) Library() *schema.Library {
	s.mu.RLock()
	defer s.mu.RUnlock()

	modules := make(map[string]*schema.ComponentSchema, len(s.modules))
	for filename, module := range s.modules {
		modules[filename] = module
	}
	return &schema.Library{Modules: modules}
}

// Len returns the number of stored modules.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.modules)
}

func summarize(module *schema.ComponentSchema) Summary {
	return Summary{
		ComponentName: module.ComponentName,
		Filename:      module.Filename,
		Props:         len(module.Props),
		Events:        len(module.Events),
		Commands:      len(module.Commands),
		HasState:      module.State != nil,
	}
}
