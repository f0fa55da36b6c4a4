package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"bbmi-data-export/internal/domain/logos"
	"bbmi-data-export/internal/output"
)

// cachedSearch mirrors the searchteams.php body so cache files stay readable
// by anything that consumed the raw API responses.
type cachedSearch struct {
	Teams []logos.Team `json:"teams"`
}

// SearchCache keeps team search results keyed by the name that was searched.
// A nil entry records a known miss or a failed lookup and is not retried.
type SearchCache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]*cachedSearch
	dirty   bool
}

// NewSearchCache constructs an empty cache persisted at path.
func NewSearchCache(path string) *SearchCache {
	return &SearchCache{
		path:    path,
		entries: make(map[string]*cachedSearch),
	}
}

// LoadSearchCache reads the cache at path. A missing file yields an empty cache.
func LoadSearchCache(path string) (*SearchCache, error) {
	c := NewSearchCache(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read search cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("decode search cache %s: %w", path, err)
	}
	if c.entries == nil {
		c.entries = make(map[string]*cachedSearch)
	}
	return c, nil
}

// Get returns the cached teams for name. ok is false when name was never searched;
// a cached miss returns ok with no teams.
func (c *SearchCache) Get(name string) (teams []logos.Team, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[name]
	if !ok || entry == nil {
		return nil, ok
	}
	return append([]logos.Team(nil), entry.Teams...), true
}

// Set records the result of searching name.
func (c *SearchCache) Set(name string, teams []logos.Team) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = &cachedSearch{Teams: append([]logos.Team(nil), teams...)}
	c.dirty = true
}

// SetMiss records that name has no usable result.
func (c *SearchCache) SetMiss(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[name] = nil
	c.dirty = true
}

// Len reports the number of cached names.
func (c *SearchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Names returns the cached names in sorted order.
func (c *SearchCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes the cache when it changed since the last load or save.
// A cache without a path lives only in memory.
func (c *SearchCache) Save() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty || c.path == "" {
		return false, nil
	}
	data, err := output.EncodeJSON(c.entries)
	if err != nil {
		return false, fmt.Errorf("encode search cache: %w", err)
	}
	changed, err := output.WriteFileAtomic(c.path, data)
	if err != nil {
		return false, fmt.Errorf("write search cache: %w", err)
	}
	c.dirty = false
	return changed, nil
}
