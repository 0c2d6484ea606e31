package dataset

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes parsed tables by absolute file path. Entries live for the
// process lifetime; there is no eviction and no invalidation besides
// restart. Concurrent loads of the same path collapse into a single parse.
type Cache struct {
	mu     sync.Mutex
	tables map[string]*Table

	group    singleflight.Group
	enabled  bool
	maxBytes int64
}

func NewCache(enabled bool, maxBytes int64) *Cache {
	return &Cache{
		tables:   make(map[string]*Table),
		enabled:  enabled,
		maxBytes: maxBytes,
	}
}

// Load returns the parsed table for path, reading and parsing the file on
// first use. Parse failures are not cached; a later load retries the file.
func (c *Cache) Load(path string) (*Table, error) {
	if !c.enabled {
		return Load(path, c.maxBytes)
	}

	c.mu.Lock()
	t, ok := c.tables[path]
	c.mu.Unlock()
	if ok {
		return t, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		t, err := Load(path, c.maxBytes)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.tables[path] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

// Len returns the number of cached tables.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}
