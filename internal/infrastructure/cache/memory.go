package cache

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	Entry
	expiresAt time.Time
}

// MemoryViewCache caché en memoria del proceso. Las entradas vencidas se descartan al leerlas
// o al escribir por encima.
type MemoryViewCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

var _ ViewCache = (*MemoryViewCache)(nil)

// NewMemoryViewCache construye una caché vacía.
func NewMemoryViewCache() *MemoryViewCache {
	return &MemoryViewCache{entries: make(map[string]memEntry), now: time.Now}
}

func (c *MemoryViewCache) Get(_ context.Context, key string) (*Entry, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, nil
	}
	out := e.Entry
	return &out, nil
}

func (c *MemoryViewCache) Set(_ context.Context, key string, entry Entry, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	body := make([]byte, len(entry.Body))
	copy(body, entry.Body)
	entry.Body = body

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memEntry{Entry: entry, expiresAt: c.now().Add(ttl)}
	return nil
}

func (c *MemoryViewCache) Revalidate(_ context.Context, path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if underPath(key, path) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Len número de entradas (vencidas incluidas).
func (c *MemoryViewCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
