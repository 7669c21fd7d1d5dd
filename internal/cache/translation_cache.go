package cache

import (
	"sync"
	"time"
)

// TranslationCache keeps translated predicates by key.
// Entries never expire: a translation only depends on its key and the
// dialect owning the cache, and both are immutable.
type TranslationCache struct {
	mu      sync.Mutex
	entries map[string]*Entry
	maxSize int
	hits    int64
	misses  int64
}

// Entry representa uma tradução em cache
type Entry struct {
	SQL         string
	OK          bool
	LastUsed    time.Time
	AccessCount int64
}

// NewTranslationCache creates a cache holding at most maxSize entries.
// A non-positive size disables caching.
func NewTranslationCache(maxSize int) *TranslationCache {
	return &TranslationCache{
		entries: make(map[string]*Entry),
		maxSize: maxSize,
	}
}

// Get retorna a tradução se existir
func (c *TranslationCache) Get(key string) (string, bool, bool) {
	if c == nil {
		return "", false, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[key]
	if !exists {
		c.misses++
		return "", false, false
	}

	c.hits++
	e.LastUsed = time.Now()
	e.AccessCount++
	return e.SQL, e.OK, true
}

// Put adiciona uma tradução ao cache
func (c *TranslationCache) Put(key, sql string, ok bool) {
	if c == nil || c.maxSize <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictLRU()
	}

	c.entries[key] = &Entry{
		SQL:         sql,
		OK:          ok,
		LastUsed:    time.Now(),
		AccessCount: 1,
	}
}

// evictLRU remove o item menos usado recentemente
func (c *TranslationCache) evictLRU() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, e := range c.entries {
		if first || e.LastUsed.Before(oldestTime) {
			oldestKey = key
			oldestTime = e.LastUsed
			first = false
		}
	}

	if !first {
		delete(c.entries, oldestKey)
	}
}

// Stats retorna estatísticas do cache
func (c *TranslationCache) Stats() (size int, hits, misses int64) {
	if c == nil {
		return 0, 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), c.hits, c.misses
}
