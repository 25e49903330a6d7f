package data

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dynamic-pricing/internal/model"
)

// SolveEntry is a solved pricing problem kept for reuse by the API.
type SolveEntry struct {
	ID       string
	Params   model.PricingParams
	Policy   *model.Policy
	Computed int
}

type cacheItem struct {
	entry     *SolveEntry
	expiresAt time.Time
}

// SolveCache provides in-memory caching of solved policies, addressable by
// parameter hash or by entry ID. Optimizers themselves are single-use; this
// cache is what lets concurrent API requests share results.
type SolveCache struct {
	mu    sync.RWMutex
	byKey map[string]*cacheItem
	byID  map[string]*cacheItem
	ttl   time.Duration

	stop chan struct{}
	once sync.Once
}

// NewSolveCache returns a cache whose entries expire after ttl. A ttl <= 0
// disables caching (Get always misses, Set is a no-op) and nil is returned.
func NewSolveCache(ttl time.Duration) *SolveCache {
	if ttl <= 0 {
		return nil
	}
	c := &SolveCache{
		byKey: make(map[string]*cacheItem),
		byID:  make(map[string]*cacheItem),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get retrieves a cached entry by parameter key if available and not expired.
func (c *SolveCache) Get(key string) (*SolveEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return live(c.byKey[key])
}

// GetByID retrieves a cached entry by its ID.
func (c *SolveCache) GetByID(id string) (*SolveEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return live(c.byID[id])
}

// Set stores an entry under key and under entry.ID.
func (c *SolveCache) Set(key string, entry *SolveEntry) {
	if c == nil || entry == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	it := &cacheItem{entry: entry, expiresAt: time.Now().Add(c.ttl)}
	if old, ok := c.byKey[key]; ok {
		delete(c.byID, old.entry.ID)
	}
	c.byKey[key] = it
	c.byID[entry.ID] = it
}

func (c *SolveCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byKey)
}

// Clear removes all entries from the cache
func (c *SolveCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byKey = make(map[string]*cacheItem)
	c.byID = make(map[string]*cacheItem)
}

// Close stops the cleanup goroutine.
func (c *SolveCache) Close() {
	if c == nil {
		return
	}
	c.once.Do(func() { close(c.stop) })
}

func (c *SolveCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.evictExpired(time.Now())
		}
	}
}

func (c *SolveCache) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, it := range c.byKey {
		if now.After(it.expiresAt) {
			delete(c.byKey, key)
			delete(c.byID, it.entry.ID)
		}
	}
}

func live(it *cacheItem) (*SolveEntry, bool) {
	if it == nil || time.Now().After(it.expiresAt) {
		return nil, false
	}
	return it.entry, true
}

// CacheKey creates a deterministic key for a parameter set.
func CacheKey(p model.PricingParams) string {
	p = p.Clone()
	raw, err := json.Marshal(p)
	if err != nil {
		// Only NaN/Inf fail to marshal.
		raw = []byte(fmt.Sprintf("%#v", p))
	}
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}
