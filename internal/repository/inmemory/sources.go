package inmemory

import (
	"sync"
	"time"

	incomedomain "smartbudget-go/internal/domain/income"
)

// SourcesCache holds the global income source list for a fixed TTL.
type SourcesCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	value     []incomedomain.Source
	expiresAt time.Time
	now       func() time.Time
}

func NewSourcesCache(ttl time.Duration) *SourcesCache {
	return &SourcesCache{ttl: ttl, now: time.Now}
}

func (c *SourcesCache) GetSources() ([]incomedomain.Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == nil || !c.expiresAt.After(c.now()) {
		return nil, false
	}
	return append([]incomedomain.Source(nil), c.value...), true
}

func (c *SourcesCache) SetSources(sources []incomedomain.Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl <= 0 || sources == nil {
		c.value = nil
		return
	}
	c.value = append([]incomedomain.Source(nil), sources...)
	c.expiresAt = c.now().Add(c.ttl)
}

func (c *SourcesCache) Clear() {
	c.mu.Lock()
	c.value = nil
	c.mu.Unlock()
}
