package expiry

import (
	"sync"
	"time"

	"github.com/gridsix/g6/internal/market"
)

// dateCache holds resolved expiry date lists per index for the process
// lifetime. There is no TTL; Invalidate (or restart) is the only way to
// force a fresh lookup.
type dateCache struct {
	mu    sync.RWMutex
	dates map[market.Index][]time.Time
}

func newDateCache() *dateCache {
	return &dateCache{dates: make(map[market.Index][]time.Time)}
}

func (c *dateCache) get(index market.Index) ([]time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dates, ok := c.dates[index]
	return dates, ok
}

func (c *dateCache) put(index market.Index, dates []time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dates[index] = dates
}

func (c *dateCache) invalidate(index market.Index) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.dates, index)
}
