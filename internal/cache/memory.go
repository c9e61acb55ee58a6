package cache

import (
	"context"
	"sync"
	"time"

	"aubri-backend/internal/domain"
)

// memoryCache is the single-instance fallback used when redis is not
// configured or unreachable.
type memoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	gen     int64
	props   []domain.Property
	expires time.Time
}

func NewMemoryCache(ttl time.Duration) ListingCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoryCache{ttl: ttl, now: time.Now}
}

func (c *memoryCache) GetApproved(context.Context) ([]domain.Property, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.props == nil || !c.now().Before(c.expires) {
		return nil, false
	}
	return append([]domain.Property(nil), c.props...), true
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memoryCache) SetApproved(_ context.Context, gen int64, props []domain.Property) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.props = append(make([]domain.Property, 0, len(props)), props...)
	c.expires = c.now().Add(c.ttl)
}

func (c *memoryCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.props = nil
}
