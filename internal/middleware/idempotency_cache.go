package middleware

import (
	"sync"
	"time"
)

// idempotencyCache stores completed responses and tracks keys whose first
// request is still running.
type idempotencyCache struct {
	mu       sync.Mutex
	items    map[string]*cachedResponse
	inFlight map[string]struct{}
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// newIdempotencyCache creates a cache and starts its cleanup loop.
func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items:    make(map[string]*cachedResponse),
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
	go c.startCleanup()
	return c
}

// Begin returns the cached response for key if one is live. Otherwise it
// marks key in flight and reports started=true, unless another request
// already holds it.
func (c *idempotencyCache) Begin(key string) (resp *cachedResponse, started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if r, ok := c.items[key]; ok {
		if c.now().Sub(r.Timestamp) <= c.ttl {
			return r, false
		}
		delete(c.items, key)
	}
	if _, busy := c.inFlight[key]; busy {
		return nil, false
	}
	c.inFlight[key] = struct{}{}
	return nil, true
}

// Finish releases key and stores resp when it is non-nil.
func (c *idempotencyCache) Finish(key string, resp *cachedResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, key)
	if resp != nil {
		resp.Timestamp = c.now()
		c.items[key] = resp
	}
}

// Len returns the number of stored responses.
func (c *idempotencyCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stop ends the cleanup loop.
func (c *idempotencyCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			return
		}
	}
}

// cleanup removes expired entries.
func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, resp := range c.items {
		if now.Sub(resp.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}
