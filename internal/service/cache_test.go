package service

import (
	"sync"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/internal/service/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cache.CacheWithMetrics = (*ttlCache)(nil)

func TestTTLCache_Get(t *testing.T) {
	tests := []struct {
		name          string
		setupCache    func() *ttlCache
		key           string
		expectedValue []int
		expectedFound bool
	}{
		{
			name: "returns value when exists and not expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, time.Minute)
				c.Set("1800|300:6", []int{6})
				return c
			},
			key:           "1800|300:6",
			expectedValue: []int{6},
			expectedFound: true,
		},
		{
			name: "returns false when key not found",
			setupCache: func() *ttlCache {
				return newTTLCache(10, time.Minute)
			},
			key:           "missing",
			expectedFound: false,
		},
		{
			name: "returns false when expired",
			setupCache: func() *ttlCache {
				c := newTTLCache(10, 50*time.Millisecond)
				c.Set("1800|700:6", []int{0})
				time.Sleep(100 * time.Millisecond)
				return c
			},
			key:           "1800|700:6",
			expectedFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.setupCache()
			defer c.Stop()

			value, found := c.Get(tt.key)

			assert.Equal(t, tt.expectedFound, found)
			if tt.expectedFound {
				assert.Equal(t, tt.expectedValue, value)
			}
		})
	}
}

func TestTTLCache_ReturnsCopies(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	stored := []int{1, 2, 3}
	c.Set("k", stored)
	stored[0] = 99

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, got)

	got[1] = 42
	again, _ := c.Get("k")
	assert.Equal(t, []int{1, 2, 3}, again)
}

func TestTTLCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newTTLCache(2, time.Minute)
	defer c.Stop()

	c.Set("a", []int{1})
	c.Set("b", []int{2})
	_, _ = c.Get("a")
	c.Set("c", []int{3})

	_, okA := c.Get("a")
	_, okB := c.Get("b")
	_, okC := c.Get("c")

	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, int64(1), c.Metrics().Evictions)
}

func TestTTLCache_SetUpdatesExisting(t *testing.T) {
	c := newTTLCache(2, time.Minute)
	defer c.Stop()

	c.Set("a", []int{1})
	c.Set("a", []int{5})

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, []int{5}, got)
	assert.Equal(t, 1, c.Metrics().Size)
}

func TestTTLCache_InvalidateAndClear(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	c.Set("a", []int{1})
	c.Set("b", []int{2})

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	m := c.Metrics()
	assert.Equal(t, 0, m.Size)
	assert.Equal(t, int64(0), m.Hits)
	assert.Equal(t, int64(0), m.Misses)
}

func TestTTLCache_Metrics(t *testing.T) {
	c := newTTLCache(10, time.Minute)
	defer c.Stop()

	c.Set("a", []int{1})
	_, _ = c.Get("a")
	_, _ = c.Get("b")

	m := c.Metrics()
	assert.Equal(t, int64(1), m.Hits)
	assert.Equal(t, int64(1), m.Misses)
	assert.Equal(t, 1, m.Size)
	assert.Equal(t, 10, m.Capacity)
	assert.InDelta(t, 0.5, m.HitRate(), 0.0001)
}

func TestTTLCache_RemoveExpired(t *testing.T) {
	c := newTTLCache(10, 10*time.Millisecond)
	defer c.Stop()

	c.Set("a", []int{1})
	time.Sleep(30 * time.Millisecond)
	c.removeExpired()

	assert.Equal(t, 0, c.Metrics().Size)
}

func TestTTLCache_StopIsIdempotent(t *testing.T) {
	c := newTTLCache(1, time.Minute)
	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := newTTLCache(64, time.Minute)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + (i+j)%26))
				c.Set(key, []int{i, j})
				_, _ = c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Metrics().Size, 64)
}
