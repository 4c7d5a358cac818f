// Package cache defines the contract for memoising allocation searches.
package cache

// Cache stores allocation vectors keyed by a search signature.
// Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) ([]int, bool)
	Set(key string, value []int)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics interface {
	Cache
	Metrics() Metrics
}

// HitRate returns the fraction of lookups served from the cache.
func (m Metrics) HitRate() float64 {
	total := m.Hits + m.Misses
	if total == 0 {
		return 0
	}
	return float64(m.Hits) / float64(total)
}
