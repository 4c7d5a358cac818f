package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/fulfillment-service/internal/metrics"
	"github.com/guttosm/fulfillment-service/internal/service/cache"
)

// DefaultCapacityGrams is the mass ceiling of a single package.
const DefaultCapacityGrams = 1800

// PackerOption configures a Packer.
type PackerOption func(*Packer)

// Packer selects the heaviest set of units that fits under a mass ceiling.
// It holds no per-search state and is safe for concurrent use.
type Packer struct {
	capacity int
	cache    cache.Cache
}

// NewPacker creates a Packer with the given capacity in grams.
// A non-positive capacity falls back to DefaultCapacityGrams.
func NewPacker(capacity int, opts ...PackerOption) *Packer {
	if capacity <= 0 {
		capacity = DefaultCapacityGrams
	}
	p := &Packer{capacity: capacity}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithSearchCache enables memoisation of search results with the given capacity and TTL.
func WithSearchCache(capacity int, ttl time.Duration) PackerOption {
	return func(p *Packer) {
		if capacity > 0 {
			p.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithSearchCacheInterface allows injecting a custom cache implementation.
func WithSearchCacheInterface(c cache.Cache) PackerOption {
	return func(p *Packer) {
		p.cache = c
	}
}

// Capacity returns the package mass ceiling in grams.
func (p *Packer) Capacity() int {
	return p.capacity
}

// Pack returns how many units of each product to put in the next package.
// masses[i] is the unit mass of product i and limits[i] the most units of it
// that may be taken, the lower of the remaining request and the stock on hand.
// The result has one entry per product and is all zero when nothing fits.
func (p *Packer) Pack(masses, limits []int) []int {
	start := time.Now()

	var key string
	if p.cache != nil {
		key = p.signature(masses, limits)
		if counts, ok := p.cache.Get(key); ok {
			metrics.RecordPackerSearch(time.Since(start), "cache")
			return counts
		}
	}

	counts := search(p.capacity, masses, limits)

	if p.cache != nil {
		p.cache.Set(key, counts)
	}
	metrics.RecordPackerSearch(time.Since(start), "search")
	return counts
}

// InvalidateCache drops memoised results, e.g. after unit masses change.
func (p *Packer) InvalidateCache() {
	if p.cache != nil {
		p.cache.Clear()
	}
}

// Stop releases background resources held by the cache.
func (p *Packer) Stop() {
	if p.cache != nil {
		p.cache.Stop()
	}
}

func (p *Packer) signature(masses, limits []int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(p.capacity))
	for i := range masses {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(masses[i]))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(limits[i]))
	}
	return b.String()
}

// frame is one node of the search tree. counts is never mutated once the
// frame is pushed; children that take a unit get their own copy.
type frame struct {
	index     int
	remaining int
	mass      int
	counts    []int
}

// search walks every feasible combination depth first. At each node it tries
// one more unit of the current product before moving to the next product, and
// keeps the first candidate reaching the highest total mass.
func search(capacity int, masses, limits []int) []int {
	n := len(masses)
	best := make([]int, n)
	bestMass := 0

	stack := []frame{{index: 0, remaining: capacity, counts: make([]int, n)}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.index >= n || f.remaining == 0 {
			if f.mass > bestMass {
				bestMass = f.mass
				copy(best, f.counts)
				if bestMass == capacity {
					break
				}
			}
			continue
		}

		i := f.index
		// Pushed first so it is explored after the take branch.
		stack = append(stack, frame{index: i + 1, remaining: f.remaining, mass: f.mass, counts: f.counts})

		if f.counts[i] < limits[i] && masses[i] <= f.remaining {
			taken := make([]int, n)
			copy(taken, f.counts)
			taken[i]++
			stack = append(stack, frame{
				index:     i,
				remaining: f.remaining - masses[i],
				mass:      f.mass + masses[i],
				counts:    taken,
			})
		}
	}

	return best
}
