// Package simcache memoizes similarity scores for ordered synset pairs.
package simcache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cognicore/wnsim/pkg/wnsim/wordnet"
)

// DefaultCapacity is the number of scores kept when no capacity is
// configured.
const DefaultCapacity = 5000

// Cache maps an ordered synset pair to a previously computed score.
//
// A negative capacity disables eviction. A capacity of zero keeps nothing.
// Otherwise the least recently used entry is evicted once the capacity is
// exceeded; both lookups and stores count as use.
//
// The key is order sensitive: a score stored for (a, b) is not found when
// looking up (b, a).
type Cache struct {
	capacity  int
	bounded   *lru.Cache[string, float64]
	unbounded map[string]float64
	hits      uint64
	misses    uint64
}

// Stats reports cache usage.
type Stats struct {
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Len      int    `json:"len"`
	Capacity int    `json:"capacity"`
}

// New creates a cache holding at most capacity scores.
func New(capacity int) *Cache {
	c := &Cache{capacity: capacity}
	switch {
	case capacity < 0:
		c.unbounded = make(map[string]float64)
	case capacity > 0:
		// lru.New only fails for non-positive sizes
		c.bounded, _ = lru.New[string, float64](capacity)
	}
	return c
}

// Key builds the cache key for the ordered pair (a, b), e.g. "2084071n-2121620n".
// Offsets repeat across parts of speech, so the POS is part of the key.
func Key(a, b *wordnet.Synset) string {
	return a.ID().String() + "-" + b.ID().String()
}

// Lookup returns the score stored for (a, b), if any.
func (c *Cache) Lookup(a, b *wordnet.Synset) (float64, bool) {
	key := Key(a, b)

	var (
		score float64
		ok    bool
	)
	switch {
	case c.unbounded != nil:
		score, ok = c.unbounded[key]
	case c.bounded != nil:
		score, ok = c.bounded.Get(key)
	}

	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return score, ok
}

// Store records score for (a, b) and returns it.
func (c *Cache) Store(a, b *wordnet.Synset, score float64) float64 {
	key := Key(a, b)
	switch {
	case c.unbounded != nil:
		c.unbounded[key] = score
	case c.bounded != nil:
		c.bounded.Add(key, score)
	}
	return score
}

// Len returns the number of cached scores.
func (c *Cache) Len() int {
	switch {
	case c.unbounded != nil:
		return len(c.unbounded)
	case c.bounded != nil:
		return c.bounded.Len()
	}
	return 0
}

// Capacity returns the configured capacity.
func (c *Cache) Capacity() int { return c.capacity }

// Stats returns hit/miss counters and the current size.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		Len:      c.Len(),
		Capacity: c.capacity,
	}
}
