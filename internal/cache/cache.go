// Package cache memoizes optimizer results keyed by a hash of their inputs.
// The optimizer is deterministic, so identical inputs always map to the
// same result.
package cache

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"github.com/napolitain/solver-slayer/internal/models"
)

// Key hashes the task menu (in input order) and the settings.
func Key(tasks []*models.Task, settings models.Settings) uint64 {
	hasher := xxhash.New()

	writeFloat(hasher, settings.TaskPointRevenue)
	writeFloat(hasher, settings.SkipPrice)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(settings.BlockSlots)))
	_, _ = hasher.Write(buf[:])
	_, _ = hasher.Write([]byte{0}) // Section separator

	for _, t := range tasks {
		_, _ = hasher.WriteString(t.Name())
		_, _ = hasher.Write([]byte{0})
		writeFloat(hasher, t.ValuePerHour())
		writeFloat(hasher, t.Weight())
		writeFloat(hasher, t.MinHours())
		writeFloat(hasher, t.MaxHours())
		if t.IsBoss() {
			_, _ = hasher.Write([]byte{1})
		} else {
			_, _ = hasher.Write([]byte{0})
		}
	}

	return hasher.Sum64()
}

func writeFloat(hasher *xxhash.Digest, f float64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
	_, _ = hasher.Write(buf[:])
}

// Cache is a bounded result cache. Concurrent computations of the same key
// are collapsed into one.
type Cache struct {
	maxEntries int

	mu      sync.Mutex
	entries map[uint64]*models.Result
	order   []uint64 // insertion order, oldest first

	group singleflight.Group
}

// New creates a cache holding at most maxEntries results. Zero disables caching.
func New(maxEntries int) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		entries:    make(map[uint64]*models.Result),
	}
}

// Get returns a cached result.
func (c *Cache) Get(key uint64) (*models.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Do returns the cached result for key or computes and stores it. The
// boolean reports whether the result came from the cache. Errors are not cached.
func (c *Cache) Do(key uint64, compute func() (*models.Result, error)) (*models.Result, bool, error) {
	if r, ok := c.Get(key); ok {
		return r, true, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%016x", key), func() (any, error) {
		r, err := compute()
		if err != nil {
			return nil, err
		}
		c.put(key, r)
		return r, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*models.Result), false, nil
}

func (c *Cache) put(key uint64, r *models.Result) {
	if c.maxEntries <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}
	for len(c.order) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
}
