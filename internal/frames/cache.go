package frames

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

type cacheKey struct {
	Params
	rows int
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%v/%v/%v/%v/%v/%d",
		k.BeatInterval, k.BeatOffset, k.FPS, k.BPM, k.FrameOffset, k.rows)
}

// Cache remembers the most recent table. Asking for different inputs
// replaces it. Concurrent requests for the same inputs share one computation.
type Cache struct {
	mu    sync.Mutex
	key   cacheKey
	rows  []Row
	valid bool

	group singleflight.Group

	// computed counts Generate calls, for tests
	computed int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Rows returns the table for p and rowCount. The returned slice is a copy
// owned by the caller.
func (c *Cache) Rows(p Params, rowCount int) []Row {
	key := cacheKey{Params: p, rows: rowCount}

	c.mu.Lock()
	if c.valid && c.key == key {
		rows := c.rows
		c.mu.Unlock()
		return clone(rows)
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(key.String(), func() (interface{}, error) {
		rows := Generate(p, rowCount)

		c.mu.Lock()
		c.key = key
		c.rows = rows
		c.valid = true
		c.computed++
		c.mu.Unlock()

		return rows, nil
	})

	return clone(v.([]Row))
}

func clone(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	return out
}
