package sim

import "sync/atomic"

// CollisionCounter is the shared tally of observed collisions. It is the
// only mutable state shared between scan tasks; increments are sequentially
// consistent and the value never decreases.
type CollisionCounter struct {
	n atomic.Uint64
}

// Inc records one collision.
func (c *CollisionCounter) Inc() {
	c.n.Add(1)
}

// Load returns the running total.
func (c *CollisionCounter) Load() uint64 {
	return c.n.Load()
}
