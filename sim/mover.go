package sim

import (
	"log/slog"
	"math/rand"
)

// Mover advances particles by rejection-sampled random displacement. Each
// worker draws from its own RNG, so chunks move concurrently without a lock
// or a shared source.
type Mover struct {
	enclosure float64
	rngs      []*rand.Rand
	trace     *slog.Logger // nil disables per-particle tracing
}

// NewMover creates a mover for a square enclosure of the given size, with
// one RNG per worker derived from seed.
func NewMover(enclosure float64, workers int, seed int64, trace *slog.Logger) *Mover {
	rngs := make([]*rand.Rand, workers)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewSource(seed + int64(i)))
	}
	return &Mover{enclosure: enclosure, rngs: rngs, trace: trace}
}

// MoveChunk advances every particle in chunk in place. Each particle redraws
// its displacement until the candidate lands inside [0, enclosure] on both
// axes, so the boundary invariant holds on return. The retry loop has no
// bound; every in-bounds position accepts with probability > 0. workerID
// selects the RNG and must be unique among concurrent callers.
func (m *Mover) MoveChunk(chunk []Particle, workerID int) {
	rng := m.rngs[workerID]
	for i := range chunk {
		p := &chunk[i]
		if m.trace != nil {
			m.trace.Debug("particle move", "x", p.X, "y", p.Y)
		}

		for {
			// Uniform displacement in (-1, +1) per axis
			newX := p.X + (rng.Float64()-0.5)*2
			newY := p.Y + (rng.Float64()-0.5)*2

			if newX >= 0 && newX <= m.enclosure && newY >= 0 && newY <= m.enclosure {
				p.X = newX
				p.Y = newY
				break
			}
		}

		if m.trace != nil {
			m.trace.Debug("particle moved", "x", p.X, "y", p.Y)
		}
	}
}
