package sim

import "log/slog"

// CollisionScanner counts particle pairs closer than the threshold within a
// chunk. Pairs straddling a chunk boundary are never compared: comparison
// granularity is the chunk, not the population. That is part of the counting
// contract, not an optimization to lift.
type CollisionScanner struct {
	threshold float64
	counter   *CollisionCounter
	trace     *slog.Logger // nil disables per-collision tracing
}

// NewCollisionScanner creates a scanner feeding the given shared counter.
func NewCollisionScanner(threshold float64, counter *CollisionCounter, trace *slog.Logger) *CollisionScanner {
	return &CollisionScanner{threshold: threshold, counter: counter, trace: trace}
}

// Threshold returns the current collision distance.
func (s *CollisionScanner) Threshold() float64 {
	return s.threshold
}

// SetThreshold changes the collision distance for subsequent scans. Not safe
// while a scan batch is in flight.
func (s *CollisionScanner) SetThreshold(t float64) {
	s.threshold = t
}

// ScanChunk examines every unordered pair in chunk exactly once and does one
// atomic increment of the shared counter per pair within the threshold. It
// reads particle data only, so scans of disjoint chunks may run concurrently
// with each other (never with a move on the same data).
func (s *CollisionScanner) ScanChunk(chunk []Particle) {
	for i := 0; i < len(chunk); i++ {
		for j := i + 1; j < len(chunk); j++ {
			if chunk[i].Collide(chunk[j], s.threshold) {
				s.counter.Inc()
				if s.trace != nil {
					s.trace.Debug("collision",
						"x1", chunk[i].X, "y1", chunk[i].Y,
						"x2", chunk[j].X, "y2", chunk[j].Y,
					)
				}
			}
		}
	}
}
