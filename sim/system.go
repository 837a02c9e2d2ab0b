package sim

import (
	"fmt"
	"math/rand"
)

// ParticleSystem owns the particle slice and the shared collision counter.
// The slice length and element order are fixed for the lifetime of the
// system, so chunk partitioning is deterministic for a given chunk size.
type ParticleSystem struct {
	particles []Particle
	counter   CollisionCounter
	chunkSize int
}

// NewParticleSystem creates numParticles particles placed uniformly at
// random in [0, maxX) x [0, maxY). chunkSize sets both the unit of work per
// worker and the comparison granularity for collision scans.
func NewParticleSystem(numParticles int, maxX, maxY float64, chunkSize int, rng *rand.Rand) (*ParticleSystem, error) {
	if numParticles <= 0 {
		return nil, fmt.Errorf("particle count must be positive, got %d", numParticles)
	}
	if maxX <= 0 || maxY <= 0 {
		return nil, fmt.Errorf("enclosure extents must be positive, got %gx%g", maxX, maxY)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	particles := make([]Particle, numParticles)
	for i := range particles {
		particles[i] = Particle{
			X: rng.Float64() * maxX,
			Y: rng.Float64() * maxY,
		}
	}

	return &ParticleSystem{particles: particles, chunkSize: chunkSize}, nil
}

// Len returns the number of particles.
func (s *ParticleSystem) Len() int {
	return len(s.particles)
}

// ChunkSize returns the configured chunk size.
func (s *ParticleSystem) ChunkSize() int {
	return s.chunkSize
}

// Counter returns the shared collision counter.
func (s *ParticleSystem) Counter() *CollisionCounter {
	return &s.counter
}

// Collisions returns the cumulative collision total.
func (s *ParticleSystem) Collisions() uint64 {
	return s.counter.Load()
}

// Snapshot copies the current particle positions into dst, growing it as
// needed, and returns the result. The copy keeps renderers and telemetry off
// the live slice while a tick is in flight.
func (s *ParticleSystem) Snapshot(dst []Particle) []Particle {
	return append(dst[:0], s.particles...)
}

// Advance moves every particle once. One mover task is dispatched per chunk
// and Advance returns only after all of them complete, so a following scan
// never observes a particle mid-move.
func (s *ParticleSystem) Advance(m *Mover, pool *Pool) {
	ranges := chunkRanges(len(s.particles), s.chunkSize)
	tasks := make([]Task, 0, len(ranges))
	for _, r := range ranges {
		chunk := s.particles[r.start:r.end]
		tasks = append(tasks, func(workerID int) {
			m.MoveChunk(chunk, workerID)
		})
	}
	pool.Submit(tasks)
}

// DetectCollisions scans every chunk for colliding pairs, adding hits to the
// shared counter. Read-only over particle data; must not overlap Advance.
func (s *ParticleSystem) DetectCollisions(sc *CollisionScanner, pool *Pool) {
	ranges := chunkRanges(len(s.particles), s.chunkSize)
	tasks := make([]Task, 0, len(ranges))
	for _, r := range ranges {
		chunk := s.particles[r.start:r.end]
		tasks = append(tasks, func(int) {
			sc.ScanChunk(chunk)
		})
	}
	pool.Submit(tasks)
}

// chunkRange is a half-open index interval [start, end).
type chunkRange struct {
	start, end int
}

// chunkRanges partitions n elements into contiguous chunks of size. The
// final chunk is shorter when size does not divide n. Pure function of
// (n, size); the partition never depends on particle state.
func chunkRanges(n, size int) []chunkRange {
	ranges := make([]chunkRange, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		ranges = append(ranges, chunkRange{start: start, end: end})
	}
	return ranges
}
