package sim

import (
	"math/rand"
	"testing"
)

func TestNewParticleSystemValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	tests := []struct {
		name      string
		count     int
		maxX      float64
		maxY      float64
		chunkSize int
	}{
		{"zero particles", 0, 10, 10, 4},
		{"negative particles", -5, 10, 10, 4},
		{"zero width", 10, 0, 10, 4},
		{"negative height", 10, 10, -1, 4},
		{"zero chunk size", 10, 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewParticleSystem(tt.count, tt.maxX, tt.maxY, tt.chunkSize, rng); err == nil {
				t.Error("expected construction to fail")
			}
		})
	}
}

func TestNewParticleSystemPlacement(t *testing.T) {
	const maxX, maxY = 10.0, 7.5

	rng := rand.New(rand.NewSource(2))
	s, err := NewParticleSystem(200, maxX, maxY, 4, rng)
	if err != nil {
		t.Fatal(err)
	}

	if s.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", s.Len())
	}
	if s.Collisions() != 0 {
		t.Fatalf("Collisions() = %d at construction, want 0", s.Collisions())
	}
	for i, p := range s.particles {
		if p.X < 0 || p.X >= maxX || p.Y < 0 || p.Y >= maxY {
			t.Errorf("particle %d placed at (%v, %v), outside [0,%v) x [0,%v)", i, p.X, p.Y, maxX, maxY)
		}
	}
}

func TestChunkRanges(t *testing.T) {
	tests := []struct {
		name string
		n    int
		size int
		want []chunkRange
	}{
		{"exact multiple", 8, 4, []chunkRange{{0, 4}, {4, 8}}},
		{"short final chunk", 10, 4, []chunkRange{{0, 4}, {4, 8}, {8, 10}}},
		{"single chunk", 3, 4, []chunkRange{{0, 3}}},
		{"chunk size one", 3, 1, []chunkRange{{0, 1}, {1, 2}, {2, 3}}},
		{"empty", 0, 4, []chunkRange{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkRanges(tt.n, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("chunkRanges(%d, %d) = %v, want %v", tt.n, tt.size, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The partition depends only on (n, size), never on particle state.
func TestChunkRangesDeterministic(t *testing.T) {
	first := chunkRanges(103, 4)
	for run := 0; run < 10; run++ {
		again := chunkRanges(103, 4)
		if len(again) != len(first) {
			t.Fatalf("run %d: partition length changed", run)
		}
		for i := range again {
			if again[i] != first[i] {
				t.Fatalf("run %d: chunk %d = %v, want %v", run, i, again[i], first[i])
			}
		}
	}
}

// Two coincident particles placed on opposite sides of a chunk boundary must
// not be counted: collision detection is same-chunk only.
func TestDetectCollisionsChunkIsolation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := NewParticleSystem(4, 10, 10, 2, rng)
	if err != nil {
		t.Fatal(err)
	}

	// Chunks are [0,1] and [2,3]. Indices 1 and 2 coincide across the
	// boundary; within each chunk the particles are far apart.
	s.particles[0] = Particle{0, 0}
	s.particles[1] = Particle{5, 5}
	s.particles[2] = Particle{5, 5}
	s.particles[3] = Particle{9, 9}

	pool, err := NewPool(2)
	if err != nil {
		t.Fatal(err)
	}
	pool.Start()
	defer pool.Stop()

	scanner := NewCollisionScanner(0.1, s.Counter(), nil)
	s.DetectCollisions(scanner, pool)

	if got := s.Collisions(); got != 0 {
		t.Errorf("counter = %d, want 0: straddling pair must not be compared", got)
	}
}

func TestDetectCollisionsScenario(t *testing.T) {
	rng := rand.New(rand.NewSource(4))

	// Two particles 0.05 apart in a single chunk.
	s, err := NewParticleSystem(2, 10, 10, 2, rng)
	if err != nil {
		t.Fatal(err)
	}
	s.particles[0] = Particle{0, 0}
	s.particles[1] = Particle{0.05, 0}

	pool, err := NewPool(2)
	if err != nil {
		t.Fatal(err)
	}
	pool.Start()
	defer pool.Stop()

	scanner := NewCollisionScanner(0.1, s.Counter(), nil)
	s.DetectCollisions(scanner, pool)
	if got := s.Collisions(); got != 1 {
		t.Errorf("counter at threshold 0.1 = %d, want 1", got)
	}

	scanner.SetThreshold(0.04)
	s.DetectCollisions(scanner, pool)
	if got := s.Collisions(); got != 1 {
		t.Errorf("counter after threshold 0.04 rescan = %d, want still 1", got)
	}
}

func TestAdvanceKeepsBoundaryInvariant(t *testing.T) {
	const enclosure = 10.0

	rng := rand.New(rand.NewSource(5))
	s, err := NewParticleSystem(103, enclosure, enclosure, 4, rng)
	if err != nil {
		t.Fatal(err)
	}

	pool, err := NewPool(4)
	if err != nil {
		t.Fatal(err)
	}
	pool.Start()
	defer pool.Stop()

	mover := NewMover(enclosure, pool.Size(), 6, nil)
	for tick := 0; tick < 50; tick++ {
		s.Advance(mover, pool)
		for i, p := range s.particles {
			if p.X < 0 || p.X > enclosure || p.Y < 0 || p.Y > enclosure {
				t.Fatalf("tick %d: particle %d out of bounds: (%v, %v)", tick, i, p.X, p.Y)
			}
		}
	}
}

func TestCollisionsMonotonicAcrossTicks(t *testing.T) {
	const enclosure = 5.0

	rng := rand.New(rand.NewSource(7))
	s, err := NewParticleSystem(60, enclosure, enclosure, 4, rng)
	if err != nil {
		t.Fatal(err)
	}

	pool, err := NewPool(4)
	if err != nil {
		t.Fatal(err)
	}
	pool.Start()
	defer pool.Stop()

	mover := NewMover(enclosure, pool.Size(), 8, nil)
	scanner := NewCollisionScanner(0.5, s.Counter(), nil)

	var prev uint64
	for tick := 0; tick < 30; tick++ {
		s.Advance(mover, pool)
		s.DetectCollisions(scanner, pool)
		cur := s.Collisions()
		if cur < prev {
			t.Fatalf("tick %d: counter decreased from %d to %d", tick, prev, cur)
		}
		prev = cur
	}
}

func TestSnapshotCopies(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s, err := NewParticleSystem(10, 10, 10, 4, rng)
	if err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot(nil)
	if len(snap) != s.Len() {
		t.Fatalf("snapshot length = %d, want %d", len(snap), s.Len())
	}

	snap[0].X = -100
	if s.particles[0].X == -100 {
		t.Error("mutating the snapshot leaked into the live slice")
	}
}
