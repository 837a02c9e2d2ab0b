package sim

import "testing"

func TestParticleCollide(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Particle
		threshold float64
		want      bool
	}{
		{"same point zero threshold", Particle{1, 1}, Particle{1, 1}, 0, true},
		{"same point", Particle{2, 3}, Particle{2, 3}, 0.1, true},
		{"exactly at threshold", Particle{0, 0}, Particle{3, 4}, 5, true},
		{"just inside threshold", Particle{0, 0}, Particle{3, 4}, 5.001, true},
		{"just outside threshold", Particle{0, 0}, Particle{3, 4}, 4.999, false},
		{"within threshold on one axis", Particle{0, 0}, Particle{0.05, 0}, 0.1, true},
		{"outside small threshold", Particle{0, 0}, Particle{0.05, 0}, 0.04, false},
		{"far apart", Particle{0, 0}, Particle{9, 9}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Collide(tt.b, tt.threshold); got != tt.want {
				t.Errorf("Collide(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestParticleCollideSymmetry(t *testing.T) {
	pairs := []struct {
		a, b      Particle
		threshold float64
	}{
		{Particle{0, 0}, Particle{3, 4}, 5},
		{Particle{1.5, 2.5}, Particle{1.6, 2.4}, 0.2},
		{Particle{7, 1}, Particle{2, 8}, 3},
	}

	for _, p := range pairs {
		ab := p.a.Collide(p.b, p.threshold)
		ba := p.b.Collide(p.a, p.threshold)
		if ab != ba {
			t.Errorf("Collide not symmetric for %v, %v at threshold %v: %v vs %v",
				p.a, p.b, p.threshold, ab, ba)
		}
	}
}
