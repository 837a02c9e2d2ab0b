// Package sim implements the core simulation: a fixed population of point
// particles doing bounded random walks, with pairwise collision counting
// fanned out over a fixed worker pool.
package sim

// Particle is a point inside the enclosure. It is a plain value; its only
// identity is its index in the owning system's slice.
type Particle struct {
	X, Y float64
}

// Collide reports whether p and other are within threshold of each other.
// The comparison uses squared distance and is inclusive at the boundary, so
// two particles at exactly threshold apart collide.
func (p Particle) Collide(other Particle, threshold float64) bool {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx+dy*dy <= threshold*threshold
}
