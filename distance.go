package vmc

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Distances caches the Euclidean distances between all particle pairs, so
// that moving a single particle costs O(n) instead of O(n^2).
//
// The cache must reflect the distances of the position matrix currently in
// effect, trial or accepted. After a rejected move, Update must be called
// again with the restored positions.
type Distances struct {
	m *mat.SymDense
}

// NewDistances returns a distance cache for n particles.
func NewDistances(n int) *Distances {
	return &Distances{m: mat.NewSymDense(n, nil)}
}

// Init fills the cache from scratch for all pairs i < j.
func (d *Distances) Init(r *mat.Dense) {
	n, _ := r.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d.m.SetSym(i, j, floats.Distance(r.RawRowView(i), r.RawRowView(j), 2))
		}
	}
}

// Update recomputes the distances between the moved particle and all others.
// Calling Update after moving a particle yields a cache identical to Init on
// the full configuration.
func (d *Distances) Update(particle int, r *mat.Dense) {
	n, _ := r.Dims()
	rp := r.RawRowView(particle)
	for other := 0; other < n; other++ {
		if other == particle {
			continue
		}
		d.m.SetSym(particle, other, floats.Distance(rp, r.RawRowView(other), 2))
	}
}

// At returns the distance between particles i and j. The argument order does
// not matter.
func (d *Distances) At(i, j int) float64 {
	return d.m.At(i, j)
}
