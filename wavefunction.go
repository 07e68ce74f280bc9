package vmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// engine holds the state shared by the sampling engines: the physical
// configuration, the current variational parameters, and scratch buffers for
// the per-particle vector arithmetic.
type engine struct {
	cfg   Config
	alpha float64
	beta  float64

	// Scratch buffers of length cfg.Dims.
	skew []float64
	rkj  []float64
	rki  []float64
	term []float64
}

func newEngine(cfg Config) engine {
	return engine{
		cfg:  cfg,
		skew: make([]float64, cfg.Dims),
		rkj:  make([]float64, cfg.Dims),
		rki:  make([]float64, cfg.Dims),
		term: make([]float64, cfg.Dims),
	}
}

// SetParams sets the variational parameters for the next run. It must not be
// called while a run is in progress.
func (e *engine) SetParams(alpha, beta float64) {
	e.alpha = alpha
	e.beta = beta
}

// psiGaussian is the one-body factor exp(-alpha * sum_i |r_i|^2).
func (e *engine) psiGaussian(r *mat.Dense) float64 {
	n, _ := r.Dims()
	var g float64
	for i := 0; i < n; i++ {
		ri := r.RawRowView(i)
		g += floats.Dot(ri, ri)
	}
	return math.Exp(-e.alpha * g)
}

// psiJastrow is the two-body factor prod_{i<j} (1 - a/r_ij). It is exactly
// zero whenever any pair distance is at or below the hard-sphere radius, and
// identically 1 when the interaction is off.
func (e *engine) psiJastrow(dist *Distances) float64 {
	if e.cfg.Interaction == InteractionOff {
		return 1
	}
	a := e.cfg.HardSphere
	f := 1.0
	for i := 0; i < e.cfg.NumParticles; i++ {
		for j := i + 1; j < e.cfg.NumParticles; j++ {
			rij := dist.At(i, j)
			if rij <= a {
				return 0
			}
			f *= 1 - a/rij
		}
	}
	return f
}

// psi is the full trial wavefunction value for the positions in r. The
// Jastrow factor reads pair distances from dist, which must be consistent
// with r.
func (e *engine) psi(r *mat.Dense, dist *Distances) float64 {
	return e.psiGaussian(r) * e.psiJastrow(dist)
}
