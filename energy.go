package vmc

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// vExt is the quadratic trap energy. The elliptical trap weighs the axial
// coordinate with OmegaZ; in fewer than three dimensions it is identical to
// the symmetric trap.
func (e *engine) vExt(r *mat.Dense) float64 {
	n, _ := r.Dims()
	var pot float64
	for i := 0; i < n; i++ {
		ri := r.RawRowView(i)
		if e.cfg.Trap == Elliptical && e.cfg.Dims == 3 {
			pot += e.cfg.OmegaHO*(ri[0]*ri[0]+ri[1]*ri[1]) + e.cfg.OmegaZ*ri[2]*ri[2]
		} else {
			pot += e.cfg.OmegaHO * floats.Dot(ri, ri)
		}
	}
	return 0.5 * pot
}

// vInt is the hard-sphere interaction energy: zero when all pair distances
// exceed the hard-sphere radius, and a saturating sentinel otherwise. The
// sentinel is finite so that overlaps drive the acceptance ratio toward
// rejection without propagating NaNs.
func (e *engine) vInt(dist *Distances) float64 {
	if e.cfg.Interaction == InteractionOff {
		return 0
	}
	for i := 0; i < e.cfg.NumParticles; i++ {
		for j := i + 1; j < e.cfg.NumParticles; j++ {
			if dist.At(i, j) <= e.cfg.HardSphere {
				return math.MaxFloat64
			}
		}
	}
	return 0
}

// kineticNumeric is the central second difference kinetic energy
// -1/2 h^-2 sum [Psi(R+h e) + Psi(R-h e) - 2 Psi(R)], summed over all
// particle-dimension pairs. Each coordinate is restored from its saved
// original value rather than incremented back, to avoid rounding drift.
// When the interaction is on, the distance cache is refreshed at every
// perturbed configuration since the Jastrow factor reads it.
func (e *engine) kineticNumeric(r *mat.Dense, dist *Distances) float64 {
	n, dims := r.Dims()
	interacting := e.cfg.Interaction == InteractionOn

	ek := -2 * float64(n*dims) * e.psi(r, dist)
	for i := 0; i < n; i++ {
		for d := 0; d < dims; d++ {
			orig := r.At(i, d)

			r.Set(i, d, orig+e.cfg.Step)
			if interacting {
				dist.Update(i, r)
			}
			ek += e.psi(r, dist)

			r.Set(i, d, orig-e.cfg.Step)
			if interacting {
				dist.Update(i, r)
			}
			ek += e.psi(r, dist)

			r.Set(i, d, orig)
			if interacting {
				dist.Update(i, r)
			}
		}
	}
	return -0.5 * ek * e.cfg.Step2Inv
}

// localEnergy evaluates the local energy at the configuration in r, in the
// mode selected by the configuration.
func (e *engine) localEnergy(r *mat.Dense, dist *Distances) float64 {
	if e.cfg.Mode == EnergyNumeric {
		return e.kineticNumeric(r, dist)/e.psi(r, dist) + e.vExt(r) + e.vInt(dist)
	}
	return e.localEnergyAnalytic(r, dist)
}

// localEnergyAnalytic is the closed form local energy of the Gaussian times
// Jastrow ansatz. In three dimensions the axial coordinate is scaled by beta
// before entering the one-body terms.
func (e *engine) localEnergyAnalytic(r *mat.Dense, dist *Distances) float64 {
	cfg := e.cfg
	a := cfg.HardSphere
	noInteraction := cfg.Interaction == InteractionOff

	// One-body constant: -(2+beta) in three dimensions, -dims otherwise.
	betaTerm := -float64(cfg.Dims)
	if cfg.Dims == 3 {
		betaTerm = -(2 + e.beta)
	}

	var sum float64
	for k := 0; k < cfg.NumParticles; k++ {
		rk := r.RawRowView(k)
		copy(e.skew, rk)
		if cfg.Dims == 3 {
			e.skew[2] *= e.beta
		}

		sum += 2 * e.alpha * (2*e.alpha*floats.Dot(e.skew, e.skew) + betaTerm)

		if noInteraction {
			continue
		}

		// Two-body and three-body Jastrow terms. The double sums run over
		// all j != k and all i != k; i == j is allowed and contributes the
		// squared gradient of a single pair factor.
		for i := range e.term {
			e.term[i] = 0
		}
		for j := 0; j < cfg.NumParticles; j++ {
			if j == k {
				continue
			}
			floats.SubTo(e.rkj, rk, r.RawRowView(j))
			rkjNorm := dist.At(k, j)
			rkj2 := rkjNorm * rkjNorm

			floats.AddScaled(e.term, a/(rkj2*(rkjNorm-a)), e.rkj)

			sum += a*(a-2*rkjNorm)/(rkj2*(rkjNorm-a)*(rkjNorm-a)) +
				2*a/(rkj2*(rkjNorm-a))

			for i := 0; i < cfg.NumParticles; i++ {
				if i == k {
					continue
				}
				floats.SubTo(e.rki, rk, r.RawRowView(i))
				rkiNorm := dist.At(k, i)
				rki2 := rkiNorm * rkiNorm

				sum += floats.Dot(e.rki, e.rkj) *
					(a * a / (rki2 * rkj2 * (rkiNorm - a) * (rkjNorm - a)))
			}
		}
		sum -= 4 * e.alpha * floats.Dot(e.skew, e.term)
	}
	return e.vExt(r) + e.vInt(dist) - 0.5*sum
}
