package vmc

import (
	"math"
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ImportanceSolver samples the trial wavefunction with drift-biased
// single-particle moves: a Langevin step along the quantum force followed by
// a Metropolis-Hastings acceptance with the Green's function ratio. It shares
// the local energy interface with Solver.
type ImportanceSolver struct {
	engine
	rng *rand.Rand

	fOld []float64
	fNew []float64
}

// NewImportance returns an ImportanceSolver for the given configuration.
func NewImportance(cfg Config, rng *rand.Rand) (*ImportanceSolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	if cfg.TimeStep <= 0 {
		return nil, errors.Errorf("time step %f", cfg.TimeStep)
	}
	s := &ImportanceSolver{
		engine: newEngine(cfg),
		rng:    rng,
		fOld:   make([]float64, cfg.Dims),
		fNew:   make([]float64, cfg.Dims),
	}
	return s, nil
}

// quantumForce writes the quantum force 2 grad_k ln Psi for particle k into f.
// The Gaussian part is -4 alpha r_k; when the interaction is on each pair
// j != k adds its Jastrow gradient.
func (s *ImportanceSolver) quantumForce(f []float64, k int, r *mat.Dense, dist *Distances) {
	rk := r.RawRowView(k)
	for d := range f {
		f[d] = -4 * s.alpha * rk[d]
	}
	if s.cfg.Interaction == InteractionOff {
		return
	}
	a := s.cfg.HardSphere
	for j := 0; j < s.cfg.NumParticles; j++ {
		if j == k {
			continue
		}
		floats.SubTo(s.rkj, rk, r.RawRowView(j))
		rkjNorm := dist.At(k, j)
		floats.AddScaled(f, 2*a/(rkjNorm*rkjNorm*(rkjNorm-a)), s.rkj)
	}
}

// RunMC performs nCycles cycles of importance-sampled moves and returns the
// aggregated results. Positions and the distance cache are scoped to this
// call.
func (s *ImportanceSolver) RunMC(nCycles int) Results {
	cfg := s.cfg
	n, dims := cfg.NumParticles, cfg.Dims
	dt := cfg.TimeStep
	sqrtDt := math.Sqrt(dt)

	rOld := mat.NewDense(n, dims, nil)
	rNew := mat.NewDense(n, dims, nil)
	dist := NewDistances(n)

	randomInit(rOld, rNew, cfg.StepLength, s.rng)
	dist.Init(rOld)

	var eSum, e2Sum float64
	accepted := 0
	for cycle := 1; cycle <= nCycles; cycle++ {
		psiOld := s.psi(rOld, dist)
		for i := 0; i < n; i++ {
			s.quantumForce(s.fOld, i, rOld, dist)
			for d := 0; d < dims; d++ {
				rNew.Set(i, d, rOld.At(i, d)+0.5*s.fOld[d]*dt+s.rng.NormFloat64()*sqrtDt)
			}
			dist.Update(i, rNew)

			psiNew := s.psi(rNew, dist)
			s.quantumForce(s.fNew, i, rNew, dist)

			// Green's function ratio G(old|new)/G(new|old) for the moved
			// particle; all other particles cancel.
			var greenLog float64
			for d := 0; d < dims; d++ {
				greenLog += 0.5 * (s.fOld[d] + s.fNew[d]) *
					(0.25*dt*(s.fOld[d]-s.fNew[d]) - rNew.At(i, d) + rOld.At(i, d))
			}
			ratio := math.Exp(greenLog) * (psiNew * psiNew) / (psiOld * psiOld)

			if s.rng.Float64() <= ratio {
				accepted++
				psiOld = psiNew
				for d := 0; d < dims; d++ {
					rOld.Set(i, d, rNew.At(i, d))
				}
			} else {
				for d := 0; d < dims; d++ {
					rNew.Set(i, d, rOld.At(i, d))
				}
				dist.Update(i, rNew)
			}

			e := s.localEnergy(rNew, dist)
			eSum += e
			e2Sum += e * e
		}
	}

	moves := float64(nCycles * n)
	energy := eSum / moves
	energy2 := e2Sum / moves
	return Results{
		Energy:         energy,
		EnergySquared:  energy2,
		Variance:       energy2 - energy*energy,
		Alpha:          s.alpha,
		Beta:           s.beta,
		AcceptanceRate: float64(accepted) / moves,
	}
}
