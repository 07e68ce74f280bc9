package vmc

import (
	"math/rand/v2"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Sampler is a sampling engine producing energy estimates at fixed
// variational parameters. Both the brute-force Metropolis walk and the
// importance-sampled walk implement it.
type Sampler interface {
	SetParams(alpha, beta float64)
	RunMC(nCycles int) Results
}

// Solver samples the trial wavefunction with a brute-force Metropolis random
// walk of uniform single-particle moves. A Solver owns its random stream and
// must not be shared across concurrent runs.
type Solver struct {
	engine
	rng *rand.Rand
}

// New returns a Solver for the given configuration. The random stream is
// owned by the Solver from here on.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return &Solver{engine: newEngine(cfg), rng: rng}, nil
}

// randomInit fills rOld and rNew with the same random starting configuration,
// each coordinate uniform in [-1/2, 1/2] scaled by the step length.
func randomInit(rOld, rNew *mat.Dense, stepLength float64, rng *rand.Rand) {
	n, dims := rOld.Dims()
	for i := 0; i < n; i++ {
		for d := 0; d < dims; d++ {
			x := stepLength * (rng.Float64() - 0.5)
			rOld.Set(i, d, x)
			rNew.Set(i, d, x)
		}
	}
}

// RunMC performs nCycles Metropolis cycles of single-particle moves and
// returns the aggregated results. Positions and the distance cache are
// scoped to this call; nothing is retained across runs.
func (s *Solver) RunMC(nCycles int) Results {
	cfg := s.cfg
	n, dims := cfg.NumParticles, cfg.Dims

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
			// Move particle i slightly.
			for d := 0; d < dims; d++ {
				rNew.Set(i, d, rOld.At(i, d)+cfg.StepLength*(s.rng.Float64()-0.5))
			}
			dist.Update(i, rNew)

			psiNew := s.psi(rNew, dist)

			if s.rng.Float64() <= (psiNew*psiNew)/(psiOld*psiOld) {
				accepted++
				psiOld = psiNew
				for d := 0; d < dims; d++ {
					rOld.Set(i, d, rNew.At(i, d))
				}
			} else {
				// Restore the trial position and the cache.
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
