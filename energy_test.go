package vmc

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLocalEnergyOrigin(t *testing.T) {
	t.Parallel()
	// Non-interacting isotropic oscillator at alpha = 0.5: the analytic
	// local energy is exactly dims * particles * alpha, independent of the
	// positions. With both particles at the origin the one-body quadratic
	// term vanishes and only the constant remains.
	cfg := Config{
		Trap:         Symmetric,
		Interaction:  InteractionOff,
		Mode:         EnergyAnalytic,
		Dims:         1,
		NumParticles: 2,
		OmegaHO:      1,
	}
	e := newEngine(cfg)
	e.SetParams(0.5, 1)

	r := mat.NewDense(2, 1, nil)
	dist := NewDistances(2)
	dist.Init(r)

	got := e.localEnergyAnalytic(r, dist)
	if got != 1.0 {
		t.Fatalf("%v, expected exactly 1", got)
	}
}

func TestLocalEnergyAnalyticNumericAgree(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dims  int
		n     int
		trap  TrapShape
		alpha float64
		beta  float64
	}{
		{dims: 1, n: 2, trap: Symmetric, alpha: 0.4, beta: 1},
		{dims: 2, n: 3, trap: Symmetric, alpha: 0.55, beta: 1},
		{dims: 3, n: 3, trap: Symmetric, alpha: 0.5, beta: 1},
		{dims: 3, n: 4, trap: Elliptical, alpha: 0.48, beta: 1},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d %d %f", test.dims, test.n, test.alpha), func(t *testing.T) {
			t.Parallel()
			cfg := Config{
				Trap:         test.trap,
				Interaction:  InteractionOff,
				Dims:         test.dims,
				NumParticles: test.n,
				OmegaHO:      1,
				OmegaZ:       1,
				Step:         0.001,
			}
			cfg.Step2Inv = 1 / (cfg.Step * cfg.Step)

			r := randPositions(test.n, test.dims, 7)
			dist := NewDistances(test.n)
			dist.Init(r)

			cfgA := cfg
			cfgA.Mode = EnergyAnalytic
			ea := newEngine(cfgA)
			ea.SetParams(test.alpha, test.beta)

			cfgN := cfg
			cfgN.Mode = EnergyNumeric
			en := newEngine(cfgN)
			en.SetParams(test.alpha, test.beta)

			analytic := ea.localEnergy(r, dist)
			numeric := en.localEnergy(r, dist)

			// The central difference truncates at O(h^2).
			tol := 1e3 * cfg.Step * cfg.Step
			if math.Abs(analytic-numeric) > tol {
				t.Fatalf("%v %v, difference %g over %g", analytic, numeric, math.Abs(analytic-numeric), tol)
			}
		})
	}
}

func TestVExt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		trap    TrapShape
		dims    int
		omegaHO float64
		omegaZ  float64
		pos     []float64
		want    float64
	}{
		// Symmetric: 0.5 * omega * (1+4+9).
		{trap: Symmetric, dims: 3, omegaHO: 2, omegaZ: 5, pos: []float64{1, 2, 3}, want: 14},
		// Elliptical weighs the axial term separately: 0.5*(2*(1+4) + 5*9).
		{trap: Elliptical, dims: 3, omegaHO: 2, omegaZ: 5, pos: []float64{1, 2, 3}, want: 27.5},
		// Elliptical in fewer dimensions falls back to symmetric.
		{trap: Elliptical, dims: 2, omegaHO: 2, omegaZ: 5, pos: []float64{1, 2}, want: 5},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v %d", test.trap, test.dims), func(t *testing.T) {
			t.Parallel()
			cfg := Config{
				Trap:         test.trap,
				Dims:         test.dims,
				NumParticles: 1,
				OmegaHO:      test.omegaHO,
				OmegaZ:       test.omegaZ,
			}
			e := newEngine(cfg)
			r := mat.NewDense(1, test.dims, test.pos)
			got := e.vExt(r)
			if math.Abs(got-test.want) > 1e-12 {
				t.Fatalf("%f, expected %f", got, test.want)
			}
		})
	}
}

func TestVInt(t *testing.T) {
	t.Parallel()
	cfg := Config{
		Interaction:  InteractionOn,
		Dims:         1,
		NumParticles: 2,
		HardSphere:   0.5,
	}
	e := newEngine(cfg)

	r := mat.NewDense(2, 1, []float64{0, 0.1})
	dist := NewDistances(2)
	dist.Init(r)

	// Overlap saturates at a finite sentinel, never infinity or NaN.
	got := e.vInt(dist)
	if got != math.MaxFloat64 {
		t.Fatalf("%v", got)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("%v", got)
	}

	r.Set(1, 0, 2)
	dist.Update(1, r)
	if got := e.vInt(dist); got != 0 {
		t.Fatalf("%v, expected 0", got)
	}
}
