package vmc

import (
	"fmt"
	"math"
	"testing"
)

func TestImportanceRunMC(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dims     int
		n        int
		timeStep float64
	}{
		{dims: 1, n: 2, timeStep: 0.01},
		{dims: 2, n: 3, timeStep: 0.001},
		{dims: 3, n: 5, timeStep: 0.0001},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%d %d %g", test.dims, test.n, test.timeStep), func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(test.dims, test.n)
			cfg.TimeStep = test.timeStep
			s, err := NewImportance(cfg, NewRand(12345, 0))
			if err != nil {
				t.Fatalf("%+v", err)
			}
			s.SetParams(0.5, 1)

			res := s.RunMC(200)
			if res.AcceptanceRate < 0 || res.AcceptanceRate > 1 {
				t.Fatalf("%f", res.AcceptanceRate)
			}
			// The alpha = 0.5 local energy is position independent, so the
			// drift-biased walk must report it exactly as well.
			want := 0.5 * float64(test.dims*test.n)
			if math.Abs(res.Energy-want) > 1e-9 {
				t.Fatalf("%v, expected %v", res.Energy, want)
			}
		})
	}
}

func TestImportanceSeeding(t *testing.T) {
	t.Parallel()
	cfg := testConfig(3, 2)
	run := func(rank uint64) Results {
		s, err := NewImportance(cfg, NewRand(12345, rank))
		if err != nil {
			t.Fatalf("%+v", err)
		}
		s.SetParams(0.45, 1)
		return s.RunMC(300)
	}
	if a, b := run(2), run(2); a != b {
		t.Fatalf("%#v, expected %#v", a, b)
	}
	if a, b := run(0), run(1); a.Energy == b.Energy {
		t.Fatalf("%f", a.Energy)
	}
}

func TestNewImportanceValidates(t *testing.T) {
	t.Parallel()
	cfg := testConfig(1, 2)
	cfg.TimeStep = 0
	if _, err := NewImportance(cfg, NewRand(1, 0)); err == nil {
		t.Fatalf("expected error")
	}
}
