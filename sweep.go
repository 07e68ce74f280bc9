package vmc

import (
	"bufio"
	"io"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

// Grid is the variational parameter space of one sweep. Beta defaults to the
// single value 1 when left zero, for runs where the anisotropy axis is
// unused.
type Grid struct {
	AlphaMin float64
	AlphaMax float64
	AlphaN   int

	BetaMin float64
	BetaMax float64
	BetaN   int
}

func linspace(min, max float64, n int) []float64 {
	if n <= 1 {
		return []float64{min}
	}
	return floats.Span(make([]float64, n), min, max)
}

// Sweep runs the sampler once for every (alpha, beta) pair of the grid,
// streams one line per pair to out, and returns the pair with the minimum
// variance. The output starts with a header line and is flushed on
// completion.
func Sweep(s Sampler, out io.Writer, nCycles int, grid Grid) (Results, error) {
	if grid.AlphaN < 1 {
		return Results{}, errors.Errorf("alpha grid %d", grid.AlphaN)
	}
	if grid.BetaN < 1 {
		grid.BetaMin, grid.BetaMax, grid.BetaN = 1, 1, 1
	}
	alphas := linspace(grid.AlphaMin, grid.AlphaMax, grid.AlphaN)
	betas := linspace(grid.BetaMin, grid.BetaMax, grid.BetaN)

	w := bufio.NewWriter(out)
	if _, err := w.WriteString("# alpha beta <E> <E^2>\n"); err != nil {
		return Results{}, errors.Wrap(err, "")
	}

	best := Results{Variance: math.MaxFloat64}
	progress := newLogThrottle(10 * time.Second)
	for _, alpha := range alphas {
		for _, beta := range betas {
			s.SetParams(alpha, beta)
			res := s.RunMC(nCycles)

			if _, err := join(w, res.Alpha, res.Beta, res.Energy, res.EnergySquared); err != nil {
				return Results{}, errors.Wrap(err, "")
			}

			if res.Variance < best.Variance {
				best = res
			}
			if progress.ok() {
				log.Printf("alpha %f beta %f energy %f", alpha, beta, res.Energy)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return Results{}, errors.Wrap(err, "")
	}
	return best, nil
}

// join writes one space separated, newline terminated output record.
func join(w *bufio.Writer, fields ...float64) (int, error) {
	var n int
	for i, f := range fields {
		if i > 0 {
			m, err := w.WriteString(" ")
			n += m
			if err != nil {
				return n, err
			}
		}
		m, err := w.WriteString(formatFloat(f))
		n += m
		if err != nil {
			return n, err
		}
	}
	m, err := w.WriteString("\n")
	return n + m, err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// logThrottle rate limits progress logging during long sweeps.
type logThrottle struct {
	d    time.Duration
	last time.Time
}

func newLogThrottle(d time.Duration) *logThrottle {
	return &logThrottle{d: d}
}

func (t *logThrottle) ok() bool {
	now := time.Now()
	if now.Before(t.last.Add(t.d)) {
		return false
	}
	t.last = now
	return true
}
