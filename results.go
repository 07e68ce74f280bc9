package vmc

import (
	"fmt"
	"math/rand/v2"
)

// Results aggregates one completed Metropolis run at a fixed (alpha, beta).
type Results struct {
	// Energy is the mean local energy.
	Energy float64
	// EnergySquared is the mean squared local energy.
	EnergySquared float64
	// Variance is EnergySquared - Energy^2.
	Variance float64

	Alpha float64
	Beta  float64

	// AcceptanceRate is accepted moves over attempted moves, in [0, 1].
	AcceptanceRate float64
}

// String formats the record as comma separated fields in the order
// energy, energy squared, variance, alpha, beta, acceptance rate.
func (r Results) String() string {
	return fmt.Sprintf("%v, %v, %v, %v, %v, %v",
		r.Energy, r.EnergySquared, r.Variance, r.Alpha, r.Beta, r.AcceptanceRate)
}

// NewRand returns a deterministic random stream for one process rank.
// Distinct ranks with the same base seed produce distinct streams, and the
// same (seed, rank) pair always reproduces the same stream.
func NewRand(seed, rank uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, rank))
}
