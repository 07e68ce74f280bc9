// Package vmc estimates the ground state energy of trapped bosons with the
// Variational Monte Carlo method.
//
// A Gaussian one-body times hard-sphere Jastrow trial wavefunction is sampled
// with a Metropolis random walk, and the resulting energy estimate is
// minimized over a grid of the variational parameters alpha and beta.
//
// References:
//   - Ground state of liquid He4, W. L. McMillan
//   - Structure and energetics of a dilute hard-sphere Bose gas, J. L. DuBois, H. R. Glyde
package vmc

import (
	"github.com/pkg/errors"
)

// TrapShape is the shape of the harmonic oscillator trap.
type TrapShape int

const (
	// Symmetric is a spherically symmetric trap.
	Symmetric TrapShape = iota
	// Elliptical is a trap with a separately weighted axial frequency.
	// It only differs from Symmetric in three dimensions.
	Elliptical
)

// Interaction switches the hard-sphere pair interaction on or off.
type Interaction int

const (
	InteractionOff Interaction = iota
	InteractionOn
)

// EnergyMode selects how the local energy is computed.
type EnergyMode int

const (
	// EnergyNumeric computes the kinetic energy with a central second
	// difference of the wavefunction.
	EnergyNumeric EnergyMode = iota
	// EnergyAnalytic uses the closed form logarithmic derivatives of the
	// Gaussian times Jastrow ansatz.
	EnergyAnalytic
)

func (m EnergyMode) String() string {
	if m == EnergyAnalytic {
		return "ON"
	}
	return "OFF"
}

// Config holds the physical configuration of one engine instance.
// It is immutable for the lifetime of a Solver.
type Config struct {
	Trap        TrapShape
	Interaction Interaction
	Mode        EnergyMode

	// Dims is the dimensionality of the trap, 1 to 3.
	Dims int
	// NumParticles is the number of bosons.
	NumParticles int

	// OmegaHO is the isotropic trap frequency.
	OmegaHO float64
	// OmegaZ is the axial trap frequency of the elliptical trap.
	OmegaZ float64
	// HardSphere is the hard-sphere radius below which the pair
	// wavefunction vanishes.
	HardSphere float64

	// Step is the finite difference step of the numeric kinetic energy.
	Step float64
	// Step2Inv is 1/(Step*Step), cached.
	Step2Inv float64

	// StepLength scales the uniform Metropolis trial displacements.
	StepLength float64
	// TimeStep is the Langevin time step of the importance sampled walk.
	TimeStep float64
}

func (cfg Config) Validate() error {
	if cfg.Dims < 1 || cfg.Dims > 3 {
		return errors.Errorf("dims %d", cfg.Dims)
	}
	if cfg.NumParticles < 1 {
		return errors.Errorf("particles %d", cfg.NumParticles)
	}
	if cfg.Mode == EnergyNumeric && cfg.Step <= 0 {
		return errors.Errorf("step %f", cfg.Step)
	}
	if cfg.HardSphere < 0 {
		return errors.Errorf("hard sphere radius %f", cfg.HardSphere)
	}
	return nil
}
