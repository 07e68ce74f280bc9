// Command run sweeps the variational parameter space of a trapped boson
// system across a grid of physical configurations, and reports the best
// result of every configuration.
//
// Usage:
//
//	run [flags] n_cycles alpha_min alpha_max alpha_n filename
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/sigurdkb/vmc"
	"github.com/sigurdkb/vmc/store"
)

var (
	dbPath = flag.String("db", filepath.Join("runs", "vmc", "results.db"), "results database path")
	seed   = flag.Uint64("seed", 12345, "base random seed")
	rank   = flag.Uint64("rank", 0, "process rank, offsets the random seed")
)

type args struct {
	nCycles  int
	alphaMin float64
	alphaMax float64
	alphaN   int
	outPath  string
}

func parseArgs(argv []string) (args, error) {
	var a args
	var err error
	if a.nCycles, err = strconv.Atoi(argv[0]); err != nil {
		return args{}, errors.Wrap(err, argv[0])
	}
	if a.alphaMin, err = strconv.ParseFloat(argv[1], 64); err != nil {
		return args{}, errors.Wrap(err, argv[1])
	}
	if a.alphaMax, err = strconv.ParseFloat(argv[2], 64); err != nil {
		return args{}, errors.Wrap(err, argv[2])
	}
	if a.alphaN, err = strconv.Atoi(argv[3]); err != nil {
		return args{}, errors.Wrap(err, argv[3])
	}
	a.outPath = argv[4]
	return a, nil
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds | log.Llongfile | log.LstdFlags)

	if flag.NArg() < 5 {
		fmt.Printf("Usage: run n_cycles alpha_min alpha_max alpha_n filename\n")
		return
	}
	a, err := parseArgs(flag.Args())
	if err != nil {
		log.Fatalf("%+v", err)
	}

	outFile, err := os.Create(a.outPath)
	if err != nil {
		fmt.Printf("Could not open file '%s'\n", a.outPath)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := mainWithErr(a, outFile); err != nil {
		log.Fatalf("%+v", err)
	}
}

func mainWithErr(a args, outFile *os.File) error {
	if err := os.MkdirAll(filepath.Dir(*dbPath), os.ModePerm); err != nil {
		return errors.Wrap(err, "")
	}
	db, err := store.Open(*dbPath)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer db.Close()

	rng := vmc.NewRand(*seed, *rank)

	cfg := vmc.Config{
		Trap:        vmc.Symmetric,
		Interaction: vmc.InteractionOff,
		OmegaHO:     1,
		OmegaZ:      1,
		HardSphere:  0.0043,
		Step:        0.001,
		StepLength:  1,
	}
	cfg.Step2Inv = 1 / (cfg.Step * cfg.Step)

	dimensions := []int{1, 2, 3}
	particles := []int{1, 10, 100, 500}
	modes := []vmc.EnergyMode{vmc.EnergyAnalytic, vmc.EnergyNumeric}
	timeSteps := []float64{0.01, 0.001, 0.0001}
	grid := vmc.Grid{AlphaMin: a.alphaMin, AlphaMax: a.alphaMax, AlphaN: a.alphaN}

	fmt.Printf("Dims, Number of particles, Use analytic expressions, time step, Energy, Energy^2, Variance, alpha, beta, acceptance rate, time(ms)\n")
	for _, dims := range dimensions {
		cfg.Dims = dims
		for _, n := range particles {
			cfg.NumParticles = n
			for _, mode := range modes {
				cfg.Mode = mode
				for _, dt := range timeSteps {
					cfg.TimeStep = dt

					start := time.Now()
					solver, err := vmc.NewImportance(cfg, rng)
					if err != nil {
						return errors.Wrap(err, fmt.Sprintf("%#v", cfg))
					}
					best, err := vmc.Sweep(solver, outFile, a.nCycles, grid)
					if err != nil {
						return errors.Wrap(err, fmt.Sprintf("%#v", cfg))
					}
					millis := time.Since(start).Milliseconds()

					fmt.Printf("%d, %3d, %3s, %5e, %s, %d\n",
						cfg.Dims, cfg.NumParticles, cfg.Mode, dt, best, millis)

					rec := store.Record{
						Dims:           cfg.Dims,
						Particles:      cfg.NumParticles,
						Analytic:       cfg.Mode == vmc.EnergyAnalytic,
						TimeStep:       dt,
						Energy:         best.Energy,
						EnergySquared:  best.EnergySquared,
						Variance:       best.Variance,
						Alpha:          best.Alpha,
						Beta:           best.Beta,
						AcceptanceRate: best.AcceptanceRate,
						Millis:         millis,
					}
					if err := db.Put(rec); err != nil {
						return errors.Wrap(err, fmt.Sprintf("%#v", rec))
					}
				}
			}
		}
	}

	// Gather results and print them.
	recs, err := db.Gather()
	if err != nil {
		return errors.Wrap(err, "")
	}
	fmt.Printf("dims,particles,analytic,time_step,energy,energy2,variance,alpha,beta,acceptance,millis\n")
	for _, r := range recs {
		analytic := 0
		if r.Analytic {
			analytic = 1
		}
		fmt.Printf("%d,%d,%d,%g,%f,%f,%f,%f,%f,%f,%d\n",
			r.Dims, r.Particles, analytic, r.TimeStep,
			r.Energy, r.EnergySquared, r.Variance, r.Alpha, r.Beta, r.AcceptanceRate, r.Millis)
	}
	return nil
}
