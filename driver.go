package spreader

import (
	"fmt"
	"runtime"
	"sync"

	kitlog "github.com/go-kit/kit/log"
	"golang.org/x/exp/rand"
)

// Substream salts keep component-level and granule-level draws on unrelated
// streams of the same top-level seed.
const (
	componentSalt uint64 = 0x9e3779b97f4a7c15
	granuleSalt   uint64 = 0xa24baed4963ee407
)

// substream derives an independent random source for index idx. Every stream is a
// pure function of the top-level seed and the index, so parallel execution order
// never affects reproducibility.
func substream(seed, salt uint64, idx int) rand.Source {
	return rand.NewSource(seed ^ salt*uint64(idx+1))
}

// GranuleFailure records a granule excluded from the landing set and why.
type GranuleFailure struct {
	Index     int
	Component string
	Err       error
}

// Result is the outcome of a full run.
type Result struct {
	Landed      []Granule        // landing coordinates populated, z = 0 by construction
	Failures    []GranuleFailure // granule-local failures, excluded from Landed
	FitFailures []error          // components that could not be fitted
}

// Simulation orchestrates the full pipeline: size-distribution fits, population
// synthesis, then the per-granule inlet → vane → launch → flight chain.
type Simulation struct {
	scenario *Scenario
	logger   kitlog.Logger
}

// NewSimulation prepares a run for a validated scenario. A nil logger disables
// logging.
func NewSimulation(s *Scenario, logger kitlog.Logger) *Simulation {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Simulation{scenario: s, logger: logger}
}

// Run executes the simulation. Granule-local failures are recorded and skipped;
// the run itself fails only when the scenario is inconsistent or no blend
// component can be fitted at all.
func (sim *Simulation) Run() (*Result, error) {
	s := sim.scenario
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fits := make([]*SizeDistribution, len(s.Components))
	res := &Result{}
	fitted := 0
	for ci, c := range s.Components {
		sd, err := FitSizeDistribution(c)
		if err != nil {
			res.FitFailures = append(res.FitFailures, err)
			sim.logger.Log("level", "warning", "subsys", "fit", "component", c.Name, "err", err)
			continue
		}
		fits[ci] = &sd
		fitted++
		sim.logger.Log("level", "info", "subsys", "fit", "component", c.Name, "shape", sd.Shape, "scale(mm)", sd.Scale)
	}
	if fitted == 0 {
		return nil, fmt.Errorf("no blend component could be fitted")
	}

	population := GeneratePopulation(s, fits)
	sim.logger.Log("level", "info", "subsys", "population", "granules", len(population))

	inlet := NewInletSampler(s.Machine)
	vane := NewVaneSolver(s)
	launcher := NewLaunchComputer(s)
	flight := NewFlightIntegrator(s)

	// Trajectories are independent; stripe the population over the workers and
	// write results by index so collection needs no locking.
	errs := make([]error, len(population))
	workers := runtime.NumCPU()
	if workers > len(population) {
		workers = len(population)
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(population); i += workers {
				errs[i] = sim.fly(&population[i], i, inlet, vane, launcher, flight)
			}
		}(w)
	}
	wg.Wait()

	for i := range population {
		if errs[i] != nil {
			res.Failures = append(res.Failures, GranuleFailure{Index: i, Component: population[i].Component, Err: errs[i]})
			continue
		}
		res.Landed = append(res.Landed, population[i])
	}
	sim.logger.Log("level", "notice", "subsys", "driver", "status", "finished",
		"landed", len(res.Landed), "failed", len(res.Failures), "unfitted", len(res.FitFailures))
	return res, nil
}

// fly runs one granule through the disk, launch and flight stages, writing the
// landing coordinates back into g on success.
func (sim *Simulation) fly(g *Granule, idx int, inlet InletSampler, vane VaneSolver, launcher LaunchComputer, flight FlightIntegrator) error {
	src := substream(sim.scenario.Seed, granuleSalt, idx)
	rng := rand.New(src)
	entry, err := inlet.Sample(rng)
	if err != nil {
		return err
	}
	exit, err := vane.Solve(entry)
	if err != nil {
		return err
	}
	launch, err := launcher.Compute(exit, src)
	if err != nil {
		return err
	}
	x, y, err := flight.Land(*g, launch)
	if err != nil {
		return err
	}
	g.X, g.Y = x, y
	return nil
}
