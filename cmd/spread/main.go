package main

import (
	"flag"
	"log"
	"os"
	"strings"

	kitlog "github.com/go-kit/kit/log"
	spreader "github.com/max-poltora/centrifugal-spreader-model"
)

// This command only reads the scenario file, runs the simulation and writes the
// landing table.

var (
	scenario string
	output   string
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", "", "spreader scenario TOML file")
	flag.StringVar(&output, "output", "", "landing table CSV (default <scenario>-landings.csv)")
	flag.BoolVar(&verbose, "verbose", false, "log fit and driver progress")
}

func main() {
	flag.Parse()
	if scenario == "" {
		log.Fatal("no scenario provided")
	}
	s, err := spreader.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("%s: %s", scenario, err)
	}

	var logger kitlog.Logger
	if verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
		logger = kitlog.With(logger, "scenario", scenario)
	}

	res, err := spreader.NewSimulation(s, logger).Run()
	if err != nil {
		log.Fatalf("run failed: %s", err)
	}
	for _, ff := range res.FitFailures {
		log.Printf("[warning] %s", ff)
	}

	if output == "" {
		output = strings.TrimSuffix(scenario, ".toml") + "-landings.csv"
	}
	f, err := os.Create(output)
	if err != nil {
		log.Fatalf("creating %s: %s", output, err)
	}
	defer f.Close()
	if err := spreader.WriteLandings(f, res.Landed); err != nil {
		log.Fatalf("writing %s: %s", output, err)
	}
	log.Printf("%d landed, %d failed granules, landing table written to %s", len(res.Landed), len(res.Failures), output)
}
