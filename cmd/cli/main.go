package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"simlab/domain/simulation"
	"simlab/internal/config"
	"simlab/internal/container"
)

func main() {
	_ = godotenv.Load()

	defaults := simulation.DefaultParams()

	mean1 := flag.Float64("mean1", defaults.Mean1, "group 1 population mean")
	mean2 := flag.Float64("mean2", defaults.Mean2, "group 2 population mean")
	sd1 := flag.Float64("sd1", defaults.StdDev1, "group 1 population std dev")
	sd2 := flag.Float64("sd2", defaults.StdDev2, "group 2 population std dev")
	n1 := flag.Int("n1", defaults.N1, "group 1 sample size")
	n2 := flag.Int("n2", defaults.N2, "group 2 sample size")
	trials := flag.Int("trials", defaults.Trials, "number of Monte Carlo trials")
	alpha := flag.Float64("alpha", defaults.Alpha, "significance level")
	seed := flag.Int64("seed", defaults.Seed, "RNG seed (0 derives from the clock)")
	export := flag.String("export", "", "write an .xlsx workbook to this path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	ctx := context.Background()
	c, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to wire application: ", err)
	}
	defer c.Close()

	params := simulation.Params{
		Mean1:   *mean1,
		Mean2:   *mean2,
		StdDev1: *sd1,
		StdDev2: *sd2,
		N1:      *n1,
		N2:      *n2,
		Trials:  *trials,
		Alpha:   *alpha,
		Seed:    *seed,
	}

	run, err := c.Service.RunSimulation(ctx, params)
	if err != nil {
		log.Fatal("Simulation failed: ", err)
	}

	fmt.Printf("run %s: %d trials in %s (seed %d)\n\n", run.ID, params.Trials, run.Elapsed, run.Params.Seed)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "test\trejection rate\tstat mean\tstat sd\tp median")
	for _, s := range run.Summaries {
		fmt.Fprintf(w, "%s\t%.2f%% (%d)\t%.4f\t%.4f\t%.4f\n",
			s.TestName, s.RejectionRate*100, s.Rejections,
			s.StatSummary.Mean, s.StatSummary.StdDev, s.PValueSummary.Median)
	}
	w.Flush()

	if *export != "" {
		f, err := os.Create(*export)
		if err != nil {
			log.Fatal("Failed to create export file: ", err)
		}
		defer f.Close()

		if err := c.Service.ExportRun(run, f); err != nil {
			log.Fatal("Export failed: ", err)
		}
		fmt.Printf("\nexported workbook to %s\n", *export)
	}
}
