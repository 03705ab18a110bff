package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/suikasim/internal/automation"
	"github.com/san-kum/suikasim/internal/config"
	"github.com/san-kum/suikasim/internal/experiment"
	"github.com/san-kum/suikasim/internal/optim"
	"github.com/spf13/cobra"
)

func runTune(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := redirectLog(); err != nil {
		return err
	}

	objective := optim.MeanScore
	switch tuneObjective {
	case "score":
	case "survival":
		objective = optim.Survival
	default:
		return fmt.Errorf("unknown objective: %s", tuneObjective)
	}

	var names []string
	var ranges [][]float64
	for _, g := range []struct {
		name string
		vals []float64
	}{
		{"kp", kpGrid},
		{"kd", kdGrid},
		{"interval", intervalGrid},
	} {
		if len(g.vals) > 0 {
			names = append(names, g.name)
			ranges = append(ranges, g.vals)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		exp := experiment.New(cfg, registry)
		return exp, exp.Setup(params)
	}

	log.Printf("tune: policy=%s grid=%v runs=%d", cfg.Sim.Policy, names, batchRuns)
	start := time.Now()
	gs := optim.NewGridSearch(names, ranges, batchRuns)
	best, val, err := gs.Search(ctx, build, objective)
	if err != nil {
		return err
	}
	log.Printf("tune: %d trials in %v", len(gs.Trials()), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.Join(names, "\t"), tuneObjective)
	for _, tr := range gs.Trials() {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[n])
		}
		fmt.Fprintf(w, "%.1f\n", tr.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s=%.1f at", tuneObjective, val)
	for _, n := range names {
		fmt.Printf(" %s=%g", n, best[n])
	}
	fmt.Println()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := redirectLog(); err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, cfg, nil)
	if err != nil {
		return err
	}

	if sc.Description != "" {
		fmt.Printf("%s: %s\n\n", sc.Name, sc.Description)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPOLICY\tRUNS\tMEAN\tBEST\tSEED\tGAME OVERS")
	for _, r := range results {
		s := r.Summary
		fmt.Fprintf(w, "%s\t%s\t%d\t%.1f\t%d\t%d\t%d\n",
			r.Name, r.Config.Sim.Policy, s.Runs, s.MeanScore, s.BestScore, s.BestSeed, s.GameOvers)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := redirectLog(); err != nil {
		return err
	}
	// fail on a bad field before any game is played
	if _, err := config.Override(cfg, args[0], sweepMin); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		Field:    args[0],
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
		Runs:     batchRuns,
	}
	results, err := automation.RunSweep(ctx, sweep, cfg, nil)
	if err != nil {
		return err
	}

	var metricNames []string
	if len(results) > 0 {
		for k := range results[0].Metrics {
			metricNames = append(metricNames, k)
		}
		slices.Sort(metricNames)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN\tBEST\tTICKS\tGAME OVERS", args[0])
	for _, n := range metricNames {
		fmt.Fprintf(w, "\t%s", n)
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.1f\t%d\t%.0f\t%d", r.Value, r.Summary.MeanScore, r.Summary.BestScore, r.MeanTicks, r.Summary.GameOvers)
		for _, n := range metricNames {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
