package main

import (
	"fmt"
	"os"

	"github.com/san-kum/suikasim/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	envFile    string
	seed       int64
	logFile    string

	tps    int
	theme  string
	menu   bool
	policy string
	ticks  int
	runs   int
	// policy tuning
	interval int
	kp       float64
	ki       float64
	kd       float64
	columns  []float64
	// output
	format      string
	plot        bool
	svgFile     string
	curveFile   string
	historyFile string
	// tune and sweep
	kpGrid        []float64
	kdGrid        []float64
	intervalGrid  []float64
	tuneObjective string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
	batchRuns     int
	// bench
	benchSizes []int
	benchIters int
	force      bool
)

// main registers the commands and runs the root command, exiting with status
// 1 on error. With no subcommand it starts a game in the terminal.
func main() {
	rootCmd := &cobra.Command{
		Use:          "suikasim",
		Short:        "falling-merge physics toy",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&envFile, "env", ".env", "dotenv file")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one for interactive play)")
	pf.StringVar(&logFile, "log", "", "write diagnostics to this file")

	rootCmd.Flags().IntVar(&tps, "tps", 0, "ticks per second")
	rootCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	rootCmd.Flags().BoolVar(&menu, "menu", false, "start at the preset menu")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal",
		RunE:  runPlay,
	}
	playCmd.Flags().IntVar(&tps, "tps", 0, "ticks per second")
	playCmd.Flags().StringVar(&theme, "theme", "", "color theme")
	playCmd.Flags().BoolVar(&menu, "menu", false, "start at the preset menu")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "play in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&tps, "tps", 0, "ticks per second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play headless games with a drop policy",
		RunE:  runHeadless,
	}
	runCmd.Flags().StringVar(&policy, "policy", "", "drop policy (none, random, columns, greedy)")
	runCmd.Flags().IntVar(&ticks, "ticks", 0, "tick limit per game")
	runCmd.Flags().IntVar(&runs, "runs", 1, "games to play in parallel on consecutive seeds")
	runCmd.Flags().IntVar(&interval, "interval", 0, "minimum ticks between drops")
	runCmd.Flags().Float64Var(&kp, "kp", 10.0, "greedy pid kp")
	runCmd.Flags().Float64Var(&ki, "ki", 0.0, "greedy pid ki")
	runCmd.Flags().Float64Var(&kd, "kd", 2.0, "greedy pid kd")
	runCmd.Flags().Float64SliceVar(&columns, "columns", []float64{250, 500, 750}, "drop columns for the columns policy")
	runCmd.Flags().StringVar(&format, "format", "table", "output format (table, json, csv)")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the score curve of the first game")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write the final board of the first game as svg")
	runCmd.Flags().StringVar(&curveFile, "curve", "", "write the score curve of the first game as svg")
	runCmd.Flags().StringVar(&historyFile, "history", "", "write the per-tick history of the first game as csv")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid-search policy parameters for the best headless score",
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&policy, "policy", "", "drop policy to tune")
	tuneCmd.Flags().IntVar(&ticks, "ticks", 0, "tick limit per game")
	tuneCmd.Flags().IntVar(&batchRuns, "runs", 4, "games per grid point")
	tuneCmd.Flags().Float64SliceVar(&kpGrid, "kp", []float64{4, 10, 20}, "kp values")
	tuneCmd.Flags().Float64SliceVar(&kdGrid, "kd", []float64{0, 2, 5}, "kd values")
	tuneCmd.Flags().Float64SliceVar(&intervalGrid, "intervals", nil, "drop interval values")
	tuneCmd.Flags().StringVar(&tuneObjective, "objective", "score", "what to maximize (score, survival)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "run the batches listed in a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep <field>",
		Short: "play ensembles across a range of one config field, e.g. physics.gravity",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&policy, "policy", "", "drop policy")
	sweepCmd.Flags().IntVar(&ticks, "ticks", 0, "tick limit per game")
	sweepCmd.Flags().IntVar(&batchRuns, "runs", 4, "games per value")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure the collision pass at several ball counts",
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "balls", []int{10, 50, 100, 200, 400}, "ball counts")
	benchCmd.Flags().IntVar(&benchIters, "iters", 200, "passes per ball count")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "inspect or write configuration",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configInit,
	}
	configInitCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "print the effective config",
		RunE:  configShow,
	}
	configCmd.AddCommand(configInitCmd, configShowCmd)

	rootCmd.AddCommand(playCmd, guiCmd, runCmd, tuneCmd, scenarioCmd, sweepCmd, benchCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
