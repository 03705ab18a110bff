package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/suikasim/internal/config"
	"github.com/san-kum/suikasim/internal/experiment"
	"github.com/san-kum/suikasim/internal/export"
	"github.com/san-kum/suikasim/internal/gui"
	"github.com/san-kum/suikasim/internal/physics"
	"github.com/san-kum/suikasim/internal/sim"
	"github.com/san-kum/suikasim/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// loadConfig resolves defaults, preset, file and environment, then applies
// the flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, config.Env, error) {
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return nil, env, err
	}
	cfg, err := config.Resolve(preset, configFile, env)
	if err != nil {
		return nil, env, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Lookup("tps") != nil && flags.Changed("tps") {
		cfg.Sim.TPS = tps
	}
	if flags.Lookup("policy") != nil && flags.Changed("policy") {
		cfg.Sim.Policy = policy
	}
	if flags.Lookup("ticks") != nil && flags.Changed("ticks") {
		cfg.Sim.MaxTicks = ticks
	}
	if flags.Lookup("interval") != nil && flags.Changed("interval") {
		cfg.Sim.DropInterval = interval
	}
	return cfg, env, cfg.Validate()
}

// seedPinned reports whether the user chose a seed, including an explicit 0.
func seedPinned(cmd *cobra.Command, env config.Env) bool {
	return cmd.Flags().Changed("seed") || env.HasSeed
}

// interactiveSeed gives live play a fresh game unless a seed was pinned.
func interactiveSeed(cfg *config.Config, pinned bool) {
	if !pinned && cfg.Sim.Seed == 0 {
		cfg.Sim.Seed = time.Now().UnixNano()
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, env, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	interactiveSeed(cfg, seedPinned(cmd, env))

	if theme == "" {
		theme = env.Theme
	}
	if theme != "" {
		viz.SetTheme(theme)
	}

	if logFile != "" {
		f, err := tea.LogToFile(logFile, "suikasim")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	log.Printf("play: seed=%d preset=%q", cfg.Sim.Seed, preset)

	var model tea.Model = viz.NewModel(cfg.NewState(), cfg.Sim.TPS)
	if menu {
		model = viz.NewApp(cfg)
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, env, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	interactiveSeed(cfg, seedPinned(cmd, env))
	if err := redirectLog(); err != nil {
		return err
	}
	log.Printf("gui: seed=%d preset=%q", cfg.Sim.Seed, preset)
	return gui.Run(gui.New(cfg.NewState(), cfg.Sim.TPS), "suikasim")
}

func redirectLog() error {
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := redirectLog(); err != nil {
		return err
	}

	params := map[string]float64{"kp": kp, "ki": ki, "kd": kd}
	for i, x := range columns {
		params[fmt.Sprintf("col%d", i)] = x
	}

	exp := experiment.New(cfg, nil)
	if err := exp.Setup(params); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("run: policy=%s runs=%d seed=%d max_ticks=%d", cfg.Sim.Policy, runs, cfg.Sim.Seed, cfg.Sim.MaxTicks)
	start := time.Now()
	results, err := exp.RunEnsemble(ctx, runs)
	if err != nil {
		return err
	}
	log.Printf("run: completed in %v", time.Since(start))

	if err := export.Write(os.Stdout, format, results); err != nil {
		return err
	}
	if err := writeArtifacts(cfg, results[0]); err != nil {
		return err
	}

	if plot && len(results[0].Scores) > 1 {
		scores := make([]float64, len(results[0].Scores))
		for i, s := range results[0].Scores {
			scores[i] = float64(s)
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(scores,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("score, seed %d", results[0].Seed)),
		))
	}
	return nil
}

// writeArtifacts saves the optional board snapshot, score curve and history
// of the first game.
func writeArtifacts(cfg *config.Config, r *sim.Result) error {
	if svgFile != "" {
		svg := export.BoardToSVG(cfg.Params(), cfg.Rules.LineY, r.Board, r.Score)
		if err := os.WriteFile(svgFile, []byte(svg), 0o644); err != nil {
			return err
		}
		log.Printf("run: board written to %s", svgFile)
	}
	if curveFile != "" {
		svg := export.ScoreCurveToSVG(r.Scores, 800, 300, "#e07a5f")
		if err := os.WriteFile(curveFile, []byte(svg), 0o644); err != nil {
			return err
		}
	}
	if historyFile != "" {
		f, err := os.Create(historyFile)
		if err != nil {
			return err
		}
		if err := export.WriteHistoryCSV(f, r); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.Printf("run: history written to %s", historyFile)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()
	rng := rand.New(rand.NewSource(cfg.Sim.Seed))

	fmt.Printf("benchmarking collision pass (%d passes each)\n\n", benchIters)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BALLS\tPAIRS\tTIME/PASS\tPASSES/SEC\tPAIRS/SEC")

	for _, n := range benchSizes {
		if n <= 0 {
			continue
		}
		balls := make([]*physics.Ball, n)
		for i := range balls {
			// terminal tier never merges, so the count stays fixed
			b := p.NewBall(rng.Float64()*p.Width, rng.Float64()*p.Height, physics.MaxLevel)
			b.VX, b.VY = rng.Float64()*2-1, rng.Float64()*2-1
			balls[i] = b
		}

		start := time.Now()
		for i := 0; i < benchIters; i++ {
			for _, b := range balls {
				b.Update(p)
			}
			balls, _ = physics.StepCollisions(balls, p)
		}
		elapsed := time.Since(start)

		pairs := n * (n - 1) / 2
		perPass := elapsed / time.Duration(max(1, benchIters))
		passesPerSec := float64(benchIters) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%.0f\n", n, pairs, perPass, passesPerSec, passesPerSec*float64(pairs))
	}
	return w.Flush()
}

func configInit(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := "suikasim.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s exists (use --force to overwrite)", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func configShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
