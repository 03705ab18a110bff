// Package automation runs scripted batches of headless games: yaml
// scenarios and one-parameter sweeps.
package automation

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/san-kum/suikasim/internal/config"
	"github.com/san-kum/suikasim/internal/experiment"
	"github.com/san-kum/suikasim/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of batches
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one batch. Zero fields fall back to the base config.
type ScenarioStep struct {
	Name   string             `yaml:"name"`
	Preset string             `yaml:"preset"`
	Policy string             `yaml:"policy"`
	Seed   int64              `yaml:"seed"`
	Ticks  int                `yaml:"ticks"`
	Runs   int                `yaml:"runs"`
	Params map[string]float64 `yaml:"params"`
	// Set overrides config fields by dotted path, e.g. physics.gravity.
	Set map[string]any `yaml:"set"`
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Name    string
	Config  *config.Config
	Results []*sim.Result
	Summary sim.Summary
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepConfig resolves the config a step runs with.
func StepConfig(base *config.Config, step ScenarioStep) (*config.Config, error) {
	cfg := base
	if step.Preset != "" {
		cfg = config.GetPreset(step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", step.Preset)
		}
	}
	cfg, err := config.Apply(cfg, step.Set)
	if err != nil {
		return nil, err
	}
	if step.Policy != "" {
		cfg.Sim.Policy = step.Policy
	}
	if step.Seed != 0 {
		cfg.Sim.Seed = step.Seed
	}
	if step.Ticks > 0 {
		cfg.Sim.MaxTicks = step.Ticks
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step%d", i+1)
		}
		log.Printf("scenario %s: step %d/%d: %s", scenario.Name, i+1, len(scenario.Steps), name)

		cfg, err := StepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		exp := experiment.New(cfg, registry)
		if err := exp.Setup(step.Params); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		runs, err := exp.RunEnsemble(ctx, max(1, step.Runs))
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{
			Name:    name,
			Config:  cfg,
			Results: runs,
			Summary: sim.Summarize(runs),
		})
	}

	return results, nil
}

// ParameterSweep plays an ensemble at evenly spaced values of one config
// field.
type ParameterSweep struct {
	Field    string
	Min      float64
	Max      float64
	NumSteps int
	Runs     int
	Params   map[string]float64
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	Value   float64
	Summary sim.Summary
	// MeanTicks is how long games lasted on average.
	MeanTicks float64
	Metrics   map[string]float64
}

// Values returns the sweep points, Min and Max included.
func (s *ParameterSweep) Values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.Min}
	}
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	vals := make([]float64, s.NumSteps)
	for i := range vals {
		vals[i] = s.Min + float64(i)*step
	}
	return vals
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config, registry *experiment.Registry) ([]SweepResult, error) {
	values := sweep.Values()
	results := make([]SweepResult, 0, len(values))

	for i, v := range values {
		cfg, err := config.Override(base, sweep.Field, v)
		if err != nil {
			return nil, err
		}

		exp := experiment.New(cfg, registry)
		if err := exp.Setup(sweep.Params); err != nil {
			return nil, err
		}

		runs, err := exp.RunEnsemble(ctx, max(1, sweep.Runs))
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			Value:     v,
			Summary:   sim.Summarize(runs),
			MeanTicks: meanTicks(runs),
			Metrics:   meanMetrics(runs),
		})

		log.Printf("sweep %d/%d: %s=%.4f", i+1, len(values), sweep.Field, v)
	}

	return results, nil
}

func meanTicks(runs []*sim.Result) float64 {
	total := 0
	for _, r := range runs {
		total += r.Ticks
	}
	return float64(total) / float64(len(runs))
}

func meanMetrics(runs []*sim.Result) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range runs {
		for k, v := range r.Metrics {
			out[k] += v / float64(len(runs))
		}
	}
	return out
}
