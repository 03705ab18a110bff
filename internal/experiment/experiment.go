package experiment

import (
	"context"
	"fmt"
	"maps"

	"github.com/san-kum/suikasim/internal/config"
	"github.com/san-kum/suikasim/internal/sim"
)

// Experiment binds a resolved config to a policy and metric set.
type Experiment struct {
	cfg       *config.Config
	registry  *Registry
	params    map[string]float64
	simulator *sim.Simulator
}

func New(cfg *config.Config, registry *Registry) *Experiment {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Experiment{
		cfg:      cfg,
		registry: registry,
	}
}

// Setup builds the simulator. Extra params override the ones derived from
// the config (drop interval and seed).
func (e *Experiment) Setup(params map[string]float64) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.params = map[string]float64{
		"interval": float64(e.cfg.Sim.DropInterval),
		"seed":     float64(e.cfg.Sim.Seed),
	}
	maps.Copy(e.params, params)

	s, err := e.build()
	if err != nil {
		return err
	}
	e.simulator = s
	return nil
}

func (e *Experiment) build() (*sim.Simulator, error) {
	policy, err := e.registry.GetPolicy(e.cfg.Sim.Policy, e.params)
	if err != nil {
		return nil, err
	}
	s := sim.New(e.cfg.Params(), e.cfg.GameRules(), policy)
	for _, m := range e.registry.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.simConfig())
}

// RunEnsemble plays runs games in parallel on consecutive seeds starting at
// the configured seed.
func (e *Experiment) RunEnsemble(ctx context.Context, runs int) ([]*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", runs)
	}
	ens := sim.NewEnsemble(func() *sim.Simulator {
		// params were already validated by Setup
		s, _ := e.build()
		return s
	}, runs, e.cfg.Sim.Seed)
	return ens.Run(ctx, e.simConfig())
}

func (e *Experiment) simConfig() sim.Config {
	return sim.Config{
		MaxTicks: e.cfg.Sim.MaxTicks,
		Seed:     e.cfg.Sim.Seed,
	}
}
