package sim

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

// Simulator plays one game headless with a policy standing in for the player.
type Simulator struct {
	params    physics.Params
	rules     game.Rules
	policy    Policy
	metrics   []Metric
	observers []Observer
}

func New(p physics.Params, r game.Rules, policy Policy) *Simulator {
	return &Simulator{
		params:    p,
		rules:     r,
		policy:    policy,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run plays until the game ends or cfg.MaxTicks ticks have passed. Context
// cancellation is checked between ticks; the partial result is returned
// together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	state := game.New(s.params, s.rules, cfg.Seed)
	result := &Result{
		Seed:       cfg.Seed,
		Scores:     make([]int, 0, cfg.MaxTicks),
		BallCounts: make([]int, 0, cfg.MaxTicks),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	err := s.RunWithCallback(ctx, state, cfg, func(st *game.State, rep physics.Report) bool {
		result.Scores = append(result.Scores, st.Score)
		result.BallCounts = append(result.BallCounts, len(st.Balls))
		for _, m := range s.metrics {
			m.Observe(st, rep)
		}
		return true
	})

	result.Ticks = state.Ticks
	result.Score = state.Score
	result.Drops = state.Drops
	result.Merges = state.Merges
	result.MaxTier = state.MaxTier()
	result.GameOver = state.Over
	result.Board = make([]physics.Ball, len(state.Balls))
	for i, b := range state.Balls {
		result.Board[i] = *b
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, err
}

// RunWithCallback drives an existing state, calling fn after every completed
// tick. Returning false from fn stops the run without an error.
func (s *Simulator) RunWithCallback(ctx context.Context, state *game.State, cfg Config, fn func(*game.State, physics.Report) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	for state.Ticks < cfg.MaxTicks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.apply(state, s.policy.Compute(state)); err != nil {
			return err
		}

		rep, err := state.Tick()
		if errors.Is(err, game.ErrGameOver) {
			return nil
		}
		if err != nil {
			return err
		}

		for _, obs := range s.observers {
			obs.OnTick(state, rep)
		}
		if !fn(state, rep) {
			return nil
		}
	}
	return nil
}

func (s *Simulator) apply(state *game.State, cmd Command) error {
	if cmd.Hold {
		if err := state.SwapHold(); err != nil && !errors.Is(err, game.ErrHoldUsed) {
			return err
		}
	}
	if cmd.Move != 0 && !math.IsNaN(cmd.Move) {
		if err := state.Move(math.Max(-1, math.Min(1, cmd.Move))); err != nil {
			return err
		}
	}
	if cmd.Drop {
		if err := state.Drop(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.MaxTicks <= 0 {
		return SimError{Tick: 0, Message: "max ticks must be positive"}
	}
	if s.policy == nil {
		return SimError{Tick: 0, Message: "no policy"}
	}
	return nil
}
