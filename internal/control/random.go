package control

import (
	"math/rand"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/sim"
)

// Random picks a uniformly random column for every ball.
type Random struct {
	rng    *rand.Rand
	turn   turn
	target float64
}

func NewRandom(seed int64, interval int) *Random {
	return &Random{
		rng:  rand.New(rand.NewSource(seed)),
		turn: newTurn(interval),
	}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Compute(s *game.State) sim.Command {
	if s.Current == nil {
		return sim.Command{}
	}
	if r.turn.started(s) {
		r.target = clampX(s, r.rng.Float64()*s.Params.Width, s.Current.Radius)
	}
	return r.turn.approach(s, r.target)
}
