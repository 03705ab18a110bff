package control

import (
	"math"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
	"github.com/san-kum/suikasim/internal/sim"
)

// turn tracks the ball a policy is currently placing and the drop cadence.
type turn struct {
	ball     *physics.Ball
	lastDrop int
	interval int
}

func newTurn(interval int) turn {
	if interval < 1 {
		interval = 1
	}
	return turn{interval: interval, lastDrop: -interval}
}

// started reports whether s.Current is a ball this turn has not seen yet.
func (t *turn) started(s *game.State) bool {
	if s.Current == t.ball {
		return false
	}
	t.ball = s.Current
	return true
}

func (t *turn) ready(s *game.State) bool {
	return s.Ticks-t.lastDrop >= t.interval
}

// approach moves toward x at one step per tick and drops once aligned and
// the cadence allows it.
func (t *turn) approach(s *game.State, x float64) sim.Command {
	diff := x - s.Current.X
	step := s.Rules.MoveStep
	if math.Abs(diff) > step/2 {
		return sim.Command{Move: clampUnit(diff / step)}
	}
	return t.dropIfReady(s)
}

func (t *turn) dropIfReady(s *game.State) sim.Command {
	if !t.ready(s) {
		return sim.Command{}
	}
	t.lastDrop = s.Ticks
	return sim.Command{Drop: true}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// clampX keeps a target inside the walls for a ball of radius r.
func clampX(s *game.State, x, r float64) float64 {
	return math.Max(r, math.Min(s.Params.Width-r, x))
}
