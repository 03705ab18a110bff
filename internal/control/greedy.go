package control

import (
	"math"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
	"github.com/san-kum/suikasim/internal/sim"
)

const candidateColumns = 9

// Greedy aims each ball at the highest board ball of the same tier, falling
// back to the column with the lowest surface. Steering uses a PID on the x
// error. When the current tier has no partner on the board but the held
// ball does, it swaps them first.
type Greedy struct {
	pid    *PID
	turn   turn
	target float64
}

func NewGreedy(kp, ki, kd float64, interval int) *Greedy {
	return &Greedy{
		pid:  NewPID(kp, ki, kd, 0),
		turn: newTurn(interval),
	}
}

func (g *Greedy) Name() string { return "greedy" }

func (g *Greedy) Compute(s *game.State) sim.Command {
	if s.Current == nil {
		return sim.Command{}
	}

	if g.turn.started(s) {
		if !s.HoldUsed && s.Hold != nil && partner(s, s.Current.Level) == nil && partner(s, s.Hold.Level) != nil {
			return sim.Command{Hold: true}
		}
		g.target = g.pick(s)
		g.pid.Reset()
		g.pid.Target = g.target
	}

	err := g.target - s.Current.X
	if math.Abs(err) <= s.Rules.MoveStep/2 {
		return g.turn.dropIfReady(s)
	}

	u := g.pid.Compute(s.Current.X, float64(s.Ticks))
	return sim.Command{Move: clampUnit(u / s.Rules.MoveStep)}
}

func (g *Greedy) pick(s *game.State) float64 {
	r := s.Current.Radius
	if b := partner(s, s.Current.Level); b != nil {
		return clampX(s, b.X, r)
	}

	best := s.Params.Width / 2
	bestSurface := s.Surface(best, r)
	lo, hi := r, s.Params.Width-r
	for i := 0; i < candidateColumns; i++ {
		x := lo + (hi-lo)*float64(i)/float64(candidateColumns-1)
		if surf := s.Surface(x, r); surf > bestSurface {
			best, bestSurface = x, surf
		}
	}
	return best
}

// partner returns the same-tier board ball whose top edge is highest.
func partner(s *game.State, level int) *physics.Ball {
	var found *physics.Ball
	for _, b := range s.Balls {
		if b.Level != level || b.Level >= physics.MaxLevel {
			continue
		}
		if found == nil || b.Top() < found.Top() {
			found = b
		}
	}
	return found
}
