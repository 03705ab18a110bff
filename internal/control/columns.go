package control

import (
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/sim"
)

// Columns drops balls at a fixed, repeating list of x positions.
type Columns struct {
	xs   []float64
	next int
	turn turn
	x    float64
}

func NewColumns(xs []float64, interval int) *Columns {
	c := &Columns{
		xs:   make([]float64, len(xs)),
		turn: newTurn(interval),
	}
	copy(c.xs, xs)
	return c
}

func (c *Columns) Name() string { return "columns" }

func (c *Columns) Compute(s *game.State) sim.Command {
	if s.Current == nil || len(c.xs) == 0 {
		return sim.Command{}
	}
	if c.turn.started(s) {
		c.x = clampX(s, c.xs[c.next%len(c.xs)], s.Current.Radius)
		c.next++
	}
	return c.turn.approach(s, c.x)
}
