package control

import (
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/sim"
)

type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Name() string { return "none" }

func (n *None) Compute(s *game.State) sim.Command {
	return sim.Command{}
}
