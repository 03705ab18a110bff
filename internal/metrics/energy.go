package metrics

import (
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

// KineticEnergy is the mean per-ball kinetic energy, ½|v|² with unit mass,
// averaged over every tick that had balls on the board.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *game.State, r physics.Report) {
	if len(s.Balls) == 0 {
		return
	}
	var ke float64
	for _, b := range s.Balls {
		ke += 0.5 * b.Speed2()
	}
	e.total += ke / float64(len(s.Balls))
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}
