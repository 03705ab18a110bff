package game

import (
	"math"
	"math/rand"

	"github.com/san-kum/suikasim/internal/physics"
)

// Spawner creates the low-tier balls handed to the player. Merges are the
// only way to reach higher tiers.
type Spawner struct {
	params physics.Params
	rules  Rules
	rng    *rand.Rand
}

func NewSpawner(p physics.Params, r Rules, seed int64) *Spawner {
	return &Spawner{
		params: p,
		rules:  r,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// DropPoint is where fresh balls appear.
func (s *Spawner) DropPoint() (x, y float64) {
	return math.Floor(s.params.Width / 2), s.rules.LineY - s.rules.DropOffset
}

func (s *Spawner) Next() *physics.Ball {
	tiers := s.rules.SpawnTiers
	if tiers < 1 {
		tiers = 1
	}
	x, y := s.DropPoint()
	return s.params.NewBall(x, y, s.rng.Intn(tiers))
}
