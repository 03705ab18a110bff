package sim

import (
	"fmt"

	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

// Command is what a policy does on one tick, in the order the simulator
// applies it: hold, move, drop.
type Command struct {
	// Move is a signed number of move steps, clamped to [-1, 1] like a held key.
	Move float64
	Drop bool
	Hold bool
}

type Policy interface {
	Name() string
	Compute(s *game.State) Command
}

type Metric interface {
	Name() string
	Observe(s *game.State, rep physics.Report)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s *game.State, rep physics.Report)
}

type Config struct {
	MaxTicks int
	Seed     int64
}

type Result struct {
	Seed       int64
	Ticks      int
	Score      int
	Drops      int
	Merges     int
	MaxTier    int
	GameOver   bool
	Scores     []int
	BallCounts []int
	Metrics    map[string]float64
	// Board is a copy of the balls left when the run stopped.
	Board []physics.Ball
}

type SimError struct {
	Tick    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("tick %d: %s", e.Tick, e.Message)
}
