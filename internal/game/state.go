package game

import (
	"math"

	"github.com/san-kum/suikasim/internal/physics"
)

// State is one run of the game. It is owned by a single tick loop and is not
// safe for concurrent use.
type State struct {
	Params physics.Params
	Rules  Rules

	Balls []*physics.Ball
	Score int

	Current  *physics.Ball
	Next     *physics.Ball
	Hold     *physics.Ball
	HoldUsed bool

	OverlineTicks int
	Ticks         int
	Drops         int
	Merges        int
	Over          bool

	spawner *Spawner
}

func New(p physics.Params, r Rules, seed int64) *State {
	s := &State{
		Params:  p,
		Rules:   r,
		spawner: NewSpawner(p, r, seed),
	}
	s.Reset()
	return s
}

// Reset starts a fresh run. The spawner's random stream carries on.
func (s *State) Reset() {
	s.Balls = s.Balls[:0]
	s.Score = 0
	s.Current = nil
	s.Hold = nil
	s.HoldUsed = false
	s.OverlineTicks = 0
	s.Ticks = 0
	s.Drops = 0
	s.Merges = 0
	s.Over = false
	s.Next = s.spawner.Next()
	s.refill()
}

func (s *State) refill() {
	if s.Current == nil {
		s.Current = s.Next
		s.Next = s.spawner.Next()
	}
}

// Tick advances the run by one fixed step: integrate every ball, update the
// overline timer, then run one collision pass. It returns ErrGameOver on the
// tick the timer runs out and on every call after that.
func (s *State) Tick() (physics.Report, error) {
	if s.Over {
		return physics.Report{}, ErrGameOver
	}
	s.refill()

	for _, b := range s.Balls {
		b.Update(s.Params)
	}
	s.Ticks++

	if s.Overline() {
		s.OverlineTicks++
	} else {
		s.OverlineTicks = 0
	}
	if s.OverlineTicks > s.Rules.OverlineLimit {
		s.Over = true
		return physics.Report{}, ErrGameOver
	}

	var rep physics.Report
	s.Balls, rep = physics.StepCollisions(s.Balls, s.Params)
	s.Score += rep.ScoreDelta
	s.Merges += len(rep.Merges)
	return rep, nil
}

// Overline reports whether any ball's top edge is above the warning line.
func (s *State) Overline() bool {
	for _, b := range s.Balls {
		if b.AboveLine(s.Rules.LineY) {
			return true
		}
	}
	return false
}

// Surface is the highest top edge a ball of radius r would meet when
// dropped at x; the floor when nothing is in the way.
func (s *State) Surface(x, r float64) float64 {
	y := s.Params.Height
	for _, b := range s.Balls {
		if math.Abs(b.X-x) < b.Radius+r {
			y = math.Min(y, b.Top())
		}
	}
	return y
}

// Danger is the overline timer as a fraction of the limit, in [0, 1].
func (s *State) Danger() float64 {
	if s.Rules.OverlineLimit <= 0 {
		if s.OverlineTicks > 0 {
			return 1
		}
		return 0
	}
	d := float64(s.OverlineTicks) / float64(s.Rules.OverlineLimit)
	if d > 1 {
		return 1
	}
	return d
}

// Drop releases the current ball into play and promotes the next one.
func (s *State) Drop() error {
	if s.Over {
		return ErrGameOver
	}
	if s.Current == nil {
		return ErrNoCurrent
	}
	s.Balls = append(s.Balls, s.Current)
	s.Current = s.Next
	s.Next = s.spawner.Next()
	s.HoldUsed = false
	s.Drops++
	return nil
}

// SwapHold parks the current ball in the hold slot, or swaps it with the held
// ball. It can be used once per drop.
func (s *State) SwapHold() error {
	if s.Over {
		return ErrGameOver
	}
	if s.Current == nil {
		return ErrNoCurrent
	}
	if s.HoldUsed {
		return ErrHoldUsed
	}
	if s.Hold == nil {
		s.Hold = s.Current
		s.Current = s.Next
		s.Next = s.spawner.Next()
	} else {
		s.Hold, s.Current = s.Current, s.Hold
	}
	s.HoldUsed = true
	return nil
}

// Move shifts the current ball by dir move steps, keeping it inside the walls.
func (s *State) Move(dir float64) error {
	if s.Over {
		return ErrGameOver
	}
	if s.Current == nil {
		return ErrNoCurrent
	}
	return s.MoveTo(s.Current.X + dir*s.Rules.MoveStep)
}

// MoveTo places the current ball at x, clamped to the walls.
func (s *State) MoveTo(x float64) error {
	if s.Over {
		return ErrGameOver
	}
	if s.Current == nil {
		return ErrNoCurrent
	}
	r := s.Current.Radius
	s.Current.X = max(r, min(s.Params.Width-r, x))
	return nil
}

// MaxTier is the highest tier on the board, or -1 for an empty board.
func (s *State) MaxTier() int {
	top := -1
	for _, b := range s.Balls {
		if b.Level > top {
			top = b.Level
		}
	}
	return top
}

// TierCounts counts balls on the board per tier.
func (s *State) TierCounts() [physics.NumTiers]int {
	var counts [physics.NumTiers]int
	for _, b := range s.Balls {
		counts[b.Level]++
	}
	return counts
}
