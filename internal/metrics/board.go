package metrics

import (
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

// Merges counts merge events and remembers the biggest single-tick chain.
type Merges struct {
	count int
	chain int
}

func NewMerges() *Merges { return &Merges{} }

func (m *Merges) Name() string { return "merges" }

func (m *Merges) Observe(s *game.State, r physics.Report) {
	m.count += len(r.Merges)
	m.chain = max(m.chain, len(r.Merges))
}

func (m *Merges) Value() float64 { return float64(m.count) }

// Chain is the most merges seen in one collision pass.
func (m *Merges) Chain() int { return m.chain }

func (m *Merges) Reset() {
	m.count = 0
	m.chain = 0
}

// MaxTier is the highest tier ever reached on the board, -1 if none.
type MaxTier struct {
	tier int
}

func NewMaxTier() *MaxTier { return &MaxTier{tier: -1} }

func (m *MaxTier) Name() string { return "max_tier" }

func (m *MaxTier) Observe(s *game.State, r physics.Report) {
	m.tier = max(m.tier, s.MaxTier())
}

func (m *MaxTier) Value() float64 { return float64(m.tier) }

func (m *MaxTier) Reset() { m.tier = -1 }

// PeakBalls is the largest board population seen.
type PeakBalls struct {
	peak int
}

func NewPeakBalls() *PeakBalls { return &PeakBalls{} }

func (p *PeakBalls) Name() string { return "peak_balls" }

func (p *PeakBalls) Observe(s *game.State, r physics.Report) {
	p.peak = max(p.peak, len(s.Balls))
}

func (p *PeakBalls) Value() float64 { return float64(p.peak) }

func (p *PeakBalls) Reset() { p.peak = 0 }
