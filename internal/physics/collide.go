package physics

import "math"

// Merge describes one merge produced by a collision pass.
type Merge struct {
	Level  int // tier of the new ball
	X, Y   float64
	Points int
}

// Report summarises a collision pass.
type Report struct {
	ScoreDelta int
	Contacts   int
	Merges     []Merge
}

// StepCollisions runs one pairwise pass over balls and returns the compacted
// collection: survivors in their original order followed by the balls
// spawned by merges. The backing array of balls is reused.
//
// Pairs are visited as (i, j), i < j, in index order. The first ball of a
// pair is pushed along the normal and the second against it, so the order
// of balls affects trajectories and must be kept stable by callers.
// Spawned balls do not take part in the pass that created them.
func StepCollisions(balls []*Ball, p Params) ([]*Ball, Report) {
	var (
		rep     Report
		spawned []*Ball
	)

	n := len(balls)
	for i := 0; i < n; i++ {
		a := balls[i]
		for j := i + 1; j < n; j++ {
			b := balls[j]
			if p.ConsumedInert && (a.Consumed || b.Consumed) {
				continue
			}

			dx := a.X - b.X
			dy := a.Y - b.Y
			dist := math.Hypot(dx, dy)
			minDist := a.Radius + b.Radius
			if dist >= minDist {
				continue
			}
			rep.Contacts++

			if dist == 0 {
				dist = p.OverlapEpsilon
			}
			nx := dx / dist
			ny := dy / dist
			half := (minDist - dist) / 2

			a.X += nx * half
			a.Y += ny * half
			b.X -= nx * half
			b.Y -= ny * half

			dot := (a.VX-b.VX)*nx + (a.VY-b.VY)*ny
			if dot < 0 {
				impulse := dot * p.ImpulseRestitution
				a.VX -= impulse * nx
				a.VY -= impulse * ny
				b.VX += impulse * nx
				b.VY += impulse * ny
			}

			if a.Level != b.Level || a.Consumed || b.Consumed || a.Level >= MaxLevel {
				continue
			}

			next := a.Level + 1
			mx := (a.X + b.X) / 2
			my := (a.Y + b.Y) / 2
			spawned = append(spawned, p.NewBall(mx, my, next))
			a.Consumed = true
			b.Consumed = true

			pts := MergePoints(next)
			rep.ScoreDelta += pts
			rep.Merges = append(rep.Merges, Merge{Level: next, X: mx, Y: my, Points: pts})
		}
	}

	if len(spawned) == 0 {
		return balls, rep
	}

	kept := balls[:0]
	for _, b := range balls {
		if !b.Consumed {
			kept = append(kept, b)
		}
	}
	for i := len(kept); i < n; i++ {
		balls[i] = nil
	}
	return append(kept, spawned...), rep
}
