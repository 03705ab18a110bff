// Package physics implements the falling-merge simulation core.
//
// The package owns two things:
//
//   - [Ball]: a circular body with per-tick integration and wall/floor response
//   - [StepCollisions]: the pairwise overlap pass that separates, bounces and
//     merges balls of equal tier
//
// A tick is always "update every ball, then one collision pass":
//
//	for _, b := range balls {
//	    b.Update(p)
//	}
//	balls, rep := physics.StepCollisions(balls, p)
//	score += rep.ScoreDelta
//
// # Scaling
//
// The collision pass is a plain O(n²) scan over index pairs. Boards hold tens
// of balls, so no spatial index is kept. `suikasim bench` reports how the pass
// scales with ball count.
package physics
