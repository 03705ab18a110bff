// Package control provides drop policies that stand in for a player.
//
// Policies implement [sim.Policy] and return one [sim.Command] per tick:
//
//   - [None]: never acts
//   - [Random]: random column, drops on a fixed cadence
//   - [Columns]: cycles through a fixed list of columns
//   - [Greedy]: PID-steers toward the best column and uses the hold slot
//
// # Usage
//
//	policy := control.NewGreedy(10, 0.0, 2.0, 45)  // Kp, Ki, Kd, drop interval
//	s := sim.New(params, rules, policy)
//	result, _ := s.Run(ctx, sim.Config{MaxTicks: 36000, Seed: 1})
//
// Steering is expressed in move steps, at most one per tick, so policies move
// the current ball exactly as fast as a held arrow key.
package control
