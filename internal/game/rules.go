package game

// Rules are the game constants layered on top of the physics world.
type Rules struct {
	// LineY is the warning line; a ball whose top edge is above it counts
	// towards the overline timer.
	LineY float64
	// OverlineLimit is the number of consecutive overline ticks tolerated.
	OverlineLimit int
	// DropOffset places new balls this far above the warning line.
	DropOffset float64
	// MoveStep is how far the current ball moves per move action.
	MoveStep float64
	// SpawnTiers is the number of low tiers new balls are drawn from.
	SpawnTiers int
}

func DefaultRules() Rules {
	return Rules{
		LineY:         150,
		OverlineLimit: 120,
		DropOffset:    40,
		MoveStep:      8,
		SpawnTiers:    3,
	}
}
