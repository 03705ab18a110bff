package physics

// Params holds the fixed constants of one world. Velocities are in pixels
// per tick, tuned for a 60 Hz tick rate.
type Params struct {
	Width     float64
	Height    float64
	BallScale float64

	Gravity            float64
	WallRestitution    float64
	FloorRestitution   float64
	FloorDamping       float64
	ImpulseRestitution float64
	OverlapEpsilon     float64

	// ConsumedInert makes balls that already merged in the current pass
	// ignore every later pair of that pass.
	ConsumedInert bool
}

func DefaultParams() Params {
	return Params{
		Width:              1000,
		Height:             1500,
		BallScale:          5,
		Gravity:            0.6,
		WallRestitution:    0.7,
		FloorRestitution:   0.6,
		FloorDamping:       0.98,
		ImpulseRestitution: 0.9,
		OverlapEpsilon:     0.01,
	}
}

// Radius returns the radius of a ball at the given tier.
func (p Params) Radius(level int) float64 {
	return (20 + float64(level)*6) * p.BallScale
}
