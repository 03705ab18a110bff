package physics

import "image/color"

type Ball struct {
	Level  int
	Radius float64
	X, Y   float64
	VX, VY float64

	// Consumed marks a ball that merged during the running collision pass.
	// StepCollisions purges consumed balls before it returns.
	Consumed bool
}

// NewBall creates a resting ball at (x, y). Levels outside 0..MaxLevel are
// clamped so the radius and palette lookups always stay valid.
func (p Params) NewBall(x, y float64, level int) *Ball {
	level = clampLevel(level)
	return &Ball{
		Level:  level,
		Radius: p.Radius(level),
		X:      x,
		Y:      y,
	}
}

func (b *Ball) Color() color.RGBA { return Palette[b.Level] }

// Top is the y coordinate of the ball's upper edge.
func (b *Ball) Top() float64 { return b.Y - b.Radius }

// AboveLine reports whether the upper edge has crossed a horizontal line.
func (b *Ball) AboveLine(lineY float64) bool { return b.Top() < lineY }

// Update advances the ball by one tick: gravity, semi-implicit Euler, then
// wall and floor response. There is no ceiling.
func (b *Ball) Update(p Params) {
	b.VY += p.Gravity
	b.X += b.VX
	b.Y += b.VY

	if b.X-b.Radius < 0 {
		b.X = b.Radius
		b.VX *= -p.WallRestitution
	}
	if b.X+b.Radius > p.Width {
		b.X = p.Width - b.Radius
		b.VX *= -p.WallRestitution
	}

	if b.Y+b.Radius > p.Height {
		b.Y = p.Height - b.Radius
		b.VY *= -p.FloorRestitution
		b.VX *= p.FloorDamping
	}
}

// Speed2 is the squared speed, used for kinetic energy.
func (b *Ball) Speed2() float64 { return b.VX*b.VX + b.VY*b.VY }

func (b *Ball) Clone() *Ball {
	c := *b
	return &c
}
