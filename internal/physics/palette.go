package physics

import (
	"fmt"
	"image/color"
)

const (
	// MaxLevel is the terminal tier; two balls at this tier never merge.
	MaxLevel = 10
	NumTiers = MaxLevel + 1
)

var Palette = [NumTiers]color.RGBA{
	{255, 0, 0, 255},
	{255, 165, 0, 255},
	{255, 255, 0, 255},
	{0, 255, 0, 255},
	{0, 128, 255, 255},
	{75, 0, 130, 255},
	{128, 0, 255, 255},
	{255, 105, 180, 255},
	{160, 82, 45, 255},
	{0, 0, 0, 255},
	{255, 255, 255, 255},
}

// TierName is a short label per tier, used by the front ends.
var TierName = [NumTiers]string{
	"red", "orange", "yellow", "green", "azure", "indigo",
	"violet", "pink", "sienna", "black", "white",
}

// Hex formats a palette entry as #rrggbb.
func Hex(level int) string {
	c := Palette[clampLevel(level)]
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MergePoints is the score for producing a ball of the given tier.
func MergePoints(level int) int {
	return 10 << level
}

func clampLevel(level int) int {
	if level < 0 {
		return 0
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
