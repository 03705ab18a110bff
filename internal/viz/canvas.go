package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank   = rune(0x2800)
	noColor = -1
)

// Canvas is a braille pixel grid. Each cell also carries one color key, the
// last one painted into it; -1 means default foreground.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]int
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]int, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]int, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

// Paint lights the sub-pixel (x, y) and tags its cell with color key k.
// Passing -1 keeps the cell's current color.
func (c *Canvas) Paint(x, y, k int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if k != noColor {
		c.Colors[row][col] = k
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = noColor
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1, k int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Paint(x0, y0, k)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DashLine draws a horizontal dashed line at row y.
func (c *Canvas) DashLine(y, dash, k int) {
	w, _ := c.PixelSize()
	for x := 0; x < w; x++ {
		if (x/dash)%2 == 0 {
			c.Paint(x, y, k)
		}
	}
}

// FillCircle paints a disc centred at (cx, cy) in sub-pixel units.
func (c *Canvas) FillCircle(cx, cy, r float64, k int) {
	if r < 0.5 {
		c.Paint(int(math.Round(cx)), int(math.Round(cy)), k)
		return
	}
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		if dy*dy > r*r {
			continue
		}
		half := math.Sqrt(r*r - dy*dy)
		x0, x1 := int(math.Round(cx-half)), int(math.Round(cx+half))
		for x := x0; x < x1; x++ {
			c.Paint(x, y, k)
		}
	}
}

// DrawCircle paints only the rim of a circle.
func (c *Canvas) DrawCircle(cx, cy, r float64, k int) {
	steps := max(12, int(2*math.Pi*r))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Paint(int(math.Round(cx+r*math.Cos(a))), int(math.Round(cy+r*math.Sin(a))), k)
	}
}

// Render returns the canvas with each cell styled by style(colorKey). Runs
// of cells sharing a key are rendered together.
func (c *Canvas) Render(style func(k int) lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Colors[i][j] == c.Colors[i][start] {
				continue
			}
			run := string(row[start:j])
			if k := c.Colors[i][start]; k == noColor {
				b.WriteString(run)
			} else {
				b.WriteString(style(k).Render(run))
			}
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
