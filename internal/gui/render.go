package gui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/suikasim/internal/physics"
)

var (
	colBg     = color.RGBA{24, 20, 16, 255}
	colPanel  = color.RGBA{36, 30, 24, 255}
	colWall   = color.RGBA{139, 90, 43, 255}
	colLine   = color.RGBA{255, 105, 97, 255}
	colGuide  = color.RGBA{255, 255, 255, 60}
	colDanger = color.RGBA{255, 0, 0, 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.state
	sc := float32(worldScale)
	boardW := float32(s.Params.Width) * sc
	boardH := float32(s.Params.Height) * sc

	screen.Fill(colBg)
	vector.DrawFilledRect(screen, boardW, 0, panelWidth, boardH, colPanel, false)
	vector.StrokeLine(screen, boardW, 0, boardW, boardH, 2, colWall, false)

	lineCol := colLine
	if s.OverlineTicks > 0 {
		lineCol = colDanger
	}
	ly := float32(s.Rules.LineY) * sc
	vector.StrokeLine(screen, 0, ly, boardW, ly, 2, lineCol, true)

	if cur := s.Current; cur != nil && !s.Over {
		cx, cy, r := float32(cur.X)*sc, float32(cur.Y)*sc, float32(cur.Radius)*sc
		vector.StrokeLine(screen, cx, cy+r, cx, boardH, 1, colGuide, false)
		vector.DrawFilledCircle(screen, cx, cy, r, cur.Color(), true)
	}

	for _, b := range s.Balls {
		vector.DrawFilledCircle(screen, float32(b.X)*sc, float32(b.Y)*sc, float32(b.Radius)*sc, b.Color(), true)
	}

	g.drawPanel(screen, int(boardW)+12)

	if s.Over {
		ebitenutil.DebugPrintAt(screen, "GAME OVER - press R", int(boardW)/2-60, int(boardH)/2)
	} else if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", int(boardW)/2-20, int(boardH)/2)
	}
}

func (g *Game) drawPanel(screen *ebiten.Image, x int) {
	s := g.state
	lines := []string{
		"SUIKASIM",
		"",
		fmt.Sprintf("score  %d", s.Score),
		fmt.Sprintf("best   %d", g.best),
		fmt.Sprintf("balls  %d", len(s.Balls)),
		fmt.Sprintf("time   %.1fs", float64(s.Ticks)/float64(g.tps)),
		"",
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, x, 12+i*16)
	}

	y := 12 + len(lines)*16
	g.drawSlot(screen, "next", s.Next, x, y)
	g.drawSlot(screen, "hold", s.Hold, x, y+56)

	y += 124
	for l := 0; l < physics.NumTiers; l++ {
		vector.DrawFilledCircle(screen, float32(x+6), float32(y+l*16+8), 5, physics.Palette[l], true)
		ebitenutil.DebugPrintAt(screen, physics.TierName[l], x+18, y+l*16)
	}

	help := []string{"<- -> move", "space drop", "c hold", "p pause", "r restart", "q quit"}
	hy := int(float64(s.Params.Height)*worldScale) - len(help)*16 - 8
	for i, l := range help {
		ebitenutil.DebugPrintAt(screen, l, x, hy+i*16)
	}
}

func (g *Game) drawSlot(screen *ebiten.Image, label string, b *physics.Ball, x, y int) {
	ebitenutil.DebugPrintAt(screen, label, x, y)
	if b == nil {
		ebitenutil.DebugPrintAt(screen, "-", x+48, y)
		return
	}
	// slot previews are capped so high tiers still fit the panel
	r := min(float32(b.Radius)*float32(worldScale), 22)
	vector.DrawFilledCircle(screen, float32(x+70)+r, float32(y+8), r, b.Color(), true)
	ebitenutil.DebugPrintAt(screen, physics.TierName[b.Level], x, y+20)
	if label == "hold" && g.state.HoldUsed {
		ebitenutil.DebugPrintAt(screen, "(used)", x, y+34)
	}
}
