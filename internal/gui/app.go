// Package gui is the windowed front end, built on ebiten.
package gui

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/suikasim/internal/game"
)

const (
	panelWidth = 180
	// worldScale maps world units to screen pixels.
	worldScale = 0.5
)

// Input is one tick's worth of player intent.
type Input struct {
	Left, Right bool
	Drop        bool
	Hold        bool
	Pause       bool
	Restart     bool
	Quit        bool
	// AimX is a world x to place the current ball at before dropping,
	// used for mouse clicks; negative means unset.
	AimX float64
}

// Game drives a game.State from ebiten's update loop. Held arrow keys move
// the current ball one step per tick.
type Game struct {
	state  *game.State
	tps    int
	paused bool
	best   int
	ended  bool
}

func New(s *game.State, tps int) *Game {
	if tps <= 0 {
		tps = 60
	}
	return &Game{state: s, tps: tps}
}

// Run opens the window and blocks until it is closed.
func Run(g *Game, title string) error {
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(g.tps)
	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func readInput(scale float64) Input {
	in := Input{
		Left:    ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Drop:    inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown),
		Hold:    inpututil.IsKeyJustPressed(ebiten.KeyC),
		Pause:   inpututil.IsKeyJustPressed(ebiten.KeyP),
		Restart: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		AimX:    -1,
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		in.AimX = float64(x) / scale
		in.Drop = true
	}
	return in
}

func (g *Game) Update() error {
	return g.apply(readInput(worldScale))
}

// apply performs one tick: input first, then the simulation step.
func (g *Game) apply(in Input) error {
	if in.Quit {
		return ebiten.Termination
	}
	if in.Restart {
		g.state.Reset()
		g.ended = false
		g.paused = false
		return nil
	}
	if in.Pause {
		g.paused = !g.paused
	}
	if g.paused || g.state.Over {
		return nil
	}

	if in.Hold {
		_ = g.state.SwapHold()
	}
	switch {
	case in.Left && !in.Right:
		_ = g.state.Move(-1)
	case in.Right && !in.Left:
		_ = g.state.Move(1)
	}
	if in.Drop {
		if in.AimX >= 0 {
			_ = g.state.MoveTo(in.AimX)
		}
		_ = g.state.Drop()
	}

	_, err := g.state.Tick()
	g.best = max(g.best, g.state.Score)
	if errors.Is(err, game.ErrGameOver) {
		if !g.ended {
			g.ended = true
			log.Printf("game over: score=%d ticks=%d", g.state.Score, g.state.Ticks)
		}
		return nil
	}
	return err
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	p := g.state.Params
	return int(p.Width*worldScale) + panelWidth, int(p.Height * worldScale)
}
