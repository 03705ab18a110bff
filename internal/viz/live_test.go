package viz

import (
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/suikasim/internal/config"
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel() Model {
	return NewModel(game.New(physics.DefaultParams(), game.DefaultRules(), 1), 60)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelMoveAndDrop(t *testing.T) {
	m := newModel()
	x := m.State().Current.X

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyLeft})
	want := x - nudgeSteps*m.State().Rules.MoveStep
	if m.State().Current.X != want {
		t.Errorf("expected x=%f after nudge, got %f", want, m.State().Current.X)
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	if len(m.State().Balls) != 1 {
		t.Errorf("expected 1 ball after drop, got %d", len(m.State().Balls))
	}
}

func TestModelTick(t *testing.T) {
	m := newModel()
	m, cmd := update(m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected next tick command")
	}
	if m.State().Ticks != 1 {
		t.Errorf("expected 1 tick, got %d", m.State().Ticks)
	}
}

func TestModelPause(t *testing.T) {
	m := newModel()
	m, _ = update(m, runes("p"))
	m, _ = update(m, TickMsg(time.Now()))
	if m.State().Ticks != 0 {
		t.Errorf("paused game ticked to %d", m.State().Ticks)
	}

	m, _ = update(m, runes("c"))
	if m.State().Hold != nil {
		t.Error("hold used while paused")
	}
}

func TestModelRestart(t *testing.T) {
	m := newModel()
	m, _ = update(m, tea.KeyMsg{Type: tea.KeySpace})
	for i := 0; i < 10; i++ {
		m, _ = update(m, TickMsg(time.Now()))
	}
	m, _ = update(m, runes("r"))

	s := m.State()
	if s.Ticks != 0 || len(s.Balls) != 0 || s.Score != 0 {
		t.Errorf("restart left ticks=%d balls=%d score=%d", s.Ticks, len(s.Balls), s.Score)
	}
}

func TestModelQuit(t *testing.T) {
	_, cmd := update(newModel(), runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModelBestSurvivesRestart(t *testing.T) {
	m := newModel()
	s := m.State()
	p := s.Params
	s.Balls = append(s.Balls, p.NewBall(400, 1300, 0), p.NewBall(500, 1300, 0))

	m, _ = update(m, TickMsg(time.Now()))
	if m.State().Score != 20 {
		t.Fatalf("expected merge for 20 points, got %d", m.State().Score)
	}
	m, _ = update(m, runes("r"))
	if m.Best() != 20 {
		t.Errorf("expected best 20, got %d", m.Best())
	}
}

func TestModelView(t *testing.T) {
	view := newModel().View()
	for _, want := range []string{"SUIKASIM", "Score", "Next", "Hold"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestGuideStopsAtSurface(t *testing.T) {
	m := newModel()
	s := m.State()
	cw, ch := m.canvas.PixelSize()
	sx, sy := float64(cw)/s.Params.Width, float64(ch)/s.Params.Height
	col := int(s.Current.X*sx) / 2
	row := int(1450*sy) / 4

	m.draw()
	if m.canvas.Colors[row][col] != keyGuide {
		t.Errorf("empty board: guide should reach the floor, got key %d", m.canvas.Colors[row][col])
	}

	s.Balls = append(s.Balls, s.Params.NewBall(s.Current.X, 1000, 2))
	m.draw()
	if m.canvas.Colors[row][col] != noColor {
		t.Errorf("guide drawn below the ball in the way, key %d", m.canvas.Colors[row][col])
	}
	top := int((1000-s.Balls[0].Radius)*sy)/4 - 1
	if m.canvas.Colors[top][col] != keyGuide {
		t.Errorf("guide missing just above the ball, key %d", m.canvas.Colors[top][col])
	}
}

func TestFrame(t *testing.T) {
	s := game.New(physics.DefaultParams(), game.DefaultRules(), 1)
	s.Balls = append(s.Balls, s.Params.NewBall(500, 1000, 3))

	img := Frame(s, gifScale)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 300 {
		t.Fatalf("expected 200x300, got %dx%d", b.Dx(), b.Dy())
	}
	if idx := img.ColorIndexAt(100, 200); idx != gifTierBase+3 {
		t.Errorf("expected tier index %d at ball centre, got %d", gifTierBase+3, idx)
	}
	if idx := img.ColorIndexAt(1, 1); idx != gifBackground {
		t.Errorf("expected background in corner, got %d", idx)
	}
}

func TestWriteGIF(t *testing.T) {
	s := game.New(physics.DefaultParams(), game.DefaultRules(), 1)
	frames := []*image.Paletted{Frame(s, gifScale), Frame(s, gifScale)}
	path := filepath.Join(t.TempDir(), "run.gif")

	if err := WriteGIF(path, frames, 2); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("written gif does not decode: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Errorf("expected 2 frames, got %d", len(anim.Image))
	}

	missing := filepath.Join(t.TempDir(), "no", "such", "dir", "run.gif")
	if err := WriteGIF(missing, frames, 2); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}

func appKeys(a App, keys ...tea.KeyMsg) App {
	for _, k := range keys {
		next, _ := a.Update(k)
		a = next.(App)
	}
	return a
}

func TestAppFlow(t *testing.T) {
	base := config.DefaultConfig()
	base.Sim.Seed = 9
	a := NewApp(base)

	a = appKeys(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.state != stateConfig {
		t.Fatalf("expected setup screen, got state %d", a.state)
	}
	if a.cfg.Sim.Seed != 9 {
		t.Errorf("expected seed carried from base, got %d", a.cfg.Sim.Seed)
	}

	a = appKeys(a, runes("s"))
	if a.state != stateSim {
		t.Fatalf("expected game, got state %d", a.state)
	}

	a = appKeys(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.state != stateConfig {
		t.Errorf("esc should return to setup, got state %d", a.state)
	}
}

func TestAppRejectsInvalidTuning(t *testing.T) {
	a := appKeys(NewApp(config.DefaultConfig()), tea.KeyMsg{Type: tea.KeyEnter})

	idx := -1
	for i, tn := range tunables {
		if tn.name == "spawn_tiers" {
			idx = i
		}
	}
	for i := 0; i < idx; i++ {
		a = appKeys(a, runes("j"))
	}
	for i := 0; i < 10; i++ {
		a = appKeys(a, runes("h"))
	}
	if a.cfg.Rules.SpawnTiers != 1 {
		t.Errorf("expected spawn tiers to stop at 1, got %d", a.cfg.Rules.SpawnTiers)
	}
}

func TestAppSeedStaysExact(t *testing.T) {
	const seed = int64(1_700_000_000_123_456_789)
	base := config.DefaultConfig()
	base.Sim.Seed = seed
	a := appKeys(NewApp(base), tea.KeyMsg{Type: tea.KeyEnter})

	for tunables[a.paramCursor].name != "seed" {
		a = appKeys(a, runes("j"))
	}
	a = appKeys(a, runes("l"))
	if a.cfg.Sim.Seed != seed+1 {
		t.Fatalf("expected seed %d after nudge, got %d", seed+1, a.cfg.Sim.Seed)
	}

	a = appKeys(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.editBuf != "1700000000123456790" {
		t.Errorf("edit buffer %q lost precision", a.editBuf)
	}
	for range a.editBuf {
		a = appKeys(a, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	a = appKeys(a, runes("4"), runes("2"), tea.KeyMsg{Type: tea.KeyEnter})
	if a.cfg.Sim.Seed != 42 {
		t.Errorf("expected typed seed 42, got %d", a.cfg.Sim.Seed)
	}
}
