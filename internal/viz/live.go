package viz

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/suikasim/internal/game"
	"github.com/san-kum/suikasim/internal/physics"
)

const (
	boardCols       = 30
	boardRows       = 24
	historyCapacity = 600
	nudgeSteps      = 4
	jumpSteps       = 16
	flashTicks      = 45
	gifPath         = "suikasim.gif"
)

type TickMsg time.Time

// Model is a playable game in the terminal. The game state is ticked at
// tps from bubbletea's update loop.
type Model struct {
	state     *game.State
	tps       int
	canvas    *Canvas
	running   bool
	ended     bool
	showHelp  bool
	best      int
	scores    []float64
	flash     []physics.Merge
	flashLeft int
	recording bool
	frames    []*image.Paletted
}

func NewModel(s *game.State, tps int) Model {
	if tps <= 0 {
		tps = 60
	}
	return Model{
		state:   s,
		tps:     tps,
		canvas:  NewCanvas(boardCols, boardRows),
		running: true,
		scores:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) State() *game.State { return m.state }

func (m Model) Best() int { return m.best }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the game.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.stopRecording()
			}
			return m, tea.Quit
		case "left", "h":
			m.move(-nudgeSteps)
		case "right", "l":
			m.move(nudgeSteps)
		case "shift+left", "H":
			m.move(-jumpSteps)
		case "shift+right", "L":
			m.move(jumpSteps)
		case " ", "space", "down", "j", "enter":
			if m.running {
				_ = m.state.Drop()
			}
		case "c":
			if m.running {
				_ = m.state.SwapHold()
			}
		case "p":
			m.running = !m.running
		case "r":
			m.restart()
		case "t":
			NextTheme()
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
			if m.recording {
				m.frames = append(m.frames, Frame(m.state, gifScale))
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) move(steps int) {
	if !m.running {
		return
	}
	_ = m.state.Move(float64(steps))
}

// step advances the game one tick and updates the panel history.
func (m *Model) step() {
	rep, err := m.state.Tick()
	if errors.Is(err, game.ErrGameOver) {
		if !m.ended {
			m.ended = true
			m.best = max(m.best, m.state.Score)
			log.Printf("game over: score=%d ticks=%d drops=%d max_tier=%d",
				m.state.Score, m.state.Ticks, m.state.Drops, m.state.MaxTier())
		}
		return
	}

	m.scores = append(m.scores, float64(m.state.Score))
	if len(m.scores) > historyCapacity {
		m.scores = m.scores[1:]
	}
	m.best = max(m.best, m.state.Score)

	if len(rep.Merges) > 0 {
		m.flash = rep.Merges
		m.flashLeft = flashTicks
		for _, mg := range rep.Merges {
			log.Printf("merge: tier=%d at (%.0f, %.0f) +%d", mg.Level, mg.X, mg.Y, mg.Points)
		}
	} else if m.flashLeft > 0 {
		m.flashLeft--
	}
}

func (m *Model) restart() {
	m.state.Reset()
	m.ended = false
	m.running = true
	m.scores = m.scores[:0]
	m.flash = nil
	m.flashLeft = 0
}

func (m *Model) stopRecording() {
	if err := WriteGIF(gifPath, m.frames, 100/m.tps+1); err != nil {
		log.Printf("gif: %v", err)
	} else {
		log.Printf("gif: wrote %d frames to %s", len(m.frames), gifPath)
	}
	m.recording = false
	m.frames = nil
}

// draw rasterises the board onto the braille canvas.
func (m *Model) draw() {
	s := m.state
	c := m.canvas
	c.Clear()

	cw, ch := c.PixelSize()
	sx := float64(cw) / s.Params.Width
	sy := float64(ch) / s.Params.Height

	c.DashLine(int(s.Rules.LineY*sy), 2, keyLine)

	if cur := s.Current; cur != nil && !s.Over {
		gx := int(cur.X * sx)
		land := int(s.Surface(cur.X, cur.Radius) * sy)
		c.DrawLine(gx, int((cur.Y+cur.Radius)*sy), gx, min(land, ch-1), keyGuide)
		c.DrawCircle(cur.X*sx, cur.Y*sy, cur.Radius*sx, cur.Level)
	}

	for _, b := range s.Balls {
		c.FillCircle(b.X*sx, b.Y*sy, b.Radius*sx, b.Level)
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	s := m.state

	board := boardStyle().Render(m.canvas.Render(cellStyle))

	var b strings.Builder
	b.WriteString(titleStyle().Render("SUIKASIM") + "\n")

	status := lipgloss.NewStyle().Foreground(CurrentTheme.Graph).Render("PLAYING")
	switch {
	case s.Over:
		status = lipgloss.NewStyle().Foreground(CurrentTheme.Danger).Bold(true).Render("GAME OVER")
	case !m.running:
		status = lipgloss.NewStyle().Foreground(CurrentTheme.Line).Render("PAUSED")
	}
	if m.recording {
		status += "  " + lipgloss.NewStyle().Foreground(CurrentTheme.Danger).Render("● REC")
	}
	b.WriteString(status + "\n\n")

	row := func(label, value string) {
		b.WriteString(labelStyle().Render(label) + value + "\n")
	}
	row("Score", valueStyle().Render(fmt.Sprintf("%d", s.Score)))
	row("Best", valueStyle().Render(fmt.Sprintf("%d", m.best)))
	row("Balls", valueStyle().Render(fmt.Sprintf("%d", len(s.Balls))))
	row("Time", valueStyle().Render(fmt.Sprintf("%.1fs", float64(s.Ticks)/float64(m.tps))))
	row("Next", TierChip(s.Next))
	hold := TierChip(s.Hold)
	if s.HoldUsed {
		hold += mutedStyle().Render(" (used)")
	}
	row("Hold", hold)
	row("Danger", DangerBar(s.Danger(), 20))

	if m.flashLeft > 0 {
		total := 0
		for _, mg := range m.flash {
			total += mg.Points
		}
		last := m.flash[len(m.flash)-1]
		b.WriteString("\n" + tierStyle(last.Level).Bold(true).Render(
			fmt.Sprintf("+%d  %s!", total, physics.TierName[last.Level])) + "\n")
	}

	b.WriteString("\n" + TierLadder(s.TierCounts(), s.MaxTier()))

	if len(m.scores) > 1 {
		chart := asciigraph.Plot(m.scores, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("score"))
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(CurrentTheme.Graph).Render(chart) + "\n")
	}

	b.WriteString(mutedStyle().Render("\n←→ move  SPC drop  C hold\nP pause  R restart  ? help"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, board, panelStyle().Render(b.String()))
	if m.showHelp {
		return helpText + "\n\n" + main
	}
	return main
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  ← → / H L   - Nudge ball            ║
║  Shift+← →   - Jump ball             ║
║  Space/↓/J   - Drop                  ║
║  C           - Swap with hold        ║
║  P           - Pause/Resume          ║
║  R           - Restart               ║
║  T           - Cycle themes          ║
║  G           - Toggle GIF recording  ║
║  Q           - Quit                  ║
║  ?           - Toggle this help      ║
╚══════════════════════════════════════╝`
