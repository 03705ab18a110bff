package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/suikasim/internal/config"
)

var presetInfo = map[string]string{
	"classic": "the original feel",
	"bouncy":  "lively walls and floor",
	"moon":    "low gravity, long fuse",
	"crowded": "small balls, five spawn tiers",
	"strict":  "short fuse, inert merges",
}

// tunable is one config field editable from the setup screen.
type tunable struct {
	name  string
	show  func(*config.Config) string
	nudge func(c *config.Config, dir int)
	parse func(c *config.Config, text string) error
}

func floatTunable(name string, step float64, get func(*config.Config) float64, set func(*config.Config, float64)) tunable {
	return tunable{
		name: name,
		show: func(c *config.Config) string { return strconv.FormatFloat(get(c), 'g', 4, 64) },
		nudge: func(c *config.Config, dir int) {
			set(c, get(c)+float64(dir)*step)
		},
		parse: func(c *config.Config, text string) error {
			v, err := strconv.ParseFloat(text, 64)
			if err == nil {
				set(c, v)
			}
			return err
		},
	}
}

// intTunable edits integer fields without a float round trip, so large
// values like time-based seeds stay exact.
func intTunable(name string, step int64, get func(*config.Config) int64, set func(*config.Config, int64)) tunable {
	return tunable{
		name: name,
		show: func(c *config.Config) string { return strconv.FormatInt(get(c), 10) },
		nudge: func(c *config.Config, dir int) {
			set(c, get(c)+int64(dir)*step)
		},
		parse: func(c *config.Config, text string) error {
			v, err := strconv.ParseInt(text, 10, 64)
			if err == nil {
				set(c, v)
			}
			return err
		},
	}
}

var tunables = []tunable{
	floatTunable("gravity", 0.05,
		func(c *config.Config) float64 { return c.Physics.Gravity },
		func(c *config.Config, v float64) { c.Physics.Gravity = v }),
	floatTunable("wall_rest", 0.05,
		func(c *config.Config) float64 { return c.Physics.WallRestitution },
		func(c *config.Config, v float64) { c.Physics.WallRestitution = v }),
	floatTunable("floor_rest", 0.05,
		func(c *config.Config) float64 { return c.Physics.FloorRestitution },
		func(c *config.Config, v float64) { c.Physics.FloorRestitution = v }),
	floatTunable("ball_scale", 0.5,
		func(c *config.Config) float64 { return c.World.BallScale },
		func(c *config.Config, v float64) { c.World.BallScale = v }),
	intTunable("fuse", 10,
		func(c *config.Config) int64 { return int64(c.Rules.OverlineLimit) },
		func(c *config.Config, v int64) { c.Rules.OverlineLimit = int(v) }),
	intTunable("spawn_tiers", 1,
		func(c *config.Config) int64 { return int64(c.Rules.SpawnTiers) },
		func(c *config.Config, v int64) { c.Rules.SpawnTiers = int(v) }),
	intTunable("seed", 1,
		func(c *config.Config) int64 { return c.Sim.Seed },
		func(c *config.Config, v int64) { c.Sim.Seed = v }),
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

var (
	menuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Bold(true)
	menuSub   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b7d6b"))
	menuSel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuArrow = lipgloss.NewStyle().Foreground(lipgloss.Color("#77dd77")).Bold(true)
	menuDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
	menuKey   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb347")).Bold(true)
)

// App is a preset picker and setup screen in front of the game Model.
type App struct {
	state       int
	cursor      int
	presets     []string
	base        *config.Config
	cfg         *config.Config
	paramCursor int
	editing     bool
	editBuf     string
	live        Model
}

// NewApp starts at the preset menu. base supplies the values presets do not
// touch (seed and tick rate).
func NewApp(base *config.Config) App {
	return App{
		state:   stateMenu,
		presets: config.ListPresets(),
		base:    base,
	}
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			return m.forward(msg)
		}
	}
	return m, nil
}

func (m App) forward(msg tea.Msg) (App, tea.Cmd) {
	next, cmd := m.live.Update(msg)
	m.live = next.(Model)
	return m, cmd
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		if msg.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		return m.forward(msg)
	}
	return m, nil
}

func (m App) menuKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.cfg.Sim.Seed = m.base.Sim.Seed
		m.cfg.Sim.TPS = m.base.Sim.TPS
		m.state, m.paramCursor = stateConfig, 0
	}
	return m, nil
}

func (m App) configKey(msg tea.KeyMsg) (App, tea.Cmd) {
	tn := tunables[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			text := m.editBuf
			m.tune(func(c *config.Config) { tn.parse(c, text) })
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(tunables)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, tn.show(m.cfg)
	case "left", "h":
		m.tune(func(c *config.Config) { tn.nudge(c, -1) })
	case "right", "l":
		m.tune(func(c *config.Config) { tn.nudge(c, 1) })
	case "s":
		return m.start()
	}
	return m, nil
}

// tune applies fn only if the resulting config still validates.
func (m *App) tune(fn func(*config.Config)) {
	next := m.cfg.Clone()
	fn(next)
	if next.Validate() == nil {
		m.cfg = next
	}
}

func (m App) start() (App, tea.Cmd) {
	m.live = NewModel(m.cfg.NewState(), m.cfg.Sim.TPS)
	m.state = stateSim
	return m, m.live.Init()
}

func (m App) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func (m App) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("SUIKASIM") + "\n    " + menuSub.Render("drop, bounce, merge") + "\n    " + menuSub.Render("───────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuArrow.Render("▸"), menuSel.Render(fmt.Sprintf("%-10s", name)), menuSub.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuDim.Render(fmt.Sprintf("%-10s", name)), menuDim.Render(desc)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuDim.Render(" navigate  ") + menuKey.Render("enter") + menuDim.Render(" select  ") + menuKey.Render("q") + menuDim.Render(" quit") + "\n")
	return b.String()
}

func (m App) viewConfig() string {
	var b strings.Builder
	name := m.presets[m.cursor]
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(name)) + "\n    " + menuSub.Render(presetInfo[name]) + "\n    " + menuSub.Render("───────────────────") + "\n\n")
	for i, tn := range tunables {
		valStr := fmt.Sprintf("%8s", tn.show(m.cfg))
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%8s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuArrow.Render("▸"), menuSel.Render(fmt.Sprintf("%-12s", tn.name)), menuKey.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", menuDim.Render(fmt.Sprintf("%-12s", tn.name)), menuDim.Render(valStr)))
		}
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuDim.Render(" select  ") + menuKey.Render("h/l") + menuDim.Render(" adjust  ") + menuKey.Render("s") + menuDim.Render(" start  ") + menuKey.Render("esc") + menuDim.Render(" back") + "\n")
	return b.String()
}
