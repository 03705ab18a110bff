package viz

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/suikasim/internal/physics"
)

// Color keys on the canvas: 0..MaxLevel are tiers, the rest are chrome.
const (
	keyLine  = physics.NumTiers
	keyGuide = physics.NumTiers + 1
)

func boardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, true, true, true).
		BorderForeground(CurrentTheme.Border)
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Padding(0, 2).Width(40)
}

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CurrentTheme.Title).MarginBottom(1)
}

func labelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted).Width(10)
}

func valueStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Text).Bold(true)
}

func mutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(CurrentTheme.Muted)
}

// tierStyle colors a tier, honouring monochrome themes.
func tierStyle(level int) lipgloss.Style {
	if CurrentTheme.Mono {
		return lipgloss.NewStyle().Foreground(CurrentTheme.Text)
	}
	if physics.Palette[level] == (color.RGBA{A: 255}) {
		// black tier on a dark terminal
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#3a3a3a"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(physics.Hex(level)))
}

// cellStyle maps canvas color keys to styles.
func cellStyle(k int) lipgloss.Style {
	switch k {
	case keyLine:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Line)
	case keyGuide:
		return mutedStyle()
	}
	return tierStyle(k)
}

// TierChip renders a colored dot and the tier name, or a dash for nil.
func TierChip(b *physics.Ball) string {
	if b == nil {
		return mutedStyle().Render("-")
	}
	return tierStyle(b.Level).Render("●") + " " + valueStyle().Render(physics.TierName[b.Level])
}

// DangerBar fills as the overline timer runs out.
func DangerBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	filled = max(0, min(width, filled))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case frac > 0.6:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Danger).Render(bar)
	case frac > 0:
		return lipgloss.NewStyle().Foreground(CurrentTheme.Line).Render(bar)
	}
	return mutedStyle().Render(bar)
}

// TierLadder lists every tier with its board count; tiers never reached
// are dimmed.
func TierLadder(counts [physics.NumTiers]int, maxTier int) string {
	var b strings.Builder
	for l := 0; l < physics.NumTiers; l++ {
		dot := tierStyle(l).Render("●")
		name := physics.TierName[l]
		if l > maxTier {
			dot = mutedStyle().Render("○")
			name = mutedStyle().Render(name)
		}
		b.WriteString(dot + " " + lipgloss.NewStyle().Width(8).Render(name))
		if counts[l] > 0 {
			b.WriteString(mutedStyle().Render(" x") + valueStyle().Render(strconv.Itoa(counts[l])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
