package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name   string
	Border lipgloss.Color
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Line   lipgloss.Color
	Danger lipgloss.Color
	Graph  lipgloss.Color
	// Mono draws every tier in Text instead of the tier palette.
	Mono bool
}

var (
	ThemeOrchard = Theme{
		Name:   "orchard",
		Border: lipgloss.Color("#8b5a2b"),
		Title:  lipgloss.Color("#ffb347"),
		Text:   lipgloss.Color("#fff5e6"),
		Muted:  lipgloss.Color("#8b7d6b"),
		Line:   lipgloss.Color("#ff6961"),
		Danger: lipgloss.Color("#ff0000"),
		Graph:  lipgloss.Color("#77dd77"),
	}

	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Border: lipgloss.Color("#ff00ff"),
		Title:  lipgloss.Color("#00ffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Line:   lipgloss.Color("#ffff00"),
		Danger: lipgloss.Color("#ff0000"),
		Graph:  lipgloss.Color("#00ff00"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Border: lipgloss.Color("#00cc00"),
		Title:  lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Line:   lipgloss.Color("#ffff00"),
		Danger: lipgloss.Color("#ff0000"),
		Graph:  lipgloss.Color("#00ff00"),
		Mono:   true,
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Border: lipgloss.Color("#888888"),
		Title:  lipgloss.Color("#ffffff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Line:   lipgloss.Color("#cccccc"),
		Danger: lipgloss.Color("#ff0000"),
		Graph:  lipgloss.Color("#0088ff"),
		Mono:   true,
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Border: lipgloss.Color("#0077be"),
		Title:  lipgloss.Color("#00a8cc"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Line:   lipgloss.Color("#ffd700"),
		Danger: lipgloss.Color("#ff4444"),
		Graph:  lipgloss.Color("#00ff88"),
	}

	// Default theme
	CurrentTheme = ThemeOrchard

	Themes = []Theme{
		ThemeOrchard,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the default.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOrchard
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
