package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette shared by both panels.
type Theme struct {
	Name string

	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	VerseNum  lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Selection lipgloss.Color

	Border       lipgloss.Color
	BorderActive lipgloss.Color
}

var (
	CatppuccinMocha = Theme{
		Name:         "Catppuccin Mocha",
		Text:         lipgloss.Color("#cdd6f4"),
		Muted:        lipgloss.Color("#6c7086"),
		Accent:       lipgloss.Color("#f5c2e7"),
		VerseNum:     lipgloss.Color("#b4befe"),
		Error:        lipgloss.Color("#f38ba8"),
		Success:      lipgloss.Color("#a6e3a1"),
		Selection:    lipgloss.Color("#585b70"),
		Border:       lipgloss.Color("#45475a"),
		BorderActive: lipgloss.Color("#a6e3a1"),
	}

	Dracula = Theme{
		Name:         "Dracula",
		Text:         lipgloss.Color("#f8f8f2"),
		Muted:        lipgloss.Color("#6272a4"),
		Accent:       lipgloss.Color("#ff79c6"),
		VerseNum:     lipgloss.Color("#8be9fd"),
		Error:        lipgloss.Color("#ff5555"),
		Success:      lipgloss.Color("#50fa7b"),
		Selection:    lipgloss.Color("#44475a"),
		Border:       lipgloss.Color("#44475a"),
		BorderActive: lipgloss.Color("#bd93f9"),
	}

	RosePineDawn = Theme{
		Name:         "Rosé Pine Dawn",
		Text:         lipgloss.Color("#575279"),
		Muted:        lipgloss.Color("#9893a5"),
		Accent:       lipgloss.Color("#d7827e"),
		VerseNum:     lipgloss.Color("#907aa9"),
		Error:        lipgloss.Color("#b4637a"),
		Success:      lipgloss.Color("#56949f"),
		Selection:    lipgloss.Color("#dfdad9"),
		Border:       lipgloss.Color("#f2e9e1"),
		BorderActive: lipgloss.Color("#286983"),
	}

	SolarizedDark = Theme{
		Name:         "Solarized Dark",
		Text:         lipgloss.Color("#839496"),
		Muted:        lipgloss.Color("#586e75"),
		Accent:       lipgloss.Color("#d33682"),
		VerseNum:     lipgloss.Color("#2aa198"),
		Error:        lipgloss.Color("#dc322f"),
		Success:      lipgloss.Color("#859900"),
		Selection:    lipgloss.Color("#073642"),
		Border:       lipgloss.Color("#073642"),
		BorderActive: lipgloss.Color("#268bd2"),
	}
)

var byKey = map[string]Theme{
	"catppuccin-mocha": CatppuccinMocha,
	"dracula":          Dracula,
	"rosepine-dawn":    RosePineDawn,
	"solarized-dark":   SolarizedDark,
}

// Names lists the config keys of every theme, sorted.
func Names() []string {
	names := make([]string, 0, len(byKey))
	for k := range byKey {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the theme registered under key.
func Lookup(key string) (Theme, bool) {
	t, ok := byKey[key]
	return t, ok
}

// GetTheme returns a theme by key, defaulting to Catppuccin Mocha if not found
func GetTheme(key string) Theme {
	if t, ok := Lookup(key); ok {
		return t
	}
	return CatppuccinMocha
}

// Styles are the lipgloss styles the panels render with.
type Styles struct {
	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	Title       lipgloss.Style
	Text        lipgloss.Style
	Muted       lipgloss.Style
	VerseNum    lipgloss.Style
	Selected    lipgloss.Style
	Highlight   lipgloss.Style
	Cursor      lipgloss.Style
	Mode        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

func (t Theme) Styles() Styles {
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return Styles{
		Pane:        pane,
		PaneFocused: pane.BorderForeground(t.BorderActive),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Text:        lipgloss.NewStyle().Foreground(t.Text),
		Muted:       lipgloss.NewStyle().Foreground(t.Muted),
		VerseNum:    lipgloss.NewStyle().Foreground(t.VerseNum),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Highlight:   lipgloss.NewStyle().Foreground(t.Text).Background(t.Selection),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Mode:        lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Status:      lipgloss.NewStyle().Foreground(t.Muted),
		StatusError: lipgloss.NewStyle().Bold(true).Foreground(t.Error),
	}
}
