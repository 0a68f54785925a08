package theme

import "github.com/charmbracelet/lipgloss"

// Theme is one catppuccin flavour: Mocha at night, Latte by day.
type Theme struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
}

var mocha = Theme{
	Base:     lipgloss.Color("#1e1e2e"),
	Mantle:   lipgloss.Color("#181825"),
	Surface1: lipgloss.Color("#45475a"),
	Text:     lipgloss.Color("#cdd6f4"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Lavender: lipgloss.Color("#b4befe"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Green:    lipgloss.Color("#a6e3a1"),
	Peach:    lipgloss.Color("#fab387"),
	Red:      lipgloss.Color("#f38ba8"),
}

var latte = Theme{
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Text:     lipgloss.Color("#4c4f69"),
	Subtext0: lipgloss.Color("#6c6f85"),
	Lavender: lipgloss.Color("#7287fd"),
	Sapphire: lipgloss.Color("#209fb5"),
	Green:    lipgloss.Color("#40a02b"),
	Peach:    lipgloss.Color("#fe640b"),
	Red:      lipgloss.Color("#d20f39"),
}

func For(dark bool) Theme {
	if dark {
		return mocha
	}
	return latte
}

// GlamourStyle names the matching glamour style.
func (t Theme) GlamourStyle() string {
	if t == latte {
		return "light"
	}
	return "dark"
}

func (t Theme) Pane() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Surface1).
		Foreground(t.Text).
		Padding(0, 1)
}

func (t Theme) PaneActive() lipgloss.Style { return t.Pane().BorderForeground(t.Lavender) }

func (t Theme) Title() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Sapphire).Bold(true) }
func (t Theme) Muted() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Subtext0) }
func (t Theme) Hot() lipgloss.Style   { return lipgloss.NewStyle().Foreground(t.Peach).Bold(true) }
func (t Theme) Good() lipgloss.Style  { return lipgloss.NewStyle().Foreground(t.Green) }
func (t Theme) Bad() lipgloss.Style   { return lipgloss.NewStyle().Foreground(t.Red).Bold(true) }

// Tone styles a balance feedback tone: positive, neutral or negative.
func (t Theme) Tone(tone string) lipgloss.Style {
	switch tone {
	case "positive":
		return t.Good()
	case "negative":
		return t.Bad()
	}
	return t.Muted()
}
