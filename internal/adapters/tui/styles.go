package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent  = lipgloss.Color("#F97316") // orange
	colorMuted   = lipgloss.Color("#71717A")
	colorText    = lipgloss.Color("#18181B")
	colorBorder  = lipgloss.Color("#D4D4D8")
	colorDanger  = lipgloss.Color("#E11D48")
	colorWarning = lipgloss.Color("#B45309")
	colorSuccess = lipgloss.Color("#047857")
)

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Brand        lipgloss.Style
	Tagline      lipgloss.Style
	SectionTitle lipgloss.Style
	Muted        lipgloss.Style
	Selected     lipgloss.Style

	ErrorBanner   lipgloss.Style
	WarningBanner lipgloss.Style

	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	Price      lipgloss.Style
	Title      lipgloss.Style

	HeartOn       lipgloss.Style
	HeartOff      lipgloss.Style
	HeartDisabled lipgloss.Style

	Badge lipgloss.Style
	Help  lipgloss.Style
}

func DefaultStyles() Styles {
	banner := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2).
		MarginTop(1)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		MarginTop(1)

	return Styles{
		Brand:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(colorAccent).Padding(0, 1),
		Tagline:      lipgloss.NewStyle().Foreground(colorMuted),
		SectionTitle: lipgloss.NewStyle().Bold(true).Foreground(colorText).MarginTop(1),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),

		ErrorBanner:   banner.BorderForeground(colorDanger).Foreground(colorDanger),
		WarningBanner: banner.BorderForeground(colorWarning).Foreground(colorWarning),

		Card:       card,
		ActiveCard: card.BorderForeground(colorAccent),
		Price:      lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Title:      lipgloss.NewStyle().Bold(true).Foreground(colorText),

		HeartOn:       lipgloss.NewStyle().Foreground(colorDanger),
		HeartOff:      lipgloss.NewStyle().Foreground(colorMuted),
		HeartDisabled: lipgloss.NewStyle().Foreground(colorBorder),

		Badge: lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		Help:  lipgloss.NewStyle().Foreground(colorMuted).MarginTop(1),
	}
}
