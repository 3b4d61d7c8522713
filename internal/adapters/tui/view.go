package tui

import (
	"fmt"
	"property-viewer/internal/core/domain"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	heartFull  = "♥"
	heartEmpty = "♡"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Brand.Render("DEMO PROPERTY"))
	sb.WriteString(" ")
	sb.WriteString(m.styles.Tagline.Render("Find your perfect home"))
	sb.WriteString("\n")

	if m.state.LoadError != "" {
		sb.WriteString(m.styles.ErrorBanner.Render(
			"Backend is not reachable\n" + m.state.LoadError + "\nPress r to retry"))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderUserPicker())
	sb.WriteString("\n")

	if !m.state.HasSelection() {
		sb.WriteString(m.styles.WarningBanner.Render("Select a user above to enable favorites."))
		sb.WriteString("\n")
	} else if m.state.FavoritesError != "" {
		sb.WriteString(m.styles.ErrorBanner.Render(m.state.FavoritesError))
		sb.WriteString("\n")
	}

	sb.WriteString(m.styles.SectionTitle.Render("Featured Properties"))
	sb.WriteString("  ")
	sb.WriteString(m.styles.Badge.Render(fmt.Sprintf("%s %s favorites", heartFull, FormatCount(m.state.Favorites.Len()))))
	sb.WriteString("\n")

	sb.WriteString(m.renderProperties())
	sb.WriteString("\n")

	sb.WriteString(m.styles.Help.Render("u/U user • ↑/↓ move • f favorite • r retry • q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) renderUserPicker() string {
	name := "Select user…"
	greeting := "Select a user to save favorites"
	if user, ok := m.state.SelectedUser(); ok {
		name = user.Name
		greeting = "Browsing as " + user.Name
	} else if m.state.HasSelection() {
		name = m.state.SelectedUserID
		greeting = "Browsing as " + m.state.SelectedUserID
	}

	picker := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Muted.Render("User: "),
		m.styles.Selected.Render("‹ "+name+" ›"),
	)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.MarginTop(1).Render("Welcome back!"),
		m.styles.Muted.Render(greeting),
		picker,
	)
}

func (m Model) renderProperties() string {
	if m.state.Loading {
		return "\n" + m.spinner.View() + " Loading properties…"
	}
	if len(m.state.Properties) == 0 {
		return m.styles.Card.Render(
			m.styles.Title.Render("No properties available") + "\n" +
				m.styles.Muted.Render("Please check back soon, we're adding new listings daily."))
	}

	cards := make([]string, 0, len(m.state.Properties))
	for i, p := range m.state.Properties {
		cards = append(cards, m.renderCard(p, i == m.cursor))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (m Model) renderCard(p domain.Property, active bool) string {
	heart := m.styles.HeartOff.Render(heartEmpty)
	switch {
	case m.state.Favorites.Has(p.ID):
		heart = m.styles.HeartOn.Render(heartFull)
	case m.state.FavoritesDisabled():
		heart = m.styles.HeartDisabled.Render(heartEmpty)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Price.Render(FormatPrice(p.Price))+"  "+heart,
		m.styles.Title.Render(p.Title),
		m.styles.Muted.Render(p.Location),
		m.styles.Muted.Render(fmt.Sprintf("%d beds · %d baths · %s sqm", p.Beds, p.Baths, FormatArea(p.Sqm))),
	)

	style := m.styles.Card
	if active {
		style = m.styles.ActiveCard
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(body)
}
