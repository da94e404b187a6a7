package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chuteworks/internal/sim"
)

// upgradeModal lists the upgrades the player can pick from.
type upgradeModal struct {
	options []sim.Upgrade
	cursor  int
}

// newUpgradeModal builds the list in the fixed upgrade order.
func newUpgradeModal(av sim.Availability) *upgradeModal {
	m := &upgradeModal{}
	for _, u := range sim.AllUpgrades {
		if av[u] {
			m.options = append(m.options, u)
		}
	}
	return m
}

func (m *upgradeModal) empty() bool {
	return len(m.options) == 0
}

func (m *upgradeModal) up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *upgradeModal) down() {
	if m.cursor < len(m.options)-1 {
		m.cursor++
	}
}

func (m *upgradeModal) selected() (sim.Upgrade, bool) {
	if m.empty() {
		return "", false
	}
	return m.options[m.cursor], true
}

func (m *upgradeModal) View() string {
	theme := GetTheme()

	var b strings.Builder
	b.WriteString(theme.OverlayTitle.Render("RESEARCH COMPLETE"))
	b.WriteString("\n\n")
	for i, u := range m.options {
		if i == m.cursor {
			b.WriteString(theme.MenuItemActive.Render("> " + u.Title()))
		} else {
			b.WriteString(theme.OverlayText.Render("  " + u.Title()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.OverlayMuted.Render("enter: build  esc: later"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.OverlayBorder.GetForeground()).
		Padding(1, 3)
	return box.Render(b.String())
}
