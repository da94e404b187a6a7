package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chuteworks/internal/sim"
)

// hudHeight is the number of terminal rows above the field.
const hudHeight = 3

const barWidth = 20

// HUD draws the resource bars and the session counters.
type HUD struct {
	fuel     progress.Model
	research progress.Model
}

// NewHUD creates the HUD bars with the theme's fill colors.
func NewHUD(theme Theme) HUD {
	return HUD{
		fuel: progress.New(
			progress.WithSolidFill(theme.FuelBar),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
		research: progress.New(
			progress.WithSolidFill(theme.ResearchBar),
			progress.WithoutPercentage(),
			progress.WithWidth(barWidth),
		),
	}
}

func ratio(v, limit int) float64 {
	if limit <= 0 {
		return 0
	}
	return float64(v) / float64(limit)
}

// View renders exactly hudHeight lines.
func (h HUD) View(w *sim.World, title, status string) string {
	theme := GetTheme()
	ledger := w.Ledger()
	sum := w.Summary()

	secs := int(sum.Elapsed)
	counters := fmt.Sprintf("delivered %d  cuts %d  upgrades %d  %02d:%02d",
		sum.Delivered, sum.Cuts, sum.Upgrades, secs/60, secs%60)
	line1 := theme.HUDTitle.Render("CHUTEWORKS") + "  " +
		theme.HUDValue.Render(title) + "  " +
		theme.HUDControls.Render(counters)

	fuelText := theme.HUDValue.Render(ledger.FuelText())
	if f := w.Flash(); f.Running() && f.Visible() {
		fuelText = theme.HUDWarning.Render(ledger.FuelText())
	}
	researchText := theme.HUDValue.Render(ledger.ResearchText())
	if w.ResearchComplete() {
		researchText += theme.HUDTitle.Render(" ready (u)")
	}
	line2 := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.HUDControls.Render("fuel "),
		h.fuel.ViewAs(ratio(ledger.Fuel(), ledger.MaxFuel())),
		" ", fuelText, "   ",
		theme.HUDControls.Render("research "),
		h.research.ViewAs(ratio(ledger.Research(), ledger.MaxResearch())),
		" ", researchText,
	)

	line3 := theme.HUDControls.Render(status)
	return line1 + "\n" + line2 + "\n" + line3
}
