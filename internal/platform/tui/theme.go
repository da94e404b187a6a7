package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chuteworks/internal/core"
)

// Theme contains all configurable visual styles for the level view.
type Theme struct {
	// Cell colors, indexed by core.Color
	Cells map[core.Color]lipgloss.Style

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDWarning  lipgloss.Style
	HUDControls lipgloss.Style
	FuelBar     string // progress fill color
	ResearchBar string

	// Overlay styles
	OverlayBorder lipgloss.Style
	OverlayTitle  lipgloss.Style
	OverlayText   lipgloss.Style
	OverlayMuted  lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:    lipgloss.NewStyle(),
			core.ColorWall:       fg("240"),
			core.ColorFloor:      fg("236"),
			core.ColorInput:      fg("244"),
			core.ColorPipe:       fg("242"),
			core.ColorGreen:      fg("46"),  // Lime green
			core.ColorBlue:       fg("39"),  // Sky blue
			core.ColorRed:        fg("196"), // Bright red
			core.ColorSaw:        fg("250").Bold(true),
			core.ColorRotator:    fg("213"),
			core.ColorTransmuter: fg("220"),
			core.ColorHighlight:  fg("231").Bold(true),
			core.ColorWarning:    fg("208").Bold(true),
			core.ColorMuted:      fg("238"),
		},

		HUDTitle:    fg("51").Bold(true),
		HUDValue:    fg("255"),
		HUDWarning:  fg("231").Background(lipgloss.Color("160")).Bold(true),
		HUDControls: fg("245"),
		FuelBar:     "#e8a33d",
		ResearchBar: "#5fafff",

		OverlayBorder: fg("255"),
		OverlayTitle:  fg("226").Bold(true),
		OverlayText:   fg("255"),
		OverlayMuted:  fg("241"),

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
	}
}

// NeonTheme returns a neon-style theme.
func NeonTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = cloneCells(theme.Cells)
	theme.Cells[core.ColorGreen] = fg("118") // Neon green
	theme.Cells[core.ColorBlue] = fg("87")   // Neon cyan
	theme.Cells[core.ColorRed] = fg("199")   // Neon pink
	theme.Cells[core.ColorWall] = fg("93")
	theme.FuelBar = "#ff5fd7"
	theme.ResearchBar = "#5fffff"
	return theme
}

// MonochromeTheme returns a grayscale theme. Block types stay apart by
// brightness only.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Cells = cloneCells(theme.Cells)
	theme.Cells[core.ColorGreen] = fg("255")
	theme.Cells[core.ColorBlue] = fg("248")
	theme.Cells[core.ColorRed] = fg("242")
	theme.Cells[core.ColorRotator] = fg("250")
	theme.Cells[core.ColorTransmuter] = fg("250")
	theme.FuelBar = "#dadada"
	theme.ResearchBar = "#8a8a8a"
	return theme
}

func cloneCells(m map[core.Color]lipgloss.Style) map[core.Color]lipgloss.Style {
	out := make(map[core.Color]lipgloss.Style, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

var themes = map[string]func() Theme{
	"default":    DefaultTheme,
	"neon":       NeonTheme,
	"monochrome": MonochromeTheme,
}

// ThemeNames returns the names accepted by ThemeByName, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns the named theme. Empty selects the default.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	fn, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (available: %v)", name, ThemeNames())
	}
	return fn(), nil
}

// Global theme variable (can be changed at startup)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}

// cellStyle returns the style for a cell color under the current theme.
func cellStyle(c core.Color) lipgloss.Style {
	if s, ok := currentTheme.Cells[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
