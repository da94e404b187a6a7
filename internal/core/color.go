package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette for level elements.
const (
	ColorDefault Color = iota
	ColorWall
	ColorFloor
	ColorInput
	ColorPipe
	ColorGreen
	ColorBlue
	ColorRed
	ColorSaw
	ColorRotator
	ColorTransmuter
	ColorHighlight
	ColorWarning
	ColorMuted
)
