package tui

import (
	"strings"

	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/sim"
)

// Glyphs for two-column world cells.
const (
	glyphFloor     = "· "
	glyphWall      = "▒▒"
	glyphHole      = "  "
	glyphInput     = "▽▽"
	glyphChute     = "▼▼"
	glyphBlock     = "██"
	glyphDragged   = "▓▓"
	glyphZone      = "··"
	glyphRotPost   = "[]"
	glyphTransPost = "<>"
	glyphSawLeft   = "▐█"
	glyphSawRight  = "█▌"
)

// blockColor maps a block type to its palette entry.
func blockColor(t sim.BlockType) core.Color {
	switch t {
	case sim.BlockGreen:
		return core.ColorGreen
	case sim.BlockBlue:
		return core.ColorBlue
	case sim.BlockRed:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

func drawCell(s *core.Screen, v Viewport, c sim.Cell, glyph string, color core.Color) {
	x, y := v.Local(c)
	s.DrawTextColored(x, y, glyph, color)
}

// DrawWorld draws the level into the screen buffer.
func DrawWorld(s *core.Screen, w *sim.World, v Viewport) {
	s.Clear()
	geom := w.Geometry()

	drawField(s, v, geom)
	drawTools(s, v, w)
	drawFigures(s, v, w)
	drawSawBlade(s, v, w)
}

func drawField(s *core.Screen, v Viewport, geom sim.Geometry) {
	for y := 0; y < geom.Height; y++ {
		for x := 0; x < geom.Width; x++ {
			drawCell(s, v, sim.C(x, y), glyphFloor, core.ColorFloor)
		}
	}

	// Side walls of the field and the chute row
	for y := -1; y <= geom.Height; y++ {
		drawCell(s, v, sim.C(-1, y), glyphWall, core.ColorWall)
		drawCell(s, v, sim.C(geom.Width, y), glyphWall, core.ColorWall)
	}
	for x := 0; x < geom.Width; x++ {
		if t, ok := geom.ChuteAt(x); ok {
			drawCell(s, v, sim.C(x, -1), glyphChute, blockColor(t))
			continue
		}
		drawCell(s, v, sim.C(x, -1), glyphWall, core.ColorWall)
	}

	// Top wall with the input hole cut out of it
	for x := geom.HoleSize; x < geom.Width; x++ {
		drawCell(s, v, sim.C(x, geom.Height), glyphWall, core.ColorWall)
	}
	top := geom.Height + geom.HoleSize
	for y := geom.Height; y <= top; y++ {
		drawCell(s, v, sim.C(-1, y), glyphWall, core.ColorWall)
		drawCell(s, v, sim.C(geom.HoleSize, y), glyphWall, core.ColorWall)
		for x := 0; x < geom.HoleSize; x++ {
			glyph := glyphHole
			if y == top {
				glyph = glyphInput
			}
			drawCell(s, v, sim.C(x, y), glyph, core.ColorInput)
		}
	}
}

func drawTools(s *core.Screen, v Viewport, w *sim.World) {
	for _, e := range w.Tools() {
		switch t := e.(type) {
		case *sim.Rotator:
			drawZone(s, v, t.Zone(), core.ColorRotator)
			drawFootprint(s, v, t, glyphRotPost, core.ColorRotator)
		case *sim.Transmuter:
			drawZone(s, v, t.Zone(), core.ColorTransmuter)
			drawFootprint(s, v, t, glyphTransPost, core.ColorTransmuter)
		case *sim.Saw:
			a := t.AnchorCell()
			drawCell(s, v, a.Add(sim.C(-1, 0)), glyphSawLeft, core.ColorSaw)
			drawCell(s, v, a.Add(sim.C(2, 0)), glyphSawRight, core.ColorSaw)
		}
	}
}

func drawZone(s *core.Screen, v Viewport, zone core.Rect, color core.Color) {
	for y := zone.Y; y < zone.Bottom(); y++ {
		for x := zone.X; x < zone.Right(); x++ {
			drawCell(s, v, sim.C(x, y), glyphZone, color)
		}
	}
}

func drawFootprint(s *core.Screen, v Viewport, e sim.Entity, glyph string, color core.Color) {
	for _, c := range sim.AbsoluteCells(e) {
		drawCell(s, v, c, glyph, color)
	}
}

func drawFigures(s *core.Screen, v Viewport, w *sim.World) {
	dragged, _ := w.Dragging()
	for _, f := range w.Figures() {
		glyph := glyphBlock
		if f == dragged {
			glyph = glyphDragged
		}
		a := f.AnchorCell()
		for _, b := range f.Blocks() {
			drawCell(s, v, a.Add(b.Offset), glyph, blockColor(b.Type))
		}
	}
}

// drawSawBlade draws the blade on the border between the two gap cells,
// over any figure lying across it.
func drawSawBlade(s *core.Screen, v Viewport, w *sim.World) {
	saw := w.Saw()
	if saw == nil {
		return
	}
	gap, _ := saw.BladeGap()
	x, y := v.Local(gap)
	s.SetColored(x+cellWidth-1, y, '┃', core.ColorSaw)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
