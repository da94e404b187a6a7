package tui

import (
	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/sim"
)

// cellWidth is how many terminal columns one world cell takes.
const cellWidth = 2

// Viewport maps world cells to terminal cells and back.
// World Y grows upward, terminal rows grow downward.
type Viewport struct {
	OriginX, OriginY int // terminal position of the top-left drawn cell
	Top              int // world row drawn at OriginY
	Left             int // world column drawn at OriginX
	Cols, Rows       int // drawn world cells
}

// NewViewport frames the whole level: both side walls, the input hole and
// the chute row.
func NewViewport(geom sim.Geometry, originX, originY int) Viewport {
	return Viewport{
		OriginX: originX,
		OriginY: originY,
		Top:     geom.Height + geom.HoleSize,
		Left:    -1,
		Cols:    geom.Width + 2,
		Rows:    geom.Height + geom.HoleSize + 2,
	}
}

// ScreenSize returns the buffer size needed to draw the viewport.
func (v Viewport) ScreenSize() (w, h int) {
	return v.Cols * cellWidth, v.Rows
}

// Local returns the buffer position of a world cell.
func (v Viewport) Local(c sim.Cell) (x, y int) {
	return (c.X - v.Left) * cellWidth, v.Top - c.Y
}

// ToWorld converts a terminal position to world coordinates.
// Each terminal column maps to the center of its half of the cell, so
// both columns of a cell round to that cell.
func (v Viewport) ToWorld(sx, sy int) core.Vec2 {
	col := sx - v.OriginX
	row := sy - v.OriginY
	x := (float64(col)+0.5)/cellWidth + float64(v.Left) - 0.5
	y := float64(v.Top - row)
	return core.V(x, y)
}

// Contains reports whether a terminal position lies on the viewport.
func (v Viewport) Contains(sx, sy int) bool {
	w, h := v.ScreenSize()
	return core.NewRect(v.OriginX, v.OriginY, w, h).Contains(sx, sy)
}
