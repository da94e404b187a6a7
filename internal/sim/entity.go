package sim

import "github.com/vovakirdan/chuteworks/internal/core"

// EntityID identifies an entity for the lifetime of a World.
type EntityID int32

// Entity is anything that occupies grid cells: figures and tools.
type Entity interface {
	ID() EntityID
	// Anchor is the continuous position of the entity origin.
	Anchor() core.Vec2
	// AnchorCell is Anchor rounded to the nearest cell.
	AnchorCell() Cell
	// OccupiedOffsets lists the filled cells relative to AnchorCell.
	OccupiedOffsets() []Cell
	Category() Category
	// BladeGap returns the left-of-blade cell in absolute coordinates.
	// Only the saw reports one.
	BladeGap() (Cell, bool)
}

func anchorCell(p core.Vec2) Cell {
	x, y := p.RoundInt()
	return Cell{X: x, Y: y}
}

// AbsoluteCells returns the cells an entity covers in world coordinates.
func AbsoluteCells(e Entity) []Cell {
	a := e.AnchorCell()
	offs := e.OccupiedOffsets()
	cells := make([]Cell, len(offs))
	for i, o := range offs {
		cells[i] = a.Add(o)
	}
	return cells
}
