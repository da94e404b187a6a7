package sim

import "github.com/vovakirdan/chuteworks/internal/core"

type toolBase struct {
	id  EntityID
	pos core.Vec2
}

func (t *toolBase) ID() EntityID       { return t.id }
func (t *toolBase) Anchor() core.Vec2  { return t.pos }
func (t *toolBase) AnchorCell() Cell   { return anchorCell(t.pos) }
func (t *toolBase) Category() Category { return CategoryTool }

// Saw cuts figures that sit across its blade.
//
// The anchor cell is left of the blade and the cell to its right is right of
// the blade. Both are open so figures can drop into them; the housing walls
// the row on either side.
type Saw struct {
	toolBase
}

// NewSaw creates a saw whose blade gap starts at cell at.
func NewSaw(id EntityID, at Cell) *Saw {
	return &Saw{toolBase{id: id, pos: core.V(float64(at.X), float64(at.Y))}}
}

var sawHousing = []Cell{{X: -1, Y: 0}, {X: 2, Y: 0}}

func (s *Saw) OccupiedOffsets() []Cell {
	return append([]Cell(nil), sawHousing...)
}

func (s *Saw) BladeGap() (Cell, bool) {
	return s.AnchorCell(), true
}

// Rotator turns figures lying inside its square zone.
// Its posts stand on the zone's four outer corners.
type Rotator struct {
	toolBase
	size int
}

// NewRotator creates a rotator whose zone has its lower-left cell at at.
func NewRotator(id EntityID, at Cell, size int) *Rotator {
	return &Rotator{toolBase: toolBase{id: id, pos: core.V(float64(at.X), float64(at.Y))}, size: size}
}

// Size returns the zone edge length.
func (r *Rotator) Size() int { return r.size }

func (r *Rotator) OccupiedOffsets() []Cell {
	return cornerPosts(r.size)
}

func (r *Rotator) BladeGap() (Cell, bool) { return Cell{}, false }

// Zone returns the absolute cells of the rotation area.
func (r *Rotator) Zone() core.Rect {
	a := r.AnchorCell()
	return core.NewRect(a.X, a.Y, r.size, r.size)
}

// Transmuter recolors figures lying inside its zone.
// A size of zero means it has not been built yet.
type Transmuter struct {
	toolBase
	size int
}

// NewTransmuter creates a transmuter whose zone has its lower-left cell at at.
func NewTransmuter(id EntityID, at Cell, size int) *Transmuter {
	return &Transmuter{toolBase: toolBase{id: id, pos: core.V(float64(at.X), float64(at.Y))}, size: size}
}

// Size returns the zone edge length.
func (t *Transmuter) Size() int { return t.size }

// Active reports whether the transmuter has been built.
func (t *Transmuter) Active() bool { return t.size > 0 }

func (t *Transmuter) OccupiedOffsets() []Cell {
	if !t.Active() {
		return nil
	}
	return []Cell{{X: -1, Y: -1}, {X: t.size, Y: -1}}
}

func (t *Transmuter) BladeGap() (Cell, bool) { return Cell{}, false }

// Zone returns the absolute cells of the transmutation area.
func (t *Transmuter) Zone() core.Rect {
	a := t.AnchorCell()
	return core.NewRect(a.X, a.Y, t.size, t.size)
}

// Output marks a delivery chute. It occupies no field cells.
type Output struct {
	toolBase
	accepts BlockType
}

// NewOutput creates the chute marker at column x of the chute row.
func NewOutput(id EntityID, x int, accepts BlockType) *Output {
	return &Output{toolBase: toolBase{id: id, pos: core.V(float64(x), -1)}, accepts: accepts}
}

// Accepts returns the block type this chute takes.
func (o *Output) Accepts() BlockType { return o.accepts }

func (o *Output) OccupiedOffsets() []Cell { return nil }

func (o *Output) BladeGap() (Cell, bool) { return Cell{}, false }

func cornerPosts(size int) []Cell {
	return []Cell{
		{X: -1, Y: -1},
		{X: size, Y: -1},
		{X: -1, Y: size},
		{X: size, Y: size},
	}
}

func zoneContains(zone core.Rect, cells []Cell) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if !zone.Contains(c.X, c.Y) {
			return false
		}
	}
	return true
}
