package sim

import "github.com/zyedidia/generic/mapset"

// CollisionSnapshot is the occupancy of the level at one instant.
// It is built fresh for every query and never mutated afterwards.
type CollisionSnapshot struct {
	Field           *Grid
	LeftOfSawBlade  Cell
	RightOfSawBlade Cell
	// HasSaw is false when no saw took part in the build. The blade cells
	// then hold their (0,0)/(1,0) defaults and carry no meaning.
	HasSaw bool
}

// BuildSnapshot rasterizes every entity not in exclude into a fresh field.
// A zero-value exclude set excludes nothing.
func BuildSnapshot(geom Geometry, entities []Entity, exclude mapset.Set[EntityID]) CollisionSnapshot {
	snap := CollisionSnapshot{
		Field:           NewGrid(geom.Width, geom.Height),
		LeftOfSawBlade:  Cell{X: 0, Y: 0},
		RightOfSawBlade: Cell{X: 1, Y: 0},
	}

	for _, e := range entities {
		if exclude.Has(e.ID()) {
			continue
		}
		anchor := e.AnchorCell()
		for _, off := range e.OccupiedOffsets() {
			snap.Field.Mark(anchor.Add(off))
		}
		if gap, ok := e.BladeGap(); ok {
			snap.LeftOfSawBlade = gap
			snap.RightOfSawBlade = gap.Add(Cell{X: 1, Y: 0})
			snap.HasSaw = true
		}
	}
	return snap
}
