package sim

import "github.com/vovakirdan/chuteworks/internal/registry"

func init() {
	registry.Register("mono", func() registry.Shape {
		return registry.Shape{Title: "Monomino", Blocks: []registry.Offset{{X: 0, Y: 0}}}
	})
	registry.Register("domino", func() registry.Shape {
		return registry.Shape{Title: "Domino", Blocks: []registry.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}}}
	})
	registry.Register("bar3", func() registry.Shape {
		return registry.Shape{Title: "Bar", Blocks: []registry.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}}
	})
	registry.Register("corner", func() registry.Shape {
		return registry.Shape{Title: "Corner", Blocks: []registry.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}}
	})
	registry.Register("square", func() registry.Shape {
		return registry.Shape{Title: "Square", Blocks: []registry.Offset{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}}}
	})
	registry.Register("tee", func() registry.Shape {
		return registry.Shape{Title: "Tee", Blocks: []registry.Offset{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 0}}}
	})
}

// ShapeCells converts a registered shape into block offsets.
func ShapeCells(s registry.Shape) []Cell {
	cells := make([]Cell, len(s.Blocks))
	for i, b := range s.Blocks {
		cells[i] = Cell{X: b.X, Y: b.Y}
	}
	return cells
}
