package sim

// Grid is the boolean occupancy field of the playable area.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int
	H     int
	cells []bool
}

// NewGrid creates an empty field of the given size.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{W: w, H: h, cells: make([]bool, w*h)}
}

// InBounds returns true if (x, y) is inside the field.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Mark sets the cell as occupied.
// Cells outside the field (input hole, chute row) are ignored.
func (g *Grid) Mark(c Cell) {
	if g.InBounds(c.X, c.Y) {
		g.cells[c.Y*g.W+c.X] = true
	}
}

// Occupied reports whether (x, y) is marked. False outside the field.
func (g *Grid) Occupied(x, y int) bool {
	if g == nil || !g.InBounds(x, y) {
		return false
	}
	return g.cells[y*g.W+x]
}

// OccupiedCount returns the number of marked cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Equal reports whether two fields have the same size and marks.
func (g *Grid) Equal(o *Grid) bool {
	if g.W != o.W || g.H != o.H {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}
