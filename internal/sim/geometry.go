package sim

import "fmt"

// chuteTypes is the left-to-right order of the output chutes.
var chuteTypes = [3]BlockType{BlockGreen, BlockRed, BlockBlue}

// Geometry is the static layout of a level, fixed at level start.
//
// The playable field spans [0, Width) x [0, Height). The input hole sits above
// it at rows >= Height for columns [0, HoleSize). The chute row is y = -1.
type Geometry struct {
	Width    int
	Height   int
	HoleSize int

	BeforeGreen int
	GreenToRed  int
	RedToBlue   int
	AfterBlue   int

	// Chutes holds the x of the Green, Red and Blue chutes in that order.
	Chutes [3]int
}

// NewGeometry derives the level width and chute positions from the four
// section widths. Width = 3 + sum(widths), one column per chute.
func NewGeometry(height, holeSize, beforeGreen, greenToRed, redToBlue, afterBlue int) (Geometry, error) {
	if height <= 0 {
		return Geometry{}, fmt.Errorf("sim: level height must be positive, got %d", height)
	}
	if beforeGreen < 0 || greenToRed < 0 || redToBlue < 0 || afterBlue < 0 {
		return Geometry{}, fmt.Errorf("sim: section widths must not be negative")
	}
	g := Geometry{
		Width:       3 + beforeGreen + greenToRed + redToBlue + afterBlue,
		Height:      height,
		HoleSize:    holeSize,
		BeforeGreen: beforeGreen,
		GreenToRed:  greenToRed,
		RedToBlue:   redToBlue,
		AfterBlue:   afterBlue,
	}
	if holeSize <= 0 || holeSize > g.Width {
		return Geometry{}, fmt.Errorf("sim: hole size must be in [1, %d], got %d", g.Width, holeSize)
	}
	g.Chutes[0] = beforeGreen
	g.Chutes[1] = g.Chutes[0] + 1 + greenToRed
	g.Chutes[2] = g.Chutes[1] + 1 + redToBlue
	return g, nil
}

// InBounds returns true if the cell is inside the playable field.
func (g Geometry) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// ChuteAt returns the block type accepted by the chute at column x.
func (g Geometry) ChuteAt(x int) (BlockType, bool) {
	for i, cx := range g.Chutes {
		if cx == x {
			return chuteTypes[i], true
		}
	}
	return BlockGreen, false
}

// ChuteFor returns the column of the chute accepting t.
func (g Geometry) ChuteFor(t BlockType) int {
	for i, ct := range chuteTypes {
		if ct == t {
			return g.Chutes[i]
		}
	}
	return -1
}

// IsOutputSlot reports whether (x, y) is a delivery slot.
func (g Geometry) IsOutputSlot(x, y int) bool {
	_, ok := g.ChuteAt(x)
	return y == -1 && ok
}

// InHole reports whether (x, y) is inside the input hole above the field.
func (g Geometry) InHole(x, y int) bool {
	return y >= g.Height && y <= g.Height+g.HoleSize && x >= 0 && x < g.HoleSize
}

// SpawnCell is where new figures appear.
func (g Geometry) SpawnCell() Cell {
	return Cell{X: 0, Y: g.Height + 1}
}
