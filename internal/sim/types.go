// Package sim is the simulation core: grid occupancy, movement legality,
// drag resolution, the resource ledger and the world that ties them together.
// It is UI-agnostic and deterministic for a given seed.
package sim

import (
	"fmt"
	"strings"
)

// BlockType is the color class of a single block.
type BlockType uint8

const (
	BlockGreen BlockType = iota
	BlockBlue
	BlockRed
)

// AllBlockTypes lists every block type in declaration order.
var AllBlockTypes = []BlockType{BlockGreen, BlockBlue, BlockRed}

// String returns the lowercase name of the block type.
func (b BlockType) String() string {
	switch b {
	case BlockGreen:
		return "green"
	case BlockBlue:
		return "blue"
	case BlockRed:
		return "red"
	default:
		return "unknown"
	}
}

// CuttingCost returns the fuel needed to saw through one block of this type.
func (b BlockType) CuttingCost() int {
	switch b {
	case BlockBlue:
		return 1
	case BlockRed:
		return 2
	default:
		return 0
	}
}

// Next returns the type a transmuter turns this block into.
// Green -> Blue -> Red -> Green.
func (b BlockType) Next() BlockType {
	switch b {
	case BlockGreen:
		return BlockBlue
	case BlockBlue:
		return BlockRed
	default:
		return BlockGreen
	}
}

// ParseBlockType converts a name or single-letter abbreviation into a BlockType.
func ParseBlockType(s string) (BlockType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green", "g":
		return BlockGreen, true
	case "blue", "b":
		return BlockBlue, true
	case "red", "r":
		return BlockRed, true
	default:
		return BlockGreen, false
	}
}

// Direction is one of the four cardinal moves.
type Direction uint8

const (
	DirLeft Direction = iota
	DirUp
	DirRight
	DirDown
)

// AllDirections lists the four directions in declaration order.
var AllDirections = []Direction{DirLeft, DirUp, DirRight, DirDown}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "Left"
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for a one-cell move.
// World Y grows upward, so Up is +1.
// Panics on a value outside the enum.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirLeft:
		return -1, 0
	case DirUp:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, -1
	default:
		panic(fmt.Sprintf("sim: unknown direction %d", d))
	}
}

// Category separates player-movable figures from fixed tools.
type Category uint8

const (
	CategoryFigure Category = iota
	CategoryTool
)

// String returns the category name.
func (c Category) String() string {
	if c == CategoryTool {
		return "tool"
	}
	return "figure"
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Add returns the cell translated by o.
func (c Cell) Add(o Cell) Cell {
	return Cell{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	dx, dy := d.Delta()
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Moves holds the allowed-move flags for one figure.
type Moves struct {
	Left, Up, Right, Down bool
}

// AllMoves returns flags with every direction allowed.
func AllMoves() Moves {
	return Moves{Left: true, Up: true, Right: true, Down: true}
}

// Allows reports whether the flag for d is set.
func (m Moves) Allows(d Direction) bool {
	switch d {
	case DirLeft:
		return m.Left
	case DirUp:
		return m.Up
	case DirRight:
		return m.Right
	case DirDown:
		return m.Down
	default:
		panic(fmt.Sprintf("sim: unknown direction %d", d))
	}
}

func (m *Moves) deny(d Direction) {
	switch d {
	case DirLeft:
		m.Left = false
	case DirUp:
		m.Up = false
	case DirRight:
		m.Right = false
	case DirDown:
		m.Down = false
	}
}
