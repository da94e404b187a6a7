package sim

import (
	"sort"

	"github.com/vovakirdan/chuteworks/internal/core"
)

// Block is one colored cell of a figure.
type Block struct {
	Offset Cell
	Type   BlockType
}

// Figure is a player-movable assembly of blocks.
type Figure struct {
	id     EntityID
	pos    core.Vec2
	blocks []Block
}

// NewFigure creates a figure from blocks placed relative to at.
// The anchor moves to the lower-left corner of the bounding box, so
// absolute block cells are unchanged while offsets become non-negative.
func NewFigure(id EntityID, at Cell, blocks []Block) *Figure {
	blocks = append([]Block(nil), blocks...)
	if len(blocks) > 0 {
		minX, minY := blocks[0].Offset.X, blocks[0].Offset.Y
		for _, b := range blocks[1:] {
			minX = core.Min(minX, b.Offset.X)
			minY = core.Min(minY, b.Offset.Y)
		}
		at = at.Add(Cell{X: minX, Y: minY})
		blocks = normalizeBlocks(blocks)
	}
	f := &Figure{
		id:     id,
		pos:    core.V(float64(at.X), float64(at.Y)),
		blocks: blocks,
	}
	f.sortBlocks()
	return f
}

// NewUniformFigure builds a figure from a shape where every block has type t.
func NewUniformFigure(id EntityID, at Cell, shape []Cell, t BlockType) *Figure {
	blocks := make([]Block, len(shape))
	for i, off := range shape {
		blocks[i] = Block{Offset: off, Type: t}
	}
	return NewFigure(id, at, blocks)
}

func (f *Figure) ID() EntityID           { return f.id }
func (f *Figure) Anchor() core.Vec2      { return f.pos }
func (f *Figure) AnchorCell() Cell       { return anchorCell(f.pos) }
func (f *Figure) Category() Category     { return CategoryFigure }
func (f *Figure) BladeGap() (Cell, bool) { return Cell{}, false }

// OccupiedOffsets returns the block offsets relative to the anchor cell.
func (f *Figure) OccupiedOffsets() []Cell {
	offs := make([]Cell, len(f.blocks))
	for i, b := range f.blocks {
		offs[i] = b.Offset
	}
	return offs
}

// Blocks returns a copy of the figure's blocks.
func (f *Figure) Blocks() []Block {
	return append([]Block(nil), f.blocks...)
}

// Len returns the number of blocks.
func (f *Figure) Len() int {
	return len(f.blocks)
}

// BlockAt returns the block covering the absolute cell c.
func (f *Figure) BlockAt(c Cell) (Block, bool) {
	a := f.AnchorCell()
	for _, b := range f.blocks {
		if a.Add(b.Offset) == c {
			return b, true
		}
	}
	return Block{}, false
}

// Uniform reports whether every block has type t.
func (f *Figure) Uniform(t BlockType) bool {
	for _, b := range f.blocks {
		if b.Type != t {
			return false
		}
	}
	return true
}

// MoveBy shifts the continuous anchor.
func (f *Figure) MoveBy(d core.Vec2) {
	f.pos = f.pos.Add(d)
}

// Snap rounds the anchor to the nearest cell.
func (f *Figure) Snap() {
	f.pos = f.pos.Round()
}

// SetCell places the anchor exactly on c.
func (f *Figure) SetCell(c Cell) {
	f.pos = core.V(float64(c.X), float64(c.Y))
}

// rotatedBlocks returns the blocks turned 90 degrees clockwise, shifted back
// into the positive quadrant.
func (f *Figure) rotatedBlocks() []Block {
	out := make([]Block, len(f.blocks))
	for i, b := range f.blocks {
		out[i] = Block{Offset: Cell{X: b.Offset.Y, Y: -b.Offset.X}, Type: b.Type}
	}
	return normalizeBlocks(out)
}

func (f *Figure) sortBlocks() {
	sort.Slice(f.blocks, func(i, j int) bool {
		a, b := f.blocks[i].Offset, f.blocks[j].Offset
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
}

// normalizeBlocks shifts offsets so the minimum x and y are zero.
func normalizeBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return blocks
	}
	minX, minY := blocks[0].Offset.X, blocks[0].Offset.Y
	for _, b := range blocks[1:] {
		minX = core.Min(minX, b.Offset.X)
		minY = core.Min(minY, b.Offset.Y)
	}
	for i := range blocks {
		blocks[i].Offset.X -= minX
		blocks[i].Offset.Y -= minY
	}
	return blocks
}

// splitAtColumn divides the blocks into those left of column x and the rest.
// Offsets stay relative to the original anchor.
func (f *Figure) splitAtColumn(x int) (left, right []Block) {
	a := f.AnchorCell()
	for _, b := range f.blocks {
		if a.X+b.Offset.X < x {
			left = append(left, b)
		} else {
			right = append(right, b)
		}
	}
	return left, right
}
