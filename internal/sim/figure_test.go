package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFigureNormalizesOffsets(t *testing.T) {
	f := NewFigure(1, C(3, 3), []Block{
		{Offset: C(-1, 0), Type: BlockRed},
		{Offset: C(0, 0), Type: BlockBlue},
		{Offset: C(0, 2), Type: BlockGreen},
	})

	assert.Equal(t, C(2, 3), f.AnchorCell())
	assert.Equal(t, map[Cell]bool{C(2, 3): true, C(3, 3): true, C(3, 5): true}, cellsOf(f))
	for _, off := range f.OccupiedOffsets() {
		assert.GreaterOrEqual(t, off.X, 0)
		assert.GreaterOrEqual(t, off.Y, 0)
	}
}

func TestFigureRotatesClockwise(t *testing.T) {
	// Horizontal bar: green on the left, red on the right.
	f := NewFigure(1, C(0, 0), []Block{
		{Offset: C(0, 0), Type: BlockGreen},
		{Offset: C(1, 0), Type: BlockBlue},
		{Offset: C(2, 0), Type: BlockRed},
	})

	rotated := f.rotatedBlocks()
	byType := make(map[BlockType]Cell)
	for _, b := range rotated {
		byType[b.Type] = b.Offset
	}
	// Clockwise with Y up: the left end ends up on top.
	assert.Equal(t, C(0, 2), byType[BlockGreen])
	assert.Equal(t, C(0, 1), byType[BlockBlue])
	assert.Equal(t, C(0, 0), byType[BlockRed])
}

func TestFigureSplitAtColumn(t *testing.T) {
	f := NewUniformFigure(1, C(3, 1), []Cell{C(0, 0), C(1, 0), C(2, 0), C(1, 1)}, BlockBlue)

	left, right := f.splitAtColumn(4)
	assert.Len(t, left, 1)
	assert.Len(t, right, 3)
}

func TestFigureUniformAndBlockAt(t *testing.T) {
	f := NewUniformFigure(7, C(1, 1), []Cell{C(0, 0), C(0, 1)}, BlockRed)

	assert.True(t, f.Uniform(BlockRed))
	assert.False(t, f.Uniform(BlockGreen))

	b, ok := f.BlockAt(C(1, 2))
	assert.True(t, ok)
	assert.Equal(t, BlockRed, b.Type)

	_, ok = f.BlockAt(C(2, 2))
	assert.False(t, ok)
}

func TestToolFootprints(t *testing.T) {
	saw := NewSaw(1, C(4, 2))
	gap, ok := saw.BladeGap()
	assert.True(t, ok)
	assert.Equal(t, C(4, 2), gap)
	assert.Equal(t, map[Cell]bool{C(3, 2): true, C(6, 2): true}, cellsOf(saw))

	rot := NewRotator(2, C(7, 1), 2)
	assert.Equal(t, map[Cell]bool{C(6, 0): true, C(9, 0): true, C(6, 3): true, C(9, 3): true}, cellsOf(rot))
	_, ok = rot.BladeGap()
	assert.False(t, ok)

	tr := NewTransmuter(3, C(1, 3), 0)
	assert.False(t, tr.Active())
	assert.Empty(t, tr.OccupiedOffsets())

	out := NewOutput(4, 5, BlockRed)
	assert.Equal(t, C(5, -1), out.AnchorCell())
	assert.Empty(t, out.OccupiedOffsets())
	assert.Equal(t, CategoryTool, out.Category())
}

func TestBlockTypeParsingAndCycle(t *testing.T) {
	for _, s := range []string{"green", "G", " g "} {
		bt, ok := ParseBlockType(s)
		assert.True(t, ok, s)
		assert.Equal(t, BlockGreen, bt, s)
	}
	_, ok := ParseBlockType("purple")
	assert.False(t, ok)

	assert.Equal(t, BlockBlue, BlockGreen.Next())
	assert.Equal(t, BlockRed, BlockBlue.Next())
	assert.Equal(t, BlockGreen, BlockRed.Next())

	assert.Equal(t, 0, BlockGreen.CuttingCost())
	assert.Equal(t, 1, BlockBlue.CuttingCost())
	assert.Equal(t, 2, BlockRed.CuttingCost())
}
