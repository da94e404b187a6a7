package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridMarkAndOccupied(t *testing.T) {
	g := NewGrid(4, 3)
	g.Mark(C(1, 2))
	g.Mark(C(3, 0))

	assert.True(t, g.Occupied(1, 2))
	assert.True(t, g.Occupied(3, 0))
	assert.False(t, g.Occupied(0, 0))
	assert.Equal(t, 2, g.OccupiedCount())
}

func TestGridOutOfBoundsIsIgnored(t *testing.T) {
	g := NewGrid(4, 3)
	g.Mark(C(-1, 0))
	g.Mark(C(0, 3))
	g.Mark(C(2, -1))

	assert.Equal(t, 0, g.OccupiedCount())
	assert.False(t, g.Occupied(-1, 0))
	assert.False(t, g.Occupied(4, 0))
	assert.False(t, g.Occupied(0, 99))
}

func TestGridEqual(t *testing.T) {
	a, b := NewGrid(3, 3), NewGrid(3, 3)
	assert.True(t, a.Equal(b))

	a.Mark(C(1, 1))
	assert.False(t, a.Equal(b))

	b.Mark(C(1, 1))
	assert.True(t, a.Equal(b))

	assert.False(t, a.Equal(NewGrid(3, 4)))
}

func TestNilGridIsEmpty(t *testing.T) {
	var g *Grid
	assert.False(t, g.Occupied(0, 0))
}
