package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
)

// testGeometry is an 11x6 field with chutes at x=2, 5, 8 and a 2-wide hole.
func testGeometry(t *testing.T) Geometry {
	t.Helper()
	g, err := NewGeometry(6, 2, 2, 2, 2, 2)
	require.NoError(t, err)
	return g
}

func cellPtr(x, y int) *Cell {
	c := C(x, y)
	return &c
}

func newTestWorld(t *testing.T, mutate func(*Options)) *World {
	t.Helper()
	opts := Options{
		Geometry:  testGeometry(t),
		Config:    config.DefaultSimConfig(),
		Seed:      1,
		NoSpawner: true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	w, err := NewWorld(opts)
	require.NoError(t, err)
	return w
}

func mono(at Cell, t BlockType) FigureSpec {
	return FigureSpec{At: at, Blocks: []Block{{Offset: C(0, 0), Type: t}}}
}

func cellsOf(e Entity) map[Cell]bool {
	out := make(map[Cell]bool)
	for _, c := range AbsoluteCells(e) {
		out[c] = true
	}
	return out
}

func mapset0() mapset.Set[EntityID] {
	return mapset.New[EntityID]()
}

func coreV(x, y float64) core.Vec2 {
	return core.V(x, y)
}
