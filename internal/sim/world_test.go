package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
)

const tick = 1.0 / 60

func drag(w *World, from, to core.Vec2, ticks int) {
	w.Press(from)
	for i := 0; i < ticks; i++ {
		w.Step(tick, to)
	}
	w.Release()
}

func recordEvents(w *World) *[]Event {
	var got []Event
	w.SetEvents(func(ev Event) { got = append(got, ev) })
	return &got
}

func TestDragMovesFigureDown(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(0, 3), BlockGreen)}
	})

	drag(w, core.V(0, 3), core.V(0, 1), 10)

	f := w.Figures()[0]
	assert.Equal(t, C(0, 1), f.AnchorCell())
	assert.Equal(t, core.V(0, 1), f.Anchor(), "release snaps to the grid")
	_, dragging := w.Dragging()
	assert.False(t, dragging)
}

func TestDragStopsAtWalls(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(0, 0), BlockGreen)}
	})

	drag(w, core.V(0, 0), core.V(-3, -3), 20)

	assert.Equal(t, C(0, 0), w.Figures()[0].AnchorCell())
}

func TestDragStopsAtOtherFigures(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(0, 1), BlockGreen), mono(C(4, 1), BlockBlue)}
	})

	drag(w, core.V(0, 1), core.V(9, 1), 30)

	assert.Equal(t, C(3, 1), w.Figures()[0].AnchorCell())
}

func TestDragByNonAnchorBlock(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{{At: C(1, 1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(1, 0)}}}}
	})

	// Grab the right block and pull it two cells right.
	drag(w, core.V(2, 1), core.V(4, 1), 20)

	assert.Equal(t, C(3, 1), w.Figures()[0].AnchorCell())
}

func TestPressOnEmptyCell(t *testing.T) {
	w := newTestWorld(t, nil)
	assert.False(t, w.Press(core.V(3, 3)))
	_, dragging := w.Dragging()
	assert.False(t, dragging)
}

func TestDeliverGreen(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(2, 0), BlockGreen)}
	})
	events := recordEvents(w)

	drag(w, core.V(2, 0), core.V(2, -1), 10)

	assert.Empty(t, w.Figures())
	assert.Equal(t, 11, w.Ledger().Fuel())
	require.Len(t, *events, 1)
	assert.Equal(t, EventDeliver, (*events)[0].Kind)
	assert.Equal(t, 1, w.Summary().Delivered)
	assert.Equal(t, 1, w.Summary().ByType[BlockGreen])
}

func TestDeliverThreeGreenBlocks(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{{At: C(2, -1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(0, 1)}, {Offset: C(0, 2)}}}}
	})

	drag(w, core.V(2, 0), core.V(2, 0), 1)

	assert.Empty(t, w.Figures())
	assert.Equal(t, 13, w.Ledger().Fuel())
	assert.Equal(t, 3, w.Summary().Delivered)
	assert.Equal(t, 1, w.Summary().Figures)
}

func TestDeliverRed(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(5, -1), BlockRed)}
	})

	drag(w, core.V(5, -1), core.V(5, -1), 1)

	assert.Empty(t, w.Figures())
	assert.Equal(t, 9, w.Ledger().Fuel())
}

func TestDeliverRedWithoutFuelFlashes(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Config.Ledger.StartFuel = 0
		o.Figures = []FigureSpec{mono(C(5, -1), BlockRed)}
	})
	events := recordEvents(w)

	drag(w, core.V(5, -1), core.V(5, -1), 1)

	assert.Len(t, w.Figures(), 1, "figure stays in the chute")
	assert.Equal(t, 0, w.Ledger().Fuel())
	assert.True(t, w.Flash().Running())
	require.Len(t, *events, 1)
	assert.Equal(t, EventOutOfFuel, (*events)[0].Kind)
}

func TestDeliverWrongColorStays(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(2, -1), BlockBlue)}
	})

	drag(w, core.V(2, -1), core.V(2, -1), 1)

	assert.Len(t, w.Figures(), 1)
	assert.Equal(t, 10, w.Ledger().Fuel())
}

func TestSawCutsFigure(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Saw = cellPtr(4, 2)
		o.Figures = []FigureSpec{{At: C(4, 2), Blocks: []Block{
			{Offset: C(0, 0), Type: BlockGreen},
			{Offset: C(1, 0), Type: BlockBlue},
			{Offset: C(1, 1), Type: BlockBlue},
		}}}
	})
	events := recordEvents(w)

	drag(w, core.V(4, 2), core.V(4, 2), 1)

	figs := w.Figures()
	require.Len(t, figs, 2)
	assert.Equal(t, map[Cell]bool{C(4, 2): true}, cellsOf(figs[0]))
	assert.Equal(t, map[Cell]bool{C(5, 2): true, C(5, 3): true}, cellsOf(figs[1]))
	assert.Equal(t, 9, w.Ledger().Fuel(), "green 0 + blue 1")
	require.Len(t, *events, 1)
	assert.Equal(t, EventCut, (*events)[0].Kind)
	assert.Equal(t, 1, w.Summary().Cuts)
}

func TestSawCutUnaffordable(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Config.Ledger.StartFuel = 3
		o.Saw = cellPtr(4, 2)
		o.Figures = []FigureSpec{{At: C(4, 2), Blocks: []Block{
			{Offset: C(0, 0), Type: BlockRed},
			{Offset: C(1, 0), Type: BlockRed},
		}}}
	})

	drag(w, core.V(4, 2), core.V(4, 2), 1)

	assert.Len(t, w.Figures(), 1)
	assert.Equal(t, 3, w.Ledger().Fuel())
	assert.True(t, w.Flash().Running())
}

func TestSawCostUpgradeMakesCutsCheaper(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Config.Ledger.StartFuel = 3
		o.Saw = cellPtr(4, 2)
		o.Figures = []FigureSpec{{At: C(4, 2), Blocks: []Block{
			{Offset: C(0, 0), Type: BlockRed},
			{Offset: C(1, 0), Type: BlockRed},
		}}}
	})
	w.Ledger().SetResearch(w.Ledger().MaxResearch())
	require.True(t, w.ApplyUpgrade(UpgradeSawCost))

	drag(w, core.V(4, 2), core.V(4, 2), 1)

	assert.Len(t, w.Figures(), 2)
	assert.Equal(t, 1, w.Ledger().Fuel())
}

func TestDiagonalStepCannotCutBladeCorner(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Saw = cellPtr(4, 2)
		o.Figures = []FigureSpec{mono(C(5, 3), BlockGreen)}
	})
	f := w.Figures()[0]
	snap := w.Snapshot(f.ID())
	allowed := AllowedMoves(w.Geometry(), snap, f)
	require.True(t, allowed.Left && allowed.Down)

	got := w.constrain(f, coreV(-0.6, -0.6), allowed, snap)
	assert.Equal(t, coreV(-0.6, 0), got, "falls back to the horizontal leg above the blade")

	got = w.constrain(f, coreV(0, -0.6), allowed, snap)
	assert.Equal(t, coreV(0, -0.6), got, "dropping into the right gap cell is fine")
}

func TestRotate(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Rotator = cellPtr(7, 1)
		o.Figures = []FigureSpec{{At: C(7, 1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(1, 0)}}}}
	})
	f := w.Figures()[0]

	require.True(t, w.Rotate(f.ID()))
	assert.Equal(t, map[Cell]bool{C(7, 1): true, C(7, 2): true}, cellsOf(f))
	assert.Equal(t, 9, w.Ledger().Fuel())
}

func TestRotateOutsideZone(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Rotator = cellPtr(7, 1)
		o.Figures = []FigureSpec{{At: C(1, 1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(1, 0)}}}}
	})

	assert.False(t, w.Rotate(w.Figures()[0].ID()))
	assert.Equal(t, 10, w.Ledger().Fuel())
}

func TestRotateNeedsRoomInZone(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Rotator = cellPtr(7, 1)
		o.Figures = []FigureSpec{{At: C(7, 1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(1, 0)}}}}
	})
	_, err := w.AddFigure(C(7, 2), []Block{{Offset: C(0, 0), Type: BlockRed}})
	require.NoError(t, err)

	assert.False(t, w.Rotate(w.Figures()[0].ID()))
}

func TestRotatorCostUpgradeMakesRotationFree(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Config.Ledger.StartFuel = 0
		o.Rotator = cellPtr(7, 1)
		o.Figures = []FigureSpec{{At: C(7, 1), Blocks: []Block{{Offset: C(0, 0)}, {Offset: C(1, 0)}}}}
	})
	f := w.Figures()[0]

	assert.False(t, w.Rotate(f.ID()))
	assert.True(t, w.Flash().Running())

	w.Ledger().SetResearch(w.Ledger().MaxResearch())
	require.True(t, w.ApplyUpgrade(UpgradeRotatorCost))
	assert.True(t, w.Rotate(f.ID()))
}

func TestTransmute(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Transmuter = cellPtr(1, 3)
		o.Figures = []FigureSpec{mono(C(1, 3), BlockGreen)}
	})
	f := w.Figures()[0]

	assert.False(t, w.Transmute(f.ID()), "transmuter not built yet")
	assert.Len(t, w.Tools(), 3, "only the outputs exist")

	w.Ledger().SetResearch(w.Ledger().MaxResearch())
	require.True(t, w.ApplyUpgrade(UpgradeTransmuter1))
	assert.Len(t, w.Tools(), 4)

	require.True(t, w.Transmute(f.ID()))
	assert.True(t, f.Uniform(BlockBlue))
	assert.Equal(t, 9, w.Ledger().Fuel())
}

func TestApplyUpgradeNeedsResearch(t *testing.T) {
	w := newTestWorld(t, func(o *Options) { o.Rotator = cellPtr(7, 1) })

	assert.False(t, w.ApplyUpgrade(UpgradeRotatorSize))

	w.Ledger().SetResearch(w.Ledger().MaxResearch())
	require.True(t, w.ApplyUpgrade(UpgradeRotatorSize))
	assert.Equal(t, 3, w.Rotator().Size())
	assert.Equal(t, 0, w.Ledger().Research())
	assert.False(t, w.UpgradeAvailability()[UpgradeRotatorSize])

	w.Ledger().SetResearch(w.Ledger().MaxResearch())
	assert.False(t, w.ApplyUpgrade(UpgradeRotatorSize), "already taken")
}

func TestApplyUnknownUpgradePanics(t *testing.T) {
	w := newTestWorld(t, nil)
	assert.Panics(t, func() { w.ApplyUpgrade(Upgrade("teleporter")) })
}

func TestResearchAccrues(t *testing.T) {
	w := newTestWorld(t, nil)

	for i := 0; i < 4; i++ {
		w.Step(0.5, core.Vec2{})
	}
	assert.Equal(t, 0, w.Ledger().Research(), "nothing before the delay")

	for i := 0; i < 6; i++ {
		w.Step(0.5, core.Vec2{})
	}
	assert.Equal(t, 3, w.Ledger().Research())

	for i := 0; i < 100; i++ {
		w.Step(0.5, core.Vec2{})
	}
	assert.Equal(t, w.Ledger().MaxResearch(), w.Ledger().Research())
}

func TestSpawnerFillsEmptyHole(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.NoSpawner = false
		o.Shapes = []string{"mono"}
		o.SpawnTypes = []BlockType{BlockRed}
	})
	events := recordEvents(w)

	w.Step(tick, core.Vec2{})
	w.Step(tick, core.Vec2{})

	figs := w.Figures()
	require.Len(t, figs, 1)
	assert.Equal(t, w.Geometry().SpawnCell(), figs[0].AnchorCell())
	assert.True(t, figs[0].Uniform(BlockRed))
	require.Len(t, *events, 1)
	assert.Equal(t, EventSpawn, (*events)[0].Kind)
}

func TestSpawnedFigureCanDropIntoField(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.NoSpawner = false
		o.Shapes = []string{"mono"}
	})
	w.Step(tick, core.Vec2{})
	spawned := w.Figures()[0]

	drag(w, core.V(0, 7), core.V(0, 2), 30)

	assert.Equal(t, C(0, 2), spawned.AnchorCell())
	assert.Len(t, w.Figures(), 2, "a new figure replaces it in the hole")
}

func TestSpawnerIsDeterministic(t *testing.T) {
	run := func() []Block {
		w := newTestWorld(t, func(o *Options) {
			o.NoSpawner = false
			o.Seed = 42
		})
		w.Step(tick, core.Vec2{})
		return w.Figures()[0].Blocks()
	}
	assert.Equal(t, run(), run())
}

func TestNewWorldRejectsBadLayout(t *testing.T) {
	g := testGeometry(t)
	cfg := config.DefaultSimConfig()

	_, err := NewWorld(Options{Geometry: g, Config: cfg, NoSpawner: true, Saw: cellPtr(20, 2)})
	assert.Error(t, err, "saw outside field")

	_, err = NewWorld(Options{Geometry: g, Config: cfg, NoSpawner: true, Figures: []FigureSpec{
		mono(C(1, 1), BlockGreen), mono(C(1, 1), BlockBlue),
	}})
	assert.Error(t, err, "overlapping figures")

	_, err = NewWorld(Options{Geometry: g, Config: cfg, NoSpawner: true, Figures: []FigureSpec{mono(C(5, 8), BlockGreen)}})
	assert.Error(t, err, "figure in the wall above the field")

	_, err = NewWorld(Options{Geometry: g, Config: cfg, Shapes: []string{"no-such-shape"}})
	assert.Error(t, err, "unknown shape")

	bad := cfg
	bad.Drag.MaxStep = 0
	_, err = NewWorld(Options{Geometry: g, Config: bad, NoSpawner: true})
	assert.Error(t, err, "invalid config")
}

func TestLedgerSubscribersSeeWorldChanges(t *testing.T) {
	w := newTestWorld(t, func(o *Options) {
		o.Figures = []FigureSpec{mono(C(2, -1), BlockGreen)}
	})
	var seen []string
	w.Ledger().Subscribe(func(ev LedgerEvent) { seen = append(seen, ev.Resource.String()+" "+ev.Text()) })

	drag(w, core.V(2, -1), core.V(2, -1), 1)

	assert.Equal(t, []string{"fuel 11/100"}, seen)
}
