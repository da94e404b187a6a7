package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/sim"
)

func testGeometry(t *testing.T) sim.Geometry {
	t.Helper()
	g, err := sim.NewGeometry(6, 2, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("NewGeometry() failed: %v", err)
	}
	return g
}

func TestViewportSize(t *testing.T) {
	v := NewViewport(testGeometry(t), 2, 3)

	w, h := v.ScreenSize()
	// 11 columns plus two walls, two terminal columns each
	if w != 26 {
		t.Errorf("width = %d, want 26", w)
	}
	// 6 field rows, 3 hole rows and the chute row
	if h != 10 {
		t.Errorf("height = %d, want 10", h)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	g := testGeometry(t)
	v := NewViewport(g, 2, 3)

	for y := -1; y <= g.Height+g.HoleSize; y++ {
		for x := -1; x <= g.Width; x++ {
			lx, ly := v.Local(sim.C(x, y))
			for col := 0; col < cellWidth; col++ {
				p := v.ToWorld(lx+col+v.OriginX, ly+v.OriginY)
				gx, gy := p.RoundInt()
				if gx != x || gy != y {
					t.Fatalf("cell (%d,%d) column %d maps back to (%d,%d)", x, y, col, gx, gy)
				}
			}
		}
	}
}

func TestViewportContains(t *testing.T) {
	v := NewViewport(testGeometry(t), 2, 3)

	if v.Contains(1, 3) {
		t.Error("left margin should be outside")
	}
	if !v.Contains(2, 3) {
		t.Error("top-left cell should be inside")
	}
	if v.Contains(2, 13) {
		t.Error("row below the chutes should be outside")
	}
}

func TestDrawWorld(t *testing.T) {
	g := testGeometry(t)
	saw := sim.C(4, 3)
	w, err := sim.NewWorld(sim.Options{
		Geometry:  g,
		Config:    testSimConfig(),
		Saw:       &saw,
		NoSpawner: true,
		Figures: []sim.FigureSpec{
			{At: sim.C(0, 0), Blocks: []sim.Block{{Offset: sim.C(0, 0), Type: sim.BlockRed}}},
		},
	})
	if err != nil {
		t.Fatalf("NewWorld() failed: %v", err)
	}

	v := NewViewport(g, 0, 0)
	sw, sh := v.ScreenSize()
	s := core.NewScreen(sw, sh)
	DrawWorld(s, w, v)

	// Figure block
	x, y := v.Local(sim.C(0, 0))
	if got := s.GetCell(x, y); got.Rune != '█' || got.Color != core.ColorRed {
		t.Errorf("figure cell = %q/%v, want red block", got.Rune, got.Color)
	}

	// Chutes in green, red, blue order
	for i, want := range []core.Color{core.ColorGreen, core.ColorRed, core.ColorBlue} {
		x, y := v.Local(sim.C(g.Chutes[i], -1))
		if got := s.GetCell(x, y); got.Color != want {
			t.Errorf("chute %d color = %v, want %v", i, got.Color, want)
		}
	}

	// Blade between the gap cells
	x, y = v.Local(saw)
	if got := s.Get(x+cellWidth-1, y); got != '┃' {
		t.Errorf("blade rune = %q, want '┃'", got)
	}

	// Input arrows on the top row of the hole
	if !strings.Contains(s.Row(0), "▽▽▽▽") {
		t.Errorf("top row %q should show the input hole", s.Row(0))
	}
}
