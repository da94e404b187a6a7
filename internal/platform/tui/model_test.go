package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/sim"
	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

func testSimConfig() config.SimConfig {
	return config.DefaultSimConfig()
}

// testLevel has a single green block right above the green chute.
func testLevel(t *testing.T) levels.Level {
	t.Helper()
	return levels.Level{
		ID:       "test",
		Name:     "Test",
		Geometry: testGeometry(t),
		Figures: []sim.FigureSpec{
			{At: sim.C(2, 0), Blocks: []sim.Block{{Offset: sim.C(0, 0), Type: sim.BlockGreen}}},
		},
		NoSpawner: true,
	}
}

func newTestModel(t *testing.T, store *storage.Store) Model {
	t.Helper()
	m := NewModel(GameOptions{
		Level:   testLevel(t),
		Sim:     testSimConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Store:   store,
		Logger:  log.New(io.Discard),
	})
	if m.World() == nil {
		t.Fatalf("level did not build: %v", m.buildErr)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func ticks(t *testing.T, m Model, n int) Model {
	t.Helper()
	for i := 0; i < n; i++ {
		m = update(t, m, TickMsg{})
	}
	return m
}

// mouseAt builds a mouse message on the first column of a world cell.
func mouseAt(m Model, c sim.Cell, action tea.MouseAction) tea.MouseMsg {
	x, y := m.viewport.Local(c)
	return tea.MouseMsg{
		X:      x + m.viewport.OriginX,
		Y:      y + m.viewport.OriginY,
		Action: action,
		Button: tea.MouseButtonLeft,
	}
}

func TestModelDragDeliversFigure(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, mouseAt(m, sim.C(2, 0), tea.MouseActionPress))
	m = ticks(t, m, 1)
	if _, ok := m.World().Dragging(); !ok {
		t.Fatal("press on the figure should start a drag")
	}

	m = update(t, m, mouseAt(m, sim.C(2, -1), tea.MouseActionMotion))
	m = ticks(t, m, 10)
	m = update(t, m, mouseAt(m, sim.C(2, -1), tea.MouseActionRelease))
	m = ticks(t, m, 1)

	if n := len(m.World().Figures()); n != 0 {
		t.Fatalf("expected the figure to be delivered, %d figures left", n)
	}
	if fuel := m.World().Ledger().Fuel(); fuel != 11 {
		t.Errorf("fuel = %d, want 11", fuel)
	}
	if !strings.Contains(m.statusLine(), "delivered 1 block") {
		t.Errorf("status = %q, want a delivery note", m.statusLine())
	}
}

func TestModelPauseFreezesTime(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, runeKey("p"))
	m = ticks(t, m, 30)
	if !m.paused {
		t.Fatal("expected model to be paused")
	}
	if m.World().Elapsed() != 0 {
		t.Errorf("elapsed = %v while paused, want 0", m.World().Elapsed())
	}

	m = update(t, m, runeKey("p"))
	m = ticks(t, m, 2)
	if m.World().Elapsed() <= 0 {
		t.Error("time should advance after resuming")
	}
}

func TestModelRotateWithoutFigure(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, mouseAt(m, sim.C(7, 4), tea.MouseActionMotion))
	m = update(t, m, runeKey("r"))
	m = ticks(t, m, 1)

	if !strings.Contains(m.statusLine(), "no figure under the pointer") {
		t.Errorf("status = %q", m.statusLine())
	}
}

func TestModelUpgradeNeedsResearch(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, runeKey("u"))
	m = ticks(t, m, 1)

	if m.modal != nil {
		t.Fatal("modal should stay closed without research")
	}
	if !strings.Contains(m.statusLine(), "full bar") {
		t.Errorf("status = %q", m.statusLine())
	}
}

func TestModelUpgradeModal(t *testing.T) {
	m := newTestModel(t, nil)

	// Jump the clock far enough for full research
	m.World().Step(30, core.Vec2{})
	if !m.World().ResearchComplete() {
		t.Fatal("research should be complete")
	}

	m = update(t, m, runeKey("u"))
	m = ticks(t, m, 1)
	if m.modal == nil {
		t.Fatal("upgrade modal should open")
	}
	if !strings.Contains(m.View(), "RESEARCH COMPLETE") {
		t.Error("view should show the modal")
	}

	// Modal pauses the level
	elapsed := m.World().Elapsed()
	m = ticks(t, m, 5)
	if m.World().Elapsed() != elapsed {
		t.Error("time should not advance while the modal is open")
	}

	// First entry is the saw cost upgrade
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.modal != nil {
		t.Error("modal should close after a pick")
	}
	if !m.World().Stats().SawCostUpgraded {
		t.Error("saw cost upgrade should be applied")
	}
	if m.World().Ledger().Research() != 0 {
		t.Errorf("research = %d, want 0 after an upgrade", m.World().Ledger().Research())
	}
}

func TestModelQuitSavesRun(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Press and motion land in the same tick
	m := newTestModel(t, store)
	m = update(t, m, mouseAt(m, sim.C(2, 0), tea.MouseActionPress))
	m = update(t, m, mouseAt(m, sim.C(2, -1), tea.MouseActionMotion))
	m = ticks(t, m, 10)
	m = update(t, m, mouseAt(m, sim.C(2, -1), tea.MouseActionRelease))
	m = ticks(t, m, 1)

	m = update(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Fatal("q should quit")
	}

	best, err := store.BestDelivered("test")
	if err != nil {
		t.Fatalf("BestDelivered() failed: %v", err)
	}
	if best != 1 {
		t.Errorf("best = %d, want 1", best)
	}

	// A second quit must not store the run again
	m.saveRun()
	runs, _ := store.RecentRuns("test", 10)
	if len(runs) != 1 {
		t.Errorf("expected 1 stored run, got %d", len(runs))
	}
}

func TestModelIdleRunIsNotSaved(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, store)
	m = ticks(t, m, 5)
	update(t, m, runeKey("q"))

	runs, _ := store.RecentRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("expected no stored runs, got %d", len(runs))
	}
}

func TestModelReload(t *testing.T) {
	m := newTestModel(t, nil)

	changed := testLevel(t)
	changed.Name = "Changed"
	changed.Figures = append(changed.Figures, sim.FigureSpec{
		At:     sim.C(6, 2),
		Blocks: []sim.Block{{Offset: sim.C(0, 0), Type: sim.BlockBlue}},
	})

	m = update(t, m, LevelReloadMsg{Level: changed})
	if n := len(m.World().Figures()); n != 2 {
		t.Errorf("figures after reload = %d, want 2", n)
	}
	if !strings.Contains(m.statusLine(), "reloaded Changed") {
		t.Errorf("status = %q", m.statusLine())
	}

	before := m.World()
	m = update(t, m, LevelReloadMsg{Err: io.ErrUnexpectedEOF})
	if m.World() != before {
		t.Error("a failed reload must keep the running world")
	}
}

func TestModelReloadResizesField(t *testing.T) {
	m := newTestModel(t, nil)
	screen := m.screen

	taller := testLevel(t)
	geom, err := sim.NewGeometry(8, 2, 2, 2, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	taller.Geometry = geom

	m = update(t, m, LevelReloadMsg{Level: taller})
	if m.screen != screen {
		t.Error("reload should reuse the screen buffer")
	}
	w, h := m.viewport.ScreenSize()
	if m.screen.Width() != w || m.screen.Height() != h {
		t.Errorf("screen = %dx%d, want %dx%d", m.screen.Width(), m.screen.Height(), w, h)
	}
	if h != 8+2+2 {
		t.Errorf("field rows = %d, want 12", h)
	}
}

func TestModelBrokenLevel(t *testing.T) {
	lvl := testLevel(t)
	lvl.Figures = append(lvl.Figures, lvl.Figures[0]) // overlapping figures

	m := NewModel(GameOptions{
		Level:  lvl,
		Sim:    testSimConfig(),
		Logger: log.New(io.Discard),
	})
	if m.World() != nil {
		t.Fatal("overlapping figures should not build")
	}
	if !strings.Contains(m.View(), "cannot start level") {
		t.Error("view should report the build error")
	}
	ticks(t, m, 2)
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(SessionOptions{
		Levels:  []levels.Level{testLevel(t)},
		Sim:     testSimConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
		Logger:  log.New(io.Discard),
		Player:  "tester",
	})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		sm, ok := next.(SessionModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
		s = sm
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenLevel || s.level == nil {
		t.Fatal("enter should start the level")
	}
	if s.level.opts.Player != "tester" {
		t.Errorf("player = %q, want tester", s.level.opts.Player)
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenRuns {
		t.Fatal("tab should open the run history")
	}
	if !strings.Contains(s.View(), "No runs recorded yet") {
		t.Error("empty run board expected without storage")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc should leave the run history")
	}

	step(runeKey("q"))
	if !s.quitting {
		t.Error("q should quit the session")
	}
}

func TestDescribeEvent(t *testing.T) {
	tests := []struct {
		ev   sim.Event
		want string
	}{
		{sim.Event{Kind: sim.EventDeliver, Blocks: 2, Type: sim.BlockRed}, "delivered 2 blocks to the red chute"},
		{sim.Event{Kind: sim.EventCut, Cost: 3}, "cut for 3 fuel"},
		{sim.Event{Kind: sim.EventOutOfFuel, Cost: 4}, "not enough fuel (need 4)"},
		{sim.Event{Kind: sim.EventUpgrade, Upgrade: sim.UpgradeSawCost}, "upgrade: " + sim.UpgradeSawCost.Title()},
	}

	for _, tt := range tests {
		if got := describeEvent(tt.ev); got != tt.want {
			t.Errorf("describeEvent(%v) = %q, want %q", tt.ev.Kind, got, tt.want)
		}
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		if _, err := ThemeByName(name); err != nil {
			t.Errorf("ThemeByName(%q) failed: %v", name, err)
		}
	}
	if _, err := ThemeByName("plaid"); err == nil {
		t.Error("unknown theme should fail")
	}
}
