package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

func runsBoard(t *testing.T) RunsModel {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Run{
		{LevelID: "a", Player: "ann", Delivered: 9, Duration: 60},
		{LevelID: "a", Player: "bob", Delivered: 5, Duration: 120},
		{LevelID: "b", Player: "ann", Delivered: 3, Duration: 30},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}

	lvls := []levels.Level{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}}
	return NewRunsModel(lvls, store, 100, 30)
}

func pressRuns(t *testing.T, m RunsModel, msg tea.KeyMsg) RunsModel {
	t.Helper()
	next, _ := m.Update(msg)
	rm, ok := next.(RunsModel)
	if !ok {
		t.Fatalf("Update returned %T, want RunsModel", next)
	}
	return rm
}

func TestRunsBoardShowsBestRunsAndTotals(t *testing.T) {
	m := runsBoard(t)

	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "9" || rows[0][7] != "ann" {
		t.Errorf("first row = %v, want the 9-block run ranked #1", rows[0])
	}

	view := m.View()
	for _, want := range []string{"BEST RUNS", "Alpha", "runs 2", "best 9", "delivered 14", "avg 1:30"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q", want)
		}
	}
}

func TestRunsBoardTogglesRecent(t *testing.T) {
	m := pressRuns(t, runsBoard(t), runeKey("r"))

	if m.view != viewRecent {
		t.Fatal("r should switch to recent runs")
	}
	rows := m.table.Rows()
	if len(rows) != 2 || rows[0][1] != "5" {
		t.Errorf("recent rows = %v, want the latest run first", rows)
	}
	if strings.HasPrefix(rows[0][0], "#") {
		t.Errorf("recent rows lead with a date, got %q", rows[0][0])
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title should follow the view")
	}

	m = pressRuns(t, m, runeKey("r"))
	if m.view != viewBest {
		t.Error("r again returns to best runs")
	}
}

func TestRunsBoardSwitchesLevel(t *testing.T) {
	m := pressRuns(t, runsBoard(t), runeKey("l"))

	if m.levelID() != "b" {
		t.Fatalf("level = %q, want b", m.levelID())
	}
	if n := len(m.table.Rows()); n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}
	if !strings.Contains(m.View(), "runs 1") {
		t.Error("totals should follow the level")
	}

	m = pressRuns(t, m, runeKey("h"))
	if m.levelID() != "a" {
		t.Errorf("level = %q, want a", m.levelID())
	}
}

func TestRunsBoardWithoutStore(t *testing.T) {
	m := NewRunsModel([]levels.Level{{ID: "a"}}, nil, 80, 24)

	view := m.View()
	if !strings.Contains(view, "No runs recorded yet") || !strings.Contains(view, "not played yet") {
		t.Errorf("view = %q", view)
	}

	m = pressRuns(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("esc goes back to the menu")
	}
}
