package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

// maxRuns caps how many runs the board loads per level.
const maxRuns = 50

// runsView selects which runs the board lists.
type runsView int

const (
	viewBest runsView = iota
	viewRecent
)

func (v runsView) String() string {
	if v == viewRecent {
		return "RECENT RUNS"
	}
	return "BEST RUNS"
}

// RunsKeyMap defines the key bindings for the run history board.
type RunsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevLevel key.Binding
	NextLevel key.Binding
	Toggle    key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevLevel, k.NextLevel, k.Toggle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevLevel, k.NextLevel},
		{k.Toggle, k.Back, k.Quit},
	}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left/h", "prev level"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right/l", "next level"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model for the run history screen.
// It shows one level at a time: its totals from the store and either the
// best or the most recent runs.
type RunsModel struct {
	levels    []levels.Level
	cursor    int
	store     *storage.Store
	view      runsView
	runs      []storage.Run
	stats     *storage.LevelStats // nil until the level has a run
	loadErr   error
	table     table.Model
	help      help.Model
	keys      RunsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewRunsModel creates a new run history model.
func NewRunsModel(lvls []levels.Level, store *storage.Store, width, height int) RunsModel {
	m := RunsModel{
		levels: lvls,
		store:  store,
		keys:   DefaultRunsKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

func (m *RunsModel) levelID() string {
	if len(m.levels) == 0 {
		return ""
	}
	return m.levels[m.cursor].ID
}

// reload fetches the runs and totals of the selected level.
func (m *RunsModel) reload() {
	m.runs, m.stats, m.loadErr = nil, nil, nil
	if m.store != nil && len(m.levels) > 0 {
		id := m.levelID()
		if m.view == viewRecent {
			m.runs, m.loadErr = m.store.RecentRuns(id, maxRuns)
		} else {
			m.runs, m.loadErr = m.store.TopRuns(id, maxRuns)
		}
		if m.loadErr == nil {
			var all map[string]*storage.LevelStats
			all, m.loadErr = m.store.Stats()
			m.stats = all[id]
		}
	}
	m.table = m.newTable()
}

func (m *RunsModel) newTable() table.Model {
	first := table.Column{Title: "Rank", Width: 5}
	if m.view == viewRecent {
		first = table.Column{Title: "When", Width: 12}
	}
	columns := []table.Column{
		first,
		{Title: "Blocks", Width: 6},
		{Title: "Figures", Width: 7},
		{Title: "Cuts", Width: 4},
		{Title: "Upgr", Width: 4},
		{Title: "Fuel", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "Player", Width: 12},
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		lead := fmt.Sprintf("#%d", i+1)
		if m.view == viewRecent {
			lead = r.CreatedAt.Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			lead,
			fmt.Sprint(r.Delivered),
			fmt.Sprint(r.Figures),
			fmt.Sprint(r.Cuts),
			fmt.Sprint(r.Upgrades),
			fmt.Sprint(r.Fuel),
			clock(r.Duration),
			r.Player,
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	theme := GetTheme()
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.MenuDescription.GetForeground()).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.MenuItemActive
	t.SetStyles(s)
	return t
}

// Init initializes the run history model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run history board.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + 1) % len(m.levels)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevLevel):
			if len(m.levels) > 0 {
				m.cursor = (m.cursor + len(m.levels) - 1) % len(m.levels)
				m.reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(3, m.height-10))
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run history board.
func (m RunsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	theme := GetTheme()

	var b strings.Builder
	b.WriteString(theme.MenuTitle.Render(centerText(m.view.String(), m.width)))
	b.WriteString("\n\n")

	if len(m.levels) > 0 {
		selector := fmt.Sprintf("< %s >  %d/%d", m.levels[m.cursor].Title(), m.cursor+1, len(m.levels))
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, theme.MenuItemActive.Render(selector)))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, theme.MenuDescription.Render(m.summary())))
		b.WriteString("\n\n")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.MenuDescription.GetForeground()).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(m.body())))

	b.WriteString("\n")
	b.WriteString(theme.MenuDescription.Render(m.help.View(m.keys)))
	return b.String()
}

// summary is the totals line of the selected level.
func (m RunsModel) summary() string {
	if m.stats == nil {
		return "not played yet"
	}
	return fmt.Sprintf("runs %d   best %d   delivered %d   avg %s",
		m.stats.Runs, m.stats.BestDelivered, m.stats.TotalDelivered, clock(int(m.stats.AvgDuration)))
}

func (m RunsModel) body() string {
	muted := GetTheme().MenuDescription.Italic(true).Padding(1, 4)
	switch {
	case m.store == nil:
		return muted.Render("No runs recorded yet.\nRun history is unavailable.")
	case m.loadErr != nil:
		return muted.Render("Could not load runs:\n" + m.loadErr.Error())
	case len(m.runs) == 0:
		return muted.Render("No runs recorded yet.\nDeliver a block to start the board!")
	}
	return m.table.View()
}

// clock renders seconds as m:ss.
func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunsModel) IsQuitting() bool {
	return m.quitting
}

// RunRuns runs the run history screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunRuns(lvls []levels.Level, store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewRunsModel(lvls, store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(RunsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
