package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chuteworks/internal/config"
	"github.com/vovakirdan/chuteworks/internal/core"
	"github.com/vovakirdan/chuteworks/internal/sim"
	"github.com/vovakirdan/chuteworks/internal/sim/levels"
	"github.com/vovakirdan/chuteworks/internal/storage"
)

// fieldMargin is the left padding of the field in terminal columns.
const fieldMargin = 2

// GameOptions configures one level session.
type GameOptions struct {
	Level   levels.Level
	Sim     config.SimConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // optional run history
	Logger  *log.Logger
	Player  string
	Reloads <-chan LevelReloadMsg // optional level file changes
}

// LevelReloadMsg carries a level file change from the watcher.
type LevelReloadMsg struct {
	Level levels.Level
	Err   error
}

// waitForReload blocks on the next level change.
func waitForReload(ch <-chan LevelReloadMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// Model is the Bubble Tea model for playing a level.
type Model struct {
	opts        GameOptions
	world       *sim.World
	buildErr    error
	screen      *core.Screen
	viewport    Viewport
	keyMapper   *KeyMapper
	help        help.Model
	hud         HUD
	feed        *eventFeed
	logger      *log.Logger
	inputFrame  core.InputFrame
	modal       *upgradeModal
	unsubscribe func()
	paused      bool
	quitting    bool
	backToMenu  bool
	exitOnBack  bool // standalone play has no menu to return to
	runSaved    bool // Whether the current run has been saved
}

// NewModel creates a new Bubble Tea model for the given level.
func NewModel(opts GameOptions) Model {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Player == "" {
		opts.Player = "local"
	}

	feed := newEventFeed(opts.Logger)
	m := Model{
		opts:       opts,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		hud:        NewHUD(GetTheme()),
		feed:       feed,
		logger:     feed.logger,
		inputFrame: core.NewInputFrame(),
	}
	m.load()
	return m
}

// load builds a fresh world for the current level and seed.
func (m *Model) load() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}

	world, err := m.opts.Level.Build(m.opts.Sim, m.opts.Runtime.Seed)
	if err != nil {
		m.world = nil
		m.buildErr = err
		m.logger.Error("cannot build level", "level", m.opts.Level.ID, "error", err)
		return
	}

	m.world = world
	m.buildErr = nil
	world.SetEvents(m.feed.record)
	m.unsubscribe = world.Ledger().Subscribe(m.feed.ledger)

	m.viewport = NewViewport(world.Geometry(), fieldMargin, hudHeight)
	w, h := m.viewport.ScreenSize()
	if m.screen == nil {
		m.screen = core.NewScreen(w, h)
	} else {
		m.screen.Resize(w, h)
	}

	m.modal = nil
	m.paused = false
	m.runSaved = false
	m.inputFrame = core.NewInputFrame()

	m.logger.Debug("level started",
		"level", m.opts.Level.ID,
		"seed", m.opts.Runtime.Seed,
		"player", m.opts.Player,
	)
}

// Init starts the tick loop and the reload listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(m.opts.Runtime.TickRate),
		waitForReload(m.opts.Reloads),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()

	case LevelReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
// Level actions are queued on the input frame and applied on the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		return m.handleModalKey(msg)
	}

	if key.Matches(msg, m.keyMapper.Keys().Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.saveRun()
		m.backToMenu = true
		if m.exitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleModalKey drives the upgrade picker.
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.saveRun()
		m.quitting = true
		return m, tea.Quit
	case "up", "k", "w":
		m.modal.up()
	case "down", "j", "s":
		m.modal.down()
	case "esc", "b", "u":
		m.modal = nil
	case "enter", " ":
		if u, ok := m.modal.selected(); ok {
			if m.world.ApplyUpgrade(u) {
				m.logger.Info("upgrade built", "upgrade", string(u), "player", m.opts.Player)
			} else {
				m.feed.note("cannot build %s yet", u.Title())
			}
		}
		m.modal = nil
	}
	return m, nil
}

// handleMouse records the pointer for the next tick.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.world == nil || m.modal != nil || m.paused {
		return m, nil
	}

	p := &m.inputFrame.Pointer
	p.Pos = m.viewport.ToWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			p.Origin = p.Pos
			p.Pressed = true
			p.Held = true
		}
	case tea.MouseActionRelease:
		if p.Held {
			p.Released = true
			p.Held = false
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.Runtime.TickRate)
	if m.world == nil {
		m.inputFrame.Clear()
		return m, next
	}

	in := m.inputFrame
	if in.Has(core.ActionRestart) {
		m.saveRun()
		m.opts.Runtime.Seed = time.Now().UnixNano()
		m.load()
		m.feed.note("restarted %s", m.opts.Level.Title())
		return m, next
	}
	if in.Has(core.ActionPause) {
		m.paused = !m.paused
		if m.paused {
			m.dropDrag()
		}
	}

	if m.paused || m.modal != nil {
		m.inputFrame.Clear()
		return m, next
	}

	p := in.Pointer
	if p.Pressed {
		m.world.Press(p.Origin)
	}
	m.world.Step(m.opts.Runtime.TickSeconds(), p.Pos)
	if p.Released {
		m.world.Release()
	}

	if in.Has(core.ActionRotate) {
		m.actOnPointer(m.world.Rotate, "rotate")
	}
	if in.Has(core.ActionTransmute) {
		m.actOnPointer(m.world.Transmute, "transmute")
	}
	if in.Has(core.ActionUpgrade) {
		m.openUpgrades()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, next
}

// dropDrag releases the dragged figure so it cannot hang mid-air while the
// level is not ticking.
func (m *Model) dropDrag() {
	m.world.Release()
	m.inputFrame.Pointer.Held = false
}

// actOnPointer applies a tool action to the figure under the pointer.
func (m *Model) actOnPointer(act func(sim.EntityID) bool, verb string) {
	x, y := m.inputFrame.Pointer.Pos.RoundInt()
	f, ok := m.world.FigureAt(sim.C(x, y))
	if !ok {
		m.feed.note("no figure under the pointer to %s", verb)
		return
	}
	tok := m.world.Flash().Token()
	if act(f.ID()) {
		return
	}
	// Out of fuel is already on the status line
	if m.world.Flash().Token() == tok {
		m.feed.note("cannot %s here", verb)
	}
}

// openUpgrades shows the upgrade picker once research is complete.
func (m *Model) openUpgrades() {
	if !m.world.ResearchComplete() {
		m.feed.note("research %s, upgrades need a full bar", m.world.Ledger().ResearchText())
		return
	}
	modal := newUpgradeModal(m.world.UpgradeAvailability())
	if modal.empty() {
		m.feed.note("every upgrade is built")
		return
	}
	m.dropDrag()
	m.modal = modal
}

// handleReload swaps in a changed level file.
func (m Model) handleReload(msg LevelReloadMsg) (tea.Model, tea.Cmd) {
	next := waitForReload(m.opts.Reloads)
	if msg.Err != nil {
		m.logger.Warn("level reload failed", "error", msg.Err)
		m.feed.note("reload failed: %v", msg.Err)
		return m, next
	}

	m.saveRun()
	m.opts.Level = msg.Level
	m.load()
	m.logger.Info("level reloaded", "level", msg.Level.ID, "path", msg.Level.FilePath)
	m.feed.note("reloaded %s", msg.Level.Title())
	return m, next
}

// saveRun stores the current run once. Runs where nothing happened are skipped.
func (m *Model) saveRun() {
	if m.runSaved || m.world == nil || m.opts.Store == nil {
		return
	}
	sum := m.world.Summary()
	if sum.Delivered == 0 && sum.Cuts == 0 && sum.Upgrades == 0 {
		return
	}
	m.runSaved = true

	run := storage.Run{
		LevelID:   m.opts.Level.ID,
		Player:    m.opts.Player,
		Delivered: sum.Delivered,
		Figures:   sum.Figures,
		Cuts:      sum.Cuts,
		Upgrades:  sum.Upgrades,
		Fuel:      sum.Fuel,
		Duration:  int(sum.Elapsed),
	}
	id, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Debug("run saved", "id", id, "level", run.LevelID, "delivered", run.Delivered)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	theme := GetTheme()
	if m.world == nil {
		return theme.HUDWarning.Render("cannot start level") + "\n\n" +
			theme.OverlayText.Render(m.buildErr.Error()) + "\n\n" +
			theme.HUDControls.Render("q: quit")
	}

	DrawWorld(m.screen, m.world, m.viewport)
	field := RenderScreen(m.screen)
	if m.modal != nil {
		w, h := m.viewport.ScreenSize()
		modal := m.modal.View()
		field = lipgloss.Place(
			max(w, lipgloss.Width(modal)), max(h, lipgloss.Height(modal)),
			lipgloss.Center, lipgloss.Center,
			modal,
		)
	}

	var b strings.Builder
	b.WriteString(m.hud.View(m.world, m.opts.Level.Title(), m.statusLine()))
	b.WriteString("\n")
	b.WriteString(indent(field, m.viewport.OriginX))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keyMapper.Keys()))
	return b.String()
}

func (m Model) statusLine() string {
	if m.paused {
		return "paused, p to resume"
	}
	return m.feed.status()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}

// World returns the running world, or nil if the level failed to build.
func (m Model) World() *sim.World {
	return m.world
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single level.
func Run(opts GameOptions) error {
	model := NewModel(opts)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover picks the rotate/transmute target
	)

	_, err := p.Run()
	return err
}
