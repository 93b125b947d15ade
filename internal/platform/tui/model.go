package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logic-arcade/internal/arcade"
	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/puzzle"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// playStatus is written by the session observer and read by View.
type playStatus struct {
	starred bool
	notice  string
}

// PlayModel is the Bubble Tea model for playing the levels of one pack.
type PlayModel struct {
	pack    registry.Pack
	entries []registry.Entry
	index   int
	svc     arcade.Services
	config  core.RuntimeConfig

	session *puzzle.Session
	status  *playStatus
	screen  *core.Screen
	keys    *KeyMapper
	keymap  PlayKeyMap
	help    help.Model
	frame   core.InputFrame

	cursor     int
	showHint   bool
	lastTick   time.Time
	tickGen    uint64
	comingSoon int // Placeholder level id, 0 while playing
	quitting   bool
	back       bool
}

// NewPlayModel starts level id of pack. An id past the end of the campaign
// opens the coming-soon placeholder instead of failing.
func NewPlayModel(pack registry.Pack, id int, svc arcade.Services, cfg core.RuntimeConfig) (PlayModel, error) {
	m := PlayModel{
		pack:    pack,
		entries: pack.Entries(),
		svc:     svc,
		config:  cfg,
		screen:  core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 0)),
		keys:    NewKeyMapper(),
		keymap:  DefaultPlayKeyMap(),
		help:    help.New(),
		frame:   core.NewInputFrame(),
		tickGen: nextTickGen(),
	}
	m.help.Width = cfg.ScreenW

	for i, e := range m.entries {
		if e.ID == id {
			err := m.start(i)
			return m, err
		}
	}
	if pack.Name() == levels.CampaignPack && id > levels.CampaignSize {
		m.comingSoon = id
		return m, nil
	}
	return m, fmt.Errorf("%w: %s/%d", levels.ErrUnknownLevel, pack.Name(), id)
}

// start closes the current session and opens entries[i].
func (m *PlayModel) start(i int) error {
	if m.session != nil {
		m.session.Close()
	}

	entry := m.entries[i]
	status := &playStatus{starred: m.svc.HasStar(m.pack.Name(), entry.ID)}
	watch := puzzle.ObserverFunc(func(e puzzle.Event) {
		switch e.Kind {
		case puzzle.EventCompleted:
			status.starred = true
			status.notice = ""
		case puzzle.EventCompletionError:
			status.notice = "Star not saved: " + e.Error
		}
	})

	s, err := m.svc.NewSession(m.pack.Name(), entry.ID, watch)
	if err != nil {
		return err
	}
	m.index = i
	m.session = s
	m.status = status
	m.cursor = 0
	m.showHint = false
	return nil
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval(), m.tickGen)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		return m.handleTick(msg.Time)
	}

	return m, nil
}

// handleKey processes keyboard input. Quit and back act at once; everything
// else is queued for the next tick.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.comingSoon != 0 {
		if action, _ := m.keys.MapKey(msg); action == core.ActionQuit {
			return m.quit()
		}
		return m.leave()
	}

	if m.keys.MapKeyToFrame(msg, &m.frame) {
		return m.quit()
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.frame.Has(core.ActionBack) {
		return m.leave()
	}
	return m, nil
}

func (m PlayModel) quit() (tea.Model, tea.Cmd) {
	m.closeSession()
	m.quitting = true
	return m, tea.Quit
}

func (m PlayModel) leave() (tea.Model, tea.Cmd) {
	m.closeSession()
	m.back = true
	return m, nil
}

func (m *PlayModel) closeSession() {
	if m.session != nil {
		m.session.Close()
	}
}

// handleTick applies queued input, then advances the session clock.
func (m PlayModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.back || m.quitting {
		return m, nil
	}
	interval := m.config.TickInterval()
	if m.session == nil {
		return m, tickCmd(interval, m.tickGen)
	}

	m.applyInput()
	m.session.Advance(frameDelta(m.lastTick, now, interval))
	m.lastTick = now
	m.frame.Clear()

	return m, tickCmd(interval, m.tickGen)
}

func (m *PlayModel) applyInput() {
	s := m.session
	n := len(s.Switches())

	if m.frame.Has(core.ActionHint) {
		m.showHint = !m.showHint
	}
	if m.frame.Has(core.ActionReset) {
		s.Reset()
	}
	if m.frame.Has(core.ActionLeft) {
		m.cursor = (m.cursor + n - 1) % n
	}
	if m.frame.Has(core.ActionRight) {
		m.cursor = (m.cursor + 1) % n
	}
	if m.frame.Has(core.ActionToggle) {
		s.Toggle(m.cursor)
	}
	for _, i := range m.frame.Switches {
		if s.Toggle(i) {
			m.cursor = i
		}
	}
	if m.frame.Has(core.ActionConfirm) {
		switch s.Phase() {
		case puzzle.PhaseWon:
			m.advanceLevel()
		case puzzle.PhaseLost:
			s.Reset()
		}
	}
}

// advanceLevel moves to the next level of the pack, or to the placeholder
// after the last campaign level.
func (m *PlayModel) advanceLevel() {
	if m.index+1 < len(m.entries) {
		if err := m.start(m.index + 1); err != nil {
			m.status.notice = err.Error()
		}
		return
	}
	if m.pack.Name() == levels.CampaignPack {
		m.closeSession()
		m.comingSoon = m.entries[m.index].ID + 1
		return
	}
	m.status.notice = "Last level of " + m.pack.Title()
}

// saveScreenshot writes the current board as plain text.
func (m *PlayModel) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".logic-arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%d_%s.txt", m.pack.Name(), m.entries[m.index].ID, time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, play continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

func (m PlayModel) draw() {
	if m.comingSoon != 0 {
		DrawComingSoon(m.screen, m.comingSoon)
		return
	}
	DrawBoard(m.screen, m.boardView())
}

func (m PlayModel) boardView() BoardView {
	return BoardView{
		PackTitle: m.pack.Title(),
		Entry:     m.entries[m.index],
		Limits:    m.session.Level().Limits,
		Snap:      m.session.Snapshot(),
		Cursor:    m.cursor,
		ShowHint:  m.showHint,
		Starred:   m.status.starred,
		Notice:    m.status.notice,
	}
}

// View renders the board and the help bar.
func (m PlayModel) View() string {
	if m.quitting || m.back {
		return ""
	}
	m.draw()
	if m.comingSoon != 0 {
		return RenderScreen(m.screen)
	}
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keymap)
}

// Session returns the running session, nil on the placeholder screen.
func (m PlayModel) Session() *puzzle.Session {
	return m.session
}

// LevelID returns the level being played or the placeholder id.
func (m PlayModel) LevelID() int {
	if m.comingSoon != 0 {
		return m.comingSoon
	}
	return m.entries[m.index].ID
}

// IsQuitting returns true if the user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested the level list.
func (m PlayModel) BackToMenu() bool {
	return m.back
}

// Run plays level id of pack until the user quits or goes back.
func Run(pack registry.Pack, id int, svc arcade.Services, cfg core.RuntimeConfig) error {
	model, err := NewPlayModel(pack, id, svc, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		exitOnBack{model},
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

// exitOnBack ends a standalone play program when the user leaves the board.
type exitOnBack struct {
	PlayModel
}

func (e exitOnBack) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := e.PlayModel.Update(msg)
	pm, ok := next.(PlayModel)
	if !ok {
		return next, cmd
	}
	if pm.BackToMenu() {
		return exitOnBack{pm}, tea.Quit
	}
	return exitOnBack{pm}, cmd
}
