package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logic-arcade/internal/arcade"
	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenPlay
	screenStars
	screenIntro
)

// AppModel manages the full flow: level select -> play -> level select, with
// the stars board one key away. It is the top-level model for `logic menu`
// and for SSH sessions.
type AppModel struct {
	svc      arcade.Services
	config   core.RuntimeConfig
	pack     string
	screen   appScreen
	menu     MenuModel
	play     PlayModel
	stars    StarsModel
	notice   string
	quitting bool

	introSeen func() error // Persists the intro flag, nil when already seen
}

// NewAppModel creates the session flow opened on pack.
func NewAppModel(pack string, svc arcade.Services, cfg core.RuntimeConfig) AppModel {
	return AppModel{
		svc:    svc,
		config: cfg,
		pack:   pack,
		menu:   NewMenuModel(pack, svc, cfg),
	}
}

// WithIntro opens the flow on the how-to-play screen. onSeen runs once when
// the player leaves it.
func (m AppModel) WithIntro(onSeen func() error) AppModel {
	m.screen = screenIntro
	m.introSeen = onSeen
	return m
}

// Init initializes the session.
func (m AppModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenStars:
		return m.updateStars(msg)
	case screenIntro:
		return m.updateIntro(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if mm, ok := next.(MenuModel); ok {
		m.menu = mm
	}
	m.pack = m.menu.Pack()

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsStars() {
		m.screen = screenStars
		m.stars = NewStarsModel(m.svc.Store, m.pack, m.config)
		return m, m.stars.Init()
	}

	if sel := m.menu.Selected(); sel != nil {
		pack, err := registry.Get(sel.Pack)
		if err != nil {
			return m.backToMenu(err.Error())
		}
		play, err := NewPlayModel(pack, sel.Entry.ID, m.svc, m.config)
		if err != nil {
			return m.backToMenu(err.Error())
		}
		m.play = play
		m.screen = screenPlay
		m.notice = ""
		return m, m.play.Init()
	}

	return m, cmd
}

// updateIntro leaves the intro on any key except quit.
func (m AppModel) updateIntro(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if action, _ := NewKeyMapper().MapKey(km); action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}

	notice := ""
	if m.introSeen != nil {
		if err := m.introSeen(); err != nil {
			notice = "Settings not saved: " + err.Error()
		}
		m.introSeen = nil
	}
	return m.backToMenu(notice)
}

// updatePlay handles updates when in play mode.
func (m AppModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.play = pm
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.play.BackToMenu() {
		return m.backToMenu("")
	}
	return m, cmd
}

// updateStars handles updates when the stars board is open.
func (m AppModel) updateStars(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stars.Update(msg)
	if sm, ok := next.(StarsModel); ok {
		m.stars = sm
	}

	if m.stars.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stars.IsGoingBack() {
		return m.backToMenu("")
	}
	return m, cmd
}

// backToMenu rebuilds the menu so new stars show up.
func (m AppModel) backToMenu(notice string) (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.notice = notice
	m.menu = NewMenuModel(m.pack, m.svc, m.config)
	return m, m.menu.Init()
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		return m.play.View()
	case screenStars:
		return m.stars.View()
	case screenIntro:
		return renderIntro(CurrentTheme(), m.config.ScreenW)
	}

	view := m.menu.View()
	if m.notice != "" {
		view += "\n" + centerText(CurrentTheme().Empty.UnsetPadding().Render(m.notice), m.config.ScreenW)
	}
	return view
}

// RunApp runs the level select, play, and stars screens in one program.
// A non-nil onIntroSeen shows the intro first and is called when it closes.
func RunApp(pack string, svc arcade.Services, cfg core.RuntimeConfig, onIntroSeen func() error) error {
	model := NewAppModel(pack, svc, cfg)
	if onIntroSeen != nil {
		model = model.WithIntro(onIntroSeen)
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
