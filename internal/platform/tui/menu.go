package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/logic-arcade/internal/arcade"
	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/levels"
	"github.com/vovakirdan/logic-arcade/internal/registry"
)

// MenuItem is one row of the level list.
type MenuItem struct {
	Pack        string
	Entry       registry.Entry
	Starred     bool
	Placeholder bool // Slot past the end of the campaign
}

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	packs        []registry.PackInfo
	packIdx      int
	packTitle    string
	items        []MenuItem
	cursor       int
	scrollOffset int
	width        int
	height       int
	svc          arcade.Services
	config       core.RuntimeConfig
	keyMapper    *KeyMapper
	theme        Theme
	quitting     bool
	selected     *MenuItem // Set when user selects a level
	openStars    bool      // True if user asked for the stars board
}

// NewMenuModel creates a level picker opened on pack.
func NewMenuModel(pack string, svc arcade.Services, cfg core.RuntimeConfig) MenuModel {
	m := MenuModel{
		packs:     registry.List(),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		svc:       svc,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		theme:     CurrentTheme(),
	}
	for i, p := range m.packs {
		if p.Name == pack {
			m.packIdx = i
		}
	}
	m.loadPack()
	return m
}

// loadPack fills the list from the current pack and places the cursor on the
// first level without a star.
func (m *MenuModel) loadPack() {
	m.items = nil
	m.cursor = 0
	m.scrollOffset = 0
	if len(m.packs) == 0 {
		return
	}

	info := m.packs[m.packIdx]
	pack, err := registry.Get(info.Name)
	if err != nil {
		return
	}
	m.packTitle = pack.Title()

	for _, e := range pack.Entries() {
		m.items = append(m.items, MenuItem{
			Pack:    info.Name,
			Entry:   e,
			Starred: m.svc.HasStar(info.Name, e.ID),
		})
	}
	if info.Name == levels.CampaignPack {
		m.items = append(m.items, MenuItem{
			Pack:        info.Name,
			Entry:       registry.Entry{ID: levels.CampaignSize + 1, Name: "Coming soon"},
			Placeholder: true,
		})
	}

	for i, it := range m.items {
		if !it.Starred && !it.Placeholder {
			m.cursor = i
			break
		}
	}
	m.updateScroll()
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionNextPack:
		if len(m.packs) > 1 {
			m.packIdx = (m.packIdx + 1) % len(m.packs)
			m.loadPack()
		}

	case MenuActionStars:
		m.openStars = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) visibleItems() int {
	return max(m.height-10, 3)
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("L O G I C   A R C A D E"), m.width))
	b.WriteString("\n\n")

	stars := 0
	for _, it := range m.items {
		if it.Starred {
			stars++
		}
	}
	subtitle := fmt.Sprintf("%s  ★ %d/%d", m.packTitle, stars, m.levelCount())
	b.WriteString(centerText(m.theme.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(m.theme.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Tab: Pack  |  T: Stars  |  Q: Quit"
	b.WriteString(centerText(m.theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	it := m.items[i]
	cursor := "  "
	style := m.theme.MenuItemNormal
	if it.Placeholder {
		style = m.theme.MenuItemMuted
	}
	if i == m.cursor {
		cursor = "> "
		style = m.theme.MenuItemActive
	}

	star := "  "
	if it.Starred {
		star = m.theme.Star.Render("★") + " "
	}

	line := fmt.Sprintf("%2d. %-22s %s", it.Entry.ID, it.Entry.Name, limitsLabel(it.Entry))
	return cursor + star + style.Render(strings.TrimRight(line, " "))
}

// limitsLabel summarises a level's budgets, e.g. "[4 moves · 15s]".
func limitsLabel(e registry.Entry) string {
	var parts []string
	if e.Limits.HasStepBudget() {
		parts = append(parts, fmt.Sprintf("%d moves", e.Limits.MaxToggles))
	}
	if e.Limits.HasTimeBudget() {
		parts = append(parts, fmt.Sprintf("%gs", e.Limits.TimeLimit.Seconds()))
	}
	if len(parts) == 0 {
		return ""
	}
	return "[" + strings.Join(parts, " · ") + "]"
}

func (m MenuModel) levelCount() int {
	n := 0
	for _, it := range m.items {
		if !it.Placeholder {
			n++
		}
	}
	return n
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsStars returns true if user requested the stars board.
func (m MenuModel) WantsStars() bool {
	return m.openStars
}

// Pack returns the pack currently shown.
func (m MenuModel) Pack() string {
	if len(m.packs) == 0 {
		return ""
	}
	return m.packs[m.packIdx].Name
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Pack       string
	LevelID    int
	Config     core.RuntimeConfig
	WantsStars bool
	Quit       bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(pack string, svc arcade.Services, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(pack, svc, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Pack:   m.Pack(),
		Config: m.Config(),
	}

	switch {
	case m.WantsStars():
		result.WantsStars = true
	case m.IsQuitting():
		result.Quit = true
	case m.Selected() != nil:
		result.LevelID = m.Selected().Entry.ID
	default:
		result.Quit = true
	}
	return result, nil
}
