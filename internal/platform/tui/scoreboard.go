package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/vovakirdan/logic-arcade/internal/core"
	"github.com/vovakirdan/logic-arcade/internal/registry"
	"github.com/vovakirdan/logic-arcade/internal/storage"
)

// StarsKeyMap defines the key bindings for the stars board.
type StarsKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StarsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPack, k.PrevPack, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StarsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPack, k.PrevPack},
		{k.Back, k.Quit},
	}
}

// DefaultStarsKeyMap returns default key bindings.
func DefaultStarsKeyMap() StarsKeyMap {
	return StarsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pack"),
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

// StarRow is one level on the stars board.
type StarRow struct {
	Entry registry.Entry
	Star  *storage.Star
	Stats *storage.LevelStats
}

// LoadStarRows joins the pack's levels with stars and attempt statistics.
func LoadStarRows(store *storage.Store, pack registry.Pack) ([]StarRow, error) {
	entries := pack.Entries()
	rows := make([]StarRow, len(entries))
	for i, e := range entries {
		rows[i].Entry = e
	}
	if store == nil {
		return rows, nil
	}

	stars, err := store.Stars(pack.Name())
	if err != nil {
		return rows, err
	}
	stats, err := store.Stats(pack.Name())
	if err != nil {
		return rows, err
	}

	byID := make(map[int]*storage.Star, len(stars))
	for i := range stars {
		byID[stars[i].LevelID] = &stars[i]
	}
	for i := range rows {
		id := rows[i].Entry.ID
		rows[i].Star = byID[id]
		rows[i].Stats = stats[id]
	}
	return rows, nil
}

// NewPrinter returns a printer that formats numbers for lang. Unknown tags
// format like English.
func NewPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Cells formats the row for the table.
func (r StarRow) Cells(p *message.Printer) table.Row {
	star, when := "", "-"
	if r.Star != nil {
		star = "★"
		when = humanize.Time(r.Star.CompletedAt)
	}

	attempts, best := "-", "-"
	if r.Stats != nil {
		attempts = p.Sprintf("%d (%d won)", r.Stats.Attempts, r.Stats.Wins)
		if r.Stats.Wins > 0 {
			best = p.Sprintf("%d moves, %.1fs", r.Stats.BestToggles, r.Stats.BestTime.Seconds())
		}
	}

	return table.Row{
		fmt.Sprintf("%d", r.Entry.ID),
		r.Entry.Name,
		star,
		when,
		attempts,
		best,
	}
}

// StarsModel is the Bubble Tea model for the stars board.
type StarsModel struct {
	packs     []registry.PackInfo
	packIdx   int
	store     *storage.Store
	rows      []StarRow
	printer   *message.Printer
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StarsKeyMap
	theme     Theme
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStarsModel creates a stars board opened on pack.
func NewStarsModel(store *storage.Store, pack string, cfg core.RuntimeConfig) StarsModel {
	h := help.New()
	h.ShowAll = false

	m := StarsModel{
		packs:   registry.List(),
		store:   store,
		printer: NewPrinter(cfg.Language),
		keys:    DefaultStarsKeyMap(),
		help:    h,
		theme:   CurrentTheme(),
		width:   cfg.ScreenW,
		height:  cfg.ScreenH,
	}
	for i, p := range m.packs {
		if p.Name == pack {
			m.packIdx = i
		}
	}

	m.table = m.createTable()
	m.loadRows()
	return m
}

// createTable creates a new table sized to the window.
func (m *StarsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 18},
		{Title: "★", Width: 2},
		{Title: "Completed", Width: 16},
		{Title: "Attempts", Width: 12},
		{Title: "Best", Width: 16},
	}

	// Give spare width to the level name
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := m.width - 6 - used; extra > 0 {
		columns[1].Width += min(extra, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *StarsModel) loadRows() {
	m.rows, m.loadErr = nil, nil
	if len(m.packs) > 0 {
		pack, err := registry.Get(m.packs[m.packIdx].Name)
		if err == nil {
			m.rows, err = LoadStarRows(m.store, pack)
		}
		m.loadErr = err
	}
	m.updateTableRows()
}

func (m *StarsModel) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = r.Cells(m.printer)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the stars board.
func (m StarsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stars board.
func (m StarsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextPack):
			if len(m.packs) > 0 {
				m.packIdx = (m.packIdx + 1) % len(m.packs)
				m.loadRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			if len(m.packs) > 0 {
				m.packIdx = (m.packIdx + len(m.packs) - 1) % len(m.packs)
				m.loadRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stars board.
func (m StarsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "STARS"
	if len(m.packs) > 0 {
		p := m.packs[m.packIdx]
		title = fmt.Sprintf("STARS - %s  %d/%d", p.Title, m.starCount(), p.Count)
	}
	b.WriteString(centerText(m.theme.MenuTitle.Render(title), m.width))
	b.WriteString("\n\n")

	var content string
	switch {
	case m.loadErr != nil:
		content = m.theme.Empty.Render("Cannot read progress:\n" + m.loadErr.Error())
	case m.store == nil:
		content = m.theme.Empty.Render("Progress is not being saved.\nStart with a database to collect stars.")
	default:
		content = m.table.View()
	}
	b.WriteString(centerText(m.theme.TableBorder.Render(content), m.width))

	b.WriteString("\n")
	b.WriteString(m.theme.Controls.Render(m.help.View(m.keys)))

	return b.String()
}

func (m StarsModel) starCount() int {
	n := 0
	for _, r := range m.rows {
		if r.Star != nil {
			n++
		}
	}
	return n
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StarsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StarsModel) IsQuitting() bool {
	return m.quitting
}

// RunStars runs the stars board.
// Returns true if user wants to go back to menu, false if quitting.
func RunStars(store *storage.Store, pack string, cfg core.RuntimeConfig) (goBack bool, err error) {
	model := NewStarsModel(store, pack, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StarsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
