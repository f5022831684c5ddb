package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

// Level browser layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show game list sidebar
	sidebarWidth       = 22 // Width of game list sidebar
)

// LevelColumns are the column titles of the level table.
var LevelColumns = []string{"#", "ID", "Name", "Difficulty", "Points", "Timer"}

// LevelRow formats one level for the level table. i is zero-based.
func LevelRow(i int, l content.Level) []string {
	points := len(l.Waypoints)
	switch {
	case len(l.Strokes) > 0:
		points = len(l.Strokes)
	case len(l.Sequence) > 0:
		points = len(l.Sequence)
	}
	timer := "-"
	if l.TimeLimit > 0 {
		timer = fmt.Sprintf("%ds", l.TimeLimit)
	}
	return []string{
		strconv.Itoa(i + 1),
		l.ID,
		l.DisplayName(),
		string(l.Difficulty),
		strconv.Itoa(points),
		timer,
	}
}

// LevelKeyMap defines the key bindings for the level browser.
type LevelKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Play     key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.Play, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LevelKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Play, k.Back, k.Quit},
	}
}

// DefaultLevelKeyMap returns default key bindings.
func DefaultLevelKeyMap() LevelKeyMap {
	return LevelKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev game"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next game"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev game"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "play level"),
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

// LevelPick is a level chosen in the browser.
type LevelPick struct {
	GameID string
	Level  string
}

// LevelBrowserModel lists the levels of every game.
type LevelBrowserModel struct {
	games       []registry.GameInfo
	gameCursor  int
	loader      *content.Loader
	levels      []content.Level
	source      string
	loadErr     error
	table       table.Model
	help        help.Model
	keys        LevelKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	picked      *LevelPick
	showSidebar bool
}

// NewLevelBrowserModel creates a level browser starting at gameID (or the
// first game when empty).
func NewLevelBrowserModel(loader *content.Loader, gameID string, width, height int) LevelBrowserModel {
	h := help.New()
	h.ShowAll = false

	m := LevelBrowserModel{
		games:       registry.List(),
		loader:      loader,
		keys:        DefaultLevelKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadLevels(m.games[m.gameCursor].ID)
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *LevelBrowserModel) createTable() table.Model {
	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	widths := []int{4, 10, 20, 10, 6, 6}
	if extra := tableWidth - 62; extra > 0 {
		widths[2] += min(extra, 16)
	}

	columns := make([]table.Column, len(LevelColumns))
	for i, title := range LevelColumns {
		columns[i] = table.Column{Title: title, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
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

// loadLevels loads the document of the given game.
func (m *LevelBrowserModel) loadLevels(gameID string) {
	m.levels, m.source, m.loadErr = nil, "", nil
	if m.loader != nil {
		doc, from, err := m.loader.Load(context.Background(), gameID)
		if err != nil {
			m.loadErr = err
		} else {
			m.levels = doc.WithKind("").Scenarios
			m.source = from
		}
	}
	m.updateTableRows()
}

func (m *LevelBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		rows[i] = LevelRow(i, l)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *LevelBrowserModel) moveGame(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (m.gameCursor + delta + len(m.games)) % len(m.games)
	m.loadLevels(m.games[m.gameCursor].ID)
}

// Init initializes the model.
func (m LevelBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m LevelBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.Play):
			if len(m.levels) == 0 {
				return m, nil
			}
			m.picked = &LevelPick{
				GameID: m.games[m.gameCursor].ID,
				Level:  m.levels[m.table.Cursor()].ID,
			}
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.moveGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.moveGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m LevelBrowserModel) View() string {
	if m.quitting || m.goingBack || m.picked != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "LEVELS"
	if len(m.games) > 0 {
		title = fmt.Sprintf("LEVELS - %s", m.games[m.gameCursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	if m.source != "" {
		b.WriteString(menuHelpStyle.Render(centerText("from "+m.source, m.width)))
	}
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m LevelBrowserModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Games\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := g.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

func (m LevelBrowserModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title), m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

func (m LevelBrowserModel) renderTableContent() string {
	if len(m.levels) == 0 {
		text := "No levels found."
		if m.loadErr != nil {
			text = m.loadErr.Error()
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(text)
	}
	return m.table.View()
}

// Picked returns the chosen level, or nil.
func (m LevelBrowserModel) Picked() *LevelPick {
	return m.picked
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LevelBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LevelBrowserModel) IsQuitting() bool {
	return m.quitting
}

// LevelBrowserResult is the outcome of RunLevelBrowser.
type LevelBrowserResult struct {
	Pick *LevelPick
	Back bool
}

// RunLevelBrowser runs the level browser screen.
func RunLevelBrowser(loader *content.Loader, gameID string, width, height int) (LevelBrowserResult, error) {
	p := tea.NewProgram(
		NewLevelBrowserModel(loader, gameID, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return LevelBrowserResult{}, err
	}

	m, ok := finalModel.(LevelBrowserModel)
	if !ok {
		return LevelBrowserResult{}, nil
	}
	return LevelBrowserResult{Pick: m.Picked(), Back: m.IsGoingBack()}, nil
}
