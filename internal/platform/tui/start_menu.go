package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
)

// StartSelection holds the user's choice from the start menu of a game.
type StartSelection struct {
	Difficulty content.Difficulty
	Level      string // level ID; empty starts at the first level
}

const (
	startPlay = iota
	startDifficulty
	startLevel
	startOptions
)

// StartModel lets users choose the difficulty and first level of a game.
type StartModel struct {
	gameID        string
	title         string
	levels        []content.Level
	loadErr       error
	cursor        int
	levelCursor   int
	diffIndex     int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	selection     StartSelection
	choosing      bool
	quitting      bool
	back          bool
}

// NewStartModel creates a start menu for a game. Levels are listed from
// the given loader.
func NewStartModel(gameID, title string, loader *content.Loader, initial content.Difficulty, width, height int) StartModel {
	m := StartModel{
		gameID:    gameID,
		title:     title,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, d := range content.Difficulties {
		if d == initial {
			m.diffIndex = i
		}
	}
	if loader != nil {
		doc, _, err := loader.Load(context.Background(), gameID)
		if err != nil {
			m.loadErr = err
		} else {
			m.levels = doc.WithKind("").Scenarios
		}
	}
	return m
}

// Init initializes the model.
func (m StartModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleOptionKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m StartModel) difficulty() content.Difficulty {
	return content.Difficulties[m.diffIndex]
}

func (m StartModel) visibleLevels() []content.Level {
	return content.Filter(m.levels, m.difficulty())
}

func (m StartModel) handleOptionKey(action MenuAction) (tea.Model, tea.Cmd) {
	n := len(content.Difficulties)
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < startOptions-1 {
			m.cursor++
		}
	case MenuActionLeft:
		if m.cursor == startDifficulty {
			m.diffIndex = (m.diffIndex + n - 1) % n
		}
	case MenuActionRight:
		if m.cursor == startDifficulty {
			m.diffIndex = (m.diffIndex + 1) % n
		}
	case MenuActionSelect:
		switch m.cursor {
		case startPlay:
			m.choosing = false
			m.selection = StartSelection{Difficulty: m.difficulty()}
			return m, tea.Quit
		case startDifficulty:
			m.diffIndex = (m.diffIndex + 1) % n
		case startLevel:
			if len(m.visibleLevels()) > 0 {
				m.inLevelSelect = true
				m.levelCursor = 0
			}
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m StartModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	levels := m.visibleLevels()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		if len(levels) == 0 {
			return m, nil
		}
		m.choosing = false
		m.selection = StartSelection{
			Difficulty: m.difficulty(),
			Level:      levels[m.levelCursor].ID,
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the option or level list.
func (m StartModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewOptions()
}

func (m StartModel) viewOptions() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")

	options := []string{
		"Play",
		fmt.Sprintf("Difficulty: < %s >", m.difficulty()),
		fmt.Sprintf("Choose level... (%d)", len(m.visibleLevels())),
	}
	for i, opt := range options {
		line := "  " + opt
		if i == m.cursor {
			line = menuCurStyle.Render("> " + opt)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(centerText(m.loadErr.Error(), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Select  |  Left/Right: Difficulty  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m StartModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, l := range m.visibleLevels() {
		text := fmt.Sprintf("%2d. %-24s %s", i+1, l.DisplayName(), l.Difficulty)
		line := "  " + text
		if i == m.levelCursor {
			line = menuCurStyle.Render("> " + text)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuHelpStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m StartModel) Selected() *StartSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user wants to quit.
func (m StartModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m StartModel) WantsBack() bool {
	return m.back
}

// RunStartMenu runs the start menu of a game and returns the selection, nil
// when the user went back or quit.
func RunStartMenu(gameID, title string, loader *content.Loader, initial content.Difficulty, cfg core.RuntimeConfig) (*StartSelection, error) {
	p := tea.NewProgram(
		NewStartModel(gameID, title, loader, initial, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(StartModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return nil, nil
	}
	return m.Selected(), nil
}
