package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.learnarcade/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate of every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server that serves the learning games.
// Content comes from the loader configured in the board package.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration. A nil
// logger gets a default one.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "learnarcade-ssh",
		})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultSSHServerConfig().TickRate
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".learnarcade", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	model := NewSessionModel(board.Loader(), cfg, sshSession.User())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) Run(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		err := s.server.ListenAndServe()
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown()
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Presetter is implemented by games that accept a difficulty filter and a
// first level before Reset.
type Presetter interface {
	Preset(d content.Difficulty, level string)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenStart
	screenLevels
	screenGame
)

// SessionModel manages the full flow of one terminal session:
// menu -> start options -> game -> menu, with the level browser on Tab.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	loader   *content.Loader
	config   core.RuntimeConfig
	username string
	screen   sessionScreen
	menu     MenuModel
	start    StartModel
	levels   LevelBrowserModel
	game     *GameModel
	gameID   string
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(loader *content.Loader, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		loader:   loader,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenStart:
		return m.updateStart(msg)
	case screenLevels:
		return m.updateLevels(msg)
	case screenGame:
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.game = nil
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.WantsLevels():
		m.screen = screenLevels
		m.levels = NewLevelBrowserModel(m.loader, "", m.config.ScreenW, m.config.ScreenH)
		return m, m.levels.Init()

	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.Selected() != nil:
		sel := m.menu.Selected()
		m.gameID = sel.GameID
		m.screen = screenStart
		m.start = NewStartModel(sel.GameID, sel.Title, m.loader,
			board.Settings().InitialDifficulty(), m.config.ScreenW, m.config.ScreenH)
		return m, m.start.Init()
	}

	return m, cmd
}

func (m SessionModel) updateStart(msg tea.Msg) (tea.Model, tea.Cmd) {
	newStart, cmd := m.start.Update(msg)
	if startModel, ok := newStart.(StartModel); ok {
		m.start = startModel
	}

	switch {
	case m.start.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.start.WantsBack():
		return m.toMenu()
	case m.start.Selected() != nil:
		sel := m.start.Selected()
		return m.startGame(m.gameID, sel.Difficulty, sel.Level)
	}
	return m, cmd
}

func (m SessionModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLevels, cmd := m.levels.Update(msg)
	if levelsModel, ok := newLevels.(LevelBrowserModel); ok {
		m.levels = levelsModel
	}

	switch {
	case m.levels.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.levels.IsGoingBack():
		return m.toMenu()
	case m.levels.Picked() != nil:
		pick := m.levels.Picked()
		return m.startGame(pick.GameID, content.DifficultyAll, pick.Level)
	}
	return m, cmd
}

func (m SessionModel) startGame(gameID string, d content.Difficulty, level string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		return m.toMenu()
	}
	if p, ok := game.(Presetter); ok {
		p.Preset(d, level)
	}

	gm := NewGameModel(game, m.config)
	m.game = &gm
	m.gameID = gameID
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	if m.game.BackToMenu() {
		return m.toMenu()
	}
	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenStart:
		return m.start.View()
	case screenLevels:
		return m.levels.View()
	case screenGame:
		if m.game != nil {
			return m.game.View()
		}
	}
	return m.menu.View()
}

// GameModel wraps a game model with back-to-menu capability.
type GameModel struct {
	Model
	backToMenu bool
}

// NewGameModel creates a game model for use inside a session.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig) GameModel {
	return GameModel{Model: NewModel(game, cfg)}
}

// Update handles messages. B returns to the menu; everything else goes to
// the game.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "b" {
		m.backToMenu = true
		return m, nil
	}

	next, cmd := m.Model.Update(msg)
	if inner, ok := next.(Model); ok {
		m.Model = inner
	}
	return m, cmd
}

// BackToMenu returns true if user wants to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user quit the session.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}
