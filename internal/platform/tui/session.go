package tui

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// sessionSaver keeps saves and unlock progress of one SSH session in
// memory. Results go to the shared database so the scoreboard covers
// every player.
type sessionSaver struct {
	store    *storage.Store
	saves    map[int]string
	unlocked int
}

var _ blast.Saver = (*sessionSaver)(nil)

func newSessionSaver(store *storage.Store) *sessionSaver {
	return &sessionSaver{store: store, saves: make(map[int]string), unlocked: 1}
}

func (s *sessionSaver) SaveGame(level int, payload string) error {
	s.saves[level] = payload
	return nil
}

func (s *sessionSaver) LoadGame(level int) (string, bool, error) {
	p, ok := s.saves[level]
	return p, ok, nil
}

func (s *sessionSaver) DeleteSave(level int) error {
	delete(s.saves, level)
	return nil
}

// SavedLevels returns the levels with a save in this session, ascending.
func (s *sessionSaver) SavedLevels() ([]int, error) {
	out := make([]int, 0, len(s.saves))
	for n := range s.saves {
		out = append(out, n)
	}
	slices.Sort(out)
	return out, nil
}

func (s *sessionSaver) SaveResult(r blast.Result) error {
	if s.store == nil {
		return nil
	}
	return s.store.SaveResult(r)
}

func (s *sessionSaver) UnlockedLevel() (int, error) {
	return s.unlocked, nil
}

func (s *sessionSaver) SetUnlockedLevel(n int) error {
	s.unlocked = max(s.unlocked, n)
	return nil
}

// sessionView is the part of a session currently shown.
type sessionView uint8

const (
	screenMenu sessionView = iota
	screenScores
	screenGame
)

// SessionModel is the top-level model of an SSH session. It moves between
// the level menu, the scoreboard and a game; leaving a game or the
// scoreboard returns to a freshly built menu.
type SessionModel struct {
	app        App
	saver      *sessionSaver
	config     core.RuntimeConfig
	username   string
	current    sessionView
	menu       MenuModel
	scoreboard ScoreboardModel
	game       GameModel
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(app App, cfg core.RuntimeConfig, username string) SessionModel {
	saver := newSessionSaver(app.Store)
	return SessionModel{
		app:      app,
		saver:    saver,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(app, saver, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes the message to the current screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// showMenu rebuilds the menu so it reflects new saves and scores.
func (m SessionModel) showMenu() (tea.Model, tea.Cmd) {
	m.current = screenMenu
	m.menu = NewMenuModel(m.app, m.saver, m.config)
	return m, m.menu.Init()
}

func (m SessionModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// updateMenu drops the menu's own quit command on a selection: the
// session keeps running with the next screen.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		return m.quit()

	case m.menu.WantsScoreboard():
		m.current = screenScores
		m.scoreboard = NewScoreboardModel(m.app, m.config.ScreenW, m.config.ScreenH)
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		sel := m.menu.Selected()
		m.config = m.menu.Config()
		m.config.Seed = time.Now().UnixNano()
		m.app.logger().Info("level selected", "level", sel.Level, "resume", sel.Resume)

		m.current = screenGame
		m.game = NewGameModel(m.app.NewGame(m.saver, sel.Level, sel.Resume), m.config)
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		return m.quit()
	case m.scoreboard.IsGoingBack():
		return m.showMenu()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		return m.showMenu()
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.current {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
