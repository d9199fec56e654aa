package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// LevelSelection holds the user's selection from the level menu.
type LevelSelection struct {
	Level  int  // level number
	Resume bool // continue the saved game
}

// levelItem is one row of the level menu.
type levelItem struct {
	number int
	name   string
	locked bool
	saved  bool
	best   int
	wins   int
}

// MenuModel is the level picker.
type MenuModel struct {
	items          []levelItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	preset         string
	keyMapper      *KeyMapper
	selection      LevelSelection
	choosing       bool
	quitting       bool
	openScoreboard bool
	scrollOffset   int
	message        string
}

// savedLister is implemented by savers that can list their save slots in
// one query.
type savedLister interface {
	SavedLevels() ([]int, error)
}

// savedLevels returns the set of levels with a saved game. Savers without
// a listing are asked level by level through LoadGame.
func savedLevels(progress blast.Saver, lvls []levels.Level) map[int]bool {
	out := make(map[int]bool)
	if progress == nil {
		return out
	}
	if l, ok := progress.(savedLister); ok {
		nums, err := l.SavedLevels()
		if err == nil {
			for _, n := range nums {
				out[n] = true
			}
		}
		return out
	}
	for _, lvl := range lvls {
		if _, ok, err := progress.LoadGame(lvl.Number()); err == nil && ok {
			out[lvl.Number()] = true
		}
	}
	return out
}

// NewMenuModel creates a new level menu. progress may be nil, which
// unlocks every level. store may be nil.
func NewMenuModel(app App, progress blast.Saver, cfg core.RuntimeConfig) MenuModel {
	unlocked := 0
	if progress != nil {
		if n, err := progress.UnlockedLevel(); err == nil {
			unlocked = n
		}
	}

	saved := savedLevels(progress, app.Levels)

	var stats map[int]storage.LevelStats
	if app.Store != nil {
		if s, err := app.Store.AllLevelStats(); err == nil {
			stats = s
		}
	}

	items := make([]levelItem, 0, len(app.Levels))
	cursor := 0
	for i, lvl := range app.Levels {
		n := lvl.Number()
		item := levelItem{
			number: n,
			name:   lvl.Name,
			locked: unlocked > 0 && i > 0 && n > unlocked,
			best:   stats[n].BestScore,
			wins:   stats[n].Wins,
			saved:  saved[n],
		}
		if !item.locked {
			cursor = i
		}
		items = append(items, item)
	}

	m := MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		preset:    string(app.Config.Difficulty.Preset),
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
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

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)
	m.message = ""

	switch action {
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
	case MenuActionSelect, MenuActionNew:
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.cursor]
		if item.locked {
			m.message = fmt.Sprintf("Level %d is locked", item.number)
			return m, nil
		}
		m.choosing = false
		m.selection = LevelSelection{
			Level:  item.number,
			Resume: item.saved && action == MenuActionSelect,
		}
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

func (m MenuModel) visibleItems() int {
	return max(m.height-12, 3) // header and footer
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

// View renders the level selection.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	t := GetTheme()

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("B  L  A  S  T"), m.width))
	b.WriteString("\n\n")

	subtitle := fmt.Sprintf("Select a level  (difficulty: %s)", m.preset)
	b.WriteString(centerText(t.MenuDescription.Render(subtitle), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(t.MenuItemLocked.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	start := m.scrollOffset
	end := min(start+m.visibleItems(), len(m.items))

	if start > 0 {
		b.WriteString(centerText(t.MenuDescription.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := start; i < end; i++ {
		b.WriteString(centerText(m.renderItem(t, i), m.width))
		b.WriteString("\n")
	}

	if end < len(m.items) {
		b.WriteString(centerText(t.MenuDescription.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(t.MenuBadge.Render(m.message), m.width))
		b.WriteString("\n")
	}
	controls := "Up/Down: Navigate  |  Enter: Play  |  N: New game  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(t.HelpText.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(t Theme, i int) string {
	item := m.items[i]

	cursor := "  "
	style := t.MenuItemNormal
	if item.locked {
		style = t.MenuItemLocked
	}
	if i == m.cursor {
		cursor = "> "
		style = t.MenuItemActive
	}

	line := fmt.Sprintf("%s%2d. %-20s", cursor, item.number, item.name)
	switch {
	case item.locked:
		line += "  locked"
	case item.best > 0:
		line += fmt.Sprintf("  best %d", item.best)
	}
	if item.wins > 0 {
		line += " *"
	}

	out := style.Render(line)
	if item.saved {
		out += " " + t.MenuBadge.Render("[saved]")
	}
	return out
}

// Selected returns the selection, or nil if still choosing.
func (m MenuModel) Selected() *LevelSelection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *LevelSelection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the level menu and returns the selection result.
func RunMenu(app App, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(app, app.Saver(), cfg)

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

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
