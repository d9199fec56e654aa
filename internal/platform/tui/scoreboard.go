package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

const (
	maxScores     = 100
	scoreChrome   = 11 // title, tab strip, stats, panel border and help
	minTableRows  = 3
	dateLayout    = "Jan 02 15:04"
	tabSeparator  = "  "
	tabEllipsis   = "…"
	tabTitleLimit = 18
)

// ScoreboardKeyMap defines the scoreboard bindings. Scrolling is handled
// by the table's own key map; Scroll only documents it in the help bar.
type ScoreboardKeyMap struct {
	Scroll    key.Binding
	NextLevel key.Binding
	PrevLevel key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.PrevLevel, k.NextLevel, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Scroll}, {k.PrevLevel, k.NextLevel}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "scroll"),
		),
		NextLevel: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next level"),
		),
		PrevLevel: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev level"),
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

// scoreTab is one entry of the level strip. Level 0 shows all levels.
type scoreTab struct {
	Level int
	Title string
}

// ScoreboardModel lists the best scores, either over the whole campaign
// or for one level together with that level's play statistics.
type ScoreboardModel struct {
	tabs      []scoreTab
	tabCursor int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     storage.LevelStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a new scoreboard model. A nil app.Store
// shows an empty board.
func NewScoreboardModel(app App, width, height int) ScoreboardModel {
	tabs := make([]scoreTab, 0, len(app.Levels)+1)
	tabs = append(tabs, scoreTab{Level: 0, Title: "All levels"})
	for _, lvl := range app.Levels {
		title := fmt.Sprintf("%d %s", lvl.Number(), lvl.Name)
		tabs = append(tabs, scoreTab{Level: lvl.Number(), Title: title})
	}

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		tabs:   tabs,
		store:  app.Store,
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.load()
	return m
}

func (m ScoreboardModel) level() int {
	return m.tabs[m.tabCursor].Level
}

// columns returns the table columns for the selected tab. The level
// column only appears on the campaign-wide tab.
func (m ScoreboardModel) columns() []table.Column {
	dateW := 14
	if m.width >= 70 {
		dateW = 20
	}
	cols := []table.Column{{Title: "#", Width: 4}}
	if m.level() == 0 {
		cols = append(cols, table.Column{Title: "Level", Width: 6})
	}
	return append(cols,
		table.Column{Title: "Score", Width: 10},
		table.Column{Title: "Date", Width: dateW},
	)
}

func (m ScoreboardModel) rows() []table.Row {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		row := table.Row{strconv.Itoa(i + 1)}
		if m.level() == 0 {
			row = append(row, strconv.Itoa(s.Level))
		}
		rows[i] = append(row, strconv.Itoa(s.Score), s.CreatedAt.Format(dateLayout))
	}
	return rows
}

// load queries the store for the selected tab and rebuilds the table.
func (m *ScoreboardModel) load() {
	level := m.level()
	m.scores = nil
	m.stats = storage.LevelStats{Level: level}
	if m.store != nil {
		if scores, err := m.store.TopScores(blast.ID, level, maxScores); err == nil {
			m.scores = scores
		}
		if level > 0 {
			if stats, err := m.store.LevelStats(level); err == nil {
				m.stats = stats
			}
		}
	}
	m.rebuildTable()
}

// rebuildTable recreates the table. Columns change with the tab, and the
// table must never hold rows wider than its columns.
func (m *ScoreboardModel) rebuildTable() {
	t := GetTheme()
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Panel.GetBorderTopForeground()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = t.MenuItemActive

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithRows(m.rows()),
		table.WithHeight(max(m.height-scoreChrome, minTableRows)),
		table.WithFocused(true),
		table.WithStyles(styles),
	)
}

// selectTab moves the tab cursor by delta, wrapping around.
func (m *ScoreboardModel) selectTab(delta int) {
	n := len(m.tabs)
	m.tabCursor = ((m.tabCursor+delta)%n + n) % n
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextLevel):
			m.selectTab(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevLevel):
			m.selectTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	t := GetTheme()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(t.MenuTitle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabStrip(t), m.width))
	b.WriteString("\n\n")

	if line := m.statsLine(); line != "" {
		b.WriteString(centerText(t.MenuDescription.Render(line), m.width))
		b.WriteString("\n")
	}

	body := m.table.View()
	if len(m.scores) == 0 {
		body = t.MenuDescription.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nFinish a level to set a high score!")
	}
	b.WriteString(centerText(t.Panel.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(t.HelpText.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

// tabStrip renders as many tabs around the selected one as fit the width.
func (m ScoreboardModel) tabStrip(t Theme) string {
	labels := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		title := tab.Title
		if len([]rune(title)) > tabTitleLimit {
			title = string([]rune(title)[:tabTitleLimit-1]) + tabEllipsis
		}
		if i == m.tabCursor {
			labels[i] = t.MenuItemActive.Render("[" + title + "]")
		} else {
			labels[i] = t.MenuItemNormal.Render(" " + title + " ")
		}
	}

	lo, hi := m.tabCursor, m.tabCursor+1
	width := lipgloss.Width(labels[m.tabCursor])
	limit := max(m.width-8, 0)
	for grew := true; grew; {
		grew = false
		if hi < len(labels) {
			if w := width + len(tabSeparator) + lipgloss.Width(labels[hi]); w <= limit {
				width, hi, grew = w, hi+1, true
			}
		}
		if lo > 0 {
			if w := width + len(tabSeparator) + lipgloss.Width(labels[lo-1]); w <= limit {
				width, lo, grew = w, lo-1, true
			}
		}
	}

	strip := strings.Join(labels[lo:hi], tabSeparator)
	if lo > 0 {
		strip = t.HelpText.Render("‹ ") + strip
	}
	if hi < len(labels) {
		strip += t.HelpText.Render(" ›")
	}
	return strip
}

func (m ScoreboardModel) statsLine() string {
	if m.stats.Level == 0 || m.stats.Plays == 0 {
		return ""
	}
	return fmt.Sprintf("Played %d · Won %d · Most moves left %d · Last played %s",
		m.stats.Plays, m.stats.Wins, m.stats.BestMoves, m.stats.LastPlayed.Format(dateLayout))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(app App, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(app, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
