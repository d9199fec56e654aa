package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	blastcore "github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"up", core.ActionUp, false},
		{"k", core.ActionUp, false},
		{"h", core.ActionLeft, false},
		{" ", core.ActionTap, false},
		{"enter", core.ActionConfirm, false},
		{"?", core.ActionHint, false},
		{"r", core.ActionRestart, false},
		{"p", core.ActionPause, false},
		{"esc", core.ActionBack, false},
		{"q", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}

	for _, tt := range tests {
		action, quit := km.MapKey(keyMsg(tt.key))
		if action != tt.action || quit != tt.quit {
			t.Errorf("key %q: expected %v/%v, got %v/%v", tt.key, tt.action, tt.quit, action, quit)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	move := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionMotion}
	if km.MapMouseToFrame(move, &frame) || frame.Click != nil {
		t.Error("motion should not register a click")
	}

	press := tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Fatal("left press should register a click")
	}
	if frame.Click == nil || frame.Click.X != 3 || frame.Click.Y != 4 {
		t.Errorf("expected click at (3,4), got %v", frame.Click)
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := map[string]MenuAction{
		"j":     MenuActionDown,
		"up":    MenuActionUp,
		"enter": MenuActionSelect,
		"n":     MenuActionNew,
		"tab":   MenuActionScoreboard,
		"esc":   MenuActionBack,
		"q":     MenuActionQuit,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("key %q: expected %v, got %v", k, want, got)
		}
	}
}

func testApp(n int) App {
	lvls := make([]levels.Level, n)
	for i := range lvls {
		lvls[i] = levels.Level{
			Name: "Level",
			Layout: blastcore.Snapshot{
				Level: i + 1, Width: 2, Height: 1, Moves: 3,
				Grid: []string{"r", "g"},
			},
		}
	}
	return App{Config: config.DefaultBlastConfig(), Levels: lvls}
}

func TestMenuLocksLevels(t *testing.T) {
	app := testApp(3)
	saver := newSessionSaver(nil)
	saver.SetUnlockedLevel(2)
	payload, err := blast.EncodeSave(0, app.Levels[1].Layout)
	if err != nil {
		t.Fatal(err)
	}
	saver.SaveGame(2, payload)

	m := NewMenuModel(app, saver, core.DefaultConfig())

	if m.items[0].locked || m.items[1].locked || !m.items[2].locked {
		t.Errorf("unexpected lock state %+v", m.items)
	}
	if !m.items[1].saved {
		t.Error("level 2 should show its save")
	}
	if m.cursor != 1 {
		t.Errorf("cursor should start on the last unlocked level, got %d", m.cursor)
	}

	next, _ := m.Update(keyMsg("enter"))
	sel := next.(MenuModel).Selected()
	if sel == nil || sel.Level != 2 || !sel.Resume {
		t.Errorf("expected resume of level 2, got %+v", sel)
	}

	next, _ = m.Update(keyMsg("n"))
	sel = next.(MenuModel).Selected()
	if sel == nil || sel.Resume {
		t.Errorf("new game should not resume, got %+v", sel)
	}
}

func TestMenuRejectsLockedLevel(t *testing.T) {
	m := NewMenuModel(testApp(3), newSessionSaver(nil), core.DefaultConfig())

	for i := 0; i < 3; i++ {
		next, _ := m.Update(keyMsg("j"))
		m = next.(MenuModel)
	}
	next, _ := m.Update(keyMsg("enter"))
	m = next.(MenuModel)

	if m.Selected() != nil {
		t.Error("locked level should not be selectable")
	}
	if m.message == "" {
		t.Error("expected a locked message")
	}
}

func TestSessionSaverOnlyRaisesUnlock(t *testing.T) {
	s := newSessionSaver(nil)
	s.SetUnlockedLevel(4)
	s.SetUnlockedLevel(2)

	if n, _ := s.UnlockedLevel(); n != 4 {
		t.Errorf("expected 4, got %d", n)
	}
	if err := s.SaveResult(blast.Result{Level: 1}); err != nil {
		t.Errorf("SaveResult without a store should be a no-op, got %v", err)
	}
}

func TestThemeByName(t *testing.T) {
	for _, name := range ThemeNames() {
		if _, err := ThemeByName(name); err != nil {
			t.Errorf("theme %q: %v", name, err)
		}
	}
	if _, err := ThemeByName("sepia"); err == nil {
		t.Error("expected error for unknown theme")
	}
}

// loadOnlySaver has saves but no SavedLevels listing.
type loadOnlySaver struct {
	*sessionSaver
}

func (s loadOnlySaver) SavedLevels() {}

func TestSavedLevels(t *testing.T) {
	app := testApp(3)
	s := newSessionSaver(nil)
	s.SaveGame(3, "x")
	s.SaveGame(1, "x")

	if got, _ := s.SavedLevels(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("expected [1 3], got %v", got)
	}

	tests := []struct {
		name  string
		saver blast.Saver
	}{
		{"listing", s},
		{"load per level", loadOnlySaver{s}},
	}
	for _, tt := range tests {
		saved := savedLevels(tt.saver, app.Levels)
		if !saved[1] || saved[2] || !saved[3] {
			t.Errorf("%s: unexpected saved set %v", tt.name, saved)
		}
	}

	if len(savedLevels(nil, app.Levels)) != 0 {
		t.Error("nil saver should have no saves")
	}
}
