package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

func TestEmbeddedPackLoads(t *testing.T) {
	levels, err := Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != 10 {
		t.Fatalf("expected 10 levels, got %d", len(levels))
	}

	for i, lvl := range levels {
		if lvl.Number() != i+1 {
			t.Errorf("level %d: expected number %d", lvl.Number(), i+1)
		}
		if len(lvl.Goals()) == 0 {
			t.Errorf("level %d has no goals", lvl.Number())
		}
		c, err := lvl.NewController(core.Options{Seed: 1, Policy: core.DefaultPolicy()})
		if err != nil {
			t.Errorf("level %d: NewController failed: %v", lvl.Number(), err)
			continue
		}
		if c.Grid().W != lvl.Layout.Width || c.Grid().H != lvl.Layout.Height {
			t.Errorf("level %d: grid size mismatch", lvl.Number())
		}
	}
}

func TestLoadByNumber(t *testing.T) {
	lvl, err := Embedded().LoadByNumber(3)
	if err != nil {
		t.Fatalf("LoadByNumber failed: %v", err)
	}
	if lvl.Number() != 3 || lvl.Name != "Level 3" {
		t.Errorf("unexpected level %d %q", lvl.Number(), lvl.Name)
	}

	if _, err := Embedded().LoadByNumber(99); err == nil {
		t.Error("expected error for missing level")
	}
}

func TestLoadAllSkipsInvalidFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.json": {Data: []byte(`{"level_number":2,"grid_width":2,"grid_height":1,"move_count":5,"grid":["r","s"]}`)},
		"levels/a.yaml": {Data: []byte("level_number: 1\nname: Stones\nmove_count: 4\nrows:\n  - \"r g\"\n  - \"s bo\"\n")},
		"levels/bad.json": {Data: []byte(`{"level_number":3,"grid_width":2,"grid_height":2,"move_count":5,"grid":["r"]}`)},
		"levels/notes.txt": {Data: []byte("ignored")},
	}

	levels, err := NewLoader(fsys, "levels").LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(levels))
	}
	if levels[0].Number() != 1 || levels[0].Name != "Stones" {
		t.Errorf("unexpected first level %+v", levels[0])
	}

	// Rows are top first; the flat grid starts at the bottom-left.
	want := []string{"s", "bo", "r", "g"}
	got := levels[0].Layout.Grid
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if levels[0].Layout.Width != 2 || levels[0].Layout.Height != 2 {
		t.Errorf("size not inferred from rows: %dx%d", levels[0].Layout.Width, levels[0].Layout.Height)
	}
}

func TestLoadFileShapeError(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml": {Data: []byte("level_number: 1\nmove_count: 4\nrows:\n  - \"r g\"\n  - \"s\"\n")},
	}

	_, err := NewLoader(fsys, ".").LoadFile("bad.yaml")
	if !errors.Is(err, core.ErrLevelShape) {
		t.Errorf("expected ErrLevelShape, got %v", err)
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`{"level_number":7,"grid_width":1,"grid_height":2,"move_count":3,"grid":["v","r"],"goals":[{"type":"s","count":1}]}`)
	if err := os.WriteFile(filepath.Join(dir, "custom.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	nums, err := Dir(dir).Numbers()
	if err != nil {
		t.Fatalf("Numbers failed: %v", err)
	}
	if len(nums) != 1 || nums[0] != 7 {
		t.Fatalf("expected [7], got %v", nums)
	}

	lvl, err := Dir(dir).LoadByNumber(7)
	if err != nil {
		t.Fatal(err)
	}
	goals := lvl.Goals()
	if len(goals) != 2 || goals[0] != "s" || goals[1] != "v" {
		t.Errorf("expected listed goal first then derived, got %v", goals)
	}
}

func TestWithMoves(t *testing.T) {
	lvl, err := Embedded().LoadByNumber(1)
	if err != nil {
		t.Fatal(err)
	}
	easier := lvl.WithMoves(lvl.Layout.Moves + 5)
	if easier.Layout.Moves != lvl.Layout.Moves+5 {
		t.Errorf("WithMoves did not apply")
	}
	if lvl.Layout.Moves != 20 {
		t.Errorf("WithMoves modified the original: %d", lvl.Layout.Moves)
	}
}
