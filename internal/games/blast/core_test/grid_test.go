package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

func TestGridSetKeepsPositionInSync(t *testing.T) {
	g := core.NewGrid(3, 3)
	b := core.NewCube(1, core.ColorRed)

	g.Set(core.C(0, 0), b)
	if b.Pos != core.C(0, 0) {
		t.Fatalf("expected pos (0,0), got %v", b.Pos)
	}

	g.Set(core.C(2, 1), b)
	if b.Pos != core.C(2, 1) {
		t.Errorf("expected pos (2,1), got %v", b.Pos)
	}
	if !g.IsEmpty(core.C(0, 0)) {
		t.Error("previous cell should be cleared")
	}
	if g.Count() != 1 {
		t.Errorf("expected 1 block, got %d", g.Count())
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := core.NewGrid(2, 2)

	testCases := []core.Coord{
		core.C(-1, 0),
		core.C(0, -1),
		core.C(2, 0),
		core.C(0, 2),
	}

	for _, c := range testCases {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !errors.Is(err, core.ErrOutOfBounds) {
					t.Errorf("Get(%v): expected ErrOutOfBounds panic, got %v", c, r)
				}
			}()
			g.Get(c)
		}()
	}
}

func TestGridDims(t *testing.T) {
	g := core.NewGrid(4, 3)
	rows, cols := g.Dims()
	if rows != 3 || cols != 4 {
		t.Errorf("expected (3,4), got (%d,%d)", rows, cols)
	}
}

func TestGridStringRoundTrip(t *testing.T) {
	rows := []string{
		"RGBY",
		"rgby",
		"TSXV",
		"v...",
	}
	g := buildGrid(t, rows...)

	got := rowsOf(g.String())
	for i := range rows {
		if got[i] != rows[i] {
			t.Errorf("row %d: expected %q, got %q", i, rows[i], got[i])
		}
	}
}

func TestGlyph(t *testing.T) {
	bombTier := func(c core.Color) *core.Block {
		b := core.NewCube(1, c)
		b.Tier = core.TierBomb
		return b
	}
	tests := []struct {
		name  string
		block *core.Block
		want  rune
	}{
		{"empty", nil, '.'},
		{"red cube", core.NewCube(1, core.ColorRed), 'R'},
		{"bomb tier yellow", bombTier(core.ColorYellow), 'y'},
		{"bad color", core.NewCube(1, core.ColorCount), '?'},
		{"bomb tier bad color", bombTier(core.ColorCount + 3), '?'},
	}
	for _, tt := range tests {
		if got := core.Glyph(tt.block); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestGridCloneIsDeep(t *testing.T) {
	g := buildGrid(t, "RG", "BY")
	cp := g.Clone()

	cp.Get(core.C(0, 0)).Color = core.ColorYellow
	cp.Clear(core.C(1, 1))

	if g.Get(core.C(0, 0)).Color != core.ColorRed {
		t.Error("clone shares blocks with original")
	}
	if g.IsEmpty(core.C(1, 1)) {
		t.Error("clone shares cells with original")
	}
}

func TestCellCoordBottomLeftOrder(t *testing.T) {
	// 3 wide, 2 high: index 0 is bottom-left, index 3 is top-left.
	testCases := []struct {
		index int
		coord core.Coord
	}{
		{0, core.C(0, 1)},
		{2, core.C(2, 1)},
		{3, core.C(0, 0)},
		{5, core.C(2, 0)},
	}

	for _, tc := range testCases {
		if got := core.CellCoord(tc.index, 3, 2); got != tc.coord {
			t.Errorf("CellCoord(%d): expected %v, got %v", tc.index, tc.coord, got)
		}
		if got := core.CellIndex(tc.coord, 3, 2); got != tc.index {
			t.Errorf("CellIndex(%v): expected %d, got %d", tc.coord, tc.index, got)
		}
	}
}

func TestCodesEncodesLevelAlphabet(t *testing.T) {
	g := buildGrid(t,
		"TSv",
		"RX.",
	)
	got := core.Codes(g)
	want := []string{"r", "bo", "n", "t", "s", "vd"}

	if len(got) != len(want) {
		t.Fatalf("expected %d codes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("code %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestParseCell(t *testing.T) {
	testCases := []struct {
		code    string
		kind    core.Kind
		empty   bool
		random  bool
		hits    int
		wantErr bool
	}{
		{code: "r", kind: core.KindCube},
		{code: "rand", kind: core.KindCube, random: true},
		{code: "t", kind: core.KindBomb},
		{code: "n", empty: true},
		{code: "s", kind: core.KindObstacle, hits: 1},
		{code: "bo", kind: core.KindObstacle, hits: 1},
		{code: "v", kind: core.KindObstacle, hits: 2},
		{code: "vd", kind: core.KindObstacle, hits: 1},
		{code: "zz", empty: true, wantErr: true},
	}

	for _, tc := range testCases {
		cell, err := core.ParseCell(tc.code)
		if tc.wantErr {
			if !errors.Is(err, core.ErrUnknownCellCode) {
				t.Errorf("%q: expected ErrUnknownCellCode, got %v", tc.code, err)
			}
		} else if err != nil {
			t.Errorf("%q: unexpected error %v", tc.code, err)
		}
		if cell.Empty != tc.empty {
			t.Errorf("%q: expected empty=%v", tc.code, tc.empty)
			continue
		}
		if tc.empty {
			continue
		}
		if cell.Kind != tc.kind || cell.Random != tc.random || cell.Hits != tc.hits {
			t.Errorf("%q: got %+v", tc.code, cell)
		}
	}
}

func TestParseGoalType(t *testing.T) {
	if k, err := core.ParseGoalType("vd"); err != nil || k != core.ObstacleVase {
		t.Errorf("vd: expected vase, got %v, %v", k, err)
	}
	if _, err := core.ParseGoalType("r"); !errors.Is(err, core.ErrUnknownGoalType) {
		t.Errorf("r: expected ErrUnknownGoalType, got %v", err)
	}
}

func TestBlockPool(t *testing.T) {
	p := core.NewBlockPool(2)
	if p.Free(core.KindCube) != 2 {
		t.Fatalf("expected 2 free cubes, got %d", p.Free(core.KindCube))
	}

	a, err := p.Acquire(core.KindCube)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	a.Color = core.ColorBlue
	a.Tier = core.TierBomb
	if _, err := p.Acquire(core.KindCube); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := p.Acquire(core.KindCube); !errors.Is(err, core.ErrPoolExhausted) {
		t.Errorf("expected ErrPoolExhausted, got %v", err)
	}
	if _, err := p.Acquire(core.KindBomb); !errors.Is(err, core.ErrPoolExhausted) {
		t.Errorf("expected ErrPoolExhausted for bombs, got %v", err)
	}

	p.Release(a)
	b, err := p.Acquire(core.KindCube)
	if err != nil {
		t.Fatalf("Acquire after release failed: %v", err)
	}
	if b.Tier != core.TierNormal || b.Color != core.ColorRed {
		t.Errorf("reused block not reset: %+v", b)
	}

	for i := 0; i < 5; i++ {
		p.Release(core.NewCube(core.BlockID(i), core.ColorRed))
	}
	if p.Free(core.KindCube) != 2 {
		t.Errorf("pool grew past capacity: %d", p.Free(core.KindCube))
	}
}
