package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

func checker(w, h int) []string {
	rows := make([]string, h)
	for y := range rows {
		row := make([]byte, w)
		for x := range row {
			if (x+y)%2 == 0 {
				row[x] = 'G'
			} else {
				row[x] = 'B'
			}
		}
		rows[y] = string(row)
	}
	return rows
}

func withGlyph(rows []string, x, y int, r byte) []string {
	row := []byte(rows[y])
	row[x] = r
	rows[y] = string(row)
	return rows
}

func TestDetonateSingleBombRadiusTwo(t *testing.T) {
	rows := withGlyph(checker(7, 7), 3, 3, 'T')
	g := buildGrid(t, rows...)
	x := core.NewExplosionResolver()

	blast := x.Detonate(g, core.C(3, 3), nil)

	if blast.Combo || blast.Radius != 2 || blast.Center != core.C(3, 3) {
		t.Errorf("unexpected blast header %+v", blast)
	}
	if len(blast.Removed) != 25 {
		t.Errorf("expected 25 removed, got %d", len(blast.Removed))
	}
	for y := 0; y < 7; y++ {
		for xx := 0; xx < 7; xx++ {
			inside := xx >= 1 && xx <= 5 && y >= 1 && y <= 5
			if g.IsEmpty(core.C(xx, y)) != inside {
				t.Errorf("cell (%d,%d): expected empty=%v", xx, y, inside)
			}
		}
	}
	if first := blast.Events[0]; first.Kind != core.EventRemove || first.From != core.C(3, 3) {
		t.Errorf("center bomb should be removed first, got %+v", first)
	}
}

func TestDetonateAdjacentBombsMergeWithComboRadius(t *testing.T) {
	rows := checker(7, 7)
	rows = withGlyph(rows, 3, 3, 'T')
	rows = withGlyph(rows, 4, 3, 'T')
	g := buildGrid(t, rows...)
	tapped := g.Get(core.C(3, 3)).ID
	other := g.Get(core.C(4, 3)).ID
	x := core.NewExplosionResolver()

	blast := x.Detonate(g, core.C(3, 3), nil)

	if !blast.Combo || blast.Radius != core.ComboRadius {
		t.Fatalf("expected combo with radius 3, got %+v", blast)
	}
	if blast.Center != core.C(4, 3) {
		t.Errorf("expected center at the other bomb, got %v", blast.Center)
	}
	if len(blast.Chain) != 2 || blast.Chain[0] != other || blast.Chain[1] != tapped {
		t.Errorf("expected chain [%d %d], got %v", other, tapped, blast.Chain)
	}

	// Radius 3 around (4,3) covers columns 1..6 on every row; the tapped
	// bomb's own radius-2 square adds nothing beyond that.
	for y := 0; y < 7; y++ {
		if g.IsEmpty(core.C(0, y)) {
			t.Errorf("column 0 row %d should survive", y)
		}
		for xx := 1; xx < 7; xx++ {
			if !g.IsEmpty(core.C(xx, y)) {
				t.Errorf("cell (%d,%d) should be cleared", xx, y)
			}
		}
	}
	// Two independent radius-2 blasts would have left the corner.
	if !g.IsEmpty(core.C(6, 0)) {
		t.Error("corner (6,0) should be inside the merged blast")
	}
}

func TestDetonateAllBombGridVisitsEachBombOnce(t *testing.T) {
	rows := make([]string, 6)
	for i := range rows {
		rows[i] = "TTTTTT"
	}
	g := buildGrid(t, rows...)
	x := core.NewExplosionResolver()
	visited := make(map[core.BlockID]bool)

	blast := x.Detonate(g, core.C(0, 0), visited)

	if len(blast.Chain) != 36 {
		t.Errorf("expected 36 bombs in chain, got %d", len(blast.Chain))
	}
	seen := make(map[core.BlockID]bool)
	for _, id := range blast.Chain {
		if seen[id] {
			t.Fatalf("bomb %d visited twice", id)
		}
		seen[id] = true
	}
	if len(visited) != 36 {
		t.Errorf("visited set should hold 36 bombs, got %d", len(visited))
	}
	if g.Count() != 0 {
		t.Errorf("expected empty grid, got %d blocks", g.Count())
	}
	if len(blast.Removed) != 36 {
		t.Errorf("expected 36 removed, got %d", len(blast.Removed))
	}
}

func TestDetonateObstacleRules(t *testing.T) {
	g := buildGrid(t,
		"SXV",
		"YTv",
		"...",
	)
	x := core.NewExplosionResolver()

	blast := x.Detonate(g, core.C(1, 1), nil)

	if !g.IsEmpty(core.C(0, 0)) {
		t.Error("stone should be destroyed by a blast")
	}
	if !g.IsEmpty(core.C(1, 0)) {
		t.Error("box should be destroyed by a blast")
	}
	vase := g.Get(core.C(2, 0))
	if vase == nil || vase.Hits != 1 {
		t.Fatalf("fresh vase should take one hit, got %+v", vase)
	}
	if vase.Damaged() {
		t.Error("hit flag should be cleared after the pass")
	}
	if !g.IsEmpty(core.C(2, 1)) {
		t.Error("cracked vase should be destroyed")
	}

	damage := 0
	for _, e := range blast.Events {
		if e.Kind == core.EventDamage {
			damage++
			if e.HitsLeft != 1 {
				t.Errorf("damage event should report 1 hit left, got %d", e.HitsLeft)
			}
		}
	}
	if damage != 1 {
		t.Errorf("expected 1 damage event, got %d", damage)
	}
}

func TestDetonateEmptyOrNonBombCellIsNoop(t *testing.T) {
	g := buildGrid(t,
		"R.",
		"GG",
	)
	x := core.NewExplosionResolver()

	for _, c := range []core.Coord{core.C(1, 0), core.C(0, 0), core.C(9, 9)} {
		blast := x.Detonate(g, c, nil)
		if len(blast.Events) != 0 || len(blast.Removed) != 0 {
			t.Errorf("%v: expected no-op, got %+v", c, blast)
		}
	}
	if g.Count() != 3 {
		t.Errorf("grid changed: %d blocks", g.Count())
	}
}

func TestDamageAdjacentRules(t *testing.T) {
	g := buildGrid(t,
		"SRX",
		"VR.",
	)
	x := core.NewExplosionResolver()
	cleared := []core.Coord{core.C(1, 0), core.C(1, 1)}
	for _, c := range cleared {
		g.Clear(c)
	}

	events, removed := x.DamageAdjacent(g, cleared)

	if g.Get(core.C(0, 0)) == nil {
		t.Error("stone should ignore match damage")
	}
	if !g.IsEmpty(core.C(2, 0)) {
		t.Error("box should be removed by a match hit")
	}
	if v := g.Get(core.C(0, 1)); v == nil || v.Hits != 1 {
		t.Errorf("vase should take one hit, got %+v", v)
	}
	if len(removed) != 1 || removed[0].Obstacle != core.ObstacleBox {
		t.Errorf("expected the box removed, got %v", removed)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestDamageAdjacentHitsOncePerPass(t *testing.T) {
	g := buildGrid(t,
		".R.",
		"RVR",
	)
	x := core.NewExplosionResolver()
	cleared := []core.Coord{core.C(1, 0), core.C(0, 1), core.C(2, 1)}
	for _, c := range cleared {
		g.Clear(c)
	}

	_, removed := x.DamageAdjacent(g, cleared)
	vase := g.Get(core.C(1, 1))
	if len(removed) != 0 || vase == nil || vase.Hits != 1 {
		t.Fatalf("vase next to three cleared cells should take one hit, got %+v", vase)
	}

	// An independent second pass finishes it.
	_, removed = x.DamageAdjacent(g, []core.Coord{core.C(1, 0)})
	if len(removed) != 1 || !g.IsEmpty(core.C(1, 1)) {
		t.Error("second hit should remove the vase")
	}
}
