package core_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// buildGrid creates a grid from glyph rows, top row first, using the same
// alphabet as Grid.String. Block IDs are assigned row-major from 1.
func buildGrid(t *testing.T, rows ...string) *core.Grid {
	t.Helper()
	g := core.NewGrid(len(rows[0]), len(rows))
	id := core.BlockID(0)
	for y, row := range rows {
		if len(row) != g.W {
			t.Fatalf("row %d has width %d, want %d", y, len(row), g.W)
		}
		for x, r := range row {
			if r == '.' {
				continue
			}
			id++
			g.Set(core.C(x, y), glyphBlock(t, r, id))
		}
	}
	return g
}

func glyphBlock(t *testing.T, r rune, id core.BlockID) *core.Block {
	t.Helper()
	switch r {
	case 'R', 'G', 'B', 'Y':
		return core.NewCube(id, glyphColor(r))
	case 'r', 'g', 'b', 'y':
		b := core.NewCube(id, glyphColor(r-('a'-'A')))
		b.Tier = core.TierBomb
		return b
	case 'T':
		return core.NewBomb(id)
	case 'S':
		return core.NewObstacle(id, core.ObstacleStone)
	case 'X':
		return core.NewObstacle(id, core.ObstacleBox)
	case 'V':
		return core.NewObstacle(id, core.ObstacleVase)
	case 'v':
		b := core.NewObstacle(id, core.ObstacleVase)
		b.Hits = 1
		return b
	}
	t.Fatalf("unknown glyph %q", r)
	return nil
}

func glyphColor(r rune) core.Color {
	switch r {
	case 'R':
		return core.ColorRed
	case 'G':
		return core.ColorGreen
	case 'B':
		return core.ColorBlue
	default:
		return core.ColorYellow
	}
}

var glyphCodes = map[rune]string{
	'R': "r", 'G': "g", 'B': "b", 'Y': "y",
	'T': "t", 'S': "s", 'X': "bo", 'V': "v", 'v': "vd", '.': "n",
}

// layout builds a level descriptor from glyph rows, top row first.
func layout(t *testing.T, moves int, rows ...string) core.Snapshot {
	t.Helper()
	w, h := len(rows[0]), len(rows)
	codes := make([]string, w*h)
	for y, row := range rows {
		for x, r := range row {
			code, ok := glyphCodes[r]
			if !ok {
				t.Fatalf("no code for glyph %q", r)
			}
			codes[core.CellIndex(core.C(x, y), w, h)] = code
		}
	}
	return core.Snapshot{Level: 1, Width: w, Height: h, Moves: moves, Grid: codes}
}

func rowsOf(s string) []string {
	return strings.Split(s, "\n")
}

// randomGrid fills a grid with cubes of three colors, some obstacles and
// some empty cells.
func randomGrid(rng *rand.Rand, w, h int) *core.Grid {
	g := core.NewGrid(w, h)
	id := core.BlockID(0)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			id++
			var b *core.Block
			switch n := rng.Intn(10); {
			case n < 7:
				b = core.NewCube(id, core.Color(rng.Intn(3)))
			case n == 7:
				b = core.NewObstacle(id, core.ObstacleKind(rng.Intn(3)))
			case n == 8:
				b = core.NewBomb(id)
			default:
				continue
			}
			g.Set(core.C(x, y), b)
		}
	}
	return g
}

// columnIDs returns the block IDs of column x, top to bottom.
func columnIDs(g *core.Grid, x int) []core.BlockID {
	var ids []core.BlockID
	for y := 0; y < g.H; y++ {
		if b := g.Get(core.C(x, y)); b != nil {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// settled reports whether no falling block has an empty cell directly below it.
func settled(g *core.Grid, obstaclesFall bool) bool {
	for y := 0; y < g.H-1; y++ {
		for x := 0; x < g.W; x++ {
			b := g.Get(core.C(x, y))
			if b != nil && b.Falls(obstaclesFall) && g.IsEmpty(core.C(x, y+1)) {
				return false
			}
		}
	}
	return true
}
