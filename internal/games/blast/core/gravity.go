package core

import "math/rand"

// SpawnFunc builds a new cube of the given color for a refill.
type SpawnFunc func(color Color) *Block

// GravityResolver compacts columns and plans refills.
type GravityResolver struct {
	// ObstaclesFall lets Stone and Box fall. Vase always falls.
	ObstaclesFall bool

	rng *rand.Rand
}

// NewGravityResolver creates a resolver drawing refill colors from rng.
func NewGravityResolver(rng *rand.Rand, obstaclesFall bool) *GravityResolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &GravityResolver{ObstaclesFall: obstaclesFall, rng: rng}
}

// Collapse moves every falling block down over the contiguous empty cells
// beneath it. Columns are processed left to right, each bottom-up, so
// relative order within a column is preserved.
func (r *GravityResolver) Collapse(g *Grid) []Event {
	var events []Event
	for x := 0; x < g.W; x++ {
		for y := g.H - 2; y >= 0; y-- {
			from := C(x, y)
			b := g.Get(from)
			if b == nil || !b.Falls(r.ObstaclesFall) {
				continue
			}
			dist := 0
			for below := y + 1; below < g.H && g.IsEmpty(C(x, below)); below++ {
				dist++
			}
			if dist == 0 {
				continue
			}
			to := C(x, y+dist)
			g.Move(from, to)
			events = append(events, Event{
				Kind:      EventFall,
				Phase:     PhaseFall,
				Block:     b.ID,
				BlockKind: b.Kind,
				From:      from,
				To:        to,
				Distance:  dist,
			})
		}
	}
	return events
}

// Refill fills the top-most empty cells of every column with new cubes of
// uniformly random color. Cells in exclude stay empty.
//
// Spawns are grouped by row: step 0 fills the topmost row that has an
// empty cell, each later step the next row down. Within a row, columns run
// left to right and colors are drawn in that order, so a seeded resolver
// always produces the same refill.
func (r *GravityResolver) Refill(g *Grid, exclude map[Coord]bool, spawn SpawnFunc) [][]Event {
	tops := make([]int, g.W)
	for x := range tops {
		for tops[x] < g.H && g.IsEmpty(C(x, tops[x])) {
			tops[x]++
		}
	}

	var groups [][]Event
	for y := 0; y < g.H; y++ {
		var group []Event
		for x := 0; x < g.W; x++ {
			to := C(x, y)
			if y >= tops[x] || exclude[to] {
				continue
			}
			color := Color(r.rng.Intn(int(ColorCount)))
			b := spawn(color)
			g.Set(to, b)
			group = append(group, Event{
				Kind:      EventSpawn,
				Phase:     PhaseRefill,
				Block:     b.ID,
				BlockKind: KindCube,
				Color:     color,
				From:      C(x, -1),
				To:        to,
				Column:    x,
				Distance:  to.Y + 1,
				Step:      len(groups),
			})
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}
