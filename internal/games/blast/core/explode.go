package core

// Blast radii. A radius r covers the (2r+1)x(2r+1) square around the center.
const (
	DefaultRadius = 2
	ComboRadius   = 3
)

// Blast is the result of one bomb detonation.
type Blast struct {
	Center   Coord     // cell of the bomb that anchored the blast
	Radius   int       // radius of the anchoring square
	Combo    bool      // a neighboring bomb took over as center
	Chain    []BlockID // bombs visited, in visit order, center first
	Affected []Coord   // every cell inside the union of squares, row-major
	Events   []Event
	Removed  []*Block // blocks that left the grid, for release to a pool
}

// ExplosionResolver resolves bomb chains and obstacle damage.
type ExplosionResolver struct {
	Radius      int
	ComboRadius int
}

// NewExplosionResolver creates a resolver with the default radii.
func NewExplosionResolver() ExplosionResolver {
	return ExplosionResolver{Radius: DefaultRadius, ComboRadius: ComboRadius}
}

func (x ExplosionResolver) radii() (int, int) {
	r, cr := x.Radius, x.ComboRadius
	if r <= 0 {
		r = DefaultRadius
	}
	if cr <= 0 {
		cr = ComboRadius
	}
	return r, cr
}

// Detonate explodes the bomb at `at`.
// visited holds the bombs already accounted for; it is updated in place so a
// caller resolving several detonations in one pass never visits a bomb twice.
// A nil visited map is allowed. An empty or non-bomb cell yields a zero Blast.
func (x ExplosionResolver) Detonate(g *Grid, at Coord, visited map[BlockID]bool) Blast {
	if !g.InBounds(at) {
		return Blast{}
	}
	tapped := g.Get(at)
	if !tapped.IsBomb() {
		return Blast{}
	}
	if visited == nil {
		visited = make(map[BlockID]bool)
	}

	radius, comboRadius := x.radii()
	center := tapped
	blast := Blast{Radius: radius}
	if partner := adjacentBomb(g, tapped); partner != nil {
		center = partner
		blast.Radius = comboRadius
		blast.Combo = true
	}
	blast.Center = center.Pos

	affected := x.collect(g, center, blast.Radius, radius, visited, &blast)
	if blast.Combo && !visited[tapped.ID] {
		// Swallowed by the merged blast.
		visited[tapped.ID] = true
		blast.Chain = append(blast.Chain, tapped.ID)
	}

	// Center goes first, unconditionally.
	g.Clear(center.Pos)
	blast.Events = append(blast.Events, removeEvent(center))
	blast.Removed = append(blast.Removed, center)

	var damaged []*Block
	for _, c := range affected {
		blast.Affected = append(blast.Affected, c)
		b := g.Get(c)
		if b == nil {
			continue
		}
		if b.IsObstacle() {
			applied, removed := b.Damage(HitBlast)
			if !applied {
				continue
			}
			if !removed {
				damaged = append(damaged, b)
				blast.Events = append(blast.Events, damageEvent(b))
				continue
			}
		}
		g.Clear(c)
		blast.Events = append(blast.Events, removeEvent(b))
		blast.Removed = append(blast.Removed, b)
	}

	for _, b := range damaged {
		b.ClearHit()
	}
	for _, b := range blast.Removed {
		b.ClearHit()
	}
	return blast
}

// collect unions the square around center with the radius-r squares of every
// unvisited bomb found inside it. Returns the affected cells row-major.
func (x ExplosionResolver) collect(g *Grid, center *Block, radius, nested int, visited map[BlockID]bool, blast *Blast) []Coord {
	inArea := make(map[Coord]bool)
	visited[center.ID] = true
	blast.Chain = append(blast.Chain, center.ID)

	type frame struct {
		at Coord
		r  int
	}
	stack := []frame{{center.Pos, radius}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.at.Square(f.r) {
			if !g.InBounds(c) {
				continue
			}
			inArea[c] = true
			b := g.Get(c)
			if !b.IsBomb() || visited[b.ID] {
				continue
			}
			visited[b.ID] = true
			blast.Chain = append(blast.Chain, b.ID)
			stack = append(stack, frame{c, nested})
		}
	}

	out := make([]Coord, 0, len(inArea))
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := C(x, y)
			if inArea[c] && c != center.Pos {
				out = append(out, c)
			}
		}
	}
	return out
}

// adjacentBomb returns the first bomb among b's 8 neighbors, row-major.
func adjacentBomb(g *Grid, b *Block) *Block {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			c := b.Pos.Add(dx, dy)
			if !g.InBounds(c) {
				continue
			}
			if n := g.Get(c); n.IsBomb() {
				return n
			}
		}
	}
	return nil
}

// DamageAdjacent hits every obstacle 4-adjacent to the given cleared cells.
// Each obstacle is hit at most once; Stone ignores match damage.
// Destroyed obstacles are removed from the grid and returned.
func (x ExplosionResolver) DamageAdjacent(g *Grid, cleared []Coord) ([]Event, []*Block) {
	var (
		events  []Event
		removed []*Block
		touched []*Block
	)
	for _, c := range sortedCoords(cleared) {
		for _, n := range c.Neighbors4() {
			if !g.InBounds(n) {
				continue
			}
			b := g.Get(n)
			if !b.IsObstacle() {
				continue
			}
			applied, gone := b.Damage(HitMatch)
			if !applied {
				continue
			}
			touched = append(touched, b)
			if gone {
				g.Clear(n)
				events = append(events, removeEvent(b))
				removed = append(removed, b)
			} else {
				events = append(events, damageEvent(b))
			}
		}
	}
	for _, b := range touched {
		b.ClearHit()
	}
	return events, removed
}

func removeEvent(b *Block) Event {
	return Event{
		Kind:      EventRemove,
		Phase:     PhaseClear,
		Block:     b.ID,
		BlockKind: b.Kind,
		Color:     b.Color,
		Obstacle:  b.Obstacle,
		From:      b.Pos,
	}
}

func damageEvent(b *Block) Event {
	return Event{
		Kind:      EventDamage,
		Phase:     PhaseClear,
		Block:     b.ID,
		BlockKind: b.Kind,
		Obstacle:  b.Obstacle,
		From:      b.Pos,
		HitsLeft:  b.Hits,
	}
}
