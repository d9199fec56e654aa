package core

import "sort"

// DefaultBombThreshold is the group size at which cubes turn into bombs.
const DefaultBombThreshold = 5

// BlockSet is a set of blocks keyed by ID.
type BlockSet map[BlockID]*Block

// Add inserts b into the set.
func (s BlockSet) Add(b *Block) {
	s[b.ID] = b
}

// Has reports whether the block with the given ID is in the set.
func (s BlockSet) Has(id BlockID) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of blocks in the set.
func (s BlockSet) Len() int {
	return len(s)
}

// Sorted returns the blocks ordered row-major by position.
func (s BlockSet) Sorted() []*Block {
	out := make([]*Block, 0, len(s))
	for _, b := range s {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Pos.Less(out[j].Pos)
	})
	return out
}

// TierChange records a cube whose tier changed during a rescan.
type TierChange struct {
	Block *Block
	From  Tier
	To    Tier
}

// MatchResolver finds connected groups of same-colored cubes.
type MatchResolver struct {
	BombThreshold int
}

// NewMatchResolver creates a resolver with the given bomb threshold.
// A non-positive threshold selects DefaultBombThreshold.
func NewMatchResolver(threshold int) MatchResolver {
	if threshold <= 0 {
		threshold = DefaultBombThreshold
	}
	return MatchResolver{BombThreshold: threshold}
}

// FindConnectedCubes returns the 4-connected component of cubes sharing the
// origin's color, origin included. A non-cube origin yields an empty set.
func (m MatchResolver) FindConnectedCubes(g *Grid, origin Coord) BlockSet {
	group := make(BlockSet)
	if !g.InBounds(origin) {
		return group
	}
	start := g.Get(origin)
	if !start.Matchable() {
		return group
	}
	m.flood(g, start, group)
	return group
}

// flood runs a breadth-first search from start, adding every reached cube to group.
func (m MatchResolver) flood(g *Grid, start *Block, group BlockSet) {
	group.Add(start)
	queue := []*Block{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Pos.Neighbors4() {
			if !g.InBounds(n) {
				continue
			}
			nb := g.Get(n)
			if !nb.Matchable() || nb.Color != start.Color || group.Has(nb.ID) {
				continue
			}
			group.Add(nb)
			queue = append(queue, nb)
		}
	}
}

// RescanSpecials sets every cube's tier from the size of its component:
// TierBomb at or above the threshold, TierNormal below it.
// Returns the cubes whose tier changed, row-major.
func (m MatchResolver) RescanSpecials(g *Grid) []TierChange {
	threshold := m.BombThreshold
	if threshold <= 0 {
		threshold = DefaultBombThreshold
	}

	var changes []TierChange
	seen := make(map[BlockID]bool)
	for _, b := range g.Blocks() {
		if !b.Matchable() || seen[b.ID] {
			continue
		}
		group := make(BlockSet)
		m.flood(g, b, group)

		tier := TierNormal
		if group.Len() >= threshold {
			tier = TierBomb
		}
		for _, member := range group {
			seen[member.ID] = true
			if member.Tier != tier {
				changes = append(changes, TierChange{Block: member, From: member.Tier, To: tier})
				member.Tier = tier
			}
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Block.Pos.Less(changes[j].Block.Pos)
	})
	return changes
}
