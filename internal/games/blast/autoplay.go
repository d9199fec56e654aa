package blast

import "github.com/vovakirdan/tui-blast/internal/games/blast/core"

// BestTap picks a tap greedily: the first bomb in row-major order, else a
// cell of the largest group. ok is false when no tap would consume a move.
func BestTap(ctrl *core.Controller) (at core.Coord, ok bool) {
	grid := ctrl.Grid()
	best := 1
	seen := make(map[core.BlockID]bool)

	for _, b := range grid.Blocks() {
		if b.IsBomb() {
			return b.Pos, true
		}
		if !b.IsCube() || seen[b.ID] {
			continue
		}
		group := ctrl.Group(b.Pos)
		for id := range group {
			seen[id] = true
		}
		if group.Len() > best {
			best = group.Len()
			at, ok = b.Pos, true
		}
	}
	return at, ok
}
