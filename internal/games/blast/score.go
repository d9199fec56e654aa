package blast

import (
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// Scorer turns engine outcomes into points.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a scorer with the given points table.
func NewScorer(cfg config.ScoringConfig) Scorer {
	return Scorer{cfg: cfg}
}

// Turn returns the points earned by a turn.
func (s Scorer) Turn(t core.Turn) int {
	return t.Removed(core.KindCube)*s.cfg.Cube + t.Removed(core.KindObstacle)*s.cfg.Obstacle
}

// Bonus returns the points for finishing a level with moves to spare.
func (s Scorer) Bonus(movesLeft int) int {
	if movesLeft <= 0 {
		return 0
	}
	return movesLeft * s.cfg.MoveLeft
}
