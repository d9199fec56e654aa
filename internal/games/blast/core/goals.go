package core

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Goal is the remaining count of one obstacle kind.
type Goal struct {
	Obstacle  ObstacleKind
	Remaining int
}

// GoalTracker counts live obstacles per goal.
// Goals keep the order they were given in and persist at zero.
type GoalTracker struct {
	goals  []Goal
	logger *log.Logger
}

// NewGoalTracker creates a tracker for the given obstacle kinds.
// Invalid or duplicate kinds are logged and skipped.
func NewGoalTracker(kinds []ObstacleKind, logger *log.Logger) *GoalTracker {
	t := &GoalTracker{logger: logger}
	seen := make(map[ObstacleKind]bool)
	for _, k := range kinds {
		if !k.Valid() {
			t.warn(fmt.Errorf("%w: kind %d", ErrUnknownGoalType, k))
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		t.goals = append(t.goals, Goal{Obstacle: k})
	}
	return t
}

// Recompute counts every live obstacle on g and writes the counts into the
// matching goals. Obstacles with no goal are ignored; unknown kinds are logged.
func (t *GoalTracker) Recompute(g *Grid) []Goal {
	var counts [obstacleKindCount]int
	for _, b := range g.Blocks() {
		if !b.IsObstacle() {
			continue
		}
		if !b.Obstacle.Valid() {
			t.warn(fmt.Errorf("%w: obstacle kind %d at %v", ErrUnknownGoalType, b.Obstacle, b.Pos))
			continue
		}
		counts[b.Obstacle]++
	}
	for i := range t.goals {
		t.goals[i].Remaining = counts[t.goals[i].Obstacle]
	}
	return t.Goals()
}

// IsComplete reports whether every goal has reached zero.
func (t *GoalTracker) IsComplete() bool {
	for _, g := range t.goals {
		if g.Remaining != 0 {
			return false
		}
	}
	return true
}

// Goals returns a copy of the current goals.
func (t *GoalTracker) Goals() []Goal {
	out := make([]Goal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Remaining returns the count for kind, and whether kind is tracked.
func (t *GoalTracker) Remaining(kind ObstacleKind) (int, bool) {
	for _, g := range t.goals {
		if g.Obstacle == kind {
			return g.Remaining, true
		}
	}
	return 0, false
}

func (t *GoalTracker) warn(err error) {
	if t.logger != nil {
		t.logger.Warn("goal skipped", "err", err)
	}
}
