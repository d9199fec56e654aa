package core

import "fmt"

// GoalSpec is a goal entry as it appears in level files and snapshots.
// Count is informational; the live count is always recomputed from the grid.
type GoalSpec struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// Snapshot is a level layout: the initial descriptor of a level, or the
// state of a game at idle. Field names follow the level-file format.
type Snapshot struct {
	Level  int        `json:"level_number" yaml:"level_number"`
	Width  int        `json:"grid_width" yaml:"grid_width"`
	Height int        `json:"grid_height" yaml:"grid_height"`
	Moves  int        `json:"move_count" yaml:"move_count"`
	Grid   []string   `json:"grid" yaml:"grid"`
	Goals  []GoalSpec `json:"goals,omitempty" yaml:"goals,omitempty"`
}

// Validate checks the structural shape of the layout.
func (s Snapshot) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrLevelShape, s.Width, s.Height)
	}
	if len(s.Grid) != s.Width*s.Height {
		return fmt.Errorf("%w: %d cells for %dx%d grid", ErrLevelShape, len(s.Grid), s.Width, s.Height)
	}
	if s.Moves <= 0 {
		return fmt.Errorf("%w: move count %d", ErrLevelShape, s.Moves)
	}
	return nil
}

// Snapshot captures the controller state. Only meaningful at idle; a
// finished game still snapshots but restores to idle.
func (c *Controller) Snapshot() Snapshot {
	goals := c.goals.Goals()
	specs := make([]GoalSpec, len(goals))
	for i, g := range goals {
		specs[i] = GoalSpec{Type: g.Obstacle.Code(), Count: g.Remaining}
	}
	return Snapshot{
		Level:  c.level,
		Width:  c.grid.W,
		Height: c.grid.H,
		Moves:  c.moves,
		Grid:   Codes(c.grid),
		Goals:  specs,
	}
}

// Restore replaces the controller state with s and resumes at idle.
// On error the controller is left unchanged.
func (c *Controller) Restore(s Snapshot) error {
	if err := c.load(s); err != nil {
		return err
	}
	c.fsm.SetState(string(StateIdle))
	c.won, c.lost = false, false
	return nil
}
