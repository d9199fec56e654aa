package core

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/looplab/fsm"
)

// TurnState is the controller state.
type TurnState string

const (
	StateIdle      TurnState = "idle"      // accepting taps
	StateResolving TurnState = "resolving" // cascade in progress, taps ignored
	StateFinished  TurnState = "finished"  // won or lost, taps ignored
)

// State machine events.
const (
	evResolve = "resolve"
	evSettle  = "settle"
	evFinish  = "finish"
)

// BombCellPolicy decides what happens to the cell of a tapped bomb.
type BombCellPolicy uint8

const (
	// BombCellRefill refills the bomb's column in the same turn.
	BombCellRefill BombCellPolicy = iota
	// BombCellHold keeps one cell at the top of the bomb's column empty
	// until the next refill.
	BombCellHold
)

// String returns the string representation of the policy.
func (p BombCellPolicy) String() string {
	if p == BombCellHold {
		return "hold"
	}
	return "refill"
}

// ParseBombCellPolicy parses "refill" or "hold". Empty selects refill.
func ParseBombCellPolicy(s string) (BombCellPolicy, error) {
	switch s {
	case "", "refill":
		return BombCellRefill, nil
	case "hold":
		return BombCellHold, nil
	}
	return BombCellRefill, fmt.Errorf("core: unknown bomb cell policy %q", s)
}

// Policy holds the rule variants.
type Policy struct {
	ObstaclesFall bool
	BombCell      BombCellPolicy
}

// DefaultPolicy returns the default rule set.
func DefaultPolicy() Policy {
	return Policy{ObstaclesFall: true, BombCell: BombCellRefill}
}

// Options configures a Controller. The zero value is usable: no pool,
// a discarding logger, seed 0, bomb threshold 5 and the zero Policy.
// Use DefaultPolicy for the default rules.
type Options struct {
	Seed          int64
	Pool          Pool
	Logger        *log.Logger
	Policy        Policy
	BombThreshold int
}

// Controller runs one level: it validates taps, drives the resolvers and
// tracks moves and goals. A Controller is not safe for concurrent use.
type Controller struct {
	level int
	moves int
	grid  *Grid

	match   MatchResolver
	blast   ExplosionResolver
	gravity *GravityResolver
	goals   *GoalTracker

	fsm    *fsm.FSM
	rng    *rand.Rand
	pool   Pool
	logger *log.Logger
	policy Policy
	nextID BlockID

	won, lost bool
}

// NewController builds a controller for the given layout.
// Structural errors in the layout abort construction; unknown cell codes
// and goal types are logged and skipped.
func NewController(layout Snapshot, opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	c := &Controller{
		match:  NewMatchResolver(opts.BombThreshold),
		blast:  NewExplosionResolver(),
		rng:    rng,
		pool:   opts.Pool,
		logger: logger,
		policy: opts.Policy,
	}
	c.gravity = NewGravityResolver(rng, opts.Policy.ObstaclesFall)
	c.fsm = fsm.NewFSM(
		string(StateIdle),
		fsm.Events{
			{Name: evResolve, Src: []string{string(StateIdle)}, Dst: string(StateResolving)},
			{Name: evSettle, Src: []string{string(StateResolving)}, Dst: string(StateIdle)},
			{Name: evFinish, Src: []string{string(StateIdle)}, Dst: string(StateFinished)},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				c.logger.Debug("turn state", "event", e.Event, "from", e.Src, "to", e.Dst)
			},
		},
	)

	if err := c.load(layout); err != nil {
		return nil, err
	}
	return c, nil
}

// load builds the grid and goals from a layout.
func (c *Controller) load(s Snapshot) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("level %d: %w", s.Level, err)
	}

	grid := NewGrid(s.Width, s.Height)
	var kinds []ObstacleKind
	for _, gs := range s.Goals {
		k, err := ParseGoalType(gs.Type)
		if err != nil {
			c.logger.Warn("goal skipped", "level", s.Level, "err", err)
			continue
		}
		kinds = append(kinds, k)
	}
	for i, code := range s.Grid {
		cell, err := ParseCell(code)
		if err != nil {
			c.logger.Warn("cell treated as empty", "level", s.Level, "index", i, "err", err)
			continue
		}
		if cell.Empty {
			continue
		}
		var b *Block
		switch cell.Kind {
		case KindCube:
			color := cell.Color
			if cell.Random {
				color = Color(c.rng.Intn(int(ColorCount)))
			}
			b = c.newCube(color)
		case KindBomb:
			b = c.newBlock(KindBomb)
		case KindObstacle:
			b = c.newBlock(KindObstacle)
			b.Obstacle = cell.Obstacle
			b.Hits = cell.Hits
			kinds = append(kinds, cell.Obstacle)
		}
		grid.Set(CellCoord(i, s.Width, s.Height), b)
	}

	if c.grid != nil {
		for _, b := range c.grid.Blocks() {
			c.release(b)
		}
	}
	c.level = s.Level
	c.moves = s.Moves
	c.grid = grid
	c.goals = NewGoalTracker(kinds, c.logger)
	c.match.RescanSpecials(grid)
	c.goals.Recompute(grid)
	return nil
}

// Level returns the level number.
func (c *Controller) Level() int { return c.level }

// Moves returns the number of moves left.
func (c *Controller) Moves() int { return c.moves }

// Grid returns the live grid. Callers must not mutate it.
func (c *Controller) Grid() *Grid { return c.grid }

// Goals returns the current goal counts.
func (c *Controller) Goals() []Goal { return c.goals.Goals() }

// State returns the current turn state.
func (c *Controller) State() TurnState { return TurnState(c.fsm.Current()) }

// Won reports whether the level finished with every goal complete.
func (c *Controller) Won() bool { return c.won }

// Lost reports whether the level finished out of moves.
func (c *Controller) Lost() bool { return c.lost }

// Policy returns the rule variants in use.
func (c *Controller) Policy() Policy { return c.policy }

// BombThreshold returns the group size that creates a bomb.
func (c *Controller) BombThreshold() int { return c.match.BombThreshold }

// Group returns the cubes a tap at `at` would remove. Empty for non-cubes.
func (c *Controller) Group(at Coord) BlockSet {
	return c.match.FindConnectedCubes(c.grid, at)
}

// Playable reports whether any tap would consume a move.
func (c *Controller) Playable() bool {
	seen := make(map[BlockID]bool)
	for _, b := range c.grid.Blocks() {
		if b.IsBomb() {
			return true
		}
		if !b.IsCube() || seen[b.ID] {
			continue
		}
		group := c.match.FindConnectedCubes(c.grid, b.Pos)
		if group.Len() >= 2 {
			return true
		}
		for id := range group {
			seen[id] = true
		}
	}
	return false
}

// Tap handles a tap at `at` and returns the ordered record of what happened.
func (c *Controller) Tap(at Coord) (turn Turn) {
	turn = Turn{Outcome: OutcomeIgnored, Tapped: at}
	defer c.stamp(&turn)

	if c.State() != StateIdle || !c.grid.InBounds(at) {
		return turn
	}

	b := c.grid.Get(at)
	switch {
	case b.IsCube():
		group := c.match.FindConnectedCubes(c.grid, at)
		if group.Len() < 2 {
			turn.Outcome = OutcomeShake
			turn.Events = append(turn.Events, Event{Kind: EventShake, Phase: PhaseClear, Block: b.ID, BlockKind: b.Kind, From: at})
			return turn
		}
		c.transition(evResolve)
		c.moves--
		turn.Outcome = OutcomeMatch
		turn.Events = c.resolveMatch(at, group)
		turn.Events = append(turn.Events, c.cascade(nil)...)

	case b.IsBomb():
		c.transition(evResolve)
		c.moves--
		turn.Outcome = OutcomeDetonate
		blast := c.blast.Detonate(c.grid, at, nil)
		turn.Events = blast.Events
		for _, r := range blast.Removed {
			c.release(r)
		}
		c.logger.Debug("detonate", "at", at, "center", blast.Center, "radius", blast.Radius, "chain", len(blast.Chain))

		var exclude map[Coord]bool
		if c.policy.BombCell == BombCellHold {
			exclude = map[Coord]bool{C(at.X, 0): true}
		}
		turn.Events = append(turn.Events, c.cascade(exclude)...)

	default:
		return turn
	}

	c.transition(evSettle)
	switch {
	case c.goals.IsComplete():
		c.won = true
		c.transition(evFinish)
	case c.moves <= 0:
		c.lost = true
		c.transition(evFinish)
	}
	return turn
}

// resolveMatch removes a cube group, damages adjacent obstacles and places a
// bomb in the tapped cell when the group is large enough.
func (c *Controller) resolveMatch(at Coord, group BlockSet) []Event {
	var (
		events  []Event
		cleared []Coord
		removed []*Block
	)
	for _, b := range group.Sorted() {
		cleared = append(cleared, b.Pos)
		events = append(events, removeEvent(b))
		c.grid.Clear(b.Pos)
		removed = append(removed, b)
	}

	damage, destroyed := c.blast.DamageAdjacent(c.grid, cleared)
	events = append(events, damage...)
	removed = append(removed, destroyed...)
	for _, b := range removed {
		c.release(b)
	}

	if group.Len() >= c.match.BombThreshold {
		bomb := c.newBlock(KindBomb)
		c.grid.Set(at, bomb)
		events = append(events, Event{Kind: EventBomb, Phase: PhaseClear, Block: bomb.ID, BlockKind: KindBomb, To: at})
	}
	return events
}

// cascade runs gravity, refill, the special rescan and the goal recount.
func (c *Controller) cascade(exclude map[Coord]bool) []Event {
	events := c.gravity.Collapse(c.grid)
	for k := range exclude {
		if !c.grid.IsEmpty(k) {
			delete(exclude, k)
		}
	}
	for _, group := range c.gravity.Refill(c.grid, exclude, c.newCube) {
		events = append(events, group...)
	}

	for _, ch := range c.match.RescanSpecials(c.grid) {
		kind := EventPromote
		if ch.To == TierNormal {
			kind = EventDemote
		}
		events = append(events, Event{Kind: kind, Phase: PhaseSettle, Block: ch.Block.ID, BlockKind: KindCube, Color: ch.Block.Color, From: ch.Block.Pos})
	}
	for _, g := range c.goals.Recompute(c.grid) {
		events = append(events, Event{Kind: EventGoal, Phase: PhaseSettle, Obstacle: g.Obstacle, Remaining: g.Remaining})
	}
	return events
}

func (c *Controller) transition(event string) {
	if err := c.fsm.Event(context.Background(), event); err != nil {
		c.logger.Error("turn state", "event", event, "err", err)
	}
}

func (c *Controller) stamp(t *Turn) {
	t.MovesLeft = c.moves
	t.State = c.State()
	t.Won = c.won
	t.Lost = c.lost
}

// newBlock takes a block from the pool, or allocates one when the pool is
// missing or empty, and gives it a fresh ID.
func (c *Controller) newBlock(kind Kind) *Block {
	var b *Block
	if c.pool != nil {
		pooled, err := c.pool.Acquire(kind)
		if err != nil {
			c.logger.Debug("pool fallback", "kind", kind, "err", err)
		} else {
			b = pooled
		}
	}
	if b == nil {
		b = &Block{}
	}
	b.Kind = kind
	c.nextID++
	b.ID = c.nextID
	return b
}

func (c *Controller) newCube(color Color) *Block {
	b := c.newBlock(KindCube)
	b.Color = color
	return b
}

func (c *Controller) release(b *Block) {
	if c.pool != nil {
		c.pool.Release(b)
	}
}
