package blast

import (
	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
)

// Animator plays back the events of a turn over several ticks.
// The engine resolves a turn at once; the animator replays its events on a
// copy of the pre-tap grid so the board can be drawn mid-cascade.
type Animator struct {
	cfg   config.AnimationConfig
	view  *core.Grid
	live  *core.Grid
	steps []animStep
	tick  int
}

type animStep struct {
	phase    core.Phase
	events   []core.Event
	duration int
}

// Sprite is a block drawn between cells while it moves.
type Sprite struct {
	Block *core.Block
	X, Y  int // grid column and row; Y may be above the board
}

// Frame is what the renderer needs for the current tick.
type Frame struct {
	Grid    *core.Grid // nil when idle: draw the live grid
	Flash   map[core.Coord]bool
	Shake   map[core.Coord]bool
	Hidden  map[core.Coord]bool
	Sprites []Sprite
	Tick    int
}

// NewAnimator creates an animator with the given timing.
func NewAnimator(cfg config.AnimationConfig) *Animator {
	return &Animator{cfg: cfg}
}

// Play queues the playback of turn. before is a copy of the grid taken
// before the tap; live is the grid after it.
// With animation disabled, Play does nothing.
func (a *Animator) Play(before, live *core.Grid, turn core.Turn) {
	a.Skip()
	if !a.cfg.Enabled || before == nil {
		return
	}

	var clear, fall, shake []core.Event
	maxFall := 0
	for _, e := range turn.Events {
		switch e.Kind {
		case core.EventShake:
			shake = append(shake, e)
		case core.EventRemove, core.EventDamage, core.EventBomb:
			clear = append(clear, e)
		case core.EventFall:
			fall = append(fall, e)
			maxFall = max(maxFall, e.Distance)
		}
	}

	a.view = before
	a.live = live
	a.push(core.PhaseClear, shake, a.cfg.ShakeTicks)
	a.push(core.PhaseClear, clear, a.cfg.ClearTicks)
	a.push(core.PhaseFall, fall, maxFall*a.cfg.FallTicks)
	for _, group := range turn.SpawnGroups() {
		a.push(core.PhaseRefill, group, a.cfg.SpawnTicks)
	}
	if len(a.steps) == 0 {
		a.view = nil
	}
}

// push adds a step. Steps without duration are applied at once.
func (a *Animator) push(phase core.Phase, events []core.Event, duration int) {
	if len(events) == 0 {
		return
	}
	if duration <= 0 {
		if len(a.steps) == 0 {
			a.apply(events)
			return
		}
		duration = 1
	}
	a.steps = append(a.steps, animStep{phase: phase, events: events, duration: duration})
}

// Busy reports whether a playback is in progress.
func (a *Animator) Busy() bool {
	return len(a.steps) > 0
}

// Advance moves the playback one tick forward and reports whether it is
// still busy.
func (a *Animator) Advance() bool {
	if !a.Busy() {
		return false
	}
	a.tick++
	if a.tick >= a.steps[0].duration {
		a.apply(a.steps[0].events)
		a.steps = a.steps[1:]
		a.tick = 0
	}
	if !a.Busy() {
		a.view = nil
	}
	return a.Busy()
}

// Skip finishes the current playback immediately.
func (a *Animator) Skip() {
	a.steps = nil
	a.tick = 0
	a.view = nil
}

// apply replays events on the view grid.
func (a *Animator) apply(events []core.Event) {
	g := a.view
	if g == nil {
		return
	}
	for _, e := range events {
		switch e.Kind {
		case core.EventRemove:
			if g.InBounds(e.From) {
				g.Clear(e.From)
			}
		case core.EventDamage:
			if b := g.Get(e.From); b != nil {
				b.Hits = e.HitsLeft
			}
		case core.EventBomb:
			g.Set(e.To, core.NewBomb(e.Block))
		case core.EventFall:
			g.Move(e.From, e.To)
		case core.EventSpawn:
			if b := a.spawned(e); b != nil {
				g.Set(e.To, b)
			}
		}
	}
}

// spawned returns a copy of the block a spawn event created.
func (a *Animator) spawned(e core.Event) *core.Block {
	if a.live != nil {
		if b := a.live.Find(e.Block); b != nil {
			cp := *b
			return &cp
		}
	}
	return core.NewCube(e.Block, e.Color)
}

// Frame describes the board for the current tick.
func (a *Animator) Frame() Frame {
	f := Frame{Grid: a.view, Tick: a.tick}
	if !a.Busy() {
		return f
	}

	st := a.steps[0]
	p := float64(a.tick) / float64(st.duration)
	switch st.phase {
	case core.PhaseClear:
		for _, e := range st.events {
			switch e.Kind {
			case core.EventShake:
				f.Shake = addCoord(f.Shake, e.From)
			case core.EventRemove, core.EventDamage:
				f.Flash = addCoord(f.Flash, e.From)
			}
		}
	case core.PhaseFall:
		for _, e := range st.events {
			b := a.view.Get(e.From)
			if b == nil {
				continue
			}
			f.Hidden = addCoord(f.Hidden, e.From)
			f.Sprites = append(f.Sprites, Sprite{Block: b, X: e.From.X, Y: e.From.Y + int(p*float64(e.Distance))})
		}
	case core.PhaseRefill:
		// One row per step, top row first; rows above are already filled,
		// so new cubes appear in place instead of falling through them.
		for _, e := range st.events {
			f.Sprites = append(f.Sprites, Sprite{Block: a.spawned(e), X: e.To.X, Y: e.To.Y})
		}
	}
	return f
}

func addCoord(m map[core.Coord]bool, c core.Coord) map[core.Coord]bool {
	if m == nil {
		m = make(map[core.Coord]bool)
	}
	m[c] = true
	return m
}
