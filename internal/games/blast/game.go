// Package blast provides the Blast tile-puzzle game: tap groups of matching
// cubes, detonate bombs and clear the obstacles before the moves run out.
package blast

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	platformcore "github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels"
)

// ID is the game identifier used for score storage.
const ID = "blast"

// Options configures a Game.
type Options struct {
	Config     config.BlastConfig
	Levels     []levels.Level // campaign order
	StartLevel int            // level number; 0 selects the first level
	Resume     bool           // continue the saved game of the start level
	Saver      Saver          // nil disables persistence
	Logger     *log.Logger
}

// Game implements the Blast game for the platform.
type Game struct {
	opts       Options
	logger     *log.Logger
	difficulty *config.DifficultyManager
	scorer     Scorer
	anim       *Animator
	pool       *core.BlockPool

	ctrl       *core.Controller
	levelIndex int
	seed       int64

	cursor     core.Coord
	hint       bool
	score      int
	paused     bool
	finished   bool // campaign over: last level won or no levels
	stuck      bool // no tap on the board can consume a move
	resultDone bool
	message    string

	layout  boardLayout
	screenW int
	screenH int
}

// New creates a game. Call Reset before stepping it.
func New(opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	g := &Game{
		opts:       opts,
		logger:     logger,
		difficulty: config.NewDifficultyManager(opts.Config.Difficulty),
		scorer:     NewScorer(opts.Config.Scoring),
		anim:       NewAnimator(opts.Config.Animation),
	}
	if n := opts.Config.Engine.PoolCapacity; n > 0 {
		g.pool = core.NewBlockPool(n)
	}
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blast"
}

// Reset starts the campaign at the configured level.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.seed = cfg.Seed
	g.finished = false
	g.paused = false
	g.message = ""
	g.anim.Skip()

	if len(g.opts.Levels) == 0 {
		g.ctrl = nil
		g.finished = true
		g.message = "No levels found"
		return
	}

	g.levelIndex = 0
	for i, lvl := range g.opts.Levels {
		if lvl.Number() == g.opts.StartLevel {
			g.levelIndex = i
			break
		}
	}
	g.startLevel(g.opts.Resume)
}

// Resize updates the screen size without restarting the level.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	if g.ctrl != nil {
		g.layout = computeLayout(g.ctrl.Grid(), w, h)
	}
}

// startLevel builds the controller for the current level, optionally
// restoring a saved game.
func (g *Game) startLevel(resume bool) {
	lvl := g.opts.Levels[g.levelIndex]
	moves := g.difficulty.Moves(lvl.Layout.Moves, lvl.Number())

	ctrl, err := lvl.WithMoves(moves).NewController(core.Options{
		Seed:          g.seed + int64(lvl.Number()),
		Pool:          g.pool,
		Logger:        g.logger,
		Policy:        g.opts.Config.Policy(),
		BombThreshold: g.opts.Config.Engine.BombThreshold,
	})
	if err != nil {
		g.logger.Error("cannot start level", "level", lvl.Number(), "err", err)
		g.ctrl = nil
		g.finished = true
		g.message = fmt.Sprintf("Level %d is invalid", lvl.Number())
		return
	}

	g.ctrl = ctrl
	g.score = 0
	g.resultDone = false
	g.hint = false
	g.anim.Skip()

	if resume {
		g.restoreSave(lvl.Number())
	}
	g.checkStuck()

	grid := ctrl.Grid()
	g.cursor = core.C(grid.W/2, grid.H/2)
	g.layout = computeLayout(grid, g.screenW, g.screenH)
	g.logger.Info("level started", "level", lvl.Number(), "moves", ctrl.Moves(), "preset", g.difficulty.Preset())
}

func (g *Game) restoreSave(level int) {
	if g.opts.Saver == nil {
		return
	}
	payload, ok, err := g.opts.Saver.LoadGame(level)
	if err != nil {
		g.logger.Warn("cannot load save", "level", level, "err", err)
		return
	}
	if !ok {
		return
	}
	score, layout, err := DecodeSave(payload)
	if err == nil {
		err = g.ctrl.Restore(layout)
	}
	if err != nil {
		g.logger.Warn("discarding bad save", "level", level, "err", err)
		g.deleteSave(level)
		return
	}
	g.score = score
	g.logger.Info("save restored", "level", level, "moves", g.ctrl.Moves())
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.anim.Busy() {
		// Input is dropped during playback; Tap skips ahead.
		if in.Has(platformcore.ActionTap) || in.Has(platformcore.ActionConfirm) {
			g.anim.Skip()
		} else {
			g.anim.Advance()
		}
		return g.result()
	}

	if g.ctrl == nil || g.finished {
		return g.result()
	}

	if in.Has(platformcore.ActionPause) && !g.levelOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	if in.Has(platformcore.ActionRestart) {
		g.deleteSave(g.ctrl.Level())
		g.startLevel(false)
		return g.result()
	}

	if g.levelOver() {
		if g.ctrl.Won() && (in.Has(platformcore.ActionConfirm) || in.Has(platformcore.ActionTap)) {
			g.nextLevel()
		}
		return g.result()
	}

	g.moveCursor(in)
	if in.Has(platformcore.ActionHint) {
		g.hint = !g.hint
	}

	tap := in.Has(platformcore.ActionTap) || in.Has(platformcore.ActionConfirm)
	if in.Click != nil {
		if col, row, ok := g.layout.board.Cell(*in.Click, g.layout.cellW, g.layout.cellH); ok {
			g.cursor = core.C(col, row)
			tap = true
		}
	}
	if tap {
		g.tap(g.cursor)
	}

	return g.result()
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	grid := g.ctrl.Grid()
	x, y := g.cursor.X, g.cursor.Y
	switch {
	case in.Has(platformcore.ActionUp):
		y--
	case in.Has(platformcore.ActionDown):
		y++
	case in.Has(platformcore.ActionLeft):
		x--
	case in.Has(platformcore.ActionRight):
		x++
	}
	g.cursor = core.C(platformcore.Clamp(x, 0, grid.W-1), platformcore.Clamp(y, 0, grid.H-1))
}

// tap forwards a tap to the engine and books the outcome.
func (g *Game) tap(at core.Coord) core.Turn {
	before := g.ctrl.Grid().Clone()
	turn := g.ctrl.Tap(at)

	switch turn.Outcome {
	case core.OutcomeIgnored:
		return turn
	case core.OutcomeShake:
		g.anim.Play(before, g.ctrl.Grid(), turn)
		return turn
	}

	g.score += g.scorer.Turn(turn)
	g.anim.Play(before, g.ctrl.Grid(), turn)
	g.logger.Debug("turn", "outcome", turn.Outcome, "at", at, "events", len(turn.Events), "moves", turn.MovesLeft)

	switch {
	case turn.Won, turn.Lost:
		g.finishLevel(turn)
	default:
		g.saveProgress()
		g.checkStuck()
	}
	return turn
}

// checkStuck flags a board where no group or bomb is left to tap.
func (g *Game) checkStuck() {
	g.stuck = !g.levelOver() && !g.ctrl.Playable()
	if g.stuck {
		g.logger.Info("no moves possible", "level", g.ctrl.Level(), "moves", g.ctrl.Moves())
	}
}

// finishLevel books the result once per level.
func (g *Game) finishLevel(turn core.Turn) {
	if g.resultDone {
		return
	}
	g.resultDone = true

	level := g.ctrl.Level()
	if turn.Won {
		g.score += g.scorer.Bonus(turn.MovesLeft)
	}
	g.logger.Info("level finished", "level", level, "won", turn.Won, "moves_left", turn.MovesLeft, "score", g.score)

	if g.opts.Saver == nil {
		return
	}
	g.deleteSave(level)
	res := Result{Level: level, Won: turn.Won, MovesLeft: turn.MovesLeft, Score: g.score}
	if err := g.opts.Saver.SaveResult(res); err != nil {
		g.logger.Warn("cannot save result", "level", level, "err", err)
	}
	if turn.Won && g.levelIndex+1 < len(g.opts.Levels) {
		next := g.opts.Levels[g.levelIndex+1].Number()
		if err := g.opts.Saver.SetUnlockedLevel(next); err != nil {
			g.logger.Warn("cannot unlock level", "level", next, "err", err)
		}
	}
}

func (g *Game) saveProgress() {
	if g.opts.Saver == nil {
		return
	}
	payload, err := EncodeSave(g.score, g.ctrl.Snapshot())
	if err == nil {
		err = g.opts.Saver.SaveGame(g.ctrl.Level(), payload)
	}
	if err != nil {
		g.logger.Warn("cannot save game", "level", g.ctrl.Level(), "err", err)
	}
}

func (g *Game) deleteSave(level int) {
	if g.opts.Saver == nil {
		return
	}
	if err := g.opts.Saver.DeleteSave(level); err != nil {
		g.logger.Warn("cannot delete save", "level", level, "err", err)
	}
}

// nextLevel advances the campaign after a win.
func (g *Game) nextLevel() {
	if g.levelIndex+1 >= len(g.opts.Levels) {
		g.finished = true
		g.message = "All levels cleared!"
		return
	}
	g.levelIndex++
	g.startLevel(false)
}

// levelOver reports whether the current level is won or lost.
func (g *Game) levelOver() bool {
	return g.ctrl != nil && g.ctrl.State() == core.StateFinished
}

func (g *Game) result() platformcore.StepResult {
	return platformcore.StepResult{State: g.State(), Busy: g.anim.Busy()}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		Score:    g.score,
		GameOver: g.finished || g.levelOver(),
		Paused:   g.paused,
	}
	if g.ctrl != nil {
		st.Level = g.ctrl.Level()
		st.Won = g.ctrl.Won()
	}
	return st
}

// Controller exposes the engine for the current level, nil when no level
// is loaded.
func (g *Game) Controller() *core.Controller {
	return g.ctrl
}

// Cursor returns the cursor cell.
func (g *Game) Cursor() core.Coord {
	return g.cursor
}

// Busy reports whether a turn is being played back.
func (g *Game) Busy() bool {
	return g.anim.Busy()
}
