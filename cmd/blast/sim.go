package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/games/blast/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels"
)

var (
	flagSimBoard bool
	flagSimRuns  int
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Play a level headless with a greedy policy",
	Long: `Play a level without a terminal UI. Each turn taps a bomb if there is
one, otherwise the largest group. Prints every turn and the outcome.

With --runs N the level is played N times with consecutive seeds and
only the win rate is printed.

Examples:
  blast sim 1
  blast sim 3 --seed 42 --board
  blast sim 5 --runs 100 --difficulty hard`,
	Args: cobra.ExactArgs(1),
	Run:  runSim,
}

func init() {
	simCmd.Flags().BoolVar(&flagSimBoard, "board", false, "Print the board after every turn")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of games to play")
}

// simResult is the outcome of one headless game.
type simResult struct {
	won       bool
	turns     int
	movesLeft int
	score     int
}

func runSim(_ *cobra.Command, args []string) {
	number, err := strconv.Atoi(args[0])
	if err != nil {
		fail(fmt.Errorf("invalid level %q", args[0]))
	}

	app, cleanup, err := setup(false, os.Stderr)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	idx := slices.IndexFunc(app.Levels, func(l levels.Level) bool { return l.Number() == number })
	if idx < 0 {
		cleanup()
		fail(fmt.Errorf("level %d not found", number))
	}
	lvl := app.Levels[idx]

	moves := config.NewDifficultyManager(app.Config.Difficulty).Moves(lvl.Layout.Moves, number)
	scorer := blast.NewScorer(app.Config.Scoring)
	verbose := flagSimRuns <= 1
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	wins := 0
	for run := 0; run < max(flagSimRuns, 1); run++ {
		ctrl, err := lvl.WithMoves(moves).NewController(core.Options{
			Seed:          seed + int64(run),
			Logger:        app.Logger,
			Policy:        app.Config.Policy(),
			BombThreshold: app.Config.Engine.BombThreshold,
		})
		if err != nil {
			cleanup()
			fail(err)
		}

		res := simulate(ctrl, scorer, verbose)
		if res.won {
			wins++
		}
		if verbose {
			outcome := "LOST"
			if res.won {
				outcome = "WON"
			}
			fmt.Printf("\n%s after %d turns, %d moves left, score %d\n", outcome, res.turns, res.movesLeft, res.score)
		}
	}

	if !verbose {
		fmt.Printf("Level %d: won %d of %d games (%.0f%%)\n", number, wins, flagSimRuns, 100*float64(wins)/float64(flagSimRuns))
	}
}

// simulate plays ctrl to the end.
func simulate(ctrl *core.Controller, scorer blast.Scorer, verbose bool) simResult {
	var res simResult
	if verbose {
		fmt.Printf("Level %d, %d moves\n", ctrl.Level(), ctrl.Moves())
		if flagSimBoard {
			fmt.Println(ctrl.Grid())
		}
	}

	for ctrl.State() != core.StateFinished {
		at, ok := blast.BestTap(ctrl)
		if !ok {
			if verbose {
				fmt.Println("no move available")
			}
			break
		}

		turn := ctrl.Tap(at)
		res.turns++
		res.score += scorer.Turn(turn)

		if verbose {
			fmt.Printf("turn %2d: %-8s at %-7v cubes %2d  obstacles %d  moves %2d  goals %s\n",
				res.turns, turn.Outcome, at,
				turn.Removed(core.KindCube), turn.Removed(core.KindObstacle),
				turn.MovesLeft, goalSummary(ctrl.Goals()))
			if flagSimBoard {
				fmt.Println(ctrl.Grid())
			}
		}
	}

	res.won = ctrl.Won()
	res.movesLeft = ctrl.Moves()
	if res.won {
		res.score += scorer.Bonus(res.movesLeft)
	}
	return res
}

func goalSummary(goals []core.Goal) string {
	if len(goals) == 0 {
		return "-"
	}
	parts := make([]string, len(goals))
	for i, g := range goals {
		parts[i] = fmt.Sprintf("%s:%d", g.Obstacle.Code(), g.Remaining)
	}
	return strings.Join(parts, " ")
}
