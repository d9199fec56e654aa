package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
)

var flagNewGame bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the campaign",
	Long: `Start playing at the given level, or at the highest unlocked level.
A saved game for that level is resumed unless --new is set.

Controls:
  Arrows/hjkl      - Move the cursor
  Space/Enter      - Tap (Enter also advances after a win)
  Mouse click      - Tap a cell
  ?                - Show the group under the cursor
  P                - Pause
  R                - Restart the level
  Esc/B            - Back
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More moves
  normal - Level files as written, slightly fewer moves on later levels
  hard   - Fewer moves, shrinking with the level number
  fixed  - Level files as written

Examples:
  blast play
  blast play 4
  blast play 4 --new --difficulty hard
  blast play --levels-dir ./my-levels`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNewGame, "new", false, "Ignore the saved game and start the level fresh")
}

func runPlay(_ *cobra.Command, args []string) {
	app, cleanup, err := setup(true, io.Discard)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	if len(app.Levels) == 0 {
		cleanup()
		fail(fmt.Errorf("no levels found"))
	}

	level := 0
	if len(args) == 1 {
		level, err = strconv.Atoi(args[0])
		if err != nil {
			cleanup()
			fail(fmt.Errorf("invalid level %q", args[0]))
		}
	} else if app.Store != nil {
		if n, err := app.Store.UnlockedLevel(); err == nil {
			level = n
		}
	}

	resume := false
	if !flagNewGame && app.Store != nil {
		if _, ok, err := app.Store.LoadGame(level); err == nil && ok {
			resume = true
		}
	}

	game := app.NewGame(app.Saver(), level, resume)
	if _, err := tui.Run(game, runtimeConfig()); err != nil {
		cleanup()
		fail(fmt.Errorf("running game: %w", err))
	}
}
