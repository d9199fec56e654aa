package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Blast with a level picker menu",
	Long: `Start Blast in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play a level. A level with a
saved game is resumed; N starts it fresh. Back from a game returns to the
menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play level
  N            - New game on the level
  Tab          - Scores
  Q            - Quit

Examples:
  blast menu
  blast menu --fps 60
  blast menu --db ./blast.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	app, cleanup, err := setup(true, io.Discard)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(app, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(app, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		sel := menuResult.Selection
		if sel == nil {
			break
		}

		// New seed for each game unless one was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		game := app.NewGame(app.Saver(), sel.Level, sel.Resume)
		backToMenu, err := tui.Run(game, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		if !backToMenu {
			break
		}
	}
}
