// blast is a tile-matching puzzle game for the terminal.
//
// Usage:
//
//	blast play [level]       - Play the campaign, optionally from a level
//	blast menu               - Pick a level interactively
//	blast list               - List the levels
//	blast scores [level]     - Show high scores
//	blast serve              - Start SSH server for remote play
//	blast sim <level>        - Play a level headless with a greedy policy
//
// Global flags:
//
//	--fps <rate>            - Set tick rate (default: 30)
//	--seed <value>          - Set RNG seed for reproducible gameplay
//	--db <path>             - Set database path (default: ~/.blast/blast.db)
//	--config <path>         - Custom config YAML
//	--difficulty <preset>   - easy, normal, hard or fixed
//	--levels-dir <dir>      - Load levels from a directory instead of the built-in pack
//	--log-level <level>     - debug, info, warn or error
//	--log-file <path>       - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/levels"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagLogLevel   string
	flagLogFile    string
	flagTheme      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blast",
	Short: "Blast - tap groups of cubes and clear the obstacles",
	Long: `Blast is a tile-matching puzzle for the terminal.

Tap a group of two or more same-colored cubes to clear it. Groups of five
or more leave a bomb behind. Clear every stone, box and vase before the
moves run out.

Available commands:
  play     - Play the campaign
  menu     - Interactive level picker
  list     - Show all levels
  scores   - View high scores
  serve    - Start SSH server for remote play
  sim      - Play a level headless

Examples:
  blast play
  blast play 3 --difficulty hard
  blast menu
  blast serve --ssh :2222
  blast sim 1 --seed 42`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blast/blast.db", "Path to the game database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from this directory")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: no logs while playing)")
	pf.StringVar(&flagTheme, "theme", "default", "Color theme: default, neon, mono")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the logger from the log flags. fallback receives logs
// when no log file is set.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "blast",
	})
	return logger, closeFn, nil
}

// loadConfig reads the config and applies the difficulty flag.
func loadConfig() (config.BlastConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	if flagLevelsDir != "" {
		cfg.Levels.Dir = flagLevelsDir
	}
	return cfg, nil
}

// loadLevels loads the configured level pack.
func loadLevels(cfg config.BlastConfig, logger *log.Logger) ([]levels.Level, error) {
	loader := levels.Embedded()
	if cfg.Levels.Dir != "" {
		loader = levels.Dir(cfg.Levels.Dir)
	}
	loader.Logger = logger
	return loader.LoadAll()
}

// setup builds everything a command needs. The returned cleanup closes
// the store and the log file.
func setup(withStore bool, logFallback io.Writer) (tui.App, func(), error) {
	logger, closeLog, err := newLogger(logFallback)
	if err != nil {
		return tui.App{}, nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		closeLog()
		return tui.App{}, nil, err
	}

	lvls, err := loadLevels(cfg, logger)
	if err != nil {
		closeLog()
		return tui.App{}, nil, err
	}

	theme, err := tui.ThemeByName(flagTheme)
	if err != nil {
		closeLog()
		return tui.App{}, nil, err
	}
	tui.SetTheme(theme)

	app := tui.App{Config: cfg, Levels: lvls, Logger: logger}
	if withStore {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open database, progress will not be saved", "err", err)
			fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		} else {
			app.Store = store
		}
	}

	cleanup := func() {
		if app.Store != nil {
			app.Store.Close()
		}
		closeLog()
	}
	return app, cleanup, nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// fail prints the error and exits.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
