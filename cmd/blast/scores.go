package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show high scores",
	Long: `Display the top 10 scores over all levels, or for one level together
with its play statistics.

Examples:
  blast scores
  blast scores 3
  blast scores --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, args []string) {
	level := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			fail(fmt.Errorf("invalid level %q", args[0]))
		}
		level = n
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(blast.ID); err != nil {
			store.Close()
			fail(err)
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(blast.ID, level, 10)
	if err != nil {
		store.Close()
		fail(fmt.Errorf("retrieving scores: %w", err))
	}

	if level == 0 {
		fmt.Println("High Scores - all levels")
	} else {
		fmt.Printf("High Scores - level %d\n", level)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Finish a level with 'blast play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-10s  %s\n", "Rank", "Level", "Score", "Date")
	fmt.Printf("  %-4s  %-5s  %-10s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-5d  %-10d  %s\n", i+1, entry.Level, entry.Score, dateStr)
	}

	fmt.Println()
	if level == 0 {
		return
	}
	if stats, err := store.LevelStats(level); err == nil {
		fmt.Printf("Played: %d  Won: %d  Best: %d  Most moves left: %d\n",
			stats.Plays, stats.Wins, stats.BestScore, stats.BestMoves)
	}
}
