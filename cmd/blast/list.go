package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all levels",
	Long:  `Shows the levels of the configured pack with their size, moves and goals.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	app, cleanup, err := setup(false, os.Stderr)
	if err != nil {
		fail(err)
	}
	defer cleanup()

	if len(app.Levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range app.Levels {
		maxNameLen = max(maxNameLen, len(lvl.Name))
	}

	fmt.Printf("  %-3s  %-*s  %-5s  %-5s  %s\n", "#", maxNameLen, "Name", "Size", "Moves", "Goals")
	fmt.Printf("  %-3s  %-*s  %-5s  %-5s  %s\n", "--", maxNameLen, "----", "----", "-----", "-----")

	for _, lvl := range app.Levels {
		size := fmt.Sprintf("%dx%d", lvl.Layout.Width, lvl.Layout.Height)
		fmt.Printf("  %-3d  %-*s  %-5s  %-5d  %s\n",
			lvl.Number(), maxNameLen, lvl.Name, size, lvl.Layout.Moves, strings.Join(lvl.Goals(), " "))
	}

	fmt.Println()
	fmt.Println("Run 'blast play <#>' to play a level.")
}
