package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all game variants",
	Long:  `Shows every registered 2048 variant with its board size and mode.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	modes := make(map[string]game.Variant, len(game.Variants))
	for _, v := range game.Variants {
		modes[v.ID] = v
	}

	fmt.Printf("  %-*s  %-8s  %-6s  %s\n", maxIDLen, "ID", "Mode", "Board", "Title")
	fmt.Printf("  %-*s  %-8s  %-6s  %s\n", maxIDLen, "--", "----", "-----", "-----")

	for _, g := range games {
		v := modes[g.ID]
		size := "config"
		if v.Rows > 0 {
			size = fmt.Sprintf("%dx%d", v.Rows, v.Cols)
		}
		fmt.Printf("  %-*s  %-8s  %-6s  %s\n", maxIDLen, g.ID, v.Mode, size, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 't2048 play <id>' to play a variant.")
}
