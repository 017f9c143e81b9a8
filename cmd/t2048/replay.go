package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/board"
)

var (
	flagReplaySize  int
	flagReplayQuiet bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <moves>...",
	Short: "Apply a list of moves to a seeded board",
	Long: `Start a board from --seed and apply the given moves in order, printing
the board after each one. Moves are up, down, left, right or their initials,
separated by spaces or commas. A move that changes nothing spawns no tile.

Examples:
  t2048 replay --seed 7 left up right
  t2048 replay --seed 7 --size 3 l,u,r,d,l,u
  t2048 replay --seed 7 --quiet l u r d l u r d`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().IntVar(&flagReplaySize, "size", board.DefaultSize, "Board size (rows and columns)")
	replayCmd.Flags().BoolVar(&flagReplayQuiet, "quiet", false, "Only print the final board")
}

func parseMoves(args []string) ([]board.Direction, error) {
	var moves []board.Direction
	for _, arg := range args {
		for _, name := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			d, err := board.ParseDirection(name)
			if err != nil {
				return nil, err
			}
			moves = append(moves, d)
		}
	}
	return moves, nil
}

func runReplay(_ *cobra.Command, args []string) error {
	moves, err := parseMoves(args)
	if err != nil {
		return err
	}

	g, err := board.NewGrid(flagReplaySize, flagReplaySize)
	if err != nil {
		return err
	}
	sp := board.NewSpawner(board.NewRand(flagSeed), board.DefaultFourProbability)
	sp.Spawn(g)
	sp.Spawn(g)

	if !flagReplayQuiet {
		fmt.Printf("start (seed %d)\n%s\n\n", flagSeed, g)
	}

	score := 0
	for i, d := range moves {
		moved, delta := board.Apply(g, d)
		if moved {
			score += delta
			sp.Spawn(g)
		}

		if !flagReplayQuiet {
			note := ""
			if !moved {
				note = " (no change)"
			}
			fmt.Printf("%d. %s +%d%s\n%s\n\n", i+1, d, delta, note, g)
		}

		if board.IsGameOver(g) {
			fmt.Printf("Game over after %d of %d moves.\n", i+1, len(moves))
			break
		}
	}

	if flagReplayQuiet {
		fmt.Println(g)
	}
	fmt.Printf("Score %s, max tile %d\n", humanize.Comma(int64(score)), g.MaxTile())
	return nil
}
