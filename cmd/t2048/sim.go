package main

import (
	"context"
	"fmt"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/autoplay"
	"github.com/vovakirdan/tui-2048/internal/board"
)

var (
	flagSimPolicy   string
	flagSimGames    int
	flagSimSize     int
	flagSimWorkers  int
	flagSimMaxMoves int
	flagSimFourProb float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless games with an autoplayer",
	Long: `Play games without a terminal UI and print a summary.

Game i uses seed --seed + i, so the same flags always give the same
results. Policies: ` + strings.Join(autoplay.PolicyNames(), ", ") + `.

Examples:
  t2048 sim
  t2048 sim --policy random --games 1000
  t2048 sim --size 5 --seed 42 --workers 4`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimPolicy, "policy", "greedy", "Autoplay policy")
	simCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimSize, "size", board.DefaultSize, "Board size (rows and columns)")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", runtime.NumCPU(), "Games played in parallel")
	simCmd.Flags().IntVar(&flagSimMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	simCmd.Flags().Float64Var(&flagSimFourProb, "four-prob", board.DefaultFourProbability, "Probability that a spawned tile is a 4")
}

func runSim(_ *cobra.Command, _ []string) error {
	if _, err := autoplay.ParsePolicy(flagSimPolicy, nil); err != nil {
		return err
	}
	if flagSimGames < 1 {
		return fmt.Errorf("--games must be at least 1")
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	cfg := autoplay.DefaultConfig()
	cfg.Rows, cfg.Cols = flagSimSize, flagSimSize
	cfg.Seed = seed
	cfg.MaxMoves = flagSimMaxMoves
	cfg.FourProbability = flagSimFourProb

	newPolicy := func(s int64) autoplay.Policy {
		// The policy's own stream must differ from the spawner's.
		p, _ := autoplay.ParsePolicy(flagSimPolicy, board.NewRand(^s))
		return p
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Debug("simulation started", "policy", flagSimPolicy, "games", flagSimGames,
		"size", flagSimSize, "seed", seed, "workers", flagSimWorkers)
	start := time.Now()

	results, err := autoplay.RunMany(ctx, newPolicy, cfg, flagSimGames, flagSimWorkers)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	printSummary(autoplay.Summarize(results), seed, time.Since(start))
	if flagSimGames == 1 {
		fmt.Println()
		fmt.Println(results[0].Grid.String())
	}
	return nil
}

func printSummary(s autoplay.Summary, seed int64, elapsed time.Duration) {
	fmt.Printf("%s games of %dx%d with %s (seeds %d..%d) in %s\n",
		humanize.Comma(int64(s.Games)), flagSimSize, flagSimSize, flagSimPolicy,
		seed, seed+int64(s.Games)-1, elapsed.Round(time.Millisecond))
	fmt.Println()
	fmt.Printf("  Best score   %s\n", humanize.Comma(int64(s.BestScore)))
	fmt.Printf("  Mean score   %s\n", humanize.CommafWithDigits(s.MeanScore, 1))
	fmt.Printf("  Mean moves   %s\n", humanize.CommafWithDigits(s.MeanMoves, 1))
	fmt.Println()
	fmt.Println("  Max tile   Games   Share")

	tiles := make([]int, 0, len(s.TileCounts))
	for t := range s.TileCounts {
		tiles = append(tiles, t)
	}
	slices.Sort(tiles)
	slices.Reverse(tiles)

	for _, t := range tiles {
		n := s.TileCounts[t]
		fmt.Printf("  %-8d   %-5d   %5.1f%%\n", t, n, 100*float64(n)/float64(s.Games))
	}
}
