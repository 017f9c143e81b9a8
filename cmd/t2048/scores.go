package main

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresRun   string
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show the best runs",
	Long: `Display the best runs for a variant, or a summary of every variant
when none is given.

Examples:
  t2048 scores
  t2048 scores 2048
  t2048 scores 2048_big --limit 20
  t2048 scores --run 7d0c6a0e-1c3f-4f0e-9a51-6a3c2d9b8e11
  t2048 scores 2048_mini --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresRun, "run", "", "Show a single run by ID")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores and runs of the variant")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagScoresRun != "":
		return showRun(store, flagScoresRun)
	case len(args) == 0:
		if flagScoresClear {
			return fmt.Errorf("--clear needs a variant")
		}
		return showSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 't2048 list' to see available variants)", gameID)
	}

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("error clearing scores: %w", err)
		}
		fmt.Printf("Cleared all scores for %s.\n", gameID)
		return nil
	}

	return showTopRuns(store, gameID)
}

func showTopRuns(store *storage.Store, gameID string) error {
	g, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("Best runs - %s\n", g.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 't2048 play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-10s  %-10s  %s\n", "Rank", "Score", "Max", "Moves", "Player", "Outcome", "When")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-10s  %-10s  %s\n", "----", "-----", "---", "-----", "------", "-------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %-10s  %-6d  %-6d  %-10s  %-10s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.MaxTile, r.Moves, player, r.Outcome, humanize.Time(r.CreatedAt))
	}

	if stats, err := store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %s over %s finished games\n", humanize.Comma(int64(stats.HighScore)), humanize.Comma(int64(stats.GamesCount)))
	}
	return nil
}

func showSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "Variant", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "-------", "-----", "----", "-------", "-----------")

	for _, id := range ids {
		st := all[id]
		fmt.Printf("  %-14s  %-6d  %-10s  %-10s  %s\n",
			id, st.GamesCount, humanize.Comma(int64(st.HighScore)),
			humanize.CommafWithDigits(st.AvgScore, 0), humanize.Time(st.LastPlayed))
	}
	return nil
}

func showRun(store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run       %s\n", r.RunID)
	fmt.Printf("Variant   %s\n", r.GameID)
	if r.Player != "" {
		fmt.Printf("Player    %s\n", r.Player)
	}
	fmt.Printf("Outcome   %s\n", r.Outcome)
	fmt.Printf("Score     %s\n", humanize.Comma(int64(r.Score)))
	fmt.Printf("Max tile  %d\n", r.MaxTile)
	fmt.Printf("Moves     %d (%d undone)\n", r.Moves, r.Undos)
	fmt.Printf("Board     %dx%d\n", r.Rows, r.Cols)
	fmt.Printf("Seed      %d\n", r.Seed)
	fmt.Printf("Played    %s (%s)\n", r.CreatedAt.Format("2006-01-02 15:04"), humanize.Time(r.CreatedAt))
	return nil
}
