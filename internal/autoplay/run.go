package autoplay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Config describes a headless game.
type Config struct {
	Rows            int
	Cols            int
	StartTiles      int
	FourProbability float64
	Seed            int64
	MaxMoves        int // 0 means play until no move is left
}

// DefaultConfig returns a classic 4x4 setup.
func DefaultConfig() Config {
	return Config{
		Rows:            board.DefaultSize,
		Cols:            board.DefaultSize,
		StartTiles:      2,
		FourProbability: board.DefaultFourProbability,
	}
}

// RunResult is the outcome of one headless game.
type RunResult struct {
	Seed     int64
	Score    int
	Moves    int
	MaxTile  int
	GameOver bool // false when MaxMoves stopped the game
	Grid     *board.Grid
}

// Run plays one game with p. It checks ctx between moves and returns the
// partial result together with ctx.Err() when cancelled.
func Run(ctx context.Context, p Policy, cfg Config) (RunResult, error) {
	g, err := board.NewGrid(cfg.Rows, cfg.Cols)
	if err != nil {
		return RunResult{}, fmt.Errorf("autoplay: %w", err)
	}
	sp := board.NewSpawner(board.NewRand(cfg.Seed), cfg.FourProbability)
	for range max(cfg.StartTiles, 1) {
		sp.Spawn(g)
	}

	res := RunResult{Seed: cfg.Seed, Grid: g}
	for {
		if err := ctx.Err(); err != nil {
			res.MaxTile = g.MaxTile()
			return res, err
		}
		if cfg.MaxMoves > 0 && res.Moves >= cfg.MaxMoves {
			break
		}

		dir, ok := p.Choose(g)
		if !ok {
			res.GameOver = true
			break
		}
		moved, delta := board.Apply(g, dir)
		if !moved {
			// A policy that returns a non-moving direction would loop forever.
			return res, fmt.Errorf("autoplay: policy %s chose a blocked move %s", p.Name(), dir)
		}
		res.Score += delta
		res.Moves++
		sp.Spawn(g)

		if board.IsGameOver(g) {
			res.GameOver = true
			break
		}
	}

	res.MaxTile = g.MaxTile()
	return res, nil
}

// PolicyFactory creates a policy for the game played with seed.
type PolicyFactory func(seed int64) Policy

// RunMany plays n games with seeds cfg.Seed, cfg.Seed+1, ... on up to
// workers goroutines. Results are returned in seed order.
func RunMany(ctx context.Context, newPolicy PolicyFactory, cfg Config, n, workers int) ([]RunResult, error) {
	results := make([]RunResult, n)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(workers, 1))
	for i := range n {
		c := cfg
		c.Seed = cfg.Seed + int64(i)
		eg.Go(func() error {
			res, err := Run(ctx, newPolicy(c.Seed), c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary aggregates a batch of results.
type Summary struct {
	Games     int
	BestScore int
	MeanScore float64
	MeanMoves float64
	// TileCounts maps a max tile to how many games ended with it.
	TileCounts map[int]int
}

// Summarize aggregates results.
func Summarize(results []RunResult) Summary {
	s := Summary{Games: len(results), TileCounts: make(map[int]int)}
	if len(results) == 0 {
		return s
	}
	var score, moves int
	for _, r := range results {
		score += r.Score
		moves += r.Moves
		s.BestScore = max(s.BestScore, r.Score)
		s.TileCounts[r.MaxTile]++
	}
	s.MeanScore = float64(score) / float64(len(results))
	s.MeanMoves = float64(moves) / float64(len(results))
	return s
}
