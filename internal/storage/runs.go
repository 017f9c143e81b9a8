package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrRunNotFound is returned by RunByID for an unknown run ID.
	ErrRunNotFound = errors.New("storage: run not found")
	// ErrInvalidRunID is returned when a run ID is not a UUID.
	ErrInvalidRunID = errors.New("storage: invalid run id")
)

// Run outcomes.
const (
	OutcomeGameOver = "game_over"
	OutcomeWon      = "won"
	OutcomeQuit     = "quit"
)

// Run is the record of one finished game.
type Run struct {
	ID        int64
	RunID     string // UUID, assigned by SaveRun when empty
	GameID    string
	Player    string // SSH user, empty for local play
	Score     int
	MaxTile   int
	Moves     int
	Undos     int
	Rows      int
	Cols      int
	Seed      int64
	Outcome   string
	CreatedAt time.Time
}

// SaveRun records a finished run and returns its run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(run.RunID); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, run.RunID)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, score, max_tile, moves, undos, grid_rows, grid_cols, seed, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.GameID,
		run.Player,
		run.Score,
		run.MaxTile,
		run.Moves,
		run.Undos,
		run.Rows,
		run.Cols,
		run.Seed,
		run.Outcome,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	return run.RunID, nil
}

const runColumns = `id, run_id, game_id, player, score, max_tile, moves, undos, grid_rows, grid_cols, seed, outcome, created_at`

// RunByID retrieves a run by its run ID.
func (s *Store) RunByID(runID string) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return run, nil
}

// TopRuns retrieves the best runs for the given game, highest score first.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt any
	err := row.Scan(
		&run.ID,
		&run.RunID,
		&run.GameID,
		&run.Player,
		&run.Score,
		&run.MaxTile,
		&run.Moves,
		&run.Undos,
		&run.Rows,
		&run.Cols,
		&run.Seed,
		&run.Outcome,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	run.CreatedAt = parseTime(createdAt)
	return &run, nil
}
