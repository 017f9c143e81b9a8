package game

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    Mode
	Level   int // Current level (1-indexed), 0 outside campaign
	Target  int // Current target tile value, 0 when there is none
	Score   int
	Moves   int
	Undos   int
	Rows    int
	Cols    int
	Cells   [][]int
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	level := 0
	if g.variant.Mode == ModeCampaign {
		level = g.levelIndex + 1
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    g.variant.Mode,
		Level:   level,
		Target:  g.currentTarget,
		Score:   g.score,
		Moves:   g.moves,
		Undos:   g.undos,
		Rows:    g.grid.Rows(),
		Cols:    g.grid.Cols(),
		Cells:   g.grid.Values(),
		MaxTile: g.grid.MaxTile(),
		State:   state,
	}
}
