// Package game adapts the board engine to the platform's Game interface:
// campaign, endless and classic modes on configurable grid sizes, with
// slide animation, undo and hints.
package game

import (
	"github.com/vovakirdan/tui-2048/internal/autoplay"
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign" // clear level targets one after another
	ModeEndless  Mode = "endless"  // no target, play until stuck
	ModeClassic  Mode = "classic"  // reaching the win tile ends the game
)

// Variant is a registered combination of mode and grid size.
// Zero Rows/Cols take the size from the board config.
type Variant struct {
	ID    string
	Title string
	Mode  Mode
	Rows  int
	Cols  int
}

// Variants lists every registered variant.
var Variants = []Variant{
	{ID: "2048", Title: "2048", Mode: ModeCampaign},
	{ID: "2048_endless", Title: "2048 (Endless)", Mode: ModeEndless},
	{ID: "2048_classic", Title: "2048 (Classic)", Mode: ModeClassic},
	{ID: "2048_mini", Title: "2048 Mini (3x3)", Mode: ModeEndless, Rows: 3, Cols: 3},
	{ID: "2048_big", Title: "2048 Big (5x5)", Mode: ModeEndless, Rows: 5, Cols: 5},
	{ID: "2048_huge", Title: "2048 Huge (6x6)", Mode: ModeEndless, Rows: 6, Cols: 6},
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, func() registry.Game {
			return NewVariant(v)
		})
	}
}

// hintDuration is how long a hint arrow stays on screen, in ticks.
const hintDuration = 90

// Game implements the 2048 puzzle game.
type Game struct {
	variant    Variant
	difficulty config.DifficultyPreset
	startLevel int
	best       int

	cfg     config.T2048Config
	levels  []Level
	rng     board.Rand
	grid    *board.Grid
	spawner *board.Spawner
	tick    uint64

	score         int
	moves         int
	undos         int
	levelIndex    int // Current level (0-indexed)
	currentTarget int // 0 means no target

	// One level of undo
	prevGrid  *board.Grid
	prevScore int
	canUndo   bool

	hint      board.Direction
	hintTicks int

	anim animator

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int
}

// New creates a new campaign mode 2048 game.
func New() *Game {
	return NewVariant(Variants[0])
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless() *Game {
	return NewVariant(Variants[1])
}

// NewVariant creates a game for v.
func NewVariant(v Variant) *Game {
	return &Game{variant: v}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Mode returns the variant's mode.
func (g *Game) Mode() Mode {
	return g.variant.Mode
}

// SetStartLevel sets the campaign level (1-based) the next Reset starts at.
// 0 starts from the beginning.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// SetDifficulty overrides the process-wide difficulty preset for this game.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.difficulty = p
}

// SetBest sets the best score shown in the HUD.
func (g *Game) SetBest(best int) {
	g.best = best
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	g.cfg = loadConfig(g.difficulty)
	g.levels = LevelsFrom(g.cfg)

	rows, cols := g.variant.Rows, g.variant.Cols
	if rows == 0 || cols == 0 {
		rows, cols = g.cfg.Board.Rows, g.cfg.Board.Cols
	}
	grid, err := board.NewGrid(rows, cols)
	if err != nil {
		grid, _ = board.NewGrid(board.DefaultSize, board.DefaultSize)
	}
	g.grid = grid

	g.rng = board.NewRand(rt.Seed)
	g.spawner = board.NewSpawner(g.rng, g.cfg.Spawn.FourProbability)
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.undos = 0
	g.prevGrid = nil
	g.canUndo = false
	g.hintTicks = 0
	g.anim = animator{}
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0

	g.levelIndex = 0
	if g.variant.Mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= len(g.levels) {
		g.levelIndex = g.startLevel - 1
	}
	g.loadLevel()

	for range min(g.cfg.Board.StartTiles, grid.Rows()*grid.Cols()) {
		g.spawner.Spawn(grid)
	}

	g.Resize(rt.ScreenW, rt.ScreenH)
}

// Resize updates the screen dimensions without touching the game state.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	g.spawner.SetFourProbability(g.cfg.Spawn.FourProbability)

	switch g.variant.Mode {
	case ModeEndless:
		g.currentTarget = 0
	case ModeClassic:
		g.currentTarget = g.cfg.Rules.WinTile
	default:
		if len(g.levels) == 0 {
			g.currentTarget = g.cfg.Rules.WinTile
			return
		}
		level := g.levels[min(g.levelIndex, len(g.levels)-1)]
		g.currentTarget = level.Target
		if g.cfg.Spawn.PerLevel {
			g.spawner.SetFourProbability(level.Spawn4)
		}
	}
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minScreenSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.finished() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.anim.update()
	if g.hintTicks > 0 {
		g.hintTicks--
	}

	// Level cleared banner; Confirm skips the wait
	if g.levelCleared {
		g.levelClearTicks++
		if g.levelClearTicks >= g.cfg.Rules.LevelClearTicks || in.Has(core.ActionConfirm) {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if g.finished() {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		g.undo()
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionHint) {
		g.showHint()
	}

	dir, ok := directionFor(in.FirstDirection())
	if !ok {
		return core.StepResult{State: g.State()}
	}
	moved := g.processMove(dir)
	return core.StepResult{State: g.State(), Moved: moved}
}

func directionFor(a core.Action) (board.Direction, bool) {
	switch a {
	case core.ActionUp:
		return board.Up, true
	case core.ActionDown:
		return board.Down, true
	case core.ActionLeft:
		return board.Left, true
	case core.ActionRight:
		return board.Right, true
	default:
		return 0, false
	}
}

// processMove applies one move. A move that changes nothing is ignored:
// no spawn, no score, and the undo slot is kept.
func (g *Game) processMove(dir board.Direction) bool {
	// A new move cuts the running animation short
	g.anim.finish()

	before := g.grid.Clone()
	res := board.ApplyTracked(g.grid, dir)
	if !res.Moved {
		return false
	}

	if g.cfg.Rules.Undo {
		g.prevGrid = before
		g.prevScore = g.score
		g.canUndo = true
	}

	g.score += res.Score
	g.moves++
	g.hintTicks = 0

	spawned, ok := g.spawner.Spawn(g.grid)
	if g.cfg.Animation.Enabled {
		g.anim.start(res.Slides, spawned, ok, g.cfg.Animation)
	}

	// Target check before the terminal check: clearing the target on the
	// last possible move still counts.
	if g.currentTarget > 0 && g.grid.MaxTile() >= g.currentTarget {
		g.canUndo = false
		if g.variant.Mode == ModeClassic {
			g.won = true
			return true
		}
		g.levelCleared = true
		g.levelClearTicks = 0
		return true
	}

	if board.IsGameOver(g.grid) {
		g.gameOver = true
		g.canUndo = false
	}
	return true
}

// undo restores the board and score from before the last accepted move.
func (g *Game) undo() {
	if !g.canUndo || g.prevGrid == nil {
		return
	}
	g.anim.finish()
	// Same size by construction
	_ = g.grid.CopyFrom(g.prevGrid)
	g.score = g.prevScore
	g.undos++
	g.canUndo = false
	g.hintTicks = 0
}

// showHint asks the greedy policy for a move and shows it for a while.
func (g *Game) showHint() {
	dir, ok := autoplay.Greedy{}.Choose(g.grid)
	if !ok {
		return
	}
	g.hint = dir
	g.hintTicks = hintDuration
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= len(g.levels)-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()

	// Board and score carry over. The position may already be stuck.
	if board.IsGameOver(g.grid) {
		g.gameOver = true
	}
}

// finished reports whether the game has ended.
func (g *Game) finished() bool {
	return g.gameOver || g.won
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	maxTile := 0
	if g.grid != nil {
		maxTile = g.grid.MaxTile()
	}
	return core.GameState{
		Score:    g.score,
		MaxTile:  maxTile,
		Moves:    g.moves,
		GameOver: g.finished(),
		Won:      g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}

// Undos returns how many moves were taken back.
func (g *Game) Undos() int {
	return g.undos
}

// Size returns the grid dimensions.
func (g *Game) Size() (rows, cols int) {
	return g.grid.Rows(), g.grid.Cols()
}

// Grid returns a copy of the current grid.
func (g *Game) Grid() *board.Grid {
	return g.grid.Clone()
}
