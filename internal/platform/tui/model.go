package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Optional capabilities a game may implement on top of registry.Game.
type (
	resizer          interface{ Resize(w, h int) }
	bestSetter       interface{ SetBest(best int) }
	startLeveler     interface{ SetStartLevel(level int) }
	difficultySetter interface {
		SetDifficulty(p config.DifficultyPreset)
	}
	runStats interface {
		Undos() int
		Size() (rows, cols int)
	}
)

// GameOptions holds per-session settings for a game.
type GameOptions struct {
	Player     string                  // recorded with runs; the SSH user
	StartLevel int                     // campaign start level, 0 for the first
	Difficulty config.DifficultyPreset // empty keeps the process-wide preset
	Logger     *log.Logger             // nil disables logging
}

// GameModel is the Bubble Tea model for playing one game variant.
// It is used directly for local play and embedded in SessionModel over SSH.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	opts       GameOptions
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	quitting   bool
	backToMenu bool
	recorded   bool   // Whether the current game has been saved
	lastRunID  string // Run ID of the last saved game
	quitOnBack bool   // Standalone program: leaving the game ends it
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if s, ok := game.(startLeveler); ok {
		s.SetStartLevel(opts.StartLevel)
	}
	if s, ok := game.(difficultySetter); ok && opts.Difficulty != "" {
		s.SetDifficulty(opts.Difficulty)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.resetGame()
	return tickCmd(m.config.TickRate)
}

// resetGame resets the game and refreshes the best score shown in the HUD.
func (m *GameModel) resetGame() {
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.recorded = false

	if b, ok := m.game.(bestSetter); ok && m.store != nil {
		if best, err := m.store.HighScore(m.game.ID()); err == nil {
			b.SetBest(best)
		}
	}
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	}

	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	// Back to menu is allowed when the game is over or paused
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.recordAbandoned()
		m.backToMenu = true
		if m.quitOnBack {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && (m.gameState.GameOver || m.gameState.Paused) {
		m.recordAbandoned()
		m.config.Seed = time.Now().UnixNano()
		m.resetGame()
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save score and run on game over (once)
	if m.gameState.GameOver && !m.recorded {
		outcome := storage.OutcomeGameOver
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.record(outcome)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordAbandoned saves a run left before it ended. Untouched games are
// not recorded.
func (m *GameModel) recordAbandoned() {
	if m.recorded || m.gameState.Moves == 0 {
		return
	}
	m.record(storage.OutcomeQuit)
}

// record saves the score (finished games only) and the run record.
// Storage errors are logged; the game continues regardless.
func (m *GameModel) record(outcome string) {
	m.recorded = true
	if m.store == nil {
		return
	}

	st := m.gameState
	if outcome != storage.OutcomeQuit && st.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), st.Score); err != nil {
			m.logError("could not save score", err)
		}
	}

	run := storage.Run{
		GameID:  m.game.ID(),
		Player:  m.opts.Player,
		Score:   st.Score,
		MaxTile: st.MaxTile,
		Moves:   st.Moves,
		Seed:    m.config.Seed,
		Outcome: outcome,
	}
	if rs, ok := m.game.(runStats); ok {
		run.Undos = rs.Undos()
		run.Rows, run.Cols = rs.Size()
	}

	runID, err := m.store.SaveRun(run)
	if err != nil {
		m.logError("could not save run", err)
		return
	}
	m.lastRunID = runID
	if m.opts.Logger != nil {
		m.opts.Logger.Info("run saved", "run", runID, "game", run.GameID, "player", run.Player,
			"score", run.Score, "max_tile", run.MaxTile, "outcome", outcome)
	}
}

func (m *GameModel) logError(msg string, err error) {
	if m.opts.Logger != nil {
		m.opts.Logger.Error(msg, "game", m.game.ID(), "error", err)
	}
}

// saveScreenshot saves the current screen to ~/.t2048/screenshots.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logError("could not save screenshot", err)
		return
	}
	dir := filepath.Join(home, ".t2048", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logError("could not save screenshot", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logError("could not save screenshot", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// LastRunID returns the run ID of the last recorded game, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// Result summarizes a finished local session.
type Result struct {
	State      core.GameState
	RunID      string
	BackToMenu bool
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts GameOptions) (Result, error) {
	model := NewGameModel(game, store, cfg, opts)
	model.quitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return Result{}, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return Result{}, nil
	}
	return Result{State: m.State(), RunID: m.LastRunID(), BackToMenu: m.BackToMenu()}, nil
}
