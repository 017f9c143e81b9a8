package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: the 2048 campaign).

Controls:
  Arrows/WASD  - Slide tiles
  U            - Undo the last move
  H            - Show a hint
  P            - Pause
  Enter        - Next level after clearing one
  R            - Restart (when paused or over)
  Esc          - Quit (when paused or over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Fewer 4s spawn, undo allowed
  normal - Config values
  hard   - More 4s spawn, no undo
  fixed  - Config spawn rate on every level

Examples:
  t2048 play
  t2048 play 2048_classic
  t2048 play --level 5
  t2048 play 2048_big --difficulty hard
  t2048 play --config ./my-2048.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Campaign level to start from (1-based)")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := game.Variants[0].ID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 't2048 list' to see available variants)", gameID)
	}

	if err := applyGameSettings(); err != nil {
		return err
	}

	g, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("error creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	tuiLogger, closeLog, err := debugLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	result, err := tui.Run(g, store, runtimeConfig(), tui.GameOptions{
		StartLevel: flagLevel,
		Logger:     tuiLogger,
	})
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	printResult(g.Title(), result)
	return nil
}

// applyGameSettings validates --config and sets the process-wide game
// settings before any game is created.
func applyGameSettings() error {
	flagConfig = settings.GetString("config")
	flagDifficulty = settings.GetString("difficulty")

	if flagConfig != "" {
		if _, err := config.LoadT2048(flagConfig); err != nil {
			return err
		}
	}
	game.SetConfigPath(flagConfig)
	return game.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// debugLogger returns the logger handed to the TUI. Stderr belongs to the
// TUI while it runs, so without --debug nothing is logged.
func debugLogger() (*log.Logger, func(), error) {
	if !flagDebug {
		return nil, func() {}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".t2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	f, err := tea.LogToFile(filepath.Join(dir, "t2048.log"), "t2048")
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "t2048",
		Level:           log.DebugLevel,
	})
	return l, func() { f.Close() }, nil
}

func printResult(title string, r tui.Result) {
	st := r.State
	if st.Moves == 0 {
		return
	}

	outcome := "stopped"
	switch {
	case st.Won:
		outcome = "won"
	case st.GameOver:
		outcome = "game over"
	}

	fmt.Printf("%s: %s, score %s, max tile %d, %s moves\n",
		title, outcome, humanize.Comma(int64(st.Score)), st.MaxTile, humanize.Comma(int64(st.Moves)))
	if r.RunID != "" {
		fmt.Printf("Run %s saved.\n", r.RunID)
	}
}
