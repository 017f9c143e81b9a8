package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants and levels from a menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant. "Select
Level..." opens the campaign level list. After a game ends you return to
the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Esc          - Back
  Q            - Quit

Examples:
  t2048 menu
  t2048 menu --fps 30
  t2048 menu --difficulty easy`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameSettings(); err != nil {
		return err
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

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Keep any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return fmt.Errorf("scoreboard: %w", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		sel := menuResult.Selection
		if sel == nil {
			return nil
		}

		g, err := registry.Create(sel.GameID)
		if err != nil {
			logger.Error("error creating game", "game", sel.GameID, "error", err)
			continue
		}

		// A fresh seed per game unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		result, err := tui.Run(g, store, cfg, tui.GameOptions{
			StartLevel: sel.StartLevel,
			Logger:     tuiLogger,
		})
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		if !result.BackToMenu {
			printResult(g.Title(), result)
			return nil
		}
	}
}
