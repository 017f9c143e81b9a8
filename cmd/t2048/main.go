// t2048 is the 2048 sliding-tile puzzle for the terminal.
//
// Usage:
//
//	t2048 list               - List game variants
//	t2048 play [variant]     - Play a variant (default: 2048 campaign)
//	t2048 menu               - Pick variants and levels interactively
//	t2048 serve              - Start SSH server for remote play
//	t2048 scores [variant]   - Show the best runs for a variant
//	t2048 sim                - Let an autoplayer play headless games
//	t2048 replay <moves>     - Apply a list of moves to a seeded board
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.t2048/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--debug              - Log to ~/.t2048/t2048.log while the TUI runs
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import the game to register its variants
	_ "github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

// Global flags, resolved through settings before any command runs
var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagDebug    bool
)

var logger = tui.NewLogger("t2048")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 - slide and merge tiles in your terminal",
	Long: `t2048 is the 2048 sliding-tile puzzle for the terminal.

Slide the board in one of four directions; equal tiles that collide merge
into their sum, and a new tile appears after every move that changed the
board. Reach the target tile to clear a level.

Available commands:
  list     - Show all game variants
  play     - Play a variant directly
  menu     - Interactive variant and level picker
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Run headless games with an autoplayer
  replay   - Apply a move list to a seeded board

Examples:
  t2048 list
  t2048 play
  t2048 play 2048_big --difficulty hard
  t2048 serve --ssh :2222
  t2048 sim --policy greedy --games 100`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := initSettings(cmd); err != nil {
			return err
		}
		return applyLogLevel()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.t2048/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write logs to ~/.t2048/t2048.log while the TUI runs")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replayCmd)
}

func applyLogLevel() error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	return nil
}
