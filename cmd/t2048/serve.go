package main

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the variant menu. Scores are
stored per-server (all users share the same leaderboard) and runs are
recorded with the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.t2048/host_key

The difficulty preset is read from the settings (--difficulty, T2048_DIFFICULTY
or ~/.t2048/settings.yaml). Changes to the settings file apply to new
sessions without a restart.

Examples:
  t2048 serve                           # Listen on :23234 with auto-generated key
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for new sessions: easy, normal, hard, fixed")
}

// readDifficulty parses the difficulty setting, keeping the current preset
// when the value is invalid.
func readDifficulty(v *viper.Viper, current config.DifficultyPreset) config.DifficultyPreset {
	p, err := config.ParseDifficulty(v.GetString("difficulty"))
	if err != nil {
		logger.Warn("ignoring difficulty setting", "error", err)
		return current
	}
	return p
}

func runServe(_ *cobra.Command, _ []string) error {
	var difficulty atomic.Value
	difficulty.Store(readDifficulty(settings, config.DifficultyNormal))

	watchSettings(func(v *viper.Viper) {
		prev := difficulty.Load().(config.DifficultyPreset)
		next := readDifficulty(v, prev)
		if next != prev {
			difficulty.Store(next)
			logger.Info("difficulty changed", "from", prev, "to", next)
		}
	})

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = settings.GetString("ssh")
	cfg.HostKeyPath = settings.GetString("host-key")
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(settings.GetInt("idle-timeout")) * time.Minute
	cfg.TickRate = flagFPS
	cfg.Logger = logger.WithPrefix("t2048-ssh")
	cfg.Difficulty = func() config.DifficultyPreset {
		return difficulty.Load().(config.DifficultyPreset)
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.ListenAndServe(ctx)
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
