package game

import (
	"sync"

	"github.com/vovakirdan/tui-2048/internal/config"
)

// Process-wide settings applied when a game is reset. They are set once by
// the CLI before any game starts; SSH sessions override the difficulty per
// game with (*Game).SetDifficulty.
var (
	settingsMu       sync.RWMutex
	configPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	configPath = path
}

// SetDifficultyPreset sets the default difficulty preset.
func SetDifficultyPreset(preset string) error {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		return err
	}
	settingsMu.Lock()
	defer settingsMu.Unlock()
	difficultyPreset = p
	return nil
}

// loadConfig loads the game config and applies preset, falling back to the
// process-wide preset when preset is empty. Load errors fall back to the
// built-in defaults, as the CLI validates --config before starting.
func loadConfig(preset config.DifficultyPreset) config.T2048Config {
	settingsMu.RLock()
	path, def := configPath, difficultyPreset
	settingsMu.RUnlock()

	cfg, err := config.LoadT2048(path)
	if err != nil {
		cfg = config.DefaultT2048Config()
	}

	if preset == "" {
		preset = def
	}
	if preset != "" {
		config.ApplyT2048Preset(&cfg, preset)
	}
	return cfg
}
