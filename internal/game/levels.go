package game

import "github.com/vovakirdan/tui-2048/internal/config"

// Level defines a campaign level with a target tile.
type Level struct {
	ID     int
	Name   string
	Target int     // Target tile value to reach
	Spawn4 float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
}

// LevelsFrom builds the campaign from a config. IDs are 1-based.
func LevelsFrom(cfg config.T2048Config) []Level {
	levels := make([]Level, len(cfg.Levels))
	for i, lvl := range cfg.Levels {
		levels[i] = Level{
			ID:     i + 1,
			Name:   lvl.Name,
			Target: lvl.Target,
			Spawn4: lvl.Spawn4,
		}
	}
	return levels
}

// Levels returns the campaign levels of the current configuration.
func Levels() []Level {
	return LevelsFrom(loadConfig(""))
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels())
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	levels := Levels()
	names := make([]string, len(levels))
	for i, lvl := range levels {
		names[i] = lvl.Name
	}
	return names
}
