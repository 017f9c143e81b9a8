// Package config provides YAML-based game configuration loading and
// difficulty presets for the 2048 game.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Animation AnimationConfig `yaml:"animation"`
	Rules     RulesConfig     `yaml:"rules"`
	Levels    []LevelConfig   `yaml:"levels"`
}

// BoardConfig defines the grid dimensions and the opening position.
type BoardConfig struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	StartTiles int `yaml:"start_tiles"`
}

// SpawnConfig defines how new tiles are drawn.
type SpawnConfig struct {
	FourProbability float64 `yaml:"four_probability"`
	PerLevel        bool    `yaml:"per_level"` // campaign levels override FourProbability
}

// AnimationConfig defines the slide/pop animation lengths in ticks.
type AnimationConfig struct {
	Enabled    bool `yaml:"enabled"`
	SlideTicks int  `yaml:"slide_ticks"`
	PopTicks   int  `yaml:"pop_ticks"`
}

// RulesConfig defines win condition and player aids.
type RulesConfig struct {
	WinTile         int  `yaml:"win_tile"`          // classic mode target
	Undo            bool `yaml:"undo"`              // allow taking back one move
	LevelClearTicks int  `yaml:"level_clear_ticks"` // pause after a campaign level is cleared
}

// LevelConfig defines a campaign level.
type LevelConfig struct {
	Name   string  `yaml:"name"`
	Target int     `yaml:"target"`
	Spawn4 float64 `yaml:"spawn4"`
}

// Validate checks ranges and returns an error wrapping ErrInvalidConfig.
func (c T2048Config) Validate() error {
	b := c.Board
	if b.Rows < 2 || b.Rows > 8 || b.Cols < 2 || b.Cols > 8 {
		return fmt.Errorf("%w: board must be between 2x2 and 8x8, got %dx%d", ErrInvalidConfig, b.Rows, b.Cols)
	}
	if b.StartTiles < 1 || b.StartTiles > b.Rows*b.Cols {
		return fmt.Errorf("%w: start_tiles %d out of range", ErrInvalidConfig, b.StartTiles)
	}
	if p := c.Spawn.FourProbability; p < 0 || p > 1 {
		return fmt.Errorf("%w: four_probability %v not in [0,1]", ErrInvalidConfig, p)
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig)
	}
	if !isPow2(c.Rules.WinTile) || c.Rules.WinTile < 8 {
		return fmt.Errorf("%w: win_tile %d must be a power of two >= 8", ErrInvalidConfig, c.Rules.WinTile)
	}
	for i, lvl := range c.Levels {
		if !isPow2(lvl.Target) || lvl.Target < 8 {
			return fmt.Errorf("%w: level %d target %d must be a power of two >= 8", ErrInvalidConfig, i+1, lvl.Target)
		}
		if lvl.Spawn4 < 0 || lvl.Spawn4 > 1 {
			return fmt.Errorf("%w: level %d spawn4 %v not in [0,1]", ErrInvalidConfig, i+1, lvl.Spawn4)
		}
	}
	return nil
}

func isPow2(v int) bool {
	return v > 0 && v&(v-1) == 0
}
