package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalidConfig, s)
	}
}

// FourProbabilityForPreset returns the spawn-4 probability a preset starts from.
func FourProbabilityForPreset(preset DifficultyPreset, base float64) float64 {
	switch preset {
	case DifficultyEasy:
		return base / 2
	case DifficultyHard:
		return min(base*2, 1)
	default:
		return base
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
//
// easy halves the chance of 4s and keeps undo, hard doubles it and disables
// undo, fixed keeps the configured probability for every campaign level.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	cfg.Spawn.FourProbability = FourProbabilityForPreset(preset, cfg.Spawn.FourProbability)

	switch preset {
	case DifficultyEasy:
		cfg.Rules.Undo = true
		for i := range cfg.Levels {
			cfg.Levels[i].Spawn4 /= 2
		}
	case DifficultyHard:
		cfg.Rules.Undo = false
		for i := range cfg.Levels {
			cfg.Levels[i].Spawn4 = min(cfg.Levels[i].Spawn4*2, 1)
		}
	case DifficultyFixed:
		cfg.Spawn.PerLevel = false
	}
}
