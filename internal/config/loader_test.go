package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseT2048(defaultT2048YAML)
	require.NoError(t, err)
	assert.Equal(t, DefaultT2048Config(), cfg)
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := writeConfig(t, "board:\n  rows: 5\n  cols: 6\nspawn:\n  four_probability: 0.3\n")

	cfg, err := LoadT2048(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Board.Rows)
	assert.Equal(t, 6, cfg.Board.Cols)
	assert.Equal(t, 2, cfg.Board.StartTiles, "unset fields keep defaults")
	assert.InDelta(t, 0.3, cfg.Spawn.FourProbability, 1e-9)
	assert.Equal(t, 2048, cfg.Rules.WinTile)
	assert.Len(t, cfg.Levels, 10)
}

func TestLoadCustomLevelsReplaceDefaults(t *testing.T) {
	path := writeConfig(t, "levels:\n  - { name: Short, target: 64, spawn4: 0.0 }\n")

	cfg, err := LoadT2048(path)
	require.NoError(t, err)
	require.Len(t, cfg.Levels, 1)
	assert.Equal(t, "Short", cfg.Levels[0].Name)
	assert.Equal(t, 64, cfg.Levels[0].Target)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := LoadT2048(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = LoadT2048(writeConfig(t, "board: [not, a, map"))
	require.Error(t, err)

	_, err = LoadT2048(writeConfig(t, "board:\n  rows: 1\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*T2048Config)
		ok     bool
	}{
		{"defaults", func(*T2048Config) {}, true},
		{"min board", func(c *T2048Config) { c.Board.Rows, c.Board.Cols = 2, 2 }, true},
		{"rows too small", func(c *T2048Config) { c.Board.Rows = 1 }, false},
		{"cols too large", func(c *T2048Config) { c.Board.Cols = 9 }, false},
		{"no start tiles", func(c *T2048Config) { c.Board.StartTiles = 0 }, false},
		{"too many start tiles", func(c *T2048Config) { c.Board.StartTiles = 17 }, false},
		{"negative probability", func(c *T2048Config) { c.Spawn.FourProbability = -0.1 }, false},
		{"probability above one", func(c *T2048Config) { c.Spawn.FourProbability = 1.5 }, false},
		{"negative ticks", func(c *T2048Config) { c.Animation.SlideTicks = -1 }, false},
		{"win tile not power of two", func(c *T2048Config) { c.Rules.WinTile = 1000 }, false},
		{"win tile too small", func(c *T2048Config) { c.Rules.WinTile = 4 }, false},
		{"bad level target", func(c *T2048Config) { c.Levels[0].Target = 100 }, false},
		{"bad level spawn", func(c *T2048Config) { c.Levels[0].Spawn4 = 2 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultT2048Config()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	p, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyNormal, p)

	p, err = ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParseDifficulty("insane")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyT2048Preset(t *testing.T) {
	easy := DefaultT2048Config()
	ApplyT2048Preset(&easy, DifficultyEasy)
	assert.InDelta(t, 0.05, easy.Spawn.FourProbability, 1e-9)
	assert.InDelta(t, 0.125, easy.Levels[9].Spawn4, 1e-9)
	assert.True(t, easy.Rules.Undo)

	hard := DefaultT2048Config()
	ApplyT2048Preset(&hard, DifficultyHard)
	assert.InDelta(t, 0.2, hard.Spawn.FourProbability, 1e-9)
	assert.InDelta(t, 0.5, hard.Levels[9].Spawn4, 1e-9)
	assert.False(t, hard.Rules.Undo)

	fixed := DefaultT2048Config()
	ApplyT2048Preset(&fixed, DifficultyFixed)
	assert.False(t, fixed.Spawn.PerLevel)
	assert.InDelta(t, 0.1, fixed.Spawn.FourProbability, 1e-9)

	normal := DefaultT2048Config()
	ApplyT2048Preset(&normal, DifficultyNormal)
	assert.Equal(t, DefaultT2048Config(), normal)
}

func TestMarshalRoundTripsThroughParser(t *testing.T) {
	cfg := DefaultT2048Config()
	cfg.Board.Rows = 6
	data, err := Marshal(cfg)
	require.NoError(t, err)

	back, err := parseT2048(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
