package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsGameOver(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want bool
	}{
		{
			name: "full board without pairs",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 2, 4},
				{4, 2, 4, 2},
			},
			want: true,
		},
		{
			name: "full board with horizontal pair",
			rows: [][]int{
				{2, 2, 8, 16},
				{4, 8, 16, 32},
				{8, 16, 32, 64},
				{16, 32, 64, 128},
			},
			want: false,
		},
		{
			name: "full board with vertical pair in last column",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 8},
				{2, 4, 2, 8},
				{4, 2, 4, 2},
			},
			want: false,
		},
		{
			name: "one empty cell",
			rows: [][]int{
				{2, 4, 2, 4},
				{4, 2, 4, 2},
				{2, 4, 0, 4},
				{4, 2, 4, 2},
			},
			want: false,
		},
		{
			name: "empty board",
			rows: [][]int{{0, 0}, {0, 0}},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.rows)
			assert.Equal(t, tc.want, IsGameOver(g))
			if tc.want {
				assert.Empty(t, LegalMoves(g))
			} else {
				assert.NotEmpty(t, LegalMoves(g))
			}
		})
	}
}

func TestIsGameOverFalseWithAnyEmptyCell(t *testing.T) {
	rng := NewRand(3)
	for range 100 {
		g, _ := NewGrid(4, 4)
		for r := range 4 {
			for c := range 4 {
				_ = g.Set(r, c, 2<<rng.IntN(10))
			}
		}
		g.Clear(rng.IntN(4), rng.IntN(4))
		assert.False(t, IsGameOver(g))
	}
}

func TestHasAdjacentPairIgnoresEmpty(t *testing.T) {
	g := mustGrid(t, [][]int{{0, 0}, {2, 4}})
	assert.False(t, HasAdjacentPair(g))
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{
		"up": Up, "U": Up, " down ": Down, "l": Left, "Right": Right,
	} {
		got, err := ParseDirection(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidDirection)
	assert.False(t, Direction(7).Valid())
	assert.Equal(t, "left", Left.String())
}
