package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactLine(t *testing.T) {
	tests := []struct {
		name   string
		input  []int
		want   []int
		score  int
		merges int
	}{
		{"empty line", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0, 0},
		{"single tile", []int{0, 0, 4, 0}, []int{4, 0, 0, 0}, 0, 0},
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4, 1},
		{"gap merge", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4, 1},
		{"three equal", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4, 1},
		{"four equal", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8, 2},
		{"merge result not merged again", []int{2, 2, 4, 0}, []int{4, 4, 0, 0}, 4, 1},
		{"chain stays single", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8, 1},
		{"mixed", []int{2, 0, 2, 4}, []int{4, 4, 0, 0}, 4, 1},
		{"no merge", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0, 0},
		{"pairs", []int{4, 4, 8, 8}, []int{8, 16, 0, 0}, 24, 2},
		{"five wide", []int{2, 2, 2, 2, 2}, []int{4, 4, 2, 0, 0}, 8, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := len(tc.input)
			out := make([]int, n)
			merged := make([]bool, n)
			dest := make([]int, n)

			score, merges := compactLine(tc.input, out, merged, dest)
			assert.Equal(t, tc.want, out)
			assert.Equal(t, tc.score, score)
			assert.Equal(t, tc.merges, merges)

			mergedCount := 0
			for _, m := range merged {
				if m {
					mergedCount++
				}
			}
			assert.Equal(t, tc.merges, mergedCount, "merged mask")
		})
	}
}

func TestApplyEachDirection(t *testing.T) {
	start := [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	}

	tests := []struct {
		dir   Direction
		want  [][]int
		score int
	}{
		{Left, [][]int{{4, 0, 0, 0}, {8, 0, 0, 0}, {4, 4, 0, 0}, {2, 0, 0, 0}}, 20},
		{Right, [][]int{{0, 0, 0, 4}, {0, 0, 0, 8}, {0, 0, 4, 4}, {0, 0, 0, 2}}, 20},
		{Up, [][]int{{2, 4, 4, 4}, {4, 0, 2, 0}, {2, 0, 0, 0}, {0, 0, 0, 0}}, 8},
		{Down, [][]int{{0, 0, 0, 0}, {2, 0, 0, 0}, {4, 0, 4, 0}, {2, 4, 2, 4}}, 8},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			g := mustGrid(t, start)
			moved, score := Apply(g, tc.dir)
			assert.True(t, moved)
			assert.Equal(t, tc.want, g.Values())
			assert.Equal(t, tc.score, score)
		})
	}
}

func TestApplyScenarioRowLeft(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 0, 2, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	moved, score := Apply(g, Left)
	assert.True(t, moved)
	assert.Equal(t, 4, score)
	assert.Equal(t, []int{4, 4, 0, 0}, g.Values()[0])
}

func TestApplyUnmergeableLineDoesNotMove(t *testing.T) {
	// A full row of distinct neighbours cannot move horizontally.
	for _, dir := range []Direction{Left, Right} {
		g := mustGrid(t, [][]int{
			{2, 4, 8, 16},
			{0, 0, 0, 0},
		})
		moved, score := Apply(g, dir)
		assert.False(t, moved, dir.String())
		assert.Zero(t, score)
		assert.Equal(t, []int{2, 4, 8, 16}, g.Values()[0])
	}

	// The same line as a full column cannot move vertically.
	for _, dir := range []Direction{Up, Down} {
		g := mustGrid(t, [][]int{{2, 0}, {4, 0}, {8, 0}, {16, 0}})
		moved, _ := Apply(g, dir)
		assert.False(t, moved, dir.String())
	}
}

func TestApplyIsIdempotentOnceCompacted(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 2, 4, 8},
		{0, 4, 0, 4},
		{16, 0, 16, 2},
		{2, 0, 0, 0},
	})

	for _, dir := range Directions {
		c := g.Clone()
		Apply(c, dir)
		// Keep applying until nothing changes; the next apply must be a no-op.
		for i := 0; i < 8; i++ {
			if moved, _ := Apply(c, dir); !moved {
				break
			}
		}
		moved, score := Apply(c, dir)
		assert.False(t, moved, dir.String())
		assert.Zero(t, score, dir.String())
	}
}

func TestApplyConservesValue(t *testing.T) {
	rng := NewRand(7)
	spawner := NewSpawner(rng, 0.3)

	g, err := NewGrid(4, 4)
	require.NoError(t, err)
	for range 6 {
		spawner.Spawn(g)
	}

	for step := range 200 {
		dir := Directions[rng.IntN(len(Directions))]
		before := g.Sum()
		res := ApplyTracked(g, dir)
		assert.Equal(t, before, g.Sum(), "step %d: merging must not create value", step)

		// Each merge turns two v tiles into one 2v tile worth the score gained.
		mergedTotal := 0
		for r := range g.Rows() {
			for c := range g.Cols() {
				if g.Merged(r, c) {
					mergedTotal += g.Get(r, c)
				}
			}
		}
		assert.Equal(t, res.Score, mergedTotal, "step %d", step)

		if res.Moved {
			spawner.Spawn(g)
		}
		if IsGameOver(g) {
			break
		}
	}
}

func TestApplyInvalidDirectionIsNoop(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 2}, {0, 0}})
	moved, score := Apply(g, Direction(42))
	assert.False(t, moved)
	assert.Zero(t, score)
	assert.Equal(t, [][]int{{2, 2}, {0, 0}}, g.Values())
}

func TestApplyClearsMergedMaskEachMove(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 2, 0, 0}, {0, 0, 0, 0}})

	Apply(g, Left)
	assert.True(t, g.Merged(0, 0))

	Apply(g, Right)
	assert.False(t, g.Merged(0, 0))
	assert.False(t, g.Merged(0, 3), "a plain slide is not a merge")
}

func TestApplyTrackedSlides(t *testing.T) {
	g := mustGrid(t, [][]int{
		{0, 2, 0, 2},
		{0, 0, 0, 0},
	})

	res := ApplyTracked(g, Right)
	require.True(t, res.Moved)
	assert.Equal(t, 1, res.Merges)
	require.Len(t, res.Slides, 2)

	// Oriented from the right edge, the tile at col 3 is read first.
	assert.Equal(t, Slide{From: Cell{0, 3}, To: Cell{0, 3}, Value: 2, Merged: true}, res.Slides[0])
	assert.Equal(t, Slide{From: Cell{0, 1}, To: Cell{0, 3}, Value: 2, Merged: true}, res.Slides[1])
}

func TestPreviewLeavesGridUntouched(t *testing.T) {
	g := mustGrid(t, [][]int{{2, 2}, {4, 0}})
	next, res := Preview(g, Left)

	assert.True(t, res.Moved)
	assert.Equal(t, [][]int{{2, 2}, {4, 0}}, g.Values())
	assert.Equal(t, [][]int{{4, 0}, {4, 0}}, next.Values())
	assert.True(t, CanMoveDir(g, Up))
	assert.False(t, CanMoveDir(mustGrid(t, [][]int{{2, 4}, {4, 2}}), Left))
}

func TestApplyNonSquareGrid(t *testing.T) {
	g := mustGrid(t, [][]int{
		{2, 0, 2, 0, 4},
		{0, 0, 0, 0, 4},
		{2, 0, 0, 0, 0},
	})

	moved, score := Apply(g, Up)
	require.True(t, moved)
	assert.Equal(t, 12, score)
	assert.Equal(t, [][]int{
		{4, 0, 2, 0, 8},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}, g.Values())
}
