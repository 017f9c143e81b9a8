package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// TestMain pins the config to the built-in defaults so a user's
// ~/.t2048 or ./configs cannot change the outcome.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "t2048-game")
	if err != nil {
		panic(err)
	}
	data, err := config.Marshal(config.DefaultT2048Config())
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		panic(err)
	}
	SetConfigPath(path)

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}
}

func newGame(t *testing.T, v Variant) *Game {
	t.Helper()
	g := NewVariant(v)
	g.Reset(testRuntime())
	return g
}

func setGrid(t *testing.T, g *Game, rows [][]int) {
	t.Helper()
	grid, err := board.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	g.grid = grid
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func emptyRows(n int) [][]int {
	rows := make([][]int, n)
	for i := range rows {
		rows[i] = make([]int, n)
	}
	return rows
}

func TestResetSpawnsStartTiles(t *testing.T) {
	g := newGame(t, Variants[0])

	if got := g.grid.TileCount(); got != 2 {
		t.Errorf("tile count = %d, want 2", got)
	}
	for _, row := range g.grid.Values() {
		for _, v := range row {
			if v != 0 && v != 2 && v != 4 {
				t.Errorf("unexpected start tile %d", v)
			}
		}
	}
	s := g.Snapshot()
	if s.Score != 0 || s.Moves != 0 || s.State != StatePlaying {
		t.Errorf("unexpected snapshot after reset: %+v", s)
	}
}

func TestDeterministicSpawn(t *testing.T) {
	inputs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown, core.ActionLeft}

	g1 := newGame(t, Variants[1])
	g2 := newGame(t, Variants[1])
	for _, a := range inputs {
		g1.Step(press(a))
		g2.Step(press(a))
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Moves != s2.Moves || !g1.grid.Equal(g2.grid) {
		t.Errorf("same seed diverged:\n%s\nvs\n%s", g1.grid, g2.grid)
	}
}

func TestNoChangeNoSpawn(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0] = 2
	setGrid(t, g, rows)

	res := g.Step(press(core.ActionLeft))

	if res.Moved {
		t.Error("blocked move reported as moved")
	}
	if g.grid.TileCount() != 1 {
		t.Errorf("tile count = %d, want 1", g.grid.TileCount())
	}
	if g.moves != 0 {
		t.Errorf("moves = %d, want 0", g.moves)
	}
}

func TestMoveScoresAndSpawnsOnce(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 2, 2
	setGrid(t, g, rows)

	res := g.Step(press(core.ActionLeft))

	if !res.Moved {
		t.Fatal("move not applied")
	}
	if res.State.Score != 4 {
		t.Errorf("score = %d, want 4", res.State.Score)
	}
	if g.grid.TileCount() != 2 {
		t.Errorf("tile count = %d, want 2 (merge result + spawn)", g.grid.TileCount())
	}
	if g.grid.Get(0, 0) != 4 {
		t.Errorf("merged tile = %d, want 4", g.grid.Get(0, 0))
	}
}

func TestOneMovePerTick(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0] = 2
	setGrid(t, g, rows)

	g.Step(press(core.ActionRight, core.ActionLeft))

	if g.moves != 1 {
		t.Errorf("moves = %d, want 1", g.moves)
	}
	if g.grid.Get(0, 3) != 2 {
		t.Errorf("first direction in the frame should win, grid:\n%s", g.grid)
	}
}

func gameOverSetup(t *testing.T, g *Game) {
	t.Helper()
	setGrid(t, g, [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 16},
		{0, 4, 2, 8},
	})
}

func TestGameOver(t *testing.T) {
	g := newGame(t, Variants[1])
	gameOverSetup(t, g)

	res := g.Step(press(core.ActionLeft))

	if !res.State.GameOver {
		t.Fatalf("expected game over, grid:\n%s", g.grid)
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StateGameOver)
	}

	score := g.score
	g.Step(press(core.ActionUndo))
	g.Step(press(core.ActionRight))
	if !g.State().GameOver || g.score != score {
		t.Error("input after game over should be ignored")
	}
}

func TestUndo(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 2, 2
	setGrid(t, g, rows)
	before := g.grid.Clone()

	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionUndo))

	if !g.grid.Equal(before) {
		t.Errorf("undo did not restore the grid:\n%s", g.grid)
	}
	if g.score != 0 {
		t.Errorf("score = %d, want 0", g.score)
	}
	if g.Undos() != 1 {
		t.Errorf("undos = %d, want 1", g.Undos())
	}

	// Only one level of undo.
	g.Step(press(core.ActionUndo))
	if g.Undos() != 1 {
		t.Errorf("second undo applied, undos = %d", g.Undos())
	}
}

func TestUndoDisabledOnHard(t *testing.T) {
	g := NewVariant(Variants[1])
	g.SetDifficulty(config.DifficultyHard)
	g.Reset(testRuntime())

	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 2, 2
	setGrid(t, g, rows)

	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionUndo))

	if g.score != 4 || g.Undos() != 0 {
		t.Errorf("undo should be disabled: score=%d undos=%d", g.score, g.Undos())
	}
	if strings.Contains(g.Controls(), "Undo") {
		t.Error("controls should not advertise undo")
	}
}

func TestCampaignProgression(t *testing.T) {
	g := newGame(t, Variants[0])
	if g.currentTarget != 128 {
		t.Fatalf("level 1 target = %d, want 128", g.currentTarget)
	}
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 64, 64
	setGrid(t, g, rows)

	res := g.Step(press(core.ActionLeft))
	if !g.levelCleared || !res.State.Paused {
		t.Fatal("expected level cleared")
	}
	if g.Snapshot().State != StateLevelCleared {
		t.Errorf("state = %s", g.Snapshot().State)
	}

	g.Step(press(core.ActionConfirm))

	if g.levelCleared {
		t.Error("confirm should advance the level")
	}
	s := g.Snapshot()
	if s.Level != 2 || s.Target != 256 {
		t.Errorf("level = %d target = %d, want 2 / 256", s.Level, s.Target)
	}
	if s.MaxTile != 128 || s.Score != 128 {
		t.Errorf("board and score should carry over: %+v", s)
	}
}

func TestLevelClearAutoAdvance(t *testing.T) {
	g := newGame(t, Variants[0])
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 64, 64
	setGrid(t, g, rows)
	g.Step(press(core.ActionLeft))

	for range g.cfg.Rules.LevelClearTicks - 1 {
		g.Step(core.NewInputFrame())
	}
	if !g.levelCleared {
		t.Fatal("advanced too early")
	}
	g.Step(core.NewInputFrame())
	if g.levelCleared || g.levelIndex != 1 {
		t.Errorf("expected level 2 after %d ticks", g.cfg.Rules.LevelClearTicks)
	}
}

func TestCampaignFinalLevelWins(t *testing.T) {
	g := NewVariant(Variants[0])
	g.SetStartLevel(10)
	g.Reset(testRuntime())
	if g.currentTarget != 8192 {
		t.Fatalf("level 10 target = %d, want 8192", g.currentTarget)
	}
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 4096, 4096
	setGrid(t, g, rows)

	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionConfirm))

	st := g.State()
	if !st.Won || !st.GameOver {
		t.Errorf("expected campaign win, got %+v", st)
	}
	if g.Snapshot().State != StateWin {
		t.Errorf("state = %s", g.Snapshot().State)
	}
}

func TestStartLevel(t *testing.T) {
	g := NewVariant(Variants[0])
	g.SetStartLevel(3)
	g.Reset(testRuntime())

	s := g.Snapshot()
	if s.Level != 3 || s.Target != 512 {
		t.Errorf("level = %d target = %d, want 3 / 512", s.Level, s.Target)
	}

	g.SetStartLevel(99)
	g.Reset(testRuntime())
	if g.Snapshot().Level != 1 {
		t.Error("out of range start level should fall back to level 1")
	}
}

func TestClassicWinsAtWinTile(t *testing.T) {
	g := newGame(t, Variants[2])
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 1024, 1024
	setGrid(t, g, rows)

	res := g.Step(press(core.ActionLeft))

	if !res.State.Won || !res.State.GameOver {
		t.Errorf("expected classic win, got %+v", res.State)
	}
}

func TestEndlessHasNoTarget(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0], rows[0][1] = 1024, 1024
	setGrid(t, g, rows)

	res := g.Step(press(core.ActionLeft))

	if res.State.GameOver || res.State.Paused {
		t.Errorf("endless should keep going, got %+v", res.State)
	}
	if g.Snapshot().Level != 0 || g.Snapshot().Target != 0 {
		t.Error("endless snapshot should have no level or target")
	}
}

func TestPause(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][0] = 2
	setGrid(t, g, rows)

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRight))
	if g.moves != 0 {
		t.Error("moves should be ignored while paused")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("state = %s, want paused", g.Snapshot().State)
	}

	g.Step(press(core.ActionPause))
	g.Step(press(core.ActionRight))
	if g.moves != 1 {
		t.Error("move after unpause should apply")
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewVariant(Variants[1])
	rt := testRuntime()
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	g.Step(press(core.ActionLeft))
	g.Step(press(core.ActionUp))
	if g.moves != 0 {
		t.Error("moves should be ignored while the window is too small")
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}

	tiles := g.grid.Clone()
	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize should resume play")
	}
	if !g.grid.Equal(tiles) {
		t.Error("resize must not touch the board")
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %s not registered", v.ID)
		}
	}

	g, err := registry.Create("2048_big")
	if err != nil {
		t.Fatal(err)
	}
	g.Reset(testRuntime())
	rows, cols := g.(*Game).Size()
	if rows != 5 || cols != 5 {
		t.Errorf("2048_big size = %dx%d, want 5x5", rows, cols)
	}
}

func TestHint(t *testing.T) {
	g := newGame(t, Variants[1])
	g.Step(press(core.ActionHint))

	if g.hintTicks == 0 {
		t.Fatal("hint not shown")
	}
	if !board.CanMoveDir(g.grid, g.hint) {
		t.Errorf("hint %s does not move", g.hint)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Hint:") {
		t.Error("hint not rendered")
	}
}

func TestAnimationPhases(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][3] = 2
	setGrid(t, g, rows)

	g.Step(press(core.ActionLeft))
	if g.anim.phase != PhaseSlide {
		t.Fatalf("phase = %d, want slide", g.anim.phase)
	}

	screen := core.NewScreen(80, 24)
	for range g.cfg.Animation.SlideTicks {
		g.Render(screen)
		g.Step(core.NewInputFrame())
	}
	if g.anim.phase != PhasePop {
		t.Fatalf("phase = %d, want pop", g.anim.phase)
	}
	for range g.cfg.Animation.PopTicks {
		g.Render(screen)
		g.Step(core.NewInputFrame())
	}
	if g.anim.active() {
		t.Error("animation should have finished")
	}
}

func TestMoveCutsAnimationShort(t *testing.T) {
	g := newGame(t, Variants[1])
	rows := emptyRows(4)
	rows[0][3] = 2
	setGrid(t, g, rows)

	g.Step(press(core.ActionLeft))
	res := g.Step(press(core.ActionRight))

	if !res.Moved || g.moves != 2 {
		t.Errorf("input during an animation should apply immediately, moves = %d", g.moves)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, Variants[0])
	g.SetBest(5000)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"2048", "Score: 0", "Best: 5000", "Level 1/10", "┌"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	gameOverSetup(t, g)
	g.cfg.Animation.Enabled = false
	g.Step(press(core.ActionLeft))
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("expected game over overlay")
	}
}

func TestLevels(t *testing.T) {
	if LevelCount() != 10 {
		t.Errorf("LevelCount() = %d, want 10", LevelCount())
	}
	names := LevelNames()
	if names[0] != "Warm-up" || names[9] != "Ultimate Champion" {
		t.Errorf("unexpected level names: %v", names)
	}
}
