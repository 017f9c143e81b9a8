package game

import (
	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// animator tracks the purely visual slide and pop phases of the last move.
// The grid already holds the final position while it runs.
type animator struct {
	phase    AnimationPhase
	ticks    int
	duration int
	popTicks int

	slides  []board.Slide
	spawned board.Spawned
	pending bool // spawned tile waits for the pop phase
}

// start begins the slide phase. The spawned tile pops in once the slide
// ends. With no slide ticks configured it goes straight to the pop.
func (a *animator) start(slides []board.Slide, spawned board.Spawned, ok bool, cfg config.AnimationConfig) {
	*a = animator{
		slides:   slides,
		spawned:  spawned,
		pending:  ok,
		popTicks: cfg.PopTicks,
	}
	if cfg.SlideTicks > 0 {
		a.phase = PhaseSlide
		a.duration = cfg.SlideTicks
		return
	}
	a.startPop()
}

func (a *animator) startPop() {
	a.slides = nil
	a.ticks = 0
	if !a.pending || a.popTicks <= 0 {
		a.pending = false
		a.phase = PhaseNone
		return
	}
	a.phase = PhasePop
	a.duration = a.popTicks
}

// update advances the animation by one tick.
// Returns true if animation is still in progress.
func (a *animator) update() bool {
	if a.phase == PhaseNone {
		return false
	}

	a.ticks++
	if a.ticks < a.duration {
		return true
	}

	if a.phase == PhaseSlide {
		a.startPop()
		return a.phase != PhaseNone
	}

	a.finish()
	return false
}

// finish drops any remaining animation.
func (a *animator) finish() {
	*a = animator{}
}

// active reports whether an animation is running.
func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// progress returns the eased completion of the current phase in [0, 1].
func (a *animator) progress() float64 {
	if a.duration <= 0 {
		return 1
	}
	return easeOutQuad(min(float64(a.ticks)/float64(a.duration), 1))
}

// hidesSpawn reports whether the spawned tile at c should not be drawn yet.
func (a *animator) hidesSpawn(c board.Cell) bool {
	return a.phase == PhaseSlide && a.pending && a.spawned.Cell == c
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolate returns the fractional cell position of s at progress t.
func interpolate(s board.Slide, t float64) (row, col float64) {
	row = float64(s.From.Row) + float64(s.To.Row-s.From.Row)*t
	col = float64(s.From.Col) + float64(s.To.Col-s.From.Col)*t
	return row, col
}
