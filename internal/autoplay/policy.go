// Package autoplay provides headless move policies for 2048 and a runner
// that plays whole games with them.
package autoplay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// ErrUnknownPolicy is returned by ParsePolicy for names it does not know.
var ErrUnknownPolicy = errors.New("autoplay: unknown policy")

// Policy picks the next move for a position.
type Policy interface {
	Name() string
	// Choose returns the move to play. ok is false when no move changes g.
	Choose(g *board.Grid) (dir board.Direction, ok bool)
}

// Random plays a uniformly chosen legal move.
type Random struct {
	rng board.Rand
}

// NewRandom creates a random policy drawing from rng.
func NewRandom(rng board.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) Name() string { return "random" }

func (p *Random) Choose(g *board.Grid) (board.Direction, bool) {
	legal := board.LegalMoves(g)
	if len(legal) == 0 {
		return 0, false
	}
	return legal[p.rng.IntN(len(legal))], true
}

// Greedy plays the move whose resulting position scores best under
// Evaluate plus the points it earns. Ties go to the earlier direction in
// board.Directions, so it is deterministic.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(g *board.Grid) (board.Direction, bool) {
	var (
		best     board.Direction
		bestVal  float64
		anyLegal bool
	)
	for _, d := range board.Directions {
		next, res := board.Preview(g, d)
		if !res.Moved {
			continue
		}
		val := Evaluate(next) + float64(res.Score)
		if !anyLegal || val > bestVal {
			best, bestVal, anyLegal = d, val, true
		}
	}
	return best, anyLegal
}

// PolicyNames lists the names ParsePolicy accepts.
func PolicyNames() []string {
	return []string{"greedy", "random"}
}

// ParsePolicy builds a policy by name. rng is only used by "random".
func ParsePolicy(name string, rng board.Rand) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "greedy", "":
		return Greedy{}, nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}
