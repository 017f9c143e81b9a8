package board

import "math/rand/v2"

// DefaultFourProbability is the chance a spawned tile is a 4 instead of a 2.
const DefaultFourProbability = 0.1

// Rand is the random source the spawner draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a deterministic source for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Spawned describes a tile placed by the spawner.
type Spawned struct {
	Cell
	Value int
}

// Spawner places new tiles into random empty cells.
type Spawner struct {
	rng      Rand
	fourProb float64
}

// NewSpawner creates a spawner. fourProb is clamped to [0, 1].
func NewSpawner(rng Rand, fourProb float64) *Spawner {
	s := &Spawner{rng: rng}
	s.SetFourProbability(fourProb)
	return s
}

// SetFourProbability changes the chance of spawning a 4.
func (s *Spawner) SetFourProbability(p float64) {
	s.fourProb = min(max(p, 0), 1)
}

// FourProbability returns the chance of spawning a 4.
func (s *Spawner) FourProbability() float64 {
	return s.fourProb
}

// Spawn places a 2 or a 4 in a uniformly chosen empty cell of g.
// It returns false without touching g or the random source when g is full.
func (s *Spawner) Spawn(g *Grid) (Spawned, bool) {
	empty := g.EmptyCells()
	if len(empty) == 0 {
		return Spawned{}, false
	}

	cell := empty[s.rng.IntN(len(empty))]

	value := 2
	if s.rng.Float64() < s.fourProb {
		value = 4
	}

	g.cells[g.index(cell.Row, cell.Col)] = value
	return Spawned{Cell: cell, Value: value}, true
}
