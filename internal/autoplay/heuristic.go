package autoplay

import (
	"math"
	"math/bits"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Heuristic weights, applied per row and per column on tile ranks
// (log2 of the value).
const (
	lostPenalty       = 200000.0
	monotonicityPower = 4.0
	monotonicityW     = 47.0
	sumPower          = 3.5
	sumW              = 11.0
	mergesW           = 700.0
	emptyW            = 270.0
)

// Evaluate scores a position; higher is better. It rewards empty cells,
// pending merges and monotonic lines, and penalises large scattered tiles.
func Evaluate(g *board.Grid) float64 {
	var score float64
	line := make([]int, max(g.Rows(), g.Cols()))

	for r := range g.Rows() {
		for c := range g.Cols() {
			line[c] = rank(g.Get(r, c))
		}
		score += scoreLine(line[:g.Cols()])
	}
	for c := range g.Cols() {
		for r := range g.Rows() {
			line[r] = rank(g.Get(r, c))
		}
		score += scoreLine(line[:g.Rows()])
	}
	return score
}

func scoreLine(line []int) float64 {
	var (
		sum     float64
		empty   int
		merges  int
		prev    int
		counter int
	)
	for _, rk := range line {
		sum += math.Pow(float64(rk), sumPower)
		if rk == 0 {
			empty++
			continue
		}
		if prev == rk {
			counter++
		} else if counter > 0 {
			merges += 1 + counter
			counter = 0
		}
		prev = rk
	}
	if counter > 0 {
		merges += 1 + counter
	}

	var monoLeft, monoRight float64
	for i := 1; i < len(line); i++ {
		a := math.Pow(float64(line[i-1]), monotonicityPower)
		b := math.Pow(float64(line[i]), monotonicityPower)
		if line[i-1] > line[i] {
			monoLeft += a - b
		} else {
			monoRight += b - a
		}
	}

	return lostPenalty +
		emptyW*float64(empty) +
		mergesW*float64(merges) -
		monotonicityW*math.Min(monoLeft, monoRight) -
		sumW*sum
}

// rank maps a tile value to its exponent: 0 -> 0, 2 -> 1, 4 -> 2, ...
func rank(v int) int {
	if v <= 0 {
		return 0
	}
	return bits.TrailingZeros(uint(v))
}
