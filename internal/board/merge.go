package board

// Slide records where one tile travelled during a move.
type Slide struct {
	From   Cell
	To     Cell
	Value  int  // value before the move
	Merged bool // the destination cell holds a merge result
}

// MoveResult describes the outcome of applying one move.
type MoveResult struct {
	Moved  bool
	Score  int // sum of the values created by merges
	Merges int
	Slides []Slide // only filled by ApplyTracked
}

// Apply slides and merges every line of g in direction dir, mutating g in
// place. It reports whether any cell changed and the score gained.
// An invalid direction is a no-op.
func Apply(g *Grid, dir Direction) (moved bool, scoreDelta int) {
	res := apply(g, dir, false)
	return res.Moved, res.Score
}

// ApplyTracked is Apply plus the per-tile slide list used for animation.
func ApplyTracked(g *Grid, dir Direction) MoveResult {
	return apply(g, dir, true)
}

// Preview applies dir to a copy of g and returns the copy. g is untouched.
func Preview(g *Grid, dir Direction) (*Grid, MoveResult) {
	next := g.Clone()
	res := apply(next, dir, false)
	return next, res
}

// CanMoveDir reports whether dir would change g.
func CanMoveDir(g *Grid, dir Direction) bool {
	_, res := Preview(g, dir)
	return res.Moved
}

// lineShape returns how many lines a move processes and their length.
func lineShape(g *Grid, dir Direction) (lines, length int) {
	if dir == Left || dir == Right {
		return g.rows, g.cols
	}
	return g.cols, g.rows
}

// lineCell maps position k of line i, oriented so the move compacts toward
// k = 0, to a grid cell.
func lineCell(g *Grid, dir Direction, i, k int) Cell {
	switch dir {
	case Left:
		return Cell{Row: i, Col: k}
	case Right:
		return Cell{Row: i, Col: g.cols - 1 - k}
	case Up:
		return Cell{Row: k, Col: i}
	default: // Down
		return Cell{Row: g.rows - 1 - k, Col: i}
	}
}

func apply(g *Grid, dir Direction, track bool) MoveResult {
	var res MoveResult
	if !dir.Valid() {
		return res
	}

	clear(g.merged)

	lines, n := lineShape(g, dir)
	line := make([]int, n)
	out := make([]int, n)
	merged := make([]bool, n)
	dest := make([]int, n)

	for i := range lines {
		for k := range n {
			c := lineCell(g, dir, i, k)
			line[k] = g.cells[g.index(c.Row, c.Col)]
		}

		score, merges := compactLine(line, out, merged, dest)
		res.Score += score
		res.Merges += merges

		for k := range n {
			c := lineCell(g, dir, i, k)
			idx := g.index(c.Row, c.Col)
			if g.cells[idx] != out[k] {
				res.Moved = true
			}
			g.cells[idx] = out[k]
			g.merged[idx] = merged[k]
		}

		if !track {
			continue
		}
		for k, v := range line {
			if v == 0 {
				continue
			}
			res.Slides = append(res.Slides, Slide{
				From:   lineCell(g, dir, i, k),
				To:     lineCell(g, dir, i, dest[k]),
				Value:  v,
				Merged: merged[dest[k]],
			})
		}
	}

	return res
}

// compactLine slides the values of line toward index 0 and merges equal
// neighbours. Each output cell takes part in at most one merge. out, merged
// and dest must have len(line); dest[k] receives the output index of the
// tile read from line[k].
func compactLine(line, out []int, merged []bool, dest []int) (score, merges int) {
	clear(out)
	clear(merged)

	w := 0
	for k, v := range line {
		dest[k] = -1
		if v == 0 {
			continue
		}

		if w > 0 && out[w-1] == v && !merged[w-1] {
			out[w-1] = v * 2
			merged[w-1] = true
			score += out[w-1]
			merges++
			dest[k] = w - 1
			continue
		}

		out[w] = v
		dest[k] = w
		w++
	}

	return score, merges
}
