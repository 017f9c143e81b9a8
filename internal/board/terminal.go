package board

// HasAdjacentPair reports whether two horizontally or vertically adjacent
// tiles hold the same value. Empty cells never pair.
func HasAdjacentPair(g *Grid) bool {
	for r := range g.rows {
		for c := range g.cols {
			v := g.Get(r, c)
			if v == 0 {
				continue
			}
			if c < g.cols-1 && g.Get(r, c+1) == v {
				return true
			}
			if r < g.rows-1 && g.Get(r+1, c) == v {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether no move can change g: the grid is full and no
// adjacent tiles match.
func IsGameOver(g *Grid) bool {
	return !g.HasEmpty() && !HasAdjacentPair(g)
}

// LegalMoves returns the directions that would change g.
func LegalMoves(g *Grid) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if CanMoveDir(g, d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
