package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Grid size limits.
const (
	MinSize     = 2
	MaxSize     = 8
	DefaultSize = 4
)

var (
	// ErrInvalidSize is returned for grid dimensions outside [MinSize, MaxSize].
	ErrInvalidSize = errors.New("board: invalid grid size")
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("board: cell out of bounds")
	// ErrInvalidValue is returned when a tile value is not a positive power of two.
	ErrInvalidValue = errors.New("board: tile value must be a power of two >= 2")
)

// Cell addresses a grid position.
type Cell struct {
	Row, Col int
}

// Grid is a fixed-size rows x cols matrix of tiles stored row-major.
// A value of 0 marks an empty cell; every other value is a power of two >= 2.
type Grid struct {
	rows   int
	cols   int
	cells  []int
	merged []bool // merged this move, parallel to cells
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < MinSize || rows > MaxSize || cols < MinSize || cols > MaxSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		cells:  make([]int, rows*cols),
		merged: make([]bool, rows*cols),
	}, nil
}

// FromRows builds a grid from a rectangular slice of rows.
func FromRows(rows [][]int) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidSize)
	}
	g, err := NewGrid(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		if len(row) != g.cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), g.cols)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if err := g.Set(r, c, v); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// Get returns the tile at (row, col), or 0 when empty or out of bounds.
func (g *Grid) Get(row, col int) int {
	if !g.inBounds(row, col) {
		return 0
	}
	return g.cells[g.index(row, col)]
}

// Set places a tile. Use Clear to empty a cell.
func (g *Grid) Set(row, col, value int) error {
	if !g.inBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	if !IsTileValue(value) {
		return fmt.Errorf("%w: %d", ErrInvalidValue, value)
	}
	g.cells[g.index(row, col)] = value
	return nil
}

// Clear empties a cell. Out-of-bounds coordinates are ignored.
func (g *Grid) Clear(row, col int) {
	if g.inBounds(row, col) {
		g.cells[g.index(row, col)] = 0
	}
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
	clear(g.merged)
}

// Merged reports whether the tile at (row, col) was produced by a merge
// during the last applied move.
func (g *Grid) Merged(row, col int) bool {
	if !g.inBounds(row, col) {
		return false
	}
	return g.merged[g.index(row, col)]
}

// EmptyCells returns the empty cells in row-major order.
func (g *Grid) EmptyCells() []Cell {
	var cells []Cell
	for i, v := range g.cells {
		if v == 0 {
			cells = append(cells, Cell{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return cells
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, v := range g.cells {
		if v == 0 {
			n++
		}
	}
	return n
}

// HasEmpty reports whether at least one cell is empty.
func (g *Grid) HasEmpty() bool {
	for _, v := range g.cells {
		if v == 0 {
			return true
		}
	}
	return false
}

// TileCount returns the number of non-empty cells.
func (g *Grid) TileCount() int {
	return len(g.cells) - g.EmptyCount()
}

// Sum returns the sum of all tile values.
func (g *Grid) Sum() int {
	sum := 0
	for _, v := range g.cells {
		sum += v
	}
	return sum
}

// MaxTile returns the highest tile value, or 0 for an empty grid.
func (g *Grid) MaxTile() int {
	maxVal := 0
	for _, v := range g.cells {
		maxVal = max(maxVal, v)
	}
	return maxVal
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		cells:  append([]int(nil), g.cells...),
		merged: append([]bool(nil), g.merged...),
	}
}

// CopyFrom overwrites g with the contents of src. Sizes must match.
func (g *Grid) CopyFrom(src *Grid) error {
	if src.rows != g.rows || src.cols != g.cols {
		return fmt.Errorf("%w: copy %dx%d into %dx%d", ErrInvalidSize, src.rows, src.cols, g.rows, g.cols)
	}
	copy(g.cells, src.cells)
	copy(g.merged, src.merged)
	return nil
}

// Equal reports whether both grids have the same size and tiles.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Values returns a copy of the tiles as a slice of rows.
func (g *Grid) Values() [][]int {
	out := make([][]int, g.rows)
	for r := range g.rows {
		out[r] = append([]int(nil), g.cells[r*g.cols:(r+1)*g.cols]...)
	}
	return out
}

// String renders the grid as right-aligned columns, "." for empty cells.
func (g *Grid) String() string {
	width := max(len(strconv.Itoa(g.MaxTile())), 1)
	var sb strings.Builder
	for r := range g.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.cols {
			if c > 0 {
				sb.WriteByte(' ')
			}
			s := "."
			if v := g.Get(r, c); v != 0 {
				s = strconv.Itoa(v)
			}
			sb.WriteString(strings.Repeat(" ", width-len(s)))
			sb.WriteString(s)
		}
	}
	return sb.String()
}

// IsTileValue reports whether v can sit on the board: a power of two >= 2.
func IsTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
