package engine

import (
	"fmt"
	"strings"
)

// Grid owns the wall masks of a rows x cols maze. Cells are stored in a single
// slice indexed by CellID; walls only change through Connect and Disconnect so
// adjacent cells always agree on their shared wall.
type Grid struct {
	rows  int
	cols  int
	walls []WallMask
}

// NewGrid allocates a grid with every wall standing
func NewGrid(rows, cols int) (*Grid, error) {
	if rows < MinDimension || cols < MinDimension || rows > MaxDimension || cols > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (allowed %d..%d)", ErrInvalidDimension, rows, cols, MinDimension, MaxDimension)
	}

	walls := make([]WallMask, rows*cols)
	for i := range walls {
		walls[i] = AllWalls
	}

	return &Grid{rows: rows, cols: cols, walls: walls}, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of cells
func (g *Grid) Size() int { return len(g.walls) }

// Contains reports whether id addresses a cell of this grid
func (g *Grid) Contains(id CellID) bool {
	return id >= 0 && int(id) < len(g.walls)
}

// InBounds reports whether row/col lies inside the grid
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IDToCoord converts a cell id into its row and column
func (g *Grid) IDToCoord(id CellID) Coord {
	return Coord{Row: int(id) / g.cols, Col: int(id) % g.cols}
}

// CoordToID converts a row and column into a cell id
func (g *Grid) CoordToID(c Coord) CellID {
	return CellID(c.Row*g.cols + c.Col)
}

// Walls returns the wall mask of a cell
func (g *Grid) Walls(id CellID) WallMask {
	return g.walls[id]
}

// Step returns the cell one step from id in direction d
func (g *Grid) Step(id CellID, d Direction) (CellID, bool) {
	c := g.IDToCoord(id)
	dr, dc := d.Delta()
	if !g.InBounds(c.Row+dr, c.Col+dc) {
		return 0, false
	}
	return g.CoordToID(Coord{Row: c.Row + dr, Col: c.Col + dc}), true
}

// Neighbors returns the in-bounds neighbors of id in up, down, left, right
// order. When keep is non-nil only neighbors it accepts are returned.
func (g *Grid) Neighbors(id CellID, keep func(CellID) bool) []CellID {
	result := make([]CellID, 0, 4)
	for _, d := range Directions {
		n, ok := g.Step(id, d)
		if !ok {
			continue
		}
		if keep != nil && !keep(n) {
			continue
		}
		result = append(result, n)
	}
	return result
}

// directionBetween returns the direction leading from a to b when they are
// grid-adjacent.
func (g *Grid) directionBetween(a, b CellID) (Direction, bool) {
	if !g.Contains(a) || !g.Contains(b) {
		return 0, false
	}
	ca, cb := g.IDToCoord(a), g.IDToCoord(b)
	switch {
	case ca.Col == cb.Col && cb.Row == ca.Row-1:
		return Up, true
	case ca.Col == cb.Col && cb.Row == ca.Row+1:
		return Down, true
	case ca.Row == cb.Row && cb.Col == ca.Col-1:
		return Left, true
	case ca.Row == cb.Row && cb.Col == ca.Col+1:
		return Right, true
	}
	return 0, false
}

// Connect removes the shared wall between two adjacent cells. It returns false
// without touching the grid when the cells are not adjacent.
func (g *Grid) Connect(a, b CellID) bool {
	d, ok := g.directionBetween(a, b)
	if !ok {
		return false
	}
	g.walls[a] = g.walls[a].Without(d)
	g.walls[b] = g.walls[b].Without(d.Opposite())
	return true
}

// Disconnect restores the shared wall between two adjacent cells
func (g *Grid) Disconnect(a, b CellID) bool {
	d, ok := g.directionBetween(a, b)
	if !ok {
		return false
	}
	g.walls[a] = g.walls[a].With(d)
	g.walls[b] = g.walls[b].With(d.Opposite())
	return true
}

// Connected reports whether a and b are adjacent with no wall between them
func (g *Grid) Connected(a, b CellID) bool {
	d, ok := g.directionBetween(a, b)
	return ok && g.walls[a].Open(d)
}

// EdgeCount returns the number of open walls between cells
func (g *Grid) EdgeCount() int {
	edges := 0
	for id, w := range g.walls {
		c := g.IDToCoord(CellID(id))
		if c.Col < g.cols-1 && w.Open(Right) {
			edges++
		}
		if c.Row < g.rows-1 && w.Open(Down) {
			edges++
		}
	}
	return edges
}

// Matrix returns a copy of the wall masks as rows of columns
func (g *Grid) Matrix() [][]WallMask {
	out := make([][]WallMask, g.rows)
	for r := range out {
		out[r] = make([]WallMask, g.cols)
		copy(out[r], g.walls[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// String renders the grid as ASCII art
func (g *Grid) String() string {
	return g.render(nil)
}

// render draws the grid, asking mark for a single character to put inside
// each cell.
func (g *Grid) render(mark func(CellID) byte) string {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("---+", g.cols) + "\n")
	for r := 0; r < g.rows; r++ {
		b.WriteString("|")
		for c := 0; c < g.cols; c++ {
			id := g.CoordToID(Coord{Row: r, Col: c})
			ch := byte(' ')
			if mark != nil {
				ch = mark(id)
			}
			b.WriteString(" ")
			b.WriteByte(ch)
			b.WriteString(" ")
			if g.walls[id].Has(Right) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for c := 0; c < g.cols; c++ {
			id := g.CoordToID(Coord{Row: r, Col: c})
			if g.walls[id].Has(Down) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
