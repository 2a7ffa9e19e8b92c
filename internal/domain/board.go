package domain

import "fmt"

// Grid holds piece ownership. cells[0] is the top row and
// cells[height-1] the bottom one, where pieces settle.
type Grid struct {
	height int
	width  int
	cells  [][]Owner
}

func NewGrid(height, width int) (*Grid, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}

	cells := make([][]Owner, height)
	for i := range cells {
		cells[i] = make([]Owner, width)
	}
	return &Grid{height: height, width: width, cells: cells}, nil
}

func (g *Grid) Height() int { return g.height }

func (g *Grid) Width() int { return g.width }

func (g *Grid) InBounds(row, column int) bool {
	return row >= 0 && row < g.height && column >= 0 && column < g.width
}

// At returns the owner of a cell, Empty when the cell is out of bounds
func (g *Grid) At(row, column int) Owner {
	if !g.InBounds(row, column) {
		return Empty
	}
	return g.cells[row][column]
}

// FindLandingRow returns the lowest empty row of column.
func (g *Grid) FindLandingRow(column int) (int, error) {
	if column < 0 || column >= g.width {
		return -1, fmt.Errorf("%w: %d (width %d)", ErrInvalidColumn, column, g.width)
	}

	// walk from the bottom up till we hit an empty cell
	for row := g.height - 1; row >= 0; row-- {
		if g.cells[row][column] == Empty {
			return row, nil
		}
	}

	return -1, ErrColumnFull
}

// Place puts owner's piece on the cell. Callers are expected to have
// consulted FindLandingRow first, so an occupied cell is a bug.
func (g *Grid) Place(row, column int, owner Owner) {
	if !owner.IsPlayer() {
		panic(fmt.Sprintf("domain: place of non-player owner %d", owner))
	}
	if !g.InBounds(row, column) {
		panic(fmt.Sprintf("domain: place out of bounds at (%d, %d)", row, column))
	}
	if g.cells[row][column] != Empty {
		panic(fmt.Sprintf("domain: place on occupied cell (%d, %d)", row, column))
	}
	g.cells[row][column] = owner
}

func (g *Grid) IsFull() bool {
	for _, row := range g.cells {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}
	return true
}

// OpenColumns lists the columns that still accept a piece
func (g *Grid) OpenColumns() []int {
	open := []int{}
	for col := 0; col < g.width; col++ {
		if _, err := g.FindLandingRow(col); err == nil {
			open = append(open, col)
		}
	}
	return open
}

// this creates a deep copy of the grid
func (g *Grid) Clone() *Grid {
	cells := make([][]Owner, g.height)
	for i := range g.cells {
		cells[i] = make([]Owner, g.width)
		copy(cells[i], g.cells[i])
	}
	return &Grid{height: g.height, width: g.width, cells: cells}
}

// Rows flattens the grid to plain ints for JSON clients
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for r := range g.cells {
		rows[r] = make([]int, g.width)
		for c, owner := range g.cells[r] {
			rows[r][c] = int(owner)
		}
	}
	return rows
}
