package domain

// line directions as (deltaRow, deltaCol); every line extends
// downward or sideways from its starting cell
var directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// CheckWin reports whether owner has ToWin pieces in a row anywhere on the grid.
func CheckWin(g *Grid, owner Owner) bool {
	_, won := FindWin(g, owner)
	return won
}

// FindWin scans every cell as a potential line start and returns the first
// winning line found, in row-major order. Full scan, O(height*width).
func FindWin(g *Grid, owner Owner) ([]Cell, bool) {
	if !owner.IsPlayer() {
		return nil, false
	}

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			for _, dir := range directions {
				if isLine(g, row, col, dir[0], dir[1], owner) {
					return lineCells(row, col, dir[0], dir[1]), true
				}
			}
		}
	}
	return nil, false
}

func isLine(g *Grid, row, col, deltaRow, deltaCol int, owner Owner) bool {
	for i := 0; i < ToWin; i++ {
		r, c := row+deltaRow*i, col+deltaCol*i
		if !g.InBounds(r, c) || g.cells[r][c] != owner {
			return false
		}
	}
	return true
}

func lineCells(row, col, deltaRow, deltaCol int) []Cell {
	cells := make([]Cell, ToWin)
	for i := range cells {
		cells[i] = Cell{Row: row + deltaRow*i, Column: col + deltaCol*i}
	}
	return cells
}
