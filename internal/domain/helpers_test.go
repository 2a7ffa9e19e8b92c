package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// gridFromRows builds a grid from a top-to-bottom picture of the board
func gridFromRows(t *testing.T, rows [][]Owner) *Grid {
	t.Helper()

	require.NotEmpty(t, rows)
	g, err := NewGrid(len(rows), len(rows[0]))
	require.NoError(t, err)

	for r, row := range rows {
		require.Len(t, row, g.Width())
		copy(g.cells[r], row)
	}
	return g
}

// mirror flips the grid left to right and optionally swaps the players
func mirror(g *Grid, swapOwners bool) *Grid {
	out := g.Clone()
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			owner := g.cells[r][g.width-1-c]
			if swapOwners {
				owner = owner.Opponent()
			}
			out.cells[r][c] = owner
		}
	}
	return out
}

func dropAll(t *testing.T, g *Game, columns ...int) DropOutcome {
	t.Helper()

	var last DropOutcome
	for i, col := range columns {
		outcome, err := g.DropPiece(col)
		require.NoErrorf(t, err, "drop %d into column %d", i, col)
		require.Falsef(t, outcome.Rejected, "drop %d into column %d rejected", i, col)
		last = outcome
	}
	return last
}
