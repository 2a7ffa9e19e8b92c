package domain

import (
	"errors"
	"fmt"
)

// Game is the whole state of one match. It is not safe for concurrent use;
// callers serialize access.
type Game struct {
	Grid          *Grid
	CurrentPlayer Owner
	Status        GameStatus
	Winner        Owner
	MoveCount     int
	WinningLine   []Cell
}

// DropOutcome is what a drop did. A rejected outcome (column full) carries
// only the column; nothing else about the game changed.
type DropOutcome struct {
	Rejected bool       `json:"rejected"`
	Row      int        `json:"row"`
	Column   int        `json:"column"`
	Owner    Owner      `json:"owner,omitempty"`
	Result   MoveResult `json:"result,omitempty"`
	Winner   Owner      `json:"winner,omitempty"`
	NextTurn Owner      `json:"nextTurn,omitempty"`
}

// NewGame builds a fresh game; it is also how a game is reset or resized.
func NewGame(height, width int) (*Game, error) {
	grid, err := NewGrid(height, width)
	if err != nil {
		return nil, err
	}

	return &Game{
		Grid:          grid,
		CurrentPlayer: Player1,
		Status:        StatusActive,
		Winner:        Empty,
	}, nil
}

func (g *Game) DropPiece(column int) (DropOutcome, error) {
	if g.IsFinished() {
		return DropOutcome{}, ErrGameOver
	}

	row, err := g.Grid.FindLandingRow(column)
	if errors.Is(err, ErrColumnFull) {
		return DropOutcome{Rejected: true, Row: -1, Column: column}, nil
	}
	if err != nil {
		return DropOutcome{}, err
	}

	mover := g.CurrentPlayer
	g.Grid.Place(row, column, mover)
	g.MoveCount++

	outcome := DropOutcome{Row: row, Column: column, Owner: mover}

	if line, won := FindWin(g.Grid, mover); won {
		g.Status = StatusWon
		g.Winner = mover
		g.WinningLine = line
		outcome.Result = ResultWin
		outcome.Winner = mover
		return outcome, nil
	}

	if g.Grid.IsFull() {
		g.Status = StatusTied
		outcome.Result = ResultTie
		return outcome, nil
	}

	g.CurrentPlayer = mover.Opponent()
	outcome.Result = ResultContinue
	outcome.NextTurn = g.CurrentPlayer
	return outcome, nil
}

func (g *Game) IsFinished() bool {
	return g.Status == StatusWon || g.Status == StatusTied
}

// Message is the line a client shows under the board.
func (g *Game) Message() string {
	switch g.Status {
	case StatusWon:
		return fmt.Sprintf("Player %d won!", g.Winner)
	case StatusTied:
		return "Tie Game!"
	default:
		return fmt.Sprintf("Player %d's turn", g.CurrentPlayer)
	}
}
