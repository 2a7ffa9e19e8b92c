package domain

import "time"

// GameView is the read-only picture of a game handed to clients
type GameView struct {
	GameID      string     `json:"gameId"`
	Height      int        `json:"height"`
	Width       int        `json:"width"`
	Board       [][]int    `json:"board"`
	CurrentTurn Owner      `json:"currentTurn"`
	Status      GameStatus `json:"status"`
	Winner      Owner      `json:"winner,omitempty"`
	MoveCount   int        `json:"moveCount"`
	WinningLine []Cell     `json:"winningLine,omitempty"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (g *Game) View(gameID string) GameView {
	var line []Cell
	if len(g.WinningLine) > 0 {
		line = append([]Cell(nil), g.WinningLine...)
	}

	return GameView{
		GameID:      gameID,
		Height:      g.Grid.Height(),
		Width:       g.Grid.Width(),
		Board:       g.Grid.Rows(),
		CurrentTurn: g.CurrentPlayer,
		Status:      g.Status,
		Winner:      g.Winner,
		MoveCount:   g.MoveCount,
		WinningLine: line,
		Message:     g.Message(),
	}
}

const (
	MsgState    = "state"
	MsgMove     = "move"
	MsgRejected = "rejected"
	MsgGameOver = "game_over"
	MsgReset    = "reset"
	MsgError    = "error"
	MsgPong     = "pong"

	MsgDrop = "drop"
	MsgPing = "ping"
)

type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

type ServerMessage struct {
	Type    string       `json:"type"`
	GameID  string       `json:"gameId,omitempty"`
	Message string       `json:"message,omitempty"`
	Outcome *DropOutcome `json:"outcome,omitempty"`
	Game    *GameView    `json:"game,omitempty"`
}
