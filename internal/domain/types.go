package domain

// Owner identifies who occupies a cell
type Owner int

const (
	Empty   Owner = 0
	Player1 Owner = 1
	Player2 Owner = 2
)

// ToWin is the run length needed for a win
const ToWin = 4

const (
	DefaultHeight = 6
	DefaultWidth  = 7
)

func (o Owner) Opponent() Owner {
	switch o {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return Empty
	}
}

func (o Owner) IsPlayer() bool {
	return o == Player1 || o == Player2
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusTied   GameStatus = "tied"
)

// MoveResult tells the caller what an accepted drop did to the game
type MoveResult string

const (
	ResultContinue MoveResult = "continue"
	ResultWin      MoveResult = "win"
	ResultTie      MoveResult = "tie"
)

// Cell is a (row, column) coordinate, row 0 being the top
type Cell struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// basic errors that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn     Error = "invalid column"
	ErrColumnFull        Error = "column is full"
	ErrGameOver          Error = "game is over"
	ErrInvalidDimensions Error = "invalid board dimensions"
)
