package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/pkg/uid"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrSessionNotFound Error = "game session not found"
	ErrBoardTooLarge   Error = "board is too large"
)

// Notifier receives every state change of a session, typically a
// websocket hub fanning it out to subscribers
type Notifier interface {
	Publish(gameID string, message domain.ServerMessage)
	CloseGame(gameID string)
}

type Limits struct {
	DefaultHeight int
	DefaultWidth  int
	MaxHeight     int
	MaxWidth      int
}

// GameSession is one live game. The domain game is not safe for concurrent
// use, so every access goes through mu.
type GameSession struct {
	GameID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	game      *domain.Game
	mu        sync.Mutex
}

// SessionManager manages active game sessions
type SessionManager struct {
	sessions map[string]*GameSession // gameID → GameSession
	mu       sync.RWMutex
	limits   Limits
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionManager(limits Limits, notifier Notifier, logger *slog.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*GameSession),
		limits:   limits,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (sm *SessionManager) Limits() Limits {
	return sm.limits
}

// resolveDimensions fills zero values from fallback and applies the size caps
func (sm *SessionManager) resolveDimensions(height, width, fallbackHeight, fallbackWidth int) (int, int, error) {
	if height == 0 {
		height = fallbackHeight
	}
	if width == 0 {
		width = fallbackWidth
	}

	if (sm.limits.MaxHeight > 0 && height > sm.limits.MaxHeight) ||
		(sm.limits.MaxWidth > 0 && width > sm.limits.MaxWidth) {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %dx%d",
			ErrBoardTooLarge, height, width, sm.limits.MaxHeight, sm.limits.MaxWidth)
	}
	return height, width, nil
}

// CreateSession starts a new game. Zero dimensions take the configured defaults.
func (sm *SessionManager) CreateSession(height, width int) (*GameSession, error) {
	height, width, err := sm.resolveDimensions(height, width, sm.limits.DefaultHeight, sm.limits.DefaultWidth)
	if err != nil {
		return nil, err
	}

	g, err := domain.NewGame(height, width)
	if err != nil {
		return nil, err
	}

	now := sm.now()
	session := &GameSession{
		GameID:    uid.GenerateGameID(),
		CreatedAt: now,
		UpdatedAt: now,
		game:      g,
	}

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	sm.logger.Info("game session created", "game_id", session.GameID, "height", height, "width", width)
	return session, nil
}

func (sm *SessionManager) GetSession(gameID string) (*GameSession, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	session, exists := sm.sessions[gameID]
	return session, exists
}

func (sm *SessionManager) mustSession(gameID string) (*GameSession, error) {
	session, exists := sm.GetSession(gameID)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, gameID)
	}
	return session, nil
}

func (sm *SessionManager) Snapshot(gameID string) (domain.GameView, error) {
	session, err := sm.mustSession(gameID)
	if err != nil {
		return domain.GameView{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.viewLocked(), nil
}

// Drop plays column for whoever's turn it is. A full column comes back as a
// rejected outcome with no error and is not published.
func (sm *SessionManager) Drop(gameID string, column int) (domain.DropOutcome, domain.GameView, error) {
	session, err := sm.mustSession(gameID)
	if err != nil {
		return domain.DropOutcome{}, domain.GameView{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	outcome, err := session.game.DropPiece(column)
	if err != nil {
		sm.logger.Debug("drop refused", "game_id", gameID, "column", column, "error", err)
		return domain.DropOutcome{}, session.viewLocked(), err
	}

	if outcome.Rejected {
		return outcome, session.viewLocked(), nil
	}

	session.UpdatedAt = sm.now()
	view := session.viewLocked()

	msgType := domain.MsgMove
	if outcome.Result != domain.ResultContinue {
		msgType = domain.MsgGameOver
		sm.logger.Info("game finished", "game_id", gameID, "result", outcome.Result,
			"winner", int(outcome.Winner), "moves", view.MoveCount)
	}
	sm.publish(gameID, domain.ServerMessage{
		Type:    msgType,
		GameID:  gameID,
		Message: view.Message,
		Outcome: &outcome,
		Game:    &view,
	})

	return outcome, view, nil
}

// Reset throws the session's game away and starts a new one, resized when
// height or width are non-zero.
func (sm *SessionManager) Reset(gameID string, height, width int) (domain.GameView, error) {
	session, err := sm.mustSession(gameID)
	if err != nil {
		return domain.GameView{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	height, width, err = sm.resolveDimensions(height, width, session.game.Grid.Height(), session.game.Grid.Width())
	if err != nil {
		return domain.GameView{}, err
	}

	g, err := domain.NewGame(height, width)
	if err != nil {
		return domain.GameView{}, err
	}

	session.game = g
	session.UpdatedAt = sm.now()
	view := session.viewLocked()

	sm.logger.Info("game session reset", "game_id", gameID, "height", height, "width", width)
	sm.publish(gameID, domain.ServerMessage{
		Type:    domain.MsgReset,
		GameID:  gameID,
		Message: view.Message,
		Game:    &view,
	})

	return view, nil
}

func (sm *SessionManager) RemoveSession(gameID string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[gameID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, gameID)
	}

	delete(sm.sessions, gameID)
	sm.closeGame(gameID)
	sm.logger.Info("game session removed", "game_id", gameID)
	return nil
}

// CleanupIdle removes sessions that have not changed for longer than maxIdle
// and returns how many went away.
func (sm *SessionManager) CleanupIdle(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	count := 0
	now := sm.now()

	for gameID, session := range sm.sessions {
		session.mu.Lock()
		idle := now.Sub(session.UpdatedAt)
		session.mu.Unlock()

		if idle > maxIdle {
			delete(sm.sessions, gameID)
			sm.closeGame(gameID)
			count++
		}
	}

	if count > 0 {
		sm.logger.Info("idle game sessions removed", "count", count)
	}
	return count
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

func (sm *SessionManager) publish(gameID string, message domain.ServerMessage) {
	if sm.notifier == nil {
		return
	}
	sm.notifier.Publish(gameID, message)
}

func (sm *SessionManager) closeGame(gameID string) {
	if sm.notifier == nil {
		return
	}
	sm.notifier.CloseGame(gameID)
}

// caller must hold gs.mu
func (gs *GameSession) viewLocked() domain.GameView {
	view := gs.game.View(gs.GameID)
	view.CreatedAt = gs.CreatedAt
	view.UpdatedAt = gs.UpdatedAt
	return view
}
