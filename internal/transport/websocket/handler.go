package websocket

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type GameService interface {
	Snapshot(gameID string) (domain.GameView, error)
	Drop(gameID string, column int) (domain.DropOutcome, domain.GameView, error)
	Reset(gameID string, height, width int) (domain.GameView, error)
}

// Handler manages WebSocket dependencies
type Handler struct {
	Hub      *Hub
	Games    GameService
	Upgrader websocket.Upgrader
	logger   *slog.Logger
}

func NewHandler(hub *Hub, games GameService, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Handler {
	return &Handler{
		Hub:   hub,
		Games: games,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// HandleWebSocket upgrades /ws/games/:id and subscribes the socket to that game
func (h *Handler) HandleWebSocket(c *gin.Context) {
	gameID := c.Param("id")

	view, err := h.Games.Snapshot(gameID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	client := newClient(gameID, conn, h.logger)
	h.Hub.subscribe(client)
	go client.writePump()

	h.logger.Debug("websocket subscribed", "game_id", gameID, "subscribers", h.Hub.Subscribers(gameID))
	client.enqueue(domain.ServerMessage{Type: domain.MsgState, GameID: gameID, Message: view.Message, Game: &view})

	h.readLoop(client)
}

func (h *Handler) readLoop(client *Client) {
	defer func() {
		h.Hub.unsubscribe(client)
		client.close()
		h.logger.Debug("websocket closed", "game_id", client.gameID)
	}()

	conn := client.conn
	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read failed", "game_id", client.gameID, "error", err)
			}
			return
		}

		var message domain.ClientMessage
		if err := json.Unmarshal(data, &message); err != nil {
			client.enqueue(errorMessage(client.gameID, "invalid message"))
			continue
		}

		if reply, ok := h.handleMessage(client.gameID, message); ok {
			client.enqueue(reply)
		}
	}
}

// handleMessage applies one client command. Accepted changes reach the client
// through the hub; only the sender-specific replies are returned here.
func (h *Handler) handleMessage(gameID string, message domain.ClientMessage) (domain.ServerMessage, bool) {
	switch message.Type {
	case domain.MsgDrop:
		if message.Column == nil {
			return errorMessage(gameID, "column required"), true
		}
		outcome, view, err := h.Games.Drop(gameID, *message.Column)
		if err != nil {
			return errorMessage(gameID, describe(err)), true
		}
		if outcome.Rejected {
			return domain.ServerMessage{
				Type:    domain.MsgRejected,
				GameID:  gameID,
				Message: "column is full",
				Outcome: &outcome,
				Game:    &view,
			}, true
		}
		return domain.ServerMessage{}, false

	case domain.MsgReset:
		if _, err := h.Games.Reset(gameID, message.Height, message.Width); err != nil {
			return errorMessage(gameID, describe(err)), true
		}
		return domain.ServerMessage{}, false

	case domain.MsgState:
		view, err := h.Games.Snapshot(gameID)
		if err != nil {
			return errorMessage(gameID, describe(err)), true
		}
		return domain.ServerMessage{Type: domain.MsgState, GameID: gameID, Message: view.Message, Game: &view}, true

	case domain.MsgPing:
		return domain.ServerMessage{Type: domain.MsgPong, GameID: gameID}, true

	default:
		return errorMessage(gameID, "unknown message type: "+message.Type), true
	}
}

func errorMessage(gameID, text string) domain.ServerMessage {
	return domain.ServerMessage{Type: domain.MsgError, GameID: gameID, Message: text}
}

func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrGameOver):
		return "game is over, reset to play again"
	case errors.Is(err, game.ErrSessionNotFound):
		return "game not found"
	default:
		return err.Error()
	}
}
