package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect-four/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 16
)

// Client is one subscribed socket. Only writePump writes to conn;
// everyone else goes through send.
type Client struct {
	gameID string
	conn   *websocket.Conn
	send   chan domain.ServerMessage
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newClient(gameID string, conn *websocket.Conn, logger *slog.Logger) *Client {
	return &Client{
		gameID: gameID,
		conn:   conn,
		send:   make(chan domain.ServerMessage, sendBuffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// enqueue never blocks; a client that can't keep up is closed
func (c *Client) enqueue(message domain.ServerMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- message:
		return true
	default:
		c.logger.Warn("websocket send buffer full, dropping client", "game_id", c.gameID)
		c.close()
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Debug("websocket write failed", "game_id", c.gameID, "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
