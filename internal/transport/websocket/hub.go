package websocket

import (
	"sync"

	"github.com/iamasit07/connect-four/internal/domain"
)

// Hub fans game updates out to every socket watching that game
type Hub struct {
	games map[string]map[*Client]struct{}
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		games: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.games[c.gameID]; !ok {
		h.games[c.gameID] = make(map[*Client]struct{})
	}
	h.games[c.gameID][c] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.games[c.gameID]
	if !ok {
		return
	}
	delete(clients, c)
	if len(clients) == 0 {
		delete(h.games, c.gameID)
	}
}

// Publish implements game.Notifier
func (h *Hub) Publish(gameID string, message domain.ServerMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.games[gameID] {
		c.enqueue(message)
	}
}

// CloseGame disconnects everyone watching gameID
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	clients := h.games[gameID]
	delete(h.games, gameID)
	h.mu.Unlock()

	for c := range clients {
		c.close()
	}
}

func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games[gameID])
}
