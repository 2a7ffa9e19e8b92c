package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
)

type GameService interface {
	CreateSession(height, width int) (*game.GameSession, error)
	Snapshot(gameID string) (domain.GameView, error)
	Drop(gameID string, column int) (domain.DropOutcome, domain.GameView, error)
	Reset(gameID string, height, width int) (domain.GameView, error)
	RemoveSession(gameID string) error
	Count() int
}

type GameHandler struct {
	Games  GameService
	logger *slog.Logger
}

func NewGameHandler(games GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{Games: games, logger: logger}
}

type dimensionsRequest struct {
	Height int `json:"height" binding:"min=0"`
	Width  int `json:"width" binding:"min=0"`
}

type dropRequest struct {
	Column *int `json:"column" binding:"required"`
}

type dropResponse struct {
	Outcome domain.DropOutcome `json:"outcome"`
	Game    domain.GameView    `json:"game"`
}

// bindOptional accepts an empty body as all zero values
func bindOptional(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (h *GameHandler) Create(c *gin.Context) {
	var req dimensionsRequest
	if !bindOptional(c, &req) {
		return
	}

	session, err := h.Games.CreateSession(req.Height, req.Width)
	if err != nil {
		h.writeError(c, err)
		return
	}

	view, err := h.Games.Snapshot(session.GameID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *GameHandler) Get(c *gin.Context) {
	view, err := h.Games.Snapshot(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) Drop(c *gin.Context) {
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column required"})
		return
	}

	outcome, view, err := h.Games.Drop(c.Param("id"), *req.Column)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dropResponse{Outcome: outcome, Game: view})
}

func (h *GameHandler) Reset(c *gin.Context) {
	var req dimensionsRequest
	if !bindOptional(c, &req) {
		return
	}

	view, err := h.Games.Reset(c.Param("id"), req.Height, req.Width)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *GameHandler) Delete(c *gin.Context) {
	if err := h.Games.RemoveSession(c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "games": h.Games.Count()})
}

func (h *GameHandler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrInvalidDimensions),
		errors.Is(err, game.ErrBoardTooLarge):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrGameOver):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("game request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
