package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect-four/internal/domain"
	"github.com/iamasit07/connect-four/internal/service/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sm := game.NewSessionManager(game.Limits{DefaultHeight: 6, DefaultWidth: 7, MaxHeight: 10, MaxWidth: 10}, nil, logger)
	return NewRouter(NewGameHandler(sm, logger), nil, []string{"http://localhost:5173"}, logger)
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createGame(t *testing.T, router http.Handler, body any) domain.GameView {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/games", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var view domain.GameView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func drop(t *testing.T, router http.Handler, gameID string, column int) (*httptest.ResponseRecorder, dropResponse) {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/games/"+gameID+"/drop", gin.H{"column": column})
	var resp dropResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGameHandler_Create(t *testing.T) {
	t.Run("creates a default game without a body", func(t *testing.T) {
		router := newTestRouter(t)

		view := createGame(t, router, nil)

		assert.NotEmpty(t, view.GameID)
		assert.Equal(t, 6, view.Height)
		assert.Equal(t, 7, view.Width)
		assert.Equal(t, domain.StatusActive, view.Status)
		assert.Equal(t, "Player 1's turn", view.Message)
	})

	t.Run("treats an empty chunked body as no body", func(t *testing.T) {
		router := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/api/games", strings.NewReader(""))
		req.ContentLength = -1
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var view domain.GameView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, 6, view.Height)
		assert.Equal(t, 7, view.Width)
	})

	t.Run("creates a game of the requested size", func(t *testing.T) {
		router := newTestRouter(t)

		view := createGame(t, router, gin.H{"height": 5, "width": 8})

		assert.Equal(t, 5, view.Height)
		assert.Equal(t, 8, view.Width)
		assert.Len(t, view.Board, 5)
	})

	t.Run("rejects oversized and negative boards", func(t *testing.T) {
		router := newTestRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/games", gin.H{"height": 11, "width": 7})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/games", gin.H{"height": -1, "width": 7})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGameHandler_Drop(t *testing.T) {
	t.Run("plays a full game to a win", func(t *testing.T) {
		router := newTestRouter(t)
		view := createGame(t, router, nil)

		var resp dropResponse
		for _, col := range []int{0, 6, 1, 6, 2, 6, 3} {
			var rec *httptest.ResponseRecorder
			rec, resp = drop(t, router, view.GameID, col)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		}

		assert.Equal(t, domain.ResultWin, resp.Outcome.Result)
		assert.Equal(t, domain.Player1, resp.Outcome.Winner)
		assert.Equal(t, domain.StatusWon, resp.Game.Status)
		assert.Equal(t, "Player 1 won!", resp.Game.Message)

		rec, _ := drop(t, router, view.GameID, 4)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("reports a full column as a rejected outcome", func(t *testing.T) {
		router := newTestRouter(t)
		view := createGame(t, router, gin.H{"height": 4, "width": 4})
		for i := 0; i < 4; i++ {
			rec, _ := drop(t, router, view.GameID, 0)
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec, resp := drop(t, router, view.GameID, 0)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, resp.Outcome.Rejected)
		assert.Equal(t, 4, resp.Game.MoveCount)
	})

	t.Run("rejects out of range columns", func(t *testing.T) {
		router := newTestRouter(t)
		view := createGame(t, router, nil)

		rec, _ := drop(t, router, view.GameID, 7)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires a column", func(t *testing.T) {
		router := newTestRouter(t)
		view := createGame(t, router, nil)

		rec := doJSON(t, router, http.MethodPost, "/api/games/"+view.GameID+"/drop", gin.H{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown games are 404", func(t *testing.T) {
		router := newTestRouter(t)

		rec, _ := drop(t, router, "missing", 0)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGameHandler_ResetGetDelete(t *testing.T) {
	router := newTestRouter(t)
	view := createGame(t, router, nil)
	rec, _ := drop(t, router, view.GameID, 3)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/games/"+view.GameID+"/reset", gin.H{"height": 8, "width": 9})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var reset domain.GameView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reset))
	assert.Equal(t, 8, reset.Height)
	assert.Equal(t, 9, reset.Width)
	assert.Zero(t, reset.MoveCount)

	rec = doJSON(t, router, http.MethodGet, "/api/games/"+view.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got domain.GameView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, view.GameID, got.GameID)
	assert.Equal(t, 8, got.Height)

	rec = doJSON(t, router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","games":1}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodDelete, "/api/games/"+view.GameID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/games/"+view.GameID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCORS(t *testing.T) {
	router := newTestRouter(t)

	t.Run("allows configured origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/games", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("blocks unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
