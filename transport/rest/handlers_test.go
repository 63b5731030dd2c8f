package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	policies := tictactoe.Policies{
		Random:  tictactoe.NewRandomPolicy(1),
		Optimal: tictactoe.NewMinimaxPolicy(logger, nil),
	}

	controller, err := tictactoe.NewGameController(logger, policies, tictactoe.DefaultSettings())
	require.NoError(t, err)

	return New(logger, controller).Handler()
}

func do(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != "" {
		reader = bytes.NewBufferString(body)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(method, path, reader))

	return recorder
}

func decodeGame(t *testing.T, recorder *httptest.ResponseRecorder) Game {
	t.Helper()

	var game Game
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &game))

	return game
}

func TestPing(t *testing.T) {
	recorder := do(t, newTestServer(t), http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestGetGame(t *testing.T) {
	// When: the game is fetched before any move
	recorder := do(t, newTestServer(t), http.MethodGet, "/api/game", "")

	// Then: the initial snapshot is returned
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	game := decodeGame(t, recorder)
	assert.Equal(t, "X", game.Current)
	assert.True(t, game.Running)
	assert.Equal(t, "ongoing", game.Result.Kind)
	assert.Equal(t, "pvp", game.Mode)
	assert.Equal(t, "optimal", game.Difficulty)
	assert.Equal(t, Player{Mark: "X", Name: "Player 1", Kind: "human"}, game.Players[0])
	assert.Equal(t, Player{Mark: "O", Name: "Player 2", Kind: "human"}, game.Players[1])
	assert.Equal(t, [3]string{".", ".", "."}, game.Board[1])
}

func TestMarkCell(t *testing.T) {
	t.Run("Marks the cell for the current player", func(t *testing.T) {
		handler := newTestServer(t)

		recorder := do(t, handler, http.MethodPost, "/api/game/cells", `{"row":1,"col":2}`)

		require.Equal(t, http.StatusOK, recorder.Code)
		game := decodeGame(t, recorder)
		assert.Equal(t, "X", game.Board[1][2])
		assert.Equal(t, 1, game.MarkCount)
		assert.Equal(t, "O", game.Current)
	})

	t.Run("Occupied and out of range cells are rejected", func(t *testing.T) {
		handler := newTestServer(t)
		require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/cells", `{"row":0,"col":0}`).Code)

		occupied := do(t, handler, http.MethodPost, "/api/game/cells", `{"row":0,"col":0}`)
		outside := do(t, handler, http.MethodPost, "/api/game/cells", `{"row":3,"col":0}`)

		assert.Equal(t, http.StatusUnprocessableEntity, occupied.Code)
		assert.Equal(t, http.StatusUnprocessableEntity, outside.Code)
		assert.Equal(t, 1, decodeGame(t, do(t, handler, http.MethodGet, "/api/game", "")).MarkCount)
	})

	t.Run("Bad input", func(t *testing.T) {
		handler := newTestServer(t)

		assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/cells", `{"row":1}`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/cells", `{"row":`).Code)
		assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/cells", `{"cell":4}`).Code)
	})

	t.Run("Win is reported with its line and ends the game", func(t *testing.T) {
		handler := newTestServer(t)

		var recorder *httptest.ResponseRecorder
		for _, body := range []string{
			`{"row":0,"col":0}`, `{"row":1,"col":0}`,
			`{"row":0,"col":1}`, `{"row":1,"col":1}`,
			`{"row":0,"col":2}`,
		} {
			recorder = do(t, handler, http.MethodPost, "/api/game/cells", body)
			require.Equal(t, http.StatusOK, recorder.Code, body)
		}

		game := decodeGame(t, recorder)
		assert.False(t, game.Running)
		assert.Equal(t, "win", game.Result.Kind)
		assert.Equal(t, "X", game.Result.Winner)
		require.NotNil(t, game.Result.Line)
		assert.Equal(t, "row", game.Result.Line.Kind)
		assert.Equal(t, 0, game.Result.Line.Index)
		assert.Equal(t, entity.Position{Row: 0, Col: 2}, game.Result.Line.Cells[2])

		// When: another move is sent
		finished := do(t, handler, http.MethodPost, "/api/game/cells", `{"row":2,"col":2}`)

		// Then: the game refuses it
		assert.Equal(t, http.StatusConflict, finished.Code)
	})

	t.Run("Computer turn is not open to input", func(t *testing.T) {
		handler := newTestServer(t)
		require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/mode", `{"mode":"ava"}`).Code)

		recorder := do(t, handler, http.MethodPost, "/api/game/cells", `{"row":0,"col":0}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestAdvance(t *testing.T) {
	t.Run("Human turn", func(t *testing.T) {
		recorder := do(t, newTestServer(t), http.MethodPost, "/api/game/advance", "")

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("Computer answers the human", func(t *testing.T) {
		// Given: player vs computer with X in the corner
		handler := newTestServer(t)
		require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/mode", `{"mode":"pva"}`).Code)
		require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/cells", `{"row":0,"col":0}`).Code)

		// When: the computer is advanced
		recorder := do(t, handler, http.MethodPost, "/api/game/advance", "")

		// Then: it takes the centre
		require.Equal(t, http.StatusOK, recorder.Code)

		var move Move
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &move))
		assert.True(t, move.Moved)
		require.NotNil(t, move.Cell)
		assert.Equal(t, entity.Position{Row: 1, Col: 1}, *move.Cell)
		assert.Equal(t, "O", move.Game.Board[1][1])
		assert.Equal(t, "X", move.Game.Current)
	})
}

func TestMode(t *testing.T) {
	handler := newTestServer(t)

	// When: the mode is toggled with an empty body
	recorder := do(t, handler, http.MethodPost, "/api/game/mode", "")

	// Then: player vs computer is bound with the computer's name
	require.Equal(t, http.StatusOK, recorder.Code)
	game := decodeGame(t, recorder)
	assert.Equal(t, "pva", game.Mode)
	assert.Equal(t, Player{Mark: "O", Name: "Computer", Kind: "automated"}, game.Players[1])

	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/mode", `{"mode":"chess"}`).Code)
}

func TestDifficulty(t *testing.T) {
	handler := newTestServer(t)

	recorder := do(t, handler, http.MethodPost, "/api/game/difficulty", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "random", decodeGame(t, recorder).Difficulty)

	recorder = do(t, handler, http.MethodPost, "/api/game/difficulty", `{"difficulty":"hard"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "optimal", decodeGame(t, recorder).Difficulty)

	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/difficulty", `{"difficulty":"9"}`).Code)
}

func TestRename(t *testing.T) {
	handler := newTestServer(t)

	recorder := do(t, handler, http.MethodPost, "/api/game/names", `{"mark":"o","name":"  Alice "}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Alice", decodeGame(t, recorder).Players[1].Name)

	assert.Equal(t, http.StatusBadRequest, do(t, handler, http.MethodPost, "/api/game/names", `{"mark":"z","name":"Bob"}`).Code)
}

func TestReset(t *testing.T) {
	// Given: a game in progress with a renamed player
	handler := newTestServer(t)
	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/cells", `{"row":0,"col":0}`).Code)
	require.Equal(t, http.StatusOK, do(t, handler, http.MethodPost, "/api/game/names", `{"mark":"x","name":"Alice"}`).Code)

	// When: the game is reset
	recorder := do(t, handler, http.MethodPost, "/api/game/reset", "")

	// Then: the board is fresh and the names survive
	require.Equal(t, http.StatusOK, recorder.Code)
	game := decodeGame(t, recorder)
	assert.Equal(t, 0, game.MarkCount)
	assert.Equal(t, "X", game.Current)
	assert.True(t, game.Running)
	assert.Equal(t, "Alice", game.Players[0].Name)
}
