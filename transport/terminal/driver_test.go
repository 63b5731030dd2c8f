package terminal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newController(t *testing.T, mode entity.Mode) *tictactoe.GameController {
	t.Helper()

	policies := tictactoe.Policies{
		Random:  tictactoe.NewRandomPolicy(1),
		Optimal: tictactoe.NewMinimaxPolicy(discardLogger(), nil),
	}

	settings := tictactoe.DefaultSettings()
	settings.Mode = mode
	settings.Names = entity.DefaultNames(mode)

	controller, err := tictactoe.NewGameController(discardLogger(), policies, settings)
	require.NoError(t, err)

	return controller
}

func runDriver(t *testing.T, controller *tictactoe.GameController, input string) string {
	t.Helper()

	var out bytes.Buffer
	driver := NewDriver(discardLogger(), controller, strings.NewReader(input), &out, 0, termenv.WithProfile(termenv.Ascii))

	require.NoError(t, driver.Run(context.Background()))

	return out.String()
}

func TestDriver_Run(t *testing.T) {
	t.Run("Human win", func(t *testing.T) {
		// Given: two humans
		controller := newController(t, entity.ModePlayerVsPlayer)

		// When: X completes the top row
		out := runDriver(t, controller, "0 0\n1 0\n0 1\n1 1\n0 2\n")

		// Then: the winner is announced and the game is over
		assert.Contains(t, out, "Player 1 wins")
		assert.False(t, controller.IsRunning())
		assert.Contains(t, out, "X X X")
	})

	t.Run("Draw", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsPlayer)

		out := runDriver(t, controller, "0 0\n0 1\n0 2\n1 1\n1 0\n1 2\n2 1\n2 0\n2 2\n")

		assert.Contains(t, out, "No one wins")
		assert.Equal(t, tictactoe.ResultDraw, controller.Result().Kind)
	})

	t.Run("Computer answers the human", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsAutomated)

		out := runDriver(t, controller, "0 0\nq\n3 3\n")

		assert.Contains(t, out, "Computer plays O at (1, 1)")
		assert.Equal(t, 2, controller.Snapshot().MarkCount)
		assert.Equal(t, entity.PlayerX, controller.CurrentPlayer())
	})

	t.Run("Computers play a full game without input", func(t *testing.T) {
		controller := newController(t, entity.ModeAutomatedVsAutomated)

		out := runDriver(t, controller, "")

		assert.Contains(t, out, "No one wins")
		assert.Equal(t, entity.Cells, controller.Snapshot().MarkCount)
		assert.Equal(t, 5, strings.Count(out, "Computer 1 plays X"))
		assert.Equal(t, 4, strings.Count(out, "Computer 2 plays O"))
	})

	t.Run("Bad input is reported and play goes on", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsPlayer)

		out := runDriver(t, controller, "5 5\nfoo\n0 0\n0 0\n")

		assert.Contains(t, out, "error: invalid move")
		assert.Contains(t, out, "error: unknown command")
		assert.Equal(t, 1, controller.Snapshot().MarkCount)
		assert.Equal(t, entity.PlayerO, controller.CurrentPlayer())
	})

	t.Run("Settings commands", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsPlayer)

		runDriver(t, controller, "m\nd\nn 1 Alice Smith\n")

		settings := controller.Settings()
		assert.Equal(t, entity.ModePlayerVsAutomated, settings.Mode)
		assert.Equal(t, entity.DifficultyRandom, settings.Difficulty)
		assert.Equal(t, [2]string{"Alice Smith", "Computer"}, settings.Names)

		runDriver(t, controller, "1\n")
		assert.Equal(t, entity.DifficultyOptimal, controller.Settings().Difficulty)
	})

	t.Run("Reset", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsPlayer)

		runDriver(t, controller, "0 0\n1 1\nr\n")

		assert.Equal(t, 0, controller.Snapshot().MarkCount)
		assert.True(t, controller.IsRunning())
	})

	t.Run("Cancelled context", func(t *testing.T) {
		controller := newController(t, entity.ModePlayerVsPlayer)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		driver := NewDriver(discardLogger(), controller, strings.NewReader("0 0\n"), io.Discard, 0)

		assert.ErrorIs(t, driver.Run(ctx), context.Canceled)
		assert.Equal(t, 0, controller.Snapshot().MarkCount)
	})
}

func TestRenderer_Render(t *testing.T) {
	// Given: a won board
	controller := newController(t, entity.ModePlayerVsPlayer)
	for _, move := range []entity.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 0, Col: 2}, {Row: 2, Col: 2}} {
		require.NoError(t, controller.MarkCell(move.Row, move.Col))
	}

	var out bytes.Buffer
	renderer := NewRenderer(&out, termenv.WithProfile(termenv.Ascii))

	// When: it is rendered without colours
	renderer.Render(controller.Snapshot())

	// Then: the grid and the result are plain text
	text := out.String()
	assert.Contains(t, text, "mode: pvp  difficulty: optimal")
	assert.Contains(t, text, "X: Player 1 (human)")
	assert.Contains(t, text, "0  X O O")
	assert.Contains(t, text, "1  . X .")
	assert.Contains(t, text, "2  . . X")
	assert.Contains(t, text, "Player 1 wins")
}
