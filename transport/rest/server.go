package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const shutdownTimeout = 5 * time.Second

// gameController is the part of the controller the HTTP driver needs.
type gameController interface {
	MarkCell(row, col int) error
	AdvanceAutomatedTurn(ctx context.Context) (entity.Position, bool, error)
	ToggleMode() entity.Mode
	SetMode(mode entity.Mode) error
	ToggleDifficulty() entity.Difficulty
	SetDifficulty(level entity.Difficulty) error
	Rename(mark entity.Cell, name string) error
	Reset()
	Snapshot() tictactoe.Snapshot
}

// Server exposes one shared controller over HTTP. Requests are serialised with a mutex.
type Server struct {
	logger *slog.Logger

	mu         sync.Mutex
	controller gameController
}

func New(logger *slog.Logger, controller gameController) *Server {
	return &Server{
		logger:     logger.With("component", "rest"),
		controller: controller,
	}
}

// Handler - routes of the game API.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("GET /api/game", that.handleGetGame)
	mux.HandleFunc("POST /api/game/cells", that.handleMarkCell)
	mux.HandleFunc("POST /api/game/advance", that.handleAdvance)
	mux.HandleFunc("POST /api/game/mode", that.handleMode)
	mux.HandleFunc("POST /api/game/difficulty", that.handleDifficulty)
	mux.HandleFunc("POST /api/game/names", that.handleRename)
	mux.HandleFunc("POST /api/game/reset", that.handleReset)

	return mux
}

// Start - serves until ctx is done, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
