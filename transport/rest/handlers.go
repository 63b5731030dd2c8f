package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const maxBodySize = 1 << 12

var (
	errMissingCell   = errors.New("row and col are required")
	errNoAutomatedUp = errors.New("it's not an automated player's turn")
)

func (that *Server) handleGetGame(w http.ResponseWriter, _ *http.Request) {
	that.mu.Lock()
	game := gameFromSnapshot(that.controller.Snapshot())
	that.mu.Unlock()

	that.writeJSON(w, http.StatusOK, game)
}

func (that *Server) handleMarkCell(w http.ResponseWriter, r *http.Request) {
	var req cellRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeError(w, http.StatusBadRequest, errMissingCell)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.controller.MarkCell(*req.Row, *req.Col); err != nil {
		that.writeError(w, statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameFromSnapshot(that.controller.Snapshot()))
}

func (that *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleAdvance")

	that.mu.Lock()
	defer that.mu.Unlock()

	move, moved, err := that.controller.AdvanceAutomatedTurn(r.Context())
	if err != nil {
		log.Error("automated turn failed", "error", err)
		that.writeError(w, http.StatusInternalServerError, err)
		return
	}

	snapshot := that.controller.Snapshot()
	if !moved {
		err = errNoAutomatedUp
		if !snapshot.Running {
			err = apperror.ErrGameFinished
		}

		that.writeError(w, http.StatusConflict, err)
		return
	}

	that.writeJSON(w, http.StatusOK, Move{Moved: true, Cell: &move, Game: gameFromSnapshot(snapshot)})
}

// handleMode - an empty body toggles to the next mode.
func (that *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if req.Mode == "" {
		that.controller.ToggleMode()
	} else {
		mode, err := entity.ParseMode(req.Mode)
		if err != nil {
			that.writeError(w, http.StatusBadRequest, err)
			return
		}

		if err = that.controller.SetMode(mode); err != nil {
			that.writeError(w, statusFor(err), err)
			return
		}
	}

	that.writeJSON(w, http.StatusOK, gameFromSnapshot(that.controller.Snapshot()))
}

// handleDifficulty - an empty body flips between random and optimal.
func (that *Server) handleDifficulty(w http.ResponseWriter, r *http.Request) {
	var req difficultyRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if req.Difficulty == "" {
		that.controller.ToggleDifficulty()
	} else {
		level, err := entity.ParseDifficulty(req.Difficulty)
		if err != nil {
			that.writeError(w, http.StatusBadRequest, err)
			return
		}

		if err = that.controller.SetDifficulty(level); err != nil {
			that.writeError(w, statusFor(err), err)
			return
		}
	}

	that.writeJSON(w, http.StatusOK, gameFromSnapshot(that.controller.Snapshot()))
}

func (that *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	mark, err := entity.ParseMark(req.Mark)
	if err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.controller.Rename(mark, req.Name); err != nil {
		that.writeError(w, statusFor(err), err)
		return
	}

	that.writeJSON(w, http.StatusOK, gameFromSnapshot(that.controller.Snapshot()))
}

func (that *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.controller.Reset()

	that.writeJSON(w, http.StatusOK, gameFromSnapshot(that.controller.Snapshot()))
}

// decodeBody - an empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrNotHumanTurn):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrUnknownMode),
		errors.Is(err, apperror.ErrUnknownDifficulty),
		errors.Is(err, apperror.ErrUnknownMark):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *Server) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}
