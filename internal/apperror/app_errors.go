package apperror

import "errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrNoLegalMove       = errors.New("no legal move")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotHumanTurn      = errors.New("it's not a human player's turn")
	ErrUnknownMode       = errors.New("unknown game mode")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMark       = errors.New("unknown player mark")
)
