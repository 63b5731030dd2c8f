package tictactoe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	scoreWinX = 1
	scoreWinO = -1
	scoreDraw = 0
)

type moveCache interface {
	Get(ctx context.Context, key string) (entity.MoveEvaluation, bool, error)
	Set(ctx context.Context, key string, evaluation entity.MoveEvaluation) error
}

// SearchResult is the outcome of a minimax search.
type SearchResult struct {
	Move   entity.Position
	Value  int
	Nodes  int
	Cached bool
}

// MinimaxPolicy searches the whole game tree. X maximises, O minimises.
type MinimaxPolicy struct {
	logger *slog.Logger
	cache  moveCache
}

// NewMinimaxPolicy - cache may be nil.
func NewMinimaxPolicy(logger *slog.Logger, cache moveCache) *MinimaxPolicy {
	return &MinimaxPolicy{
		logger: logger.With("component", "minimax"),
		cache:  cache,
	}
}

func (that *MinimaxPolicy) ChooseMove(ctx context.Context, board *entity.Board, player entity.Cell) (entity.Position, error) {
	result, err := that.Search(ctx, board, player)
	if err != nil {
		return entity.Position{}, err
	}

	return result.Move, nil
}

// Search - finds the best move for player. The context only bounds cache access;
// the search itself always runs to completion.
func (that *MinimaxPolicy) Search(ctx context.Context, board *entity.Board, player entity.Cell) (SearchResult, error) {
	if !player.IsMark() {
		return SearchResult{}, fmt.Errorf("%w: %v", apperror.ErrUnknownMark, player)
	}

	if board.IsFull() || board.TerminalState().HasWinner() {
		return SearchResult{}, apperror.ErrNoLegalMove
	}

	key := CacheKey(board, player)
	if result, ok := that.lookup(ctx, board, key); ok {
		return result, nil
	}

	s := &searcher{board: board.Clone()}
	move, value := s.root(player)

	that.logger.Debug("search finished",
		"player", player.String(), "move", move.String(), "value", value, "nodes", s.nodes)

	if that.cache != nil {
		evaluation := entity.MoveEvaluation{Move: move, Value: value}
		if err := that.cache.Set(ctx, key, evaluation); err != nil {
			that.logger.Warn("could not store search result", "key", key, "error", err)
		}
	}

	return SearchResult{Move: move, Value: value, Nodes: s.nodes}, nil
}

func (that *MinimaxPolicy) lookup(ctx context.Context, board *entity.Board, key string) (SearchResult, bool) {
	if that.cache == nil {
		return SearchResult{}, false
	}

	evaluation, ok, err := that.cache.Get(ctx, key)
	if err != nil {
		that.logger.Warn("could not read search cache", "key", key, "error", err)
		return SearchResult{}, false
	}

	move := evaluation.Move
	if !ok || !move.InBounds() || !board.IsEmpty(move.Row, move.Col) {
		return SearchResult{}, false
	}

	return SearchResult{Move: move, Value: evaluation.Value, Cached: true}, true
}

// CacheKey - identifies a position together with the side to move.
func CacheKey(board *entity.Board, player entity.Cell) string {
	return board.Key() + ":" + player.String()
}

// searcher backtracks over a private board with Mark/Unmark.
type searcher struct {
	board *entity.Board
	nodes int
}

func (that *searcher) root(player entity.Cell) (entity.Position, int) {
	best := entity.Position{Row: -1, Col: -1}
	bestValue := worstFor(player)

	for idx := range entity.Cells {
		row, col := idx/entity.Size, idx%entity.Size
		if !that.board.IsEmpty(row, col) {
			continue
		}

		value := that.child(row, col, player)
		if improves(player, value, bestValue) {
			best = entity.Position{Row: row, Col: col}
			bestValue = value
		}
	}

	return best, bestValue
}

func (that *searcher) value(toMove entity.Cell) int {
	that.nodes++

	if state := that.board.TerminalState(); state.HasWinner() {
		return score(state.Winner)
	}

	if that.board.IsFull() {
		return scoreDraw
	}

	bestValue := worstFor(toMove)
	for idx := range entity.Cells {
		row, col := idx/entity.Size, idx%entity.Size
		if !that.board.IsEmpty(row, col) {
			continue
		}

		if value := that.child(row, col, toMove); improves(toMove, value, bestValue) {
			bestValue = value
		}
	}

	return bestValue
}

func (that *searcher) child(row, col int, toMove entity.Cell) int {
	if err := that.board.Mark(row, col, toMove); err != nil {
		return worstFor(toMove)
	}

	value := that.value(toMove.Opponent())
	that.board.Unmark(row, col)

	return value
}

func score(winner entity.Cell) int {
	if winner == entity.PlayerX {
		return scoreWinX
	}
	return scoreWinO
}

// worstFor is outside the value range so that the first legal move always improves on it.
func worstFor(player entity.Cell) int {
	if player == entity.PlayerX {
		return scoreWinO - 1
	}
	return scoreWinX + 1
}

// improves only accepts strict improvements, so ties keep the earliest row-major cell.
func improves(player entity.Cell, value, best int) bool {
	if player == entity.PlayerX {
		return value > best
	}
	return value < best
}
