package tictactoe

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// SearchPolicy picks an empty cell for player. Implementations must not mutate board.
type SearchPolicy interface {
	ChooseMove(ctx context.Context, board *entity.Board, player entity.Cell) (entity.Position, error)
}

type randomPolicy struct {
	rnd *rand.Rand
}

// NewRandomPolicy - returns a policy choosing uniformly among the empty cells.
// A zero seed seeds from the clock.
func NewRandomPolicy(seed int64) SearchPolicy {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &randomPolicy{
		rnd: rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *randomPolicy) ChooseMove(_ context.Context, board *entity.Board, player entity.Cell) (entity.Position, error) {
	if !player.IsMark() {
		return entity.Position{}, fmt.Errorf("%w: %v", apperror.ErrUnknownMark, player)
	}

	availableCells := board.EmptyCells()
	if len(availableCells) == 0 {
		return entity.Position{}, apperror.ErrNoLegalMove
	}

	return availableCells[that.rnd.Intn(len(availableCells))], nil
}
