package tictactoe

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Tally counts match outcomes.
type Tally struct {
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that Tally) Games() int {
	return that.XWins + that.OWins + that.Draws
}

func (that *Tally) add(result Result) {
	switch {
	case result.Kind == ResultDraw:
		that.Draws++
	case result.Winner == entity.PlayerX:
		that.XWins++
	default:
		that.OWins++
	}
}

// PlayOut - advances automated turns until the match ends or a human has to move.
func PlayOut(ctx context.Context, controller *GameController) (Result, error) {
	for controller.CurrentIsAutomated() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		if _, _, err := controller.AdvanceAutomatedTurn(ctx); err != nil {
			return Result{}, err
		}
	}

	return controller.Result(), nil
}

// RunArena - plays games automated matches from a fresh board each and counts the outcomes.
// The controller is switched to automated-vs-automated first.
func RunArena(ctx context.Context, controller *GameController, games int) (Tally, error) {
	var tally Tally

	if err := controller.SetMode(entity.ModeAutomatedVsAutomated); err != nil {
		return tally, err
	}

	for game := 0; game < games; game++ {
		controller.Reset()

		result, err := PlayOut(ctx, controller)
		if err != nil {
			return tally, fmt.Errorf("game %d failed: %w", game+1, err)
		}

		tally.add(result)
	}

	controller.logger.Info("arena finished",
		"games", tally.Games(), "x_wins", tally.XWins, "o_wins", tally.OWins, "draws", tally.Draws)

	return tally, nil
}
