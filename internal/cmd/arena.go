package cmd

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-engine/internal"
)

var ErrGamesCount = errors.New("number of games must be positive")

func Arena(opts *options) *cobra.Command {
	var (
		games      int
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Let the computer play against itself",
		Long: heredoc.Doc(`
			arena plays a number of computer-vs-computer games and prints how
			many X won, O won and were drawn. Optimal play always draws.
		`),
		Example: heredoc.Doc(`
			$ tictactoe arena --games 1000 --difficulty random
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			if games <= 0 {
				return ErrGamesCount
			}
			if difficulty != "" {
				opts.conf.Game.Difficulty = difficulty
			}

			app, err := application.New(cmd.Context(), opts.logger, opts.conf)
			if err != nil {
				return err
			}
			defer app.Close()

			tally, err := app.RunArena(cmd.Context(), games)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "games: %d  X wins: %d  O wins: %d  draws: %d\n",
				tally.Games(), tally.XWins, tally.OWins, tally.Draws)

			return nil
		},
	}

	cmd.Flags().IntVarP(&games, "games", "n", 100, "number of games")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "random or optimal")

	return cmd
}
