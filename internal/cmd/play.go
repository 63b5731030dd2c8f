package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-engine/internal"
)

func Play(opts *options) *cobra.Command {
	var mode, difficulty string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Long: heredoc.Doc(`
			play shows the board in the terminal and reads one command per line.
			Type h for the list of commands. Computer moves are paced by
			game.automated-delay.
		`),
		Example: heredoc.Doc(`
			$ tictactoe play
			$ tictactoe play --mode pva --difficulty random
			$ tictactoe play --mode ava
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			if mode != "" {
				opts.conf.Game.Mode = mode
			}
			if difficulty != "" {
				opts.conf.Game.Difficulty = difficulty
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := application.New(ctx, opts.logger, opts.conf)
			if err != nil {
				return err
			}
			defer app.Close()

			err = app.RunTerminal(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "pvp, pva or ava")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "random or optimal")

	return cmd
}
