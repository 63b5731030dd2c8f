package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-engine/internal"
)

func Serve(opts *options) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve one shared game over HTTP",
		Long: heredoc.Doc(`
			serve exposes a single game through a JSON API:

			  GET  /api/game               current state
			  POST /api/game/cells         {"row": 0, "col": 2}
			  POST /api/game/advance       let the computer move
			  POST /api/game/mode          {"mode": "pva"}, empty body for the next mode
			  POST /api/game/difficulty    {"difficulty": "random"}, empty body to toggle
			  POST /api/game/names         {"mark": "x", "name": "Alice"}
			  POST /api/game/reset         new game, settings are kept
		`),
		Example: heredoc.Doc(`
			$ tictactoe serve --port 8080
			$ curl -X POST localhost:8080/api/game/cells -d '{"row":1,"col":1}'
		`),
		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				opts.conf.HTTPPort = port
			}

			app, err := application.New(cmd.Context(), opts.logger, opts.conf)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.RunServer(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP port, overrides http-port")

	return cmd
}
