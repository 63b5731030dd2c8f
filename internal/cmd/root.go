package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
)

// options are filled by the root command before any subcommand runs.
type options struct {
	configPath string
	logLevel   string

	conf   *config.Config
	logger *slog.Logger
}

func Root() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Tic-tac-toe against people or an unbeatable computer",
		Long: heredoc.Doc(`
			tictactoe plays noughts and crosses between any mix of humans and
			computers. The computer either picks random cells or searches the
			whole game tree and never loses.

			Settings are read from --config, ./config.yml or tictactoe/config.yml
			in the XDG config directories, and can be overridden by environment
			variables such as GAME_MODE or CACHE_BACKEND.
		`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(Play(opts))
	root.AddCommand(Serve(opts))
	root.AddCommand(Arena(opts))

	return root
}

func (that *options) load() error {
	path := that.configPath
	if path == "" {
		path = config.Locate()
	}

	conf, err := config.Load(path)
	if err != nil {
		return err
	}

	if that.logLevel != "" {
		conf.LogLevel = that.logLevel
	}

	if err = conf.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	that.conf = conf
	that.logger = initLogger(conf)
	that.logger.Debug("config loaded", "path", path)

	return nil
}

// initialize logger. Logs go to stderr so they stay out of the board.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
