package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
	"github.com/rocketscienceinc/tictactoe-engine/transport/terminal"
)

const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

var (
	ErrAddrNotFound        = errors.New("redis address string is empty")
	ErrUnknownCacheBackend = errors.New("unknown cache backend")
)

// Application owns everything built from the config: the move cache, the policies and the controller.
type Application struct {
	logger *slog.Logger
	conf   *config.Config

	redisStorage *redis.Client
	controller   *tictactoe.GameController
}

// New - wires the application from conf. Close must be called when done.
func New(ctx context.Context, logger *slog.Logger, conf *config.Config) (*Application, error) {
	app := &Application{
		logger: logger.With("component", "app"),
		conf:   conf,
	}

	settings, err := settingsFromConfig(conf)
	if err != nil {
		return nil, err
	}

	cache, err := app.openCache(ctx)
	if err != nil {
		return nil, err
	}

	policies := tictactoe.Policies{
		Random:  tictactoe.NewRandomPolicy(conf.Game.Seed),
		Optimal: tictactoe.NewMinimaxPolicy(logger, cache),
	}

	app.controller, err = tictactoe.NewGameController(logger, policies, settings)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to create game controller: %w", err)
	}

	return app, nil
}

func settingsFromConfig(conf *config.Config) (tictactoe.Settings, error) {
	mode, err := entity.ParseMode(conf.Game.Mode)
	if err != nil {
		return tictactoe.Settings{}, err
	}

	difficulty, err := entity.ParseDifficulty(conf.Game.Difficulty)
	if err != nil {
		return tictactoe.Settings{}, err
	}

	// configured names only apply to human slots; computers keep the mode's names
	names := entity.DefaultNames(mode)
	configured := [2]string{conf.Game.PlayerXName, conf.Game.PlayerOName}
	for idx, mark := range [2]entity.Cell{entity.PlayerX, entity.PlayerO} {
		if !mode.IsAutomated(mark) && configured[idx] != "" {
			names[idx] = configured[idx]
		}
	}

	return tictactoe.Settings{Mode: mode, Difficulty: difficulty, Names: names}, nil
}

func (that *Application) openCache(ctx context.Context) (repository.MoveRepository, error) {
	switch that.conf.Cache.Backend {
	case CacheNone:
		return nil, nil
	case CacheMemory, "":
		return repository.NewInMemoryMoveRepository(), nil
	case CacheRedis:
		redisAddrString := that.conf.Redis.GetRedisAddr()
		if that.conf.Redis.Host == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		that.redisStorage = redisStorage
		that.logger.Info("using redis move cache", "addr", redisAddrString)

		return repository.NewMoveRepository(redisStorage, that.conf.Cache.TTL), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCacheBackend, that.conf.Cache.Backend)
	}
}

// Controller - the controller shared by every driver of this application.
func (that *Application) Controller() *tictactoe.GameController {
	return that.controller
}

func (that *Application) Close() {
	if that.redisStorage == nil {
		return
	}

	if err := that.redisStorage.Close(); err != nil {
		that.logger.Error("could not close redis storage", "error", err)
	}
}

// RunTerminal - plays on the terminal until the input ends or the player quits.
func (that *Application) RunTerminal(ctx context.Context, in io.Reader, out io.Writer) error {
	driver := terminal.NewDriver(that.logger, that.controller, in, out, that.conf.Game.AutomatedDelay)

	return driver.Run(ctx)
}

// RunServer - serves the REST driver until SIGINT or SIGTERM.
func (that *Application) RunServer(ctx context.Context) error {
	log := that.logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	server := rest.New(that.logger, that.controller)

	log.Info("Starting HTTP server", "port", that.conf.HTTPPort)
	if err := server.Start(ctx, that.conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// RunArena - plays games automated matches and returns the tally.
func (that *Application) RunArena(ctx context.Context, games int) (tictactoe.Tally, error) {
	return tictactoe.RunArena(ctx, that.controller, games)
}
