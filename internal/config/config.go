package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	localConfigFile = "config.yml"
	xdgConfigFile   = "tictactoe/config.yml"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Game     Game   `yaml:"game"`
	Cache    Cache  `yaml:"cache"`
	Redis    Redis  `yaml:"redis"`
}

type Game struct {
	Mode           string        `yaml:"mode" env:"GAME_MODE" env-default:"pvp"`
	Difficulty     string        `yaml:"difficulty" env:"GAME_DIFFICULTY" env-default:"optimal"`
	PlayerXName    string        `yaml:"player-x-name" env-default:"Player 1"`
	PlayerOName    string        `yaml:"player-o-name" env-default:"Player 2"`
	AutomatedDelay time.Duration `yaml:"automated-delay" env:"GAME_AUTOMATED_DELAY" env-default:"1s"`
	Seed           int64         `yaml:"seed" env:"GAME_SEED" env-default:"0"`
}

type Cache struct {
	Backend string        `yaml:"backend" env:"CACHE_BACKEND" env-default:"memory"`
	TTL     time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"0s"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load - reads the config file at path, or only env and defaults when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read config from env: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Locate - finds the config file: ./config.yml first, then tictactoe/config.yml in the XDG
// config directories. It returns an empty path when neither exists.
func Locate() string {
	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}

	path, err := xdg.SearchConfigFile(xdgConfigFile)
	if err != nil {
		return ""
	}

	return path
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

var ErrEmptyPort = errors.New("http port is empty")

// Validate - checks values cleanenv cannot check by itself.
func (that *Config) Validate() error {
	if that.HTTPPort == "" {
		return ErrEmptyPort
	}

	if that.Game.AutomatedDelay < 0 {
		return fmt.Errorf("automated delay must not be negative: %s", that.Game.AutomatedDelay)
	}

	return nil
}
