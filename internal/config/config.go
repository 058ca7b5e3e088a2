package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"ctchen222/tictactoe-engine/internal/grid"
	"ctchen222/tictactoe-engine/internal/validator"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Game      GameConfig      `yaml:"game"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type GameConfig struct {
	SideLength int      `yaml:"side_length" validate:"min=1,max=9"`
	Symbols    []string `yaml:"symbols" validate:"len=2,dive,symbol"`

	// Seed makes easy bots reproducible. Zero uses an unseeded generator.
	Seed uint64 `yaml:"seed"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Endpoint    string `yaml:"endpoint" validate:"omitempty,hostname_port"`
	ServiceName string `yaml:"service_name" validate:"required"`

	// Stdout pretty prints spans to the process output, for local debugging.
	Stdout bool `yaml:"stdout"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() Config {
	return Config{
		Game: GameConfig{
			SideLength: 3,
			Symbols:    []string{string(grid.SymbolX), string(grid.SymbolO)},
		},
		HTTP: HTTPConfig{Addr: ":8080"},
		Log:  LogConfig{Level: "info", Format: "text"},
		Telemetry: TelemetryConfig{
			ServiceName: "tic-tac-toe",
		},
	}
}

// Load reads the YAML file at path on top of the defaults, applies
// environment overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TTT_HTTP_ADDR"); v != "" {
		c.HTTP.Addr = v
	}
	if v := os.Getenv("TTT_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TTT_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("TTT_OTEL_ENDPOINT"); v != "" {
		c.Telemetry.Endpoint = v
		c.Telemetry.Enabled = true
	}
	if v := os.Getenv("TTT_SIDE_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid TTT_SIDE_LENGTH %q: %w", v, err)
		}
		c.Game.SideLength = n
	}
	if v := os.Getenv("TTT_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TTT_SEED %q: %w", v, err)
		}
		c.Game.Seed = n
	}
	return nil
}

// Validate checks struct tags and that the two symbols form a usable pair.
func (c *Config) Validate() error {
	if err := validator.GetValidator().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return errors.New("invalid config: telemetry is enabled but no endpoint is set")
	}
	if _, err := c.Players(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Players returns the configured symbol pair.
func (c *Config) Players() (grid.Pair, error) {
	return grid.NewPair(c.Game.Symbols[0], c.Game.Symbols[1])
}

// SlogLevel maps the configured level name onto a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
