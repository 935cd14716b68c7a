package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var Config Configuration = Default()

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
	FrontendHeadless = "headless"
)

type Configuration struct {
	LogLevel int    `json:"logLevel" toml:"logLevel"`
	LogFile  string `json:"logFile" toml:"logFile"`

	Frontend string `json:"frontend" toml:"frontend"`
	Players  int    `json:"players" toml:"players"`
	TickRate int    `json:"tickRate" toml:"tickRate"`
	// MaxTicks stops the session after that many ticks. Zero runs until quit.
	MaxTicks uint64 `json:"maxTicks" toml:"maxTicks"`

	TracePath string `json:"tracePath" toml:"tracePath"`

	// Window scale factor over the 320x180 logical screen.
	Scale int `json:"scale" toml:"scale"`
	// Frames a terminal key press counts as held.
	HoldFrames int `json:"holdFrames" toml:"holdFrames"`
}

func Default() Configuration {
	return Configuration{
		LogLevel:   int(slog.LevelInfo),
		Frontend:   FrontendTerminal,
		Players:    1,
		TickRate:   60,
		Scale:      3,
		HoldFrames: 8,
	}
}

func (c Configuration) Validate() error {
	switch c.Frontend {
	case FrontendTerminal, FrontendWindow, FrontendHeadless:
	default:
		return fmt.Errorf("%w: unknown frontend %q", ErrInvalid, c.Frontend)
	}
	if c.Players != 1 && c.Players != 2 {
		return fmt.Errorf("%w: players must be 1 or 2, got %d", ErrInvalid, c.Players)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tickRate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalid, c.Scale)
	}
	if c.HoldFrames <= 0 {
		return fmt.Errorf("%w: holdFrames must be positive, got %d", ErrInvalid, c.HoldFrames)
	}
	if c.Frontend == FrontendHeadless && c.MaxTicks == 0 {
		return fmt.Errorf("%w: a headless run needs maxTicks", ErrInvalid)
	}
	return nil
}

// Load reads a configuration file over the defaults. Files ending in .toml
// are decoded as TOML, anything else as JSON.
func Load(path string) (Configuration, error) {
	c := Default()

	cf, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(cf), &c); err != nil {
			return Default(), fmt.Errorf("decode %s: %w", path, err)
		}
	} else if err := json.Unmarshal(cf, &c); err != nil {
		return Default(), fmt.Errorf("decode %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// LoadConfig sets Config from path, or from config.json when path is empty.
// Any failure leaves the defaults in place.
func LoadConfig(path string) {
	if path == "" {
		path = "config.json"
	}

	c, err := Load(path)
	if err != nil {
		slog.Info("failed to load config, using default config instead", slog.String("path", path), slog.Any("error", err))
	}

	Config = c
}
