// Package config loads TOML configuration for the gridsnake binaries.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Arena  ArenaConfig  `toml:"arena"`
	Timing TimingConfig `toml:"timing"`
	Viewer ViewerConfig `toml:"viewer"`

	// Seed fixes the food spawn sequence for reproducible runs; 0 means
	// time-seeded.
	Seed int64 `toml:"seed"`
}

type ArenaConfig struct {
	Width  int32 `toml:"width"`
	Height int32 `toml:"height"`
}

// TimingConfig durations are TOML integers in nanoseconds.
type TimingConfig struct {
	MoveInterval  time.Duration `toml:"move_interval"`
	FoodInterval  time.Duration `toml:"food_interval"`
	FrameInterval time.Duration `toml:"frame_interval"`
}

type ViewerConfig struct {
	Addr string `toml:"addr"`
}

// Load reads path and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the reference configuration: a 10x10 arena, 250ms movement
// ticks, 1s food ticks, 50ms frames.
func Default() *Config {
	return &Config{
		Arena: ArenaConfig{
			Width:  10,
			Height: 10,
		},
		Timing: TimingConfig{
			MoveInterval:  250 * time.Millisecond,
			FoodInterval:  time.Second,
			FrameInterval: 50 * time.Millisecond,
		},
		Viewer: ViewerConfig{
			Addr: "localhost:8042",
		},
	}
}

func (c *Config) validate() error {
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena %dx%d invalid", c.Arena.Width, c.Arena.Height)
	}
	if c.Timing.MoveInterval <= 0 || c.Timing.FoodInterval <= 0 || c.Timing.FrameInterval <= 0 {
		return fmt.Errorf("intervals must be positive: move=%v food=%v frame=%v",
			c.Timing.MoveInterval, c.Timing.FoodInterval, c.Timing.FrameInterval)
	}
	return nil
}
