package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Journal backends.
const (
	JournalMemory = "memory"
	JournalFile   = "file"
	JournalBadger = "badger"
)

// Config holds the engine configuration.
type Config struct {
	Seed           int64   `yaml:"seed"`
	Generator      string  `yaml:"generator"`       // overworld, flat, end, outer_end
	Dimension      string  `yaml:"dimension"`       // dimension active at startup
	RenderDistance int     `yaml:"render_distance"` // chunks
	MaxRebuilds    int     `yaml:"max_rebuilds"`    // mesh rebuilds per tick
	TickRate       int     `yaml:"tick_rate"`       // ticks per second
	MaxFrameDelta  float64 `yaml:"max_frame_delta"` // seconds
	DataDir        string  `yaml:"data_dir"`
	Journal        string  `yaml:"journal"`
	CompressEdits  bool    `yaml:"compress_edits"` // zstd for the file journal
	BlocksFile     string  `yaml:"blocks_file"`    // empty uses the built-in definitions
	MetricsAddr    string  `yaml:"metrics_addr"`
	LogLevel       string  `yaml:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:           42,
		Generator:      "overworld",
		Dimension:      "overworld",
		RenderDistance: 6,
		MaxRebuilds:    2,
		TickRate:       20,
		MaxFrameDelta:  0.1,
		DataDir:        "data",
		Journal:        JournalFile,
		MetricsAddr:    ":9100",
		LogLevel:       "info",
	}
}

// Load reads a YAML config file over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.Generator = fromFile.Generator
	}
	if !explicitFlags["dimension"] {
		cfg.Dimension = fromFile.Dimension
	}
	if !explicitFlags["render-distance"] {
		cfg.RenderDistance = fromFile.RenderDistance
	}
	if !explicitFlags["max-rebuilds"] {
		cfg.MaxRebuilds = fromFile.MaxRebuilds
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["max-frame-delta"] {
		cfg.MaxFrameDelta = fromFile.MaxFrameDelta
	}
	if !explicitFlags["data-dir"] {
		cfg.DataDir = fromFile.DataDir
	}
	if !explicitFlags["journal"] {
		cfg.Journal = fromFile.Journal
	}
	if !explicitFlags["compress-edits"] {
		cfg.CompressEdits = fromFile.CompressEdits
	}
	if !explicitFlags["blocks"] {
		cfg.BlocksFile = fromFile.BlocksFile
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.RenderDistance < 1:
		return fmt.Errorf("render_distance must be at least 1, got %d", c.RenderDistance)
	case c.MaxRebuilds < 1:
		return fmt.Errorf("max_rebuilds must be at least 1, got %d", c.MaxRebuilds)
	case c.TickRate < 1:
		return fmt.Errorf("tick_rate must be at least 1, got %d", c.TickRate)
	case c.MaxFrameDelta <= 0:
		return fmt.Errorf("max_frame_delta must be positive, got %v", c.MaxFrameDelta)
	}
	switch c.Journal {
	case JournalMemory, JournalFile, JournalBadger:
	default:
		return fmt.Errorf("unknown journal %q", c.Journal)
	}
	return nil
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
