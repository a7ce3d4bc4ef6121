package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := "seed: 7\ngenerator: flat\nrender_distance: 3\njournal: badger\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 7 || cfg.Generator != "flat" || cfg.RenderDistance != 3 || cfg.Journal != JournalBadger {
		t.Errorf("Load = %+v", cfg)
	}
	if cfg.MaxRebuilds != 2 || cfg.MaxFrameDelta != 0.1 {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("seed: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load accepted broken YAML")
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.RenderDistance = 9

	fromFile := DefaultConfig()
	fromFile.Seed = 2
	fromFile.RenderDistance = 4
	fromFile.Generator = "end"

	Merge(cfg, fromFile, map[string]bool{"seed": true})

	if cfg.Seed != 1 {
		t.Errorf("Seed = %d, want flag value 1", cfg.Seed)
	}
	if cfg.RenderDistance != 4 {
		t.Errorf("RenderDistance = %d, want file value 4", cfg.RenderDistance)
	}
	if cfg.Generator != "end" {
		t.Errorf("Generator = %q, want end", cfg.Generator)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero distance", func(c *Config) { c.RenderDistance = 0 }, false},
		{"zero budget", func(c *Config) { c.MaxRebuilds = 0 }, false},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }, false},
		{"negative delta", func(c *Config) { c.MaxFrameDelta = -1 }, false},
		{"bad journal", func(c *Config) { c.Journal = "sqlite" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestLevel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("default level = %v", cfg.Level())
	}
	cfg.LogLevel = "DEBUG"
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("level = %v, want debug", cfg.Level())
	}
}
