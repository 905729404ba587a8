// Package toolcfg loads nvflat's own configuration file. The file is
// optional: a missing file means defaults, a malformed or invalid file
// is a fatal error.
package toolcfg

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/psaab/nvflat/pkg/source"
)

// DefaultPath is where nvflat looks for its configuration unless told
// otherwise.
const DefaultPath = "/etc/nvflat/nvflat.toml"

// Config is the tool configuration.
type Config struct {
	Source   SourceConfig   `toml:"source"`
	Output   OutputConfig   `toml:"output"`
	Snapshot SnapshotConfig `toml:"snapshot"`
	Leaf     LeafConfig     `toml:"leaf"`
}

// SourceConfig selects how the configuration document is obtained.
type SourceConfig struct {
	// Command is the argv of the CLI that prints the declarative config.
	Command []string `toml:"command" validate:"min=1,dive,required"`
}

// OutputConfig controls presentation defaults; flags override it.
type OutputConfig struct {
	Color  string `toml:"color" validate:"oneof=auto always never"`
	Format string `toml:"format" validate:"oneof=set tree"`
}

// SnapshotConfig controls where saved command lists live.
type SnapshotConfig struct {
	Dir  string `toml:"dir" validate:"required"`
	Keep int    `toml:"keep" validate:"gte=1,lte=500"`
}

// LeafConfig tunes the leaf-detection heuristic.
type LeafConfig struct {
	// ExtraWords merge into the built-in leaf vocabulary.
	ExtraWords []string `toml:"extra_words"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Source:   SourceConfig{Command: append([]string(nil), source.DefaultCommand...)},
		Output:   OutputConfig{Color: "auto", Format: "set"},
		Snapshot: SnapshotConfig{Dir: "/var/lib/nvflat/snapshots", Keep: 50},
	}
}

// Load reads and validates the configuration at path. A missing file
// yields Default.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
