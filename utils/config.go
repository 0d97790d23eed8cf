package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DisplayTerminal = "terminal"
	DisplayWindow   = "window"
	DisplayHeadless = "headless"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the game
type Config struct {
	Size                int           `json:"size" yaml:"size"`
	CellSize            int           `json:"cell_size" yaml:"cell_size"`
	Period              time.Duration `json:"period" yaml:"period"`
	SeedPolicy          string        `json:"seed_policy" yaml:"seed_policy"`
	Seed                int64         `json:"seed" yaml:"seed"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	Display             string        `json:"display" yaml:"display"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool"`
	StatsEvery          int           `json:"stats_every" yaml:"stats_every"`
	LogLevel            string        `json:"log_level" yaml:"log_level"`
	LogFile             string        `json:"log_file" yaml:"log_file"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:                100,
		CellSize:            5,
		Period:              200 * time.Millisecond,
		SeedPolicy:          "random",
		RandomDensity:       0.15,
		Display:             DisplayTerminal,
		AutoRestart:         false,
		StagnationThreshold: 5,
		MaxGenerations:      0,
		UseMemoryPool:       false,
		StatsEvery:          50,
		LogLevel:            "info",
		LogFile:             "gol.log",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, keeping defaults
// for absent keys
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate rejects configurations the driver cannot run
func (c Config) Validate() error {
	switch {
	case c.Size <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] size must be positive, got %d", c.Size)
	case c.CellSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] cell_size must be positive, got %d", c.CellSize)
	case c.Period <= 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] period must be positive, got %v", c.Period)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] random_density must be in [0,1], got %v", c.RandomDensity)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	}

	switch c.Display {
	case DisplayTerminal, DisplayWindow, DisplayHeadless:
	default:
		return errors.Wrapf(ErrInvalidConfig, "[Config.Validate] unknown display %q", c.Display)
	}
	return nil
}
