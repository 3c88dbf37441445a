package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the root configuration structure
type Config struct {
	Seed     int64          `yaml:"seed"`
	Env      EnvConfig      `yaml:"env"`
	Episodes EpisodesConfig `yaml:"episodes"`
	Bellman  BellmanConfig  `yaml:"bellman"`
	Logging  LogConfig      `yaml:"logging"`
}

// EnvConfig defines the grid world
type EnvConfig struct {
	Grid          [][]int  `yaml:"grid"`
	MoveProb      *float64 `yaml:"move_prob"`
	DefaultReward *float64 `yaml:"default_reward"`
}

// EpisodesConfig controls the random-agent episode runner
type EpisodesConfig struct {
	Count    int `yaml:"count"`
	MaxSteps int `yaml:"max_steps"`
	Workers  int `yaml:"workers"`
}

// BellmanConfig defines the symbolic value evaluator
type BellmanConfig struct {
	Discount       *float64 `yaml:"discount"`
	Horizon        int      `yaml:"horizon"`
	HappyThreshold int      `yaml:"happy_threshold"`
	MoveProb       *float64 `yaml:"move_prob"`
}

// LogConfig defines logging parameters
type LogConfig struct {
	Level     string `yaml:"level"` // info|debug|trace
	CSVPath   string `yaml:"csv_path"`
	JSONPath  string `yaml:"json_path"`
	ChartPath string `yaml:"chart_path"`
}

// DefaultGrid is the 3x4 world with one goal, one pit and one wall
func DefaultGrid() [][]int {
	return [][]int{
		{0, 0, 0, 1},
		{0, 9, 0, -1},
		{0, 0, 0, 0},
	}
}

// Default returns a config with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file and returns a Config
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// probabilities and rewards can legitimately be zero, so they are pointers
// and only a missing key falls back to the default
func applyDefaults(cfg *Config) {
	if cfg.Seed == 0 {
		cfg.Seed = 1337
	}
	if len(cfg.Env.Grid) == 0 {
		cfg.Env.Grid = DefaultGrid()
	}
	if cfg.Env.MoveProb == nil {
		cfg.Env.MoveProb = float64Ptr(0.8)
	}
	if cfg.Env.DefaultReward == nil {
		cfg.Env.DefaultReward = float64Ptr(-0.04)
	}
	if cfg.Episodes.Count == 0 {
		cfg.Episodes.Count = 10
	}
	if cfg.Episodes.MaxSteps == 0 {
		cfg.Episodes.MaxSteps = 1000
	}
	if cfg.Bellman.Discount == nil {
		cfg.Bellman.Discount = float64Ptr(0.99)
	}
	if cfg.Bellman.Horizon == 0 {
		cfg.Bellman.Horizon = 5
	}
	if cfg.Bellman.HappyThreshold == 0 {
		cfg.Bellman.HappyThreshold = 4
	}
	if cfg.Bellman.MoveProb == nil {
		cfg.Bellman.MoveProb = float64Ptr(0.9)
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks ranges that the YAML types cannot express
func (c *Config) Validate() error {
	if p := *c.Env.MoveProb; p < 0 || p > 1 {
		return fmt.Errorf("%w: env.move_prob %v outside [0, 1]", ErrInvalidConfig, p)
	}
	if p := *c.Bellman.MoveProb; p < 0 || p > 1 {
		return fmt.Errorf("%w: bellman.move_prob %v outside [0, 1]", ErrInvalidConfig, p)
	}
	if d := *c.Bellman.Discount; d < 0 || d > 1 {
		return fmt.Errorf("%w: bellman.discount %v outside [0, 1]", ErrInvalidConfig, d)
	}
	if c.Bellman.Horizon < 1 {
		return fmt.Errorf("%w: bellman.horizon must be positive", ErrInvalidConfig)
	}
	if c.Episodes.Count < 0 || c.Episodes.MaxSteps < 0 || c.Episodes.Workers < 0 {
		return fmt.Errorf("%w: episode counts must not be negative", ErrInvalidConfig)
	}
	return nil
}

func float64Ptr(v float64) *float64 { return &v }
