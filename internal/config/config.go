package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS      = 60
	DefaultEntities = 24
	DefaultMarginX  = 2.0
	DefaultMarginY  = 2.0
	DefaultMinSpeed = 0.4
	DefaultMaxSpeed = 1.6
	DefaultMinSize  = 4.0
	DefaultMaxSize  = 12.0
)

type Config struct {
	FPS      int     `yaml:"fps"`
	Entities int     `yaml:"entities"`
	MarginX  float64 `yaml:"margin_x"`
	MarginY  float64 `yaml:"margin_y"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
	MinSize  float64 `yaml:"min_size"`
	MaxSize  float64 `yaml:"max_size"`
	Seed     int64   `yaml:"seed"`
	Shape    string  `yaml:"shape"`
	Yield    bool    `yaml:"yield"`
}

func DefaultConfig() *Config {
	return &Config{
		FPS:      DefaultFPS,
		Entities: DefaultEntities,
		MarginX:  DefaultMarginX,
		MarginY:  DefaultMarginY,
		MinSpeed: DefaultMinSpeed,
		MaxSpeed: DefaultMaxSpeed,
		MinSize:  DefaultMinSize,
		MaxSize:  DefaultMaxSize,
		Seed:     time.Now().UnixNano(),
		Shape:    "box",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.Entities <= 0 {
		return fmt.Errorf("entities must be positive, got %d", c.Entities)
	}
	if c.MinSpeed <= 0 || c.MaxSpeed < c.MinSpeed {
		return fmt.Errorf("speed range [%g, %g] is invalid", c.MinSpeed, c.MaxSpeed)
	}
	if c.MinSize <= 0 || c.MaxSize < c.MinSize {
		return fmt.Errorf("size range [%g, %g] is invalid", c.MinSize, c.MaxSize)
	}
	if c.MarginX < 0 || c.MarginY < 0 {
		return fmt.Errorf("margins must be non-negative, got (%g, %g)", c.MarginX, c.MarginY)
	}
	return nil
}
