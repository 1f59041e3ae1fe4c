// Package config loads pose viewer settings from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the viewer settings shared by every command. Command-line flags
// override these values.
type Config struct {
	Width   int  `env:"POSEVIEW_WIDTH" envDefault:"1280"`
	Height  int  `env:"POSEVIEW_HEIGHT" envDefault:"720"`
	// MinWidth and MinHeight bound how far the view window can be shrunk.
	MinWidth  int `env:"POSEVIEW_MIN_WIDTH" envDefault:"320"`
	MinHeight int `env:"POSEVIEW_MIN_HEIGHT" envDefault:"240"`
	FPS     int  `env:"POSEVIEW_FPS" envDefault:"60"`
	Profile bool `env:"POSEVIEW_PROFILE" envDefault:"false"`

	Damping     float32 `env:"POSEVIEW_DAMPING" envDefault:"0.05"`
	Distance    float32 `env:"POSEVIEW_DISTANCE" envDefault:"5"`
	MinDistance float32 `env:"POSEVIEW_MIN_DISTANCE" envDefault:"2"`
	MaxDistance float32 `env:"POSEVIEW_MAX_DISTANCE" envDefault:"15"`

	ForceSoftwareAdapter bool `env:"POSEVIEW_FORCE_SOFTWARE_ADAPTER" envDefault:"false"`
}

var errInvalid = errors.New("invalid config")

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", errInvalid, c.Width, c.Height)
	case c.MinWidth < 0 || c.MinHeight < 0:
		return fmt.Errorf("%w: minimum size %dx%d", errInvalid, c.MinWidth, c.MinHeight)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d", errInvalid, c.FPS)
	case c.Damping < 0 || c.Damping > 1:
		return fmt.Errorf("%w: damping %v outside [0, 1]", errInvalid, c.Damping)
	case c.MinDistance <= 0 || c.MinDistance > c.MaxDistance:
		return fmt.Errorf("%w: distance bounds [%v, %v]", errInvalid, c.MinDistance, c.MaxDistance)
	}
	return nil
}
