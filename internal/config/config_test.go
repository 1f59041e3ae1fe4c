package config

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Width: 1280, Height: 720, MinWidth: 320, MinHeight: 240, FPS: 60,
		Damping: 0.05, Distance: 5, MinDistance: 2, MaxDistance: 15,
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("POSEVIEW_WIDTH", "800")
	t.Setenv("POSEVIEW_HEIGHT", "600")
	t.Setenv("POSEVIEW_MIN_WIDTH", "400")
	t.Setenv("POSEVIEW_DAMPING", "0.1")
	t.Setenv("POSEVIEW_PROFILE", "true")
	t.Setenv("POSEVIEW_FORCE_SOFTWARE_ADAPTER", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 800 || cfg.Height != 600 || cfg.MinWidth != 400 || cfg.Damping != 0.1 || !cfg.Profile || !cfg.ForceSoftwareAdapter {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("POSEVIEW_FPS", "fast")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{Width: 10, Height: 10, FPS: 30, Damping: 0.05, MinDistance: 2, MaxDistance: 15}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative minimum width", func(c *Config) { c.MinWidth = -1 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"damping above one", func(c *Config) { c.Damping = 1.5 }},
		{"inverted bounds", func(c *Config) { c.MinDistance = 20 }},
		{"zero min distance", func(c *Config) { c.MinDistance = 0 }},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, errInvalid) {
				t.Errorf("Validate() = %v, want invalid config error", err)
			}
		})
	}
}
