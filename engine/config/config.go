// Package config loads runtime settings for the handheld pose host from environment
// variables.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/caarlos0/env/v11"

	"github.com/Carmen-Shannon/oxy-pose/engine/pose"
)

// Config holds all tunables of the pose controller and its desktop host.
type Config struct {
	// Controller policy
	Sensitivity float32 `env:"OXY_POSE_SENSITIVITY" envDefault:"0.003"`
	PitchLimit  float32 `env:"OXY_POSE_PITCH_LIMIT" envDefault:"1.35"`
	Fullscreen  bool    `env:"OXY_POSE_FULLSCREEN" envDefault:"true"`

	// Desktop host
	WindowTitle    string `env:"OXY_WINDOW_TITLE" envDefault:"Oxy Handheld Viewer"`
	WindowWidth    int    `env:"OXY_WINDOW_WIDTH" envDefault:"720"`
	WindowHeight   int    `env:"OXY_WINDOW_HEIGHT" envDefault:"1280"`
	TouchEmulation bool   `env:"OXY_TOUCH_EMULATION" envDefault:"true"`

	// Diagnostics
	Profiler bool `env:"OXY_PROFILER" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
//
// Returns:
//   - Config: the parsed configuration
//   - error: error if a variable cannot be parsed or a value is out of range
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if !finite(c.Sensitivity) || c.Sensitivity <= 0 {
		errs = append(errs, fmt.Errorf("OXY_POSE_SENSITIVITY must be a finite value > 0, got %v", c.Sensitivity))
	}
	if !finite(c.PitchLimit) || c.PitchLimit <= 0 || c.PitchLimit > math.Pi/2 {
		errs = append(errs, fmt.Errorf("OXY_POSE_PITCH_LIMIT must be in (0, π/2], got %v", c.PitchLimit))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.WindowWidth, c.WindowHeight))
	}
	return errors.Join(errs...)
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ControllerOptions converts the controller policy into pose options.
//
// Returns:
//   - []pose.ControllerOption: options for pose.NewController
func (c Config) ControllerOptions() []pose.ControllerOption {
	return []pose.ControllerOption{
		pose.WithSensitivity(c.Sensitivity),
		pose.WithPitchLimit(c.PitchLimit),
		pose.WithFullscreen(c.Fullscreen),
	}
}
