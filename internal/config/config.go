package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	WindowWidth  = 1024
	WindowHeight = 576

	FrameRingSize = 120

	// Particle field parameters
	ParticleCap     = 150
	AreaPerParticle = 8000
	MaxSpeed        = 1.5
	Damping         = 0.99
	MaxDepth        = 2.0
	DepthDrift      = 0.01
	CaptureRadius   = 150.0
	ForceScale      = 2.0
	ForceGain       = 0.5

	// Proximity lines
	ConnectionThreshold = 120.0
	LineAlpha           = 0.3
	LineWidth           = 0.8

	// Terminal cell geometry in virtual pixels
	CellWidth  = 8
	CellHeight = 16

	MotionKey = "motionEnabled"
)

// Config holds runtime settings read from the environment.
type Config struct {
	StatePath       string `env:"PARTICLES_STATE_PATH"        envDefault:"particles.db"`
	LogLevel        string `env:"PARTICLES_LOG_LEVEL"         envDefault:"info"`
	LogFile         string `env:"PARTICLES_LOG_FILE"`
	WindowWidth     int    `env:"PARTICLES_WINDOW_WIDTH"      envDefault:"1024"`
	WindowHeight    int    `env:"PARTICLES_WINDOW_HEIGHT"     envDefault:"576"`
	FPS             int    `env:"PARTICLES_FPS"               envDefault:"60"`
	Cap             int    `env:"PARTICLES_CAP"               envDefault:"150"`
	AreaPerParticle int    `env:"PARTICLES_AREA_PER_PARTICLE" envDefault:"8000"`
	MetricsAddr     string `env:"PARTICLES_METRICS_ADDR"`
	Seed            int64  `env:"PARTICLES_SEED"              envDefault:"0"`
	CellWidth       int    `env:"PARTICLES_CELL_WIDTH"        envDefault:"8"`
	CellHeight      int    `env:"PARTICLES_CELL_HEIGHT"       envDefault:"16"`
	HUD             bool   `env:"PARTICLES_HUD"               envDefault:"false"`
	Ephemeral       bool   `env:"PARTICLES_EPHEMERAL"         envDefault:"false"`
}

// Load parses the environment into a Config and normalizes bad values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.WindowWidth <= 0 {
		c.WindowWidth = WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = WindowHeight
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	if c.Cap < 0 {
		c.Cap = 0
	}
	if c.AreaPerParticle <= 0 {
		c.AreaPerParticle = AreaPerParticle
	}
	if c.CellWidth <= 0 {
		c.CellWidth = CellWidth
	}
	if c.CellHeight <= 0 {
		c.CellHeight = CellHeight
	}
}

// SlogLevel maps LogLevel onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
