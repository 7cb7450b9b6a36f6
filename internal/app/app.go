// Package app wires configuration, storage and the particle pipeline
// together for the window and terminal frontends.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/driver"
	"github.com/iburimskiy/particle-field/internal/metrics"
	"github.com/iburimskiy/particle-field/internal/motion"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/reveal"
	"github.com/iburimskiy/particle-field/internal/storage"
	"github.com/iburimskiy/particle-field/internal/storage/sqlite"
)

// App is everything a frontend needs.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Store    storage.Store
	Gate     *motion.Gate
	Reveal   *reveal.Hub
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
	Driver   *driver.Driver

	closers []io.Closer
}

// NewLogger builds a text logger on w at the configured level.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// Build opens storage and assembles the pipeline. Close releases it.
func Build(cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Config: cfg, Logger: logger}

	if cfg.Ephemeral {
		a.Store = storage.NewMemory()
	} else {
		store, err := sqlite.Open(cfg.StatePath)
		if err != nil {
			return nil, fmt.Errorf("open preferences: %w", err)
		}
		a.Store = store
		a.closers = append(a.closers, store)
	}

	a.Gate = motion.NewGate(a.Store, logger.With("component", "motion"))
	a.Reveal = reveal.NewHub(logger.With("component", "reveal"))
	a.Registry = prometheus.NewRegistry()
	a.Metrics = metrics.New(a.Registry)
	a.Gate.Subscribe(a.motionChanged)

	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	field := particles.NewField(particles.FieldConfig{
		Cap:             cfg.Cap,
		AreaPerParticle: float64(cfg.AreaPerParticle),
	}, rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))

	a.Driver = driver.New(driver.Options{
		Field:    field,
		Renderer: render.NewProximity(render.DefaultProximityConfig()),
		Gate:     a.Gate,
		Reveal:   a.Reveal,
		Metrics:  a.Metrics,
		Logger:   logger.With("component", "driver"),
	})
	return a, nil
}

// motionChanged forwards a runtime toggle to the reveal controllers and the
// toggle counter. The particle loop itself is left as Start decided.
func (a *App) motionChanged(enabled bool) {
	a.Metrics.MotionToggled(enabled)
	if enabled {
		a.Reveal.Refresh()
		return
	}
	a.Reveal.DisableAll()
}

// ServeMetrics runs the metrics endpoint in the background when configured.
// Failures are logged; the animation never depends on it.
func (a *App) ServeMetrics(ctx context.Context) {
	if a.Config.MetricsAddr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, a.Config.MetricsAddr, a.Registry, a.Logger); err != nil {
			a.Logger.Error("metrics server stopped", "error", err)
		}
	}()
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// OpenLogFile returns the configured log destination for full-screen
// frontends, where stderr would corrupt the display.
func OpenLogFile(cfg config.Config) (io.WriteCloser, error) {
	if cfg.LogFile == "" {
		return nopCloser{io.Discard}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
