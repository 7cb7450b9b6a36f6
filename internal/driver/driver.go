// Package driver runs the per-frame particle loop independent of any window
// or terminal backend. All methods must be called from the one goroutine that
// owns the frame loop.
package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/iburimskiy/particle-field/internal/metrics"
	"github.com/iburimskiy/particle-field/internal/particles"
	"github.com/iburimskiy/particle-field/internal/render"
	"github.com/iburimskiy/particle-field/internal/reveal"
)

// State of the loop.
type State int

const (
	Inactive State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "inactive"
}

// Gate is the motion preference as the driver sees it.
type Gate interface {
	IsEnabled(ctx context.Context) bool
}

type Options struct {
	Field    *particles.Field
	Renderer *render.Proximity
	Gate     Gate
	Reveal   *reveal.Hub
	Metrics  *metrics.Recorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// Driver owns the field and the shared pointer.
type Driver struct {
	field    *particles.Field
	renderer *render.Proximity
	gate     Gate
	reveal   *reveal.Hub
	metrics  *metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time

	state   State
	pointer particles.Point
	last    render.Stats
}

func New(opts Options) *Driver {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Field == nil {
		opts.Field = particles.NewField(particles.DefaultFieldConfig(), nil)
	}
	if opts.Renderer == nil {
		opts.Renderer = render.NewProximity(render.DefaultProximityConfig())
	}
	return &Driver{
		field:    opts.Field,
		renderer: opts.Renderer,
		gate:     opts.Gate,
		reveal:   opts.Reveal,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		now:      opts.Now,
	}
}

// Start decides the loop state once. The gate is not consulted again, so
// disabling motion later leaves a running loop running.
func (d *Driver) Start(ctx context.Context, surfaceAvailable bool) State {
	enabled := d.gate == nil || d.gate.IsEnabled(ctx)
	if !enabled {
		d.reveal.DisableAll()
	}
	switch {
	case !surfaceAvailable:
		d.logger.Info("no drawing surface, particle field inactive")
		d.state = Inactive
	case !enabled:
		d.logger.Info("motion disabled, particle field inactive")
		d.state = Inactive
	default:
		d.state = Running
		d.logger.Debug("particle field running")
	}
	return d.state
}

func (d *Driver) State() State { return d.state }

// Resize repopulates the field for a surface of w x h device pixels.
func (d *Driver) Resize(w, h float64) {
	if d.state != Running {
		return
	}
	d.field.Resize(w, h)
	d.metrics.Resized(d.field.Len())
	d.logger.Debug("field resized", "width", w, "height", h, "particles", d.field.Len())
}

// PointerMoved records the pointer; the next Frame picks it up.
func (d *Driver) PointerMoved(x, y float64) {
	d.pointer = particles.Point{X: x, Y: y}
}

func (d *Driver) Pointer() particles.Point { return d.pointer }

// Frame clears the surface, advances the field and draws it.
func (d *Driver) Frame(s render.Surface) render.Stats {
	if d.state != Running {
		return render.Stats{}
	}
	start := d.now()
	s.Clear()
	d.field.Tick(d.pointer)
	d.last = d.renderer.Draw(s, d.field.Particles())
	d.metrics.ObserveFrame(d.now().Sub(start), d.field.Len(), d.last.Lines)
	return d.last
}

// LastStats reports what the previous Frame drew.
func (d *Driver) LastStats() render.Stats { return d.last }

func (d *Driver) Field() *particles.Field { return d.field }
