// Package metrics exposes frame statistics as Prometheus collectors.
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "particles"

// Recorder holds the collectors. A nil *Recorder records nothing.
type Recorder struct {
	frames        prometheus.Counter
	frameDuration prometheus.Histogram
	particles     prometheus.Gauge
	connections   prometheus.Gauge
	resizes       prometheus.Counter
	motionToggles *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		frames: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames rendered",
		}),
		frameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent updating and drawing one frame",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
		}),
		particles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "particles",
			Help:      "Particles in the field",
		}),
		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Proximity lines drawn in the last frame",
		}),
		resizes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resizes_total",
			Help:      "Field repopulations caused by surface resizes",
		}),
		motionToggles: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "motion_toggles_total",
			Help:      "Motion preference changes by resulting state",
		}, []string{"enabled"}),
	}
}

// ObserveFrame records one rendered frame.
func (r *Recorder) ObserveFrame(d time.Duration, particles, lines int) {
	if r == nil {
		return
	}
	r.frames.Inc()
	r.frameDuration.Observe(d.Seconds())
	r.particles.Set(float64(particles))
	r.connections.Set(float64(lines))
}

func (r *Recorder) Resized(particles int) {
	if r == nil {
		return
	}
	r.resizes.Inc()
	r.particles.Set(float64(particles))
}

func (r *Recorder) MotionToggled(enabled bool) {
	if r == nil {
		return
	}
	label := "false"
	if enabled {
		label = "true"
	}
	r.motionToggles.WithLabelValues(label).Inc()
}

// Handler serves /metrics for gatherer and a /healthz probe.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Serve runs the metrics endpoint until ctx is done.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           Handler(gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
