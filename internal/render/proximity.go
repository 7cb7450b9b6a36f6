package render

import (
	"image/color"
	"math"

	"github.com/iburimskiy/particle-field/internal/config"
	"github.com/iburimskiy/particle-field/internal/particles"
)

// ProximityConfig controls the connecting lines.
type ProximityConfig struct {
	Threshold float64
	LineAlpha float64
	LineWidth float64
	LineColor color.RGBA
}

// DefaultProximityConfig returns the stock line styling.
func DefaultProximityConfig() ProximityConfig {
	return ProximityConfig{
		Threshold: config.ConnectionThreshold,
		LineAlpha: config.LineAlpha,
		LineWidth: config.LineWidth,
		LineColor: particles.DodgerBlue,
	}
}

// Stats counts what one Draw emitted.
type Stats struct {
	Disks int
	Lines int
}

// Proximity draws particles and joins every pair closer than the threshold.
type Proximity struct {
	cfg ProximityConfig
}

func NewProximity(cfg ProximityConfig) *Proximity {
	if cfg.Threshold <= 0 {
		cfg.Threshold = config.ConnectionThreshold
	}
	return &Proximity{cfg: cfg}
}

// Draw renders disks first, then the pairwise lines on top. The pair scan is
// O(n^2); the field cap keeps n bounded.
func (r *Proximity) Draw(s Surface, ps []particles.Particle) Stats {
	var st Stats
	for i := range ps {
		p := &ps[i]
		s.FillDisk(p.X, p.Y, p.Radius(), p.Color())
		st.Disks++
	}

	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dist := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if dist >= r.cfg.Threshold {
				continue
			}
			c := color.NRGBA{
				R: r.cfg.LineColor.R,
				G: r.cfg.LineColor.G,
				B: r.cfg.LineColor.B,
				A: alphaByte(r.LineAlpha(dist)),
			}
			s.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, c, r.cfg.LineWidth)
			st.Lines++
		}
	}
	return st
}

// LineAlpha is the stroke opacity for two particles dist apart; zero at or
// beyond the threshold.
func (r *Proximity) LineAlpha(dist float64) float64 {
	if dist >= r.cfg.Threshold {
		return 0
	}
	return (1 - dist/r.cfg.Threshold) * r.cfg.LineAlpha
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
