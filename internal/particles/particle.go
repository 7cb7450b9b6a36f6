// Package particles holds the depth-simulated particle model and the field
// that owns and advances it.
package particles

import (
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/particle-field/internal/config"
)

// Palette hues a particle can be born with.
var (
	DodgerBlue = color.RGBA{R: 30, G: 144, B: 255, A: 255}
	Orange     = color.RGBA{R: 255, G: 165, B: 0, A: 255}
)

// Point is a 2D coordinate in surface space.
type Point struct {
	X, Y float64
}

// Particle is a single moving point with pseudo-3D depth.
type Particle struct {
	X, Y   float64
	Z      float64 // depth in [0, MaxDepth]
	VX, VY float64
	VZ     float64 // per-particle depth drift
	Size   float64

	Hue       color.RGBA
	BaseAlpha float64
}

// New samples a particle uniformly over a w x h surface.
func New(rng *rand.Rand, w, h float64) Particle {
	hue := Orange
	if rng.Float64() > 0.5 {
		hue = DodgerBlue
	}
	return Particle{
		X:         rng.Float64() * w,
		Y:         rng.Float64() * h,
		Z:         rng.Float64() * config.MaxDepth,
		VX:        (rng.Float64()*2 - 1) * 0.5,
		VY:        (rng.Float64()*2 - 1) * 0.5,
		VZ:        (rng.Float64()*2 - 1) * config.DepthDrift,
		Size:      rng.Float64()*2 + 1,
		Hue:       hue,
		BaseAlpha: math.Round((rng.Float64()*0.5+0.3)*100) / 100,
	}
}

// Advance moves the particle one tick. The step order matters: damping runs
// after the pointer impulse and the speed cap runs last.
func (p *Particle) Advance(pointer Point, w, h float64) {
	scale := p.Z + 1
	p.X += p.VX * scale
	p.Y += p.VY * scale

	p.Z = clamp(p.Z+p.VZ, 0, config.MaxDepth)

	p.X = wrap(p.X, w)
	p.Y = wrap(p.Y, h)

	p.repel(pointer)

	p.VX *= config.Damping
	p.VY *= config.Damping

	capSpeed(&p.VX, &p.VY, config.MaxSpeed)
}

// CaptureRadius is the depth-scaled distance inside which the pointer repels.
func (p *Particle) CaptureRadius() float64 {
	return config.CaptureRadius * (p.Z + 1)
}

// Radius is the drawn disk radius.
func (p *Particle) Radius() float64 {
	return p.Size * (p.Z + 1)
}

// Alpha is the per-frame opacity derived from depth.
func (p *Particle) Alpha() float64 {
	return (p.Z + 1) / 3
}

// Color returns the particle hue with its depth-derived alpha.
func (p *Particle) Color() color.NRGBA {
	return color.NRGBA{R: p.Hue.R, G: p.Hue.G, B: p.Hue.B, A: alphaByte(p.Alpha())}
}

func (p *Particle) repel(pointer Point) {
	dx := pointer.X - p.X
	dy := pointer.Y - p.Y
	dist := math.Hypot(dx, dy)
	radius := p.CaptureRadius()
	if dist >= radius || dist == 0 {
		return
	}
	force := (radius - dist) / radius
	p.VX -= (dx / dist) * force * config.ForceScale * config.ForceGain
	p.VY -= (dy / dist) * force * config.ForceScale * config.ForceGain
}

// capSpeed rescales the velocity when its magnitude exceeds maxSpeed.
// Returns true if the velocity was clamped.
func capSpeed(vx, vy *float64, maxSpeed float64) bool {
	speed := math.Hypot(*vx, *vy)
	if speed <= maxSpeed || speed == 0 {
		return false
	}
	*vx = *vx / speed * maxSpeed
	*vy = *vy / speed * maxSpeed
	return true
}

// wrap folds v into [0, dim). A non-positive dim pins v to 0.
func wrap(v, dim float64) float64 {
	if dim <= 0 || math.IsNaN(v) {
		return 0
	}
	v = math.Mod(v, dim)
	if v < 0 {
		v += dim
	}
	// v+dim can round up to dim for tiny negative v
	if v >= dim {
		v = 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(clamp(a, 0, 1) * 255))
}
