package particles

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/particle-field/internal/config"
)

// FieldConfig bounds how many particles a surface gets.
type FieldConfig struct {
	Cap             int
	AreaPerParticle float64
}

// DefaultFieldConfig returns the stock cap and density.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Cap:             config.ParticleCap,
		AreaPerParticle: config.AreaPerParticle,
	}
}

// Field owns the particle collection for one surface.
type Field struct {
	cfg       FieldConfig
	rng       *rand.Rand
	particles []Particle
	width     float64
	height    float64
}

// NewField returns an empty field; call Resize once the surface has a size.
func NewField(cfg FieldConfig, rng *rand.Rand) *Field {
	if cfg.AreaPerParticle <= 0 {
		cfg.AreaPerParticle = config.AreaPerParticle
	}
	if cfg.Cap < 0 {
		cfg.Cap = 0
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Field{cfg: cfg, rng: rng}
}

// Count is the population for a w x h surface. A partial share of
// AreaPerParticle still earns a particle.
func (f *Field) Count(w, h float64) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	n := int(math.Ceil(w * h / f.cfg.AreaPerParticle))
	if n > f.cfg.Cap {
		n = f.cfg.Cap
	}
	return n
}

// Resize discards every particle and repopulates for the new surface size.
func (f *Field) Resize(w, h float64) {
	n := f.Count(w, h)
	next := make([]Particle, n)
	for i := range next {
		next[i] = New(f.rng, w, h)
	}
	f.particles = next
	f.width, f.height = w, h
}

// Tick advances every particle against the shared pointer.
func (f *Field) Tick(pointer Point) {
	for i := range f.particles {
		f.particles[i].Advance(pointer, f.width, f.height)
	}
}

// Particles is a read-only view; callers must not retain it across Resize.
func (f *Field) Particles() []Particle {
	return f.particles
}

func (f *Field) Len() int { return len(f.particles) }

// Size reports the surface dimensions the field was last sized for.
func (f *Field) Size() (float64, float64) { return f.width, f.height }
