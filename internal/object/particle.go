package object

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tomz197/pong/internal/draw"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived spark thrown off by a hit.
type Particle struct {
	X, Y        float64 // Position in field units
	VX, VY      float64 // Velocity in field units per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.9
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnBurst appends count particles flying out of (x, y) in a circle.
func SpawnBurst(particles []*Particle, x, y float64, count int, speed, lifetime float64) []*Particle {
	for range count {
		// Random direction
		angle := rand.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rand.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rand.Float64()*0.5)

		particles = append(particles, NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
	return particles
}

// Update moves the particle. Returns true when it has burnt out.
func (p *Particle) Update(delta time.Duration) bool {
	dt := delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
	p.VX *= dragFactor
	p.VY *= dragFactor

	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Draw renders the particle as one pixel, dimming as it ages.
func (p *Particle) Draw(ctx DrawContext) error {
	if p.MaxLifetime <= 0 {
		return nil
	}
	ratio := p.Lifetime / p.MaxLifetime
	intensity := uint8(math.Ceil(ratio * float64(draw.MaxIntensity-1)))
	if intensity == 0 {
		return nil
	}
	ctx.Canvas.SetFloat(p.X, p.Y, intensity)
	return nil
}

// UpdateParticles advances every particle and releases the ones that burnt
// out. The returned slice reuses the input's backing array.
func UpdateParticles(particles []*Particle, delta time.Duration) []*Particle {
	kept := particles[:0]
	for _, p := range particles {
		if p.Update(delta) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(particles[len(kept):])
	return kept
}
