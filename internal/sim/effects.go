package sim

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type Particle struct {
	ID     string
	X      float64
	Y      float64
	VX     float64
	VY     float64
	Radius float64
	Life   float64
	Color  string
}

type Notification struct {
	ID    string
	Text  string
	X     float64
	Y     float64
	Life  float64
	Color string
}

// EffectsSystem owns the transient particles and floating notifications.
// It is not safe for concurrent use; the tick goroutine owns it.
type EffectsSystem struct {
	particles     []Particle
	notifications []Notification
	rng           *rand.Rand
	ticks         atomic.Uint64
}

// NewEffectsSystem creates an effects system. A nil rng seeds one from the
// clock.
func NewEffectsSystem(rng *rand.Rand) *EffectsSystem {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &EffectsSystem{rng: rng}
}

// SpawnParticles adds count particles at (x, y) with random velocity and
// radius.
func (e *EffectsSystem) SpawnParticles(x, y float64, color string, count int) {
	for range count {
		e.particles = append(e.particles, Particle{
			ID:     uuid.NewString(),
			X:      x,
			Y:      y,
			VX:     (e.rng.Float64() - 0.5) * ParticleSpeedSpread,
			VY:     (e.rng.Float64() - 0.5) * ParticleSpeedSpread,
			Radius: ParticleMinRadius + e.rng.Float64()*ParticleRadiusSpread,
			Life:   1,
			Color:  color,
		})
	}
}

func (e *EffectsSystem) SpawnNotification(text string, x, y float64, color string) {
	e.notifications = append(e.notifications, Notification{
		ID:    uuid.NewString(),
		Text:  text,
		X:     x,
		Y:     y,
		Life:  NotificationLife,
		Color: color,
	})
}

// Tick decays every effect once and drops those whose life ran out.
func (e *EffectsSystem) Tick(context.Context) error {
	particles := e.particles[:0]
	for _, p := range e.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= ParticleLifeDecay
		p.Radius *= ParticleShrink
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	clear(e.particles[len(particles):])
	e.particles = particles

	notifications := e.notifications[:0]
	for _, n := range e.notifications {
		n.Y -= NotificationDrift
		n.Life -= NotificationLifeDecay
		if n.Life > 0 {
			notifications = append(notifications, n)
		}
	}
	clear(e.notifications[len(notifications):])
	e.notifications = notifications

	e.ticks.Add(1)
	return nil
}

// Ticks reports how many effects ticks have run.
func (e *EffectsSystem) Ticks() uint64 {
	return e.ticks.Load()
}

func (e *EffectsSystem) Particles() []Particle {
	return append([]Particle(nil), e.particles...)
}

func (e *EffectsSystem) Notifications() []Notification {
	return append([]Notification(nil), e.notifications...)
}
