package sliceit

import (
	"math"
	"time"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// Particle is a short-lived spark.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 at birth, removed at 0
	Decay  float64
	Color  core.Color
}

// FloatingText is a rising message such as "+15" or "Level 3!".
type FloatingText struct {
	Text  string
	X, Y  float64
	Life  float64
	Color core.Color
}

// BeamParticle is one column of a shredder beam.
type BeamParticle struct {
	X    float64
	Life float64
}

// TrailPoint is an accepted blade position.
type TrailPoint struct {
	X, Y float64
	At   time.Duration
}

const (
	textRise  = 1.0
	textDecay = 0.02
	beamDecay = 0.05
)

// Effects simulates visual feedback. It never influences gameplay.
type Effects struct {
	cfg       config.EffectsConfig
	rng       Random
	trailOn   bool
	trailLen  int
	trailLife time.Duration

	particles []Particle
	texts     []FloatingText
	beams     []BeamParticle
	trail     []TrailPoint

	shakeUntil     time.Duration
	shakeX, shakeY float64
}

func newEffects(cfg config.SliceConfig, trail bool, rng Random) *Effects {
	e := &Effects{}
	e.reset(cfg, trail, rng)
	return e
}

// particleCount returns sparks per slice for a particle setting.
func particleCount(level string) int {
	switch level {
	case "low":
		return 5
	case "high":
		return 20
	default:
		return 10
	}
}

// sliceBurst emits the per-slice sparks.
func (e *Effects) sliceBurst(x, y float64, c core.Color) {
	e.burst(x, y, particleCount(e.cfg.ParticleLevel), c)
}

// burst emits n sparks in random directions.
func (e *Effects) burst(x, y float64, n int, c core.Color) {
	for range n {
		angle := e.rng.Range(0, 2*math.Pi)
		speed := e.rng.Range(0.5, 1.5) * e.cfg.ParticleSpeed
		e.addParticle(Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Life:  1,
			Decay: e.rng.Range(0.02, 0.04),
			Color: c,
		})
	}
}

func (e *Effects) addParticle(p Particle) {
	if e.cfg.MaxParticles > 0 && len(e.particles) >= e.cfg.MaxParticles {
		e.particles = e.particles[1:]
	}
	e.particles = append(e.particles, p)
}

func (e *Effects) text(x, y float64, s string, c core.Color) {
	e.texts = append(e.texts, FloatingText{Text: s, X: x, Y: y, Life: 1, Color: c})
}

func (e *Effects) beam(x float64) {
	e.beams = append(e.beams, BeamParticle{X: x, Life: 1})
}

func (e *Effects) shake(until time.Duration) {
	if until > e.shakeUntil {
		e.shakeUntil = until
	}
}

// Shaking reports whether a screen shake is in progress at now.
func (e *Effects) Shaking(now time.Duration) bool {
	return now < e.shakeUntil
}

func (e *Effects) addTrail(p core.Vec, now time.Duration) {
	if !e.trailOn || e.trailLen <= 0 {
		return
	}
	e.trail = append(e.trail, TrailPoint{X: p.X, Y: p.Y, At: now})
	if len(e.trail) > e.trailLen {
		e.trail = e.trail[len(e.trail)-e.trailLen:]
	}
}

// update advances every effect by one frame.
func (e *Effects) update(fs float64, now time.Duration) {
	particles := e.particles[:0]
	for _, p := range e.particles {
		p.VY += e.cfg.ParticleGrav * fs
		p.X += p.VX * fs
		p.Y += p.VY * fs
		p.Life -= p.Decay * fs
		if p.Life > 0 {
			particles = append(particles, p)
		}
	}
	e.particles = particles

	texts := e.texts[:0]
	for _, t := range e.texts {
		t.Y -= textRise * fs
		t.Life -= textDecay * fs
		if t.Life > 0 {
			texts = append(texts, t)
		}
	}
	e.texts = texts

	beams := e.beams[:0]
	for _, b := range e.beams {
		b.Life -= beamDecay * fs
		if b.Life > 0 {
			beams = append(beams, b)
		}
	}
	e.beams = beams

	trail := e.trail[:0]
	for _, t := range e.trail {
		if now-t.At < e.trailLife {
			trail = append(trail, t)
		}
	}
	e.trail = trail

	if e.Shaking(now) {
		m := e.cfg.ShakeMagnitude
		e.shakeX = e.rng.Range(-m, m)
		e.shakeY = e.rng.Range(-m, m)
	} else {
		e.shakeX, e.shakeY = 0, 0
	}
}

// reset clears every effect for a new run, keeping buffer capacity.
func (e *Effects) reset(cfg config.SliceConfig, trail bool, rng Random) {
	e.cfg = cfg.Effects
	e.rng = rng
	e.trailOn = trail
	e.trailLen = cfg.Blade.TrailLength
	e.trailLife = cfg.Blade.TrailLife

	e.particles = e.particles[:0]
	e.texts = e.texts[:0]
	e.beams = e.beams[:0]
	e.trail = e.trail[:0]
	e.shakeUntil = 0
	e.shakeX, e.shakeY = 0, 0
}
