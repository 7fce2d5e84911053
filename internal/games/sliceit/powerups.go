package sliceit

import (
	"time"

	"github.com/vovakirdan/sliceit/internal/config"
)

// PowerUpStatus is the state of one power-up type.
// A zero Duration never expires on its own.
type PowerUpStatus struct {
	Active      bool
	ActivatedAt time.Duration
	Duration    time.Duration
}

// expiresAt returns the simulation time the effect ends.
func (s PowerUpStatus) expiresAt() time.Duration {
	return s.ActivatedAt + s.Duration
}

// PowerUps tracks every power-up type with pull-based expiry.
type PowerUps struct {
	status       [powerUpCount]PowerUpStatus
	durations    [powerUpCount]time.Duration
	slowFactor   float64
	freezeFactor float64
}

// NewPowerUps creates an all-inactive power-up set.
func NewPowerUps(cfg config.SliceConfig) *PowerUps {
	p := &PowerUps{}
	p.Reset(cfg)
	return p
}

// Activate turns a power-up on at now.
// Re-activating an active type refreshes its timer and returns true.
func (p *PowerUps) Activate(t PowerUpType, now time.Duration) bool {
	if !valid(t) {
		return false
	}
	refreshed := p.status[t].Active
	p.status[t] = PowerUpStatus{
		Active:      true,
		ActivatedAt: now,
		Duration:    p.durations[t],
	}
	return refreshed
}

// Active reports whether a type is on.
func (p *PowerUps) Active(t PowerUpType) bool {
	return valid(t) && p.status[t].Active
}

// Status returns the state of a type.
func (p *PowerUps) Status(t PowerUpType) PowerUpStatus {
	if !valid(t) {
		return PowerUpStatus{}
	}
	return p.status[t]
}

// Consume deactivates a type. Returns false if it was not active.
func (p *PowerUps) Consume(t PowerUpType) bool {
	if !p.Active(t) {
		return false
	}
	p.status[t] = PowerUpStatus{}
	return true
}

// Expire deactivates every timed type whose duration has elapsed at now.
func (p *PowerUps) Expire(now time.Duration) []PowerUpType {
	var expired []PowerUpType
	for t := range powerUpCount {
		s := p.status[t]
		if !s.Active || s.Duration <= 0 {
			continue
		}
		if s.expiresAt() <= now {
			p.status[t] = PowerUpStatus{}
			expired = append(expired, t)
		}
	}
	return expired
}

// Remaining returns the time left for a type, or 0 if inactive or untimed.
func (p *PowerUps) Remaining(t PowerUpType, now time.Duration) time.Duration {
	s := p.Status(t)
	if !s.Active || s.Duration <= 0 {
		return 0
	}
	return max(0, s.expiresAt()-now)
}

// TimeScale returns the product of every active slow-down factor.
func (p *PowerUps) TimeScale() float64 {
	scale := 1.0
	if p.Active(PowerUpSlowMotion) {
		scale *= p.slowFactor
	}
	if p.Active(PowerUpFreeze) {
		scale *= p.freezeFactor
	}
	return scale
}

// Reset deactivates everything and takes durations and time factors
// from cfg.
func (p *PowerUps) Reset(cfg config.SliceConfig) {
	p.status = [powerUpCount]PowerUpStatus{}
	p.slowFactor = cfg.Physics.SlowMotionFactor
	p.freezeFactor = cfg.Physics.FreezeFactor
	p.durations[PowerUpSlowMotion] = cfg.PowerUps.SlowMotion
	p.durations[PowerUpMagnet] = cfg.PowerUps.Magnet
	p.durations[PowerUpBombShield] = cfg.PowerUps.BombShield
	p.durations[PowerUpDoublePoints] = cfg.PowerUps.DoublePoints
	p.durations[PowerUpFreeze] = cfg.PowerUps.Freeze
}

func valid(t PowerUpType) bool {
	return t >= 0 && t < powerUpCount
}
