package sliceit

import (
	"math"
	"time"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// BossPhase is the state of the boss cycle.
type BossPhase int

const (
	BossAttacking BossPhase = iota
	BossVulnerable
	BossDefeated
)

// String returns the phase name used in events.
func (p BossPhase) String() string {
	switch p {
	case BossAttacking:
		return "attacking"
	case BossVulnerable:
		return "vulnerable"
	case BossDefeated:
		return "defeated"
	default:
		return "unknown"
	}
}

// Attack identifies a scripted boss attack.
type Attack int

const (
	AttackPaperRain Attack = iota
	AttackShredderBeam
	AttackScissorSlash
	AttackScissorTornado
	AttackRockThrow
	AttackEarthquake
)

// String returns the attack name.
func (a Attack) String() string {
	switch a {
	case AttackPaperRain:
		return "paperRain"
	case AttackShredderBeam:
		return "shredderBeam"
	case AttackScissorSlash:
		return "scissorSlash"
	case AttackScissorTornado:
		return "scissorTornado"
	case AttackRockThrow:
		return "rockThrow"
	case AttackEarthquake:
		return "earthquake"
	default:
		return "unknown"
	}
}

// BossType is one entry of the boss roster.
type BossType struct {
	Name    string
	Health  int
	Attacks []Attack
	Color   core.Color
}

// bossRoster lists bosses in the order they are fought.
var bossRoster = []BossType{
	{Name: "Paper Shredder", Health: 100, Attacks: []Attack{AttackPaperRain, AttackShredderBeam}, Color: core.ColorWhite},
	{Name: "Scissors King", Health: 150, Attacks: []Attack{AttackScissorSlash, AttackScissorTornado}, Color: core.ColorBrightCyan},
	{Name: "Stone Golem", Health: 200, Attacks: []Attack{AttackRockThrow, AttackEarthquake}, Color: core.ColorBrown},
}

// bossTransition reports what happened during a boss update.
type bossTransition int

const (
	bossIdle bossTransition = iota
	bossAttackDue
	bossBecameVulnerable
	bossBecameAttacking
)

// Boss is the active boss and its phase timers.
type Boss struct {
	Type       BossType
	X, Y, W, H float64
	TargetX    float64
	Health     int
	MaxHealth  int
	Phase      BossPhase
	Attack     Attack
	HasAttack  bool

	nextAttackAt    time.Duration
	vulnerablePend  bool
	vulnerableAt    time.Duration
	vulnerableUntil time.Duration
}

func newBoss(t BossType, cfg config.BossConfig, fieldW float64, now time.Duration, rng Random) *Boss {
	b := &Boss{
		Type:         t,
		W:            cfg.Width,
		H:            cfg.Height,
		Y:            cfg.Top,
		Health:       t.Health,
		MaxHealth:    t.Health,
		Phase:        BossAttacking,
		nextAttackAt: now + cfg.AttackInterval,
	}
	b.X = (fieldW - b.W) / 2
	b.TargetX = rng.Range(0, fieldW-b.W)
	return b
}

// Box returns the boss bounding box.
func (b *Boss) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

// Center returns the boss center.
func (b *Boss) Center() core.Vec {
	return b.Box().Center()
}

// Vulnerable reports whether damage is accepted.
func (b *Boss) Vulnerable() bool {
	return b.Phase == BossVulnerable
}

// TakeDamage reduces health while vulnerable and reports whether the hit landed.
func (b *Boss) TakeDamage(amount int) bool {
	if !b.Vulnerable() {
		return false
	}
	b.Health -= amount
	return true
}

// move eases toward the target x and picks a new target on arrival.
func (b *Boss) move(cfg config.BossConfig, fieldW, fs float64, rng Random) {
	b.X += (b.TargetX - b.X) * math.Min(1, cfg.Smoothing*fs)
	if math.Abs(b.TargetX-b.X) < cfg.Arrive {
		b.TargetX = rng.Range(0, fieldW-b.W)
	}
}

// advance runs the attack/vulnerable cycle against the clock.
func (b *Boss) advance(now time.Duration, cfg config.BossConfig) bossTransition {
	switch b.Phase {
	case BossAttacking:
		if b.vulnerablePend {
			if now >= b.vulnerableAt {
				b.vulnerablePend = false
				b.Phase = BossVulnerable
				b.vulnerableUntil = now + cfg.VulnerableWindow
				return bossBecameVulnerable
			}
			return bossIdle
		}
		if now >= b.nextAttackAt {
			b.vulnerablePend = true
			b.vulnerableAt = now + cfg.VulnerableDelay
			return bossAttackDue
		}
	case BossVulnerable:
		if now >= b.vulnerableUntil {
			b.Phase = BossAttacking
			b.HasAttack = false
			b.nextAttackAt = now + cfg.AttackInterval
			return bossBecameAttacking
		}
	}
	return bossIdle
}

// chooseAttack picks uniformly from the boss's attack set.
func (b *Boss) chooseAttack(rng Random) Attack {
	attacks := b.Type.Attacks
	i := int(rng.Float64() * float64(len(attacks)))
	if i >= len(attacks) {
		i = len(attacks) - 1
	}
	b.Attack = attacks[i]
	b.HasAttack = true
	return b.Attack
}
