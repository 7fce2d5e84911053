package sliceit

import (
	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// Random is the source of randomness used by the simulation.
type Random interface {
	Float64() float64
	Range(lo, hi float64) float64
}

// Spawner decides which kinds to spawn and builds new entities.
type Spawner struct {
	rng    Random
	cfg    config.SpawnConfig
	field  config.FieldConfig
	nextID int
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng Random, cfg config.SpawnConfig, field config.FieldConfig) *Spawner {
	return &Spawner{rng: rng, cfg: cfg, field: field}
}

// Candidates builds the kind list for one spawn decision.
func (s *Spawner) Candidates(mode config.ModeConfig) []Kind {
	kinds := make([]Kind, 0, 12)
	kinds = append(kinds, plainKinds...)
	if mode.Bombs {
		kinds = append(kinds, KindBomb)
	}
	if s.rng.Float64() < s.cfg.GoldenChance {
		kinds = append(kinds, goldenKinds...)
	}
	if mode.PowerUps && s.rng.Float64() < s.cfg.PowerUpChance {
		kinds = append(kinds, powerUpKinds...)
	}
	return kinds
}

// Pick selects one kind by weight.
// If the cumulative walk falls through, the last candidate is returned.
func (s *Spawner) Pick(candidates []Kind) Kind {
	if len(candidates) == 0 {
		return KindBook
	}

	total := 0
	for _, k := range candidates {
		total += k.Weight()
	}

	roll := s.rng.Float64() * float64(total)
	cumulative := 0.0
	for _, k := range candidates {
		cumulative += float64(k.Weight())
		if roll < cumulative {
			return k
		}
	}
	return candidates[len(candidates)-1]
}

// Spawn creates a kind just above the field with the given fall speed.
func (s *Spawner) Spawn(kind Kind, speed float64) *Entity {
	size := kind.Size()
	e := s.place(kind, core.Box{
		X: s.rng.Range(0, s.field.Width-size),
		Y: -size,
		W: size,
		H: size,
	})
	e.Speed = speed
	e.VX = s.rng.Range(-s.cfg.Drift, s.cfg.Drift)
	e.RotationSpeed = s.rng.Range(-s.cfg.RotationSpeed, s.cfg.RotationSpeed)
	return e
}

// place creates a motionless entity occupying box.
func (s *Spawner) place(kind Kind, box core.Box) *Entity {
	s.nextID++
	return &Entity{
		ID:     s.nextID,
		Kind:   kind,
		X:      box.X,
		Y:      box.Y,
		W:      box.W,
		H:      box.H,
		Points: kind.Points(),
		Alpha:  1,
	}
}
