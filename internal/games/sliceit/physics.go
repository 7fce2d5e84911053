package sliceit

import (
	"math"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// magnetForce returns the pull toward the field center at distance d.
// It is zero at or beyond the radius and never exceeds the max force.
func magnetForce(d float64, phys config.PhysicsConfig) float64 {
	if d <= 0 || d >= phys.MagnetRadius {
		return 0
	}
	return math.Min(phys.MagnetMaxForce, phys.MagnetStrength*(phys.MagnetRadius/d-1))
}

// spawnRate returns the spawn probability per 60 Hz frame.
func (g *Game) spawnRate() float64 {
	base := (g.cfg.Spawn.BaseRate + float64(g.run.level)*g.cfg.Spawn.LevelRate) * g.mode.SpawnMultiplier
	rate := g.difficulty.SpawnRate(base, g.run.score, g.run.level)
	return math.Min(g.cfg.Spawn.MaxRate, rate)
}

// fallSpeed rolls a fall speed for a new entity.
func (g *Game) fallSpeed() float64 {
	p := g.cfg.Physics
	speed := g.rng.Float64()*p.SpeedJitter + p.BaseSpeed + float64(g.run.level)*p.LevelSpeed
	speed = g.difficulty.Speed(speed, g.run.score, g.run.level)
	return math.Min(p.MaxSpeed, speed)
}

func (g *Game) trySpawn() {
	chance := math.Min(1, g.spawnRate()*g.frameScale)
	if g.rng.Float64() >= chance {
		return
	}
	kind := g.spawner.Pick(g.spawner.Candidates(g.mode))
	g.entities = append(g.entities, g.spawner.Spawn(kind, g.fallSpeed()))
}

// updateEntities moves every entity and removes those that left the field.
func (g *Game) updateEntities() {
	phys := g.cfg.Physics
	fieldW, fieldH := g.cfg.Field.Width, g.cfg.Field.Height
	fs := g.frameScale
	ts := g.powerups.TimeScale()
	magnet := g.powerups.Active(PowerUpMagnet)
	center := core.Vec{X: fieldW / 2, Y: fieldH / 2}

	kept := g.entities[:0]
	for _, e := range g.entities {
		if e.Sliced {
			if e.updateSliced(phys, fieldH, fs) {
				kept = append(kept, e)
			}
			continue
		}

		e.Y += e.Speed * ts * fs
		e.X += e.VX * ts * fs
		e.Rotation += e.RotationSpeed * fs

		if magnet && !e.Kind.IsHazard() {
			toCenter := center.Sub(e.Center())
			if f := magnetForce(toCenter.Len(), phys); f > 0 {
				pull := toCenter.Normalize().Scale(f * ts * fs)
				e.X += pull.X
				e.Y += pull.Y
			}
		}

		if e.Y > fieldH || e.X+e.W < -e.W || e.X > fieldW+e.W {
			g.handleMiss(e)
			continue
		}
		kept = append(kept, e)
	}
	// Drop references to removed entities.
	for i := len(kept); i < len(g.entities); i++ {
		g.entities[i] = nil
	}
	g.entities = kept
}

// handleMiss applies the life cost of an unsliced entity leaving the field,
// through the bottom or past a side.
func (g *Game) handleMiss(e *Entity) {
	if g.run.over || !e.Kind.CostsLife() || g.run.lives == config.UnlimitedLives {
		return
	}
	g.run.lives--
	g.run.combo = 1
	c := e.Center()
	g.emit(core.EventLifeLost, e.Kind.String(),
		core.ClampF(c.X, 0, g.cfg.Field.Width), core.ClampF(c.Y, 0, g.cfg.Field.Height))
	if g.run.lives <= 0 {
		g.endRun(EndLivesExhausted)
	}
}
