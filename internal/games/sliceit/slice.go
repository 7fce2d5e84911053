package sliceit

import (
	"fmt"

	"github.com/vovakirdan/sliceit/internal/core"
)

// blade tracks the current drag gesture.
type blade struct {
	dragging bool
	last     core.Vec
}

// feed consumes one pointer sample. It returns the accepted point and the
// direction from the previous accepted point when the sample moved far enough.
func (b *blade) feed(s core.PointerSample, minDist float64) (core.Vec, core.Vec, bool) {
	p := s.Pos()
	switch s.Phase {
	case core.PointerDown:
		b.dragging = true
		b.last = p
	case core.PointerUp:
		b.dragging = false
	case core.PointerMove:
		if !b.dragging || core.Dist(b.last, p) <= minDist {
			return core.Vec{}, core.Vec{}, false
		}
		dir := p.Sub(b.last).Normalize()
		b.last = p
		return p, dir, true
	}
	return core.Vec{}, core.Vec{}, false
}

// processPointer runs the slice resolver over this tick's samples.
func (g *Game) processPointer(samples []core.PointerSample) {
	for _, s := range samples {
		if s.Phase == core.PointerDown {
			g.effects.addTrail(s.Pos(), g.now)
		}
		p, dir, ok := g.blade.feed(s, g.cfg.Blade.MinDistance)
		if !ok {
			continue
		}
		g.effects.addTrail(p, g.now)
		g.sliceAt(p, dir)
		if g.run.over {
			return
		}
	}
}

// sliceAt resolves every entity containing p, then the boss.
func (g *Game) sliceAt(p, dir core.Vec) {
	for i := 0; i < len(g.entities); i++ {
		e := g.entities[i]
		if e.Sliced || !e.Box().Contains(p) {
			continue
		}
		g.resolveHit(e, dir)
		if g.run.over {
			return
		}
	}
	g.hitBoss(p)
}

func (g *Game) resolveHit(e *Entity, dir core.Vec) {
	kick := dir.X * g.cfg.Physics.SliceKick
	lift := -g.cfg.Physics.SliceLift
	c := e.Center()

	switch {
	case e.Kind.IsHazard():
		if g.powerups.Consume(PowerUpBombShield) {
			e.slice(kick, lift)
			g.run.shieldsUsed++
			g.emit(core.EventShieldProtected, e.Kind.String(), c.X, c.Y)
			g.effects.text(c.X, c.Y, "Shield Protected You!", core.ColorBrightGreen)
			g.effects.sliceBurst(c.X, c.Y, core.ColorBrightGreen)
			g.evaluateAchievements()
			return
		}
		e.slice(kick, lift)
		g.effects.burst(c.X, c.Y, 2*particleCount(g.cfg.Effects.ParticleLevel), core.ColorBrightRed)
		g.effects.shake(g.now + shakeOnBomb)
		g.endRun(EndBombSliced)

	case e.Kind.IsPowerUp():
		t, _ := e.Kind.PowerUp()
		e.slice(kick, lift)
		g.activatePowerUp(t, c)

	default:
		g.scoreSlice(e, kick, lift)
	}
}

// scoreSlice awards points for a plain or golden entity.
func (g *Game) scoreSlice(e *Entity, kick, lift float64) {
	if !e.slice(kick, lift) {
		return
	}

	points := e.Points
	if g.powerups.Active(PowerUpDoublePoints) {
		points *= g.cfg.Scoring.DoubleMultiplier
	}
	points *= g.run.combo

	g.run.score += points
	g.run.combo++
	g.run.maxCombo = max(g.run.maxCombo, g.run.combo)
	g.run.objectsSliced++
	if e.Kind.IsGolden() {
		g.run.golden[e.Kind] = true
	}
	g.recordSlice()

	c := e.Center()
	g.emit(core.EventSlice, e.Kind.String(), c.X, c.Y)
	g.effects.sliceBurst(c.X, c.Y, e.Kind.Color())
	if e.Kind.IsGolden() {
		g.effects.burst(c.X, c.Y, particleCount(g.cfg.Effects.ParticleLevel), core.ColorGold)
	}
	g.effects.text(c.X, c.Y, fmt.Sprintf("+%d", points), core.ColorBrightWhite)

	g.evaluateAchievements()
	g.addXP(points)
}

// recordSlice keeps slice times inside the speed window.
func (g *Game) recordSlice() {
	recent := g.run.recentSlices[:0]
	for _, t := range g.run.recentSlices {
		if g.now-t <= speedDemonWindow {
			recent = append(recent, t)
		}
	}
	g.run.recentSlices = append(recent, g.now)
}

func (g *Game) activatePowerUp(t PowerUpType, at core.Vec) {
	refreshed := g.powerups.Activate(t, g.now)
	g.emit(core.EventPowerUp, t.String(), at.X, at.Y)
	label := t.Label() + "!"
	if refreshed {
		label = t.Label() + " refreshed"
	}
	g.effects.text(at.X, at.Y, label, core.ColorBrightCyan)
}
