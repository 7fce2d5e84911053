package sliceit

import (
	"math"
	"time"

	"github.com/vovakirdan/sliceit/internal/core"
)

const (
	paperRainCount     = 10
	paperRainGap       = 200 * time.Millisecond
	beamColumns        = 20
	beamStep           = 40.0
	beamGap            = 100 * time.Millisecond
	slashW, slashH     = 120.0, 60.0
	slashSpeed         = 10.0
	tornadoParticles   = 50
	tornadoRadius      = 150.0
	tornadoGap         = 50 * time.Millisecond
	rockCount          = 5
	rockSize           = 80.0
	rockGap            = 300 * time.Millisecond
	earthquakeDuration = 2 * time.Second
	shakeOnBomb        = 500 * time.Millisecond
)

// startBoss brings in roster boss i.
func (g *Game) startBoss(i int) {
	g.bossIndex = i
	g.boss = newBoss(bossRoster[i], g.cfg.Boss, g.cfg.Field.Width, g.now, g.rng)
	c := g.boss.Center()
	g.emit(core.EventBossPhase, g.boss.Phase.String(), c.X, c.Y)
	g.effects.text(g.cfg.Field.Width/2, g.cfg.Field.Height/2, g.boss.Type.Name+" appears!", g.boss.Type.Color)
	g.log.Debug("boss started", "name", g.boss.Type.Name, "health", g.boss.Health)
}

// updateBoss moves the boss and drives its phase cycle.
func (g *Game) updateBoss() {
	b := g.boss
	if b == nil || b.Phase == BossDefeated {
		return
	}

	b.move(g.cfg.Boss, g.cfg.Field.Width, g.frameScale, g.rng)

	c := b.Center()
	switch b.advance(g.now, g.cfg.Boss) {
	case bossAttackDue:
		g.executeAttack(b.chooseAttack(g.rng))
	case bossBecameVulnerable:
		g.emit(core.EventBossPhase, b.Phase.String(), c.X, c.Y)
		g.effects.text(c.X, b.Y+b.H+20, "VULNERABLE!", core.ColorBrightYellow)
	case bossBecameAttacking:
		g.emit(core.EventBossPhase, b.Phase.String(), c.X, c.Y)
	}
}

// hitBoss applies blade damage at p.
func (g *Game) hitBoss(p core.Vec) {
	b := g.boss
	if b == nil || b.Phase == BossDefeated || !b.Box().Contains(p) {
		return
	}
	if !b.TakeDamage(g.cfg.Boss.Damage) {
		return
	}

	g.effects.burst(p.X, p.Y, g.cfg.Effects.BossHitBurst, core.ColorBrightRed)
	g.emit(core.EventBossHit, b.Type.Name, p.X, p.Y)
	if b.Health <= 0 {
		g.defeatBoss()
	}
}

// defeatBoss awards the bonus and moves on to the next boss or victory.
func (g *Game) defeatBoss() {
	b := g.boss
	b.Phase = BossDefeated
	g.sched.Cancel()

	c := b.Center()
	g.run.score += g.cfg.Scoring.BossBonus
	g.run.bossesDefeated++
	g.emit(core.EventBossDefeated, b.Type.Name, c.X, c.Y)
	g.effects.burst(c.X, c.Y, 2*g.cfg.Effects.BossHitBurst, core.ColorGold)
	g.effects.text(c.X, c.Y, b.Type.Name+" defeated!", core.ColorGold)

	g.unlockAchievement("bossSlayer")
	g.run.level++
	g.emit(core.EventLevelUp, levelLabel(g.run.level), c.X, c.Y)
	g.evaluateAchievements()

	next := g.bossIndex + 1
	if next >= len(bossRoster) {
		g.endRun(EndBossesCleared)
		return
	}
	g.startBoss(next)
}

// executeAttack queues the scripted sequence of an attack.
func (g *Game) executeAttack(a Attack) {
	g.log.Debug("boss attack", "attack", a)
	field := g.cfg.Field

	switch a {
	case AttackPaperRain:
		for i := range paperRainCount {
			g.sched.After(g.now, time.Duration(i)*paperRainGap, func() {
				g.entities = append(g.entities, g.spawner.Spawn(KindBook, g.fallSpeed()))
			})
		}

	case AttackShredderBeam:
		for i := range beamColumns {
			x := float64(i) * beamStep
			g.sched.After(g.now, time.Duration(i)*beamGap, func() {
				g.effects.beam(x)
			})
		}

	case AttackScissorSlash:
		e := g.spawner.place(KindCoffeeMug, core.Box{
			X: -slashW,
			Y: field.Height/2 - slashH/2,
			W: slashW,
			H: slashH,
		})
		e.VX = slashSpeed
		g.entities = append(g.entities, e)

	case AttackScissorTornado:
		for i := range tornadoParticles {
			angle := 2 * math.Pi * float64(i) / tornadoParticles
			g.sched.After(g.now, time.Duration(i)*tornadoGap, func() {
				c := g.boss.Center()
				g.effects.addParticle(Particle{
					X:     c.X + math.Cos(angle)*tornadoRadius,
					Y:     c.Y + math.Sin(angle)*tornadoRadius,
					VX:    -math.Sin(angle) * g.cfg.Effects.ParticleSpeed,
					VY:    math.Cos(angle) * g.cfg.Effects.ParticleSpeed,
					Life:  1,
					Decay: 0.02,
					Color: core.ColorBrightCyan,
				})
			})
		}

	case AttackRockThrow:
		for i := range rockCount {
			g.sched.After(g.now, time.Duration(i)*rockGap, func() {
				c := g.boss.Center()
				e := g.spawner.place(KindBomb, core.Box{
					X: c.X - rockSize/2,
					Y: c.Y - rockSize/2,
					W: rockSize,
					H: rockSize,
				})
				e.VX = g.rng.Range(-5, 5)
				e.Speed = g.rng.Range(5, 10)
				g.entities = append(g.entities, e)
			})
		}

	case AttackEarthquake:
		g.effects.shake(g.now + earthquakeDuration)
	}
}
