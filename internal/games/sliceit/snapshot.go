package sliceit

import (
	"time"

	"github.com/vovakirdan/sliceit/internal/core"
)

// EntityView is the drawable state of an entity.
type EntityView struct {
	ID       int
	Kind     Kind
	Box      core.Box
	Rotation float64
	Alpha    float64
	Sliced   bool
}

// BossView is the drawable state of the boss.
type BossView struct {
	Name      string
	Box       core.Box
	Health    int
	MaxHealth int
	Phase     BossPhase
	Attack    string
	Color     core.Color
}

// PowerUpView is an active power-up with its remaining time.
// Timed is false for effects that last until consumed.
type PowerUpView struct {
	Type      PowerUpType
	Remaining time.Duration
	Timed     bool
}

// Snapshot is everything a frontend needs to draw one frame.
type Snapshot struct {
	Mode   string
	Title  string
	FieldW float64
	FieldH float64

	Score     int
	Combo     int
	MaxCombo  int
	Lives     int // config.UnlimitedLives when unlimited
	Level     int
	XP        float64
	XPNeeded  float64
	Levels    bool
	Elapsed   time.Duration
	TimeLeft  time.Duration // Zero for untimed modes
	PowerUps  []PowerUpView
	Entities  []EntityView
	Boss      *BossView
	Particles []Particle
	Texts     []FloatingText
	Beams     []BeamParticle
	Trail     []TrailPoint
	ShakeX    float64
	ShakeY    float64

	Paused    bool
	GameOver  bool
	Victory   bool
	EndReason EndReason
}

// Snapshot returns a copy of the drawable game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Mode:      g.modeID,
		Title:     g.mode.Title,
		FieldW:    g.cfg.Field.Width,
		FieldH:    g.cfg.Field.Height,
		Score:     g.run.score,
		Combo:     g.run.combo,
		MaxCombo:  g.run.maxCombo,
		Lives:     g.run.lives,
		Level:     g.run.level,
		XP:        g.run.xp,
		XPNeeded:  xpForLevel(g.run.level, g.cfg.Scoring),
		Levels:    g.mode.LevelProgression,
		Elapsed:   g.now,
		Paused:    g.paused,
		GameOver:  g.run.over,
		Victory:   g.run.victory,
		EndReason: g.run.reason,
	}

	if g.mode.TimeLimit > 0 {
		s.TimeLeft = max(0, g.mode.TimeLimit-g.now)
	}

	if g.powerups != nil {
		for t := range powerUpCount {
			if !g.powerups.Active(t) {
				continue
			}
			st := g.powerups.Status(t)
			s.PowerUps = append(s.PowerUps, PowerUpView{
				Type:      t,
				Remaining: g.powerups.Remaining(t, g.now),
				Timed:     st.Duration > 0,
			})
		}
	}

	s.Entities = make([]EntityView, 0, len(g.entities))
	for _, e := range g.entities {
		s.Entities = append(s.Entities, EntityView{
			ID:       e.ID,
			Kind:     e.Kind,
			Box:      e.Box(),
			Rotation: e.Rotation,
			Alpha:    e.Alpha,
			Sliced:   e.Sliced,
		})
	}

	if b := g.boss; b != nil && b.Phase != BossDefeated {
		v := &BossView{
			Name:      b.Type.Name,
			Box:       b.Box(),
			Health:    b.Health,
			MaxHealth: b.MaxHealth,
			Phase:     b.Phase,
			Color:     b.Type.Color,
		}
		if b.HasAttack {
			v.Attack = b.Attack.String()
		}
		s.Boss = v
	}

	if fx := g.effects; fx != nil {
		s.Particles = append([]Particle(nil), fx.particles...)
		s.Texts = append([]FloatingText(nil), fx.texts...)
		s.Beams = append([]BeamParticle(nil), fx.beams...)
		s.Trail = append([]TrailPoint(nil), fx.trail...)
		s.ShakeX, s.ShakeY = fx.shakeX, fx.shakeY
	}

	return s
}
