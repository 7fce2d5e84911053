package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sliceit.yaml
var defaultSliceYAML []byte

// DefaultSliceConfig returns the built-in configuration.
func DefaultSliceConfig() SliceConfig {
	return SliceConfig{
		Field: FieldConfig{Width: 800, Height: 600},
		Spawn: SpawnConfig{
			BaseRate:      0.02,
			LevelRate:     0.005,
			MaxRate:       0.25,
			GoldenChance:  0.05,
			PowerUpChance: 0.02,
			Drift:         1,
			RotationSpeed: 0.05,
		},
		Physics: PhysicsConfig{
			BaseSpeed:        1,
			SpeedJitter:      2,
			LevelSpeed:       0.5,
			MaxSpeed:         12,
			Gravity:          0.2,
			FadeRate:         0.02,
			SliceKick:        5,
			SliceLift:        5,
			SlowMotionFactor: 0.5,
			FreezeFactor:     0.3,
			MagnetRadius:     400,
			MagnetStrength:   1.5,
			MagnetMaxForce:   3,
		},
		Blade: BladeConfig{
			MinDistance: 10,
			TrailLength: 12,
			TrailLife:   250 * time.Millisecond,
		},
		PowerUps: PowerUpConfig{
			SlowMotion:   5 * time.Second,
			Magnet:       7 * time.Second,
			BombShield:   0,
			DoublePoints: 10 * time.Second,
			Freeze:       3 * time.Second,
		},
		Scoring: ScoringConfig{
			DoubleMultiplier: 2,
			BossBonus:        1000,
			XPBase:           100,
			XPGrowth:         1.5,
			LevelUpScore:     1000,
			LevelUpCombo:     2,
		},
		Boss: BossConfig{
			Width:            200,
			Height:           200,
			Top:              100,
			AttackInterval:   3 * time.Second,
			VulnerableDelay:  1500 * time.Millisecond,
			VulnerableWindow: 2 * time.Second,
			Damage:           10,
			Smoothing:        0.05,
			Arrive:           5,
		},
		Effects: EffectsConfig{
			ParticleLevel:  "medium",
			ParticleGrav:   0.1,
			ParticleSpeed:  2,
			BossHitBurst:   20,
			MaxParticles:   400,
			ShakeMagnitude: 10,
		},
		Modes: map[string]ModeConfig{
			"classic": {
				Title: "Classic", Lives: 3, Bombs: true, PowerUps: true,
				LevelProgression: true, SpawnMultiplier: 1,
			},
			"zen": {
				Title: "Zen", Lives: UnlimitedLives, PowerUps: true,
				SpawnMultiplier: 0.8,
			},
			"arcade": {
				Title: "Arcade", Lives: 1, TimeLimit: 60 * time.Second, Bombs: true,
				PowerUps: true, LevelProgression: true, SpawnMultiplier: 1.5,
			},
			"boss": {
				Title: "Boss Rush", Lives: 5, PowerUps: true,
				SpawnMultiplier: 0.5, Boss: true,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLevel,
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				SpawnMultiplier: 0.5,
			},
		},
	}
}
