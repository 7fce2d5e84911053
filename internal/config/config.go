// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

import "time"

// SliceConfig contains all tunables of the slicing game.
type SliceConfig struct {
	Field      FieldConfig           `yaml:"field"`
	Spawn      SpawnConfig           `yaml:"spawn"`
	Physics    PhysicsConfig         `yaml:"physics"`
	Blade      BladeConfig           `yaml:"blade"`
	PowerUps   PowerUpConfig         `yaml:"powerups"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	Boss       BossConfig            `yaml:"boss"`
	Effects    EffectsConfig         `yaml:"effects"`
	Modes      map[string]ModeConfig `yaml:"modes"`
	Difficulty DifficultyConfig      `yaml:"difficulty"`
}

// FieldConfig is the size of the play field in world units.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnConfig defines spawn probabilities per 60 Hz frame.
type SpawnConfig struct {
	BaseRate      float64 `yaml:"base_rate"`
	LevelRate     float64 `yaml:"level_rate"`
	MaxRate       float64 `yaml:"max_rate"`
	GoldenChance  float64 `yaml:"golden_chance"`
	PowerUpChance float64 `yaml:"powerup_chance"`
	Drift         float64 `yaml:"drift"`          // Max horizontal drift per frame
	RotationSpeed float64 `yaml:"rotation_speed"` // Max rotation per frame (radians)
}

// PhysicsConfig defines motion parameters, all expressed per 60 Hz frame.
type PhysicsConfig struct {
	BaseSpeed        float64 `yaml:"base_speed"`
	SpeedJitter      float64 `yaml:"speed_jitter"`
	LevelSpeed       float64 `yaml:"level_speed"`
	MaxSpeed         float64 `yaml:"max_speed"`
	Gravity          float64 `yaml:"gravity"`    // Applied to sliced debris
	FadeRate         float64 `yaml:"fade_rate"`  // Alpha lost per frame once sliced
	SliceKick        float64 `yaml:"slice_kick"` // Horizontal debris speed along the cut
	SliceLift        float64 `yaml:"slice_lift"` // Upward debris speed
	SlowMotionFactor float64 `yaml:"slow_motion_factor"`
	FreezeFactor     float64 `yaml:"freeze_factor"`
	MagnetRadius     float64 `yaml:"magnet_radius"`
	MagnetStrength   float64 `yaml:"magnet_strength"`
	MagnetMaxForce   float64 `yaml:"magnet_max_force"`
}

// BladeConfig defines pointer sampling for slices.
type BladeConfig struct {
	MinDistance float64       `yaml:"min_distance"`
	TrailLength int           `yaml:"trail_length"`
	TrailLife   time.Duration `yaml:"trail_life"`
}

// PowerUpConfig holds effect durations. A zero duration never expires.
type PowerUpConfig struct {
	SlowMotion   time.Duration `yaml:"slow_motion"`
	Magnet       time.Duration `yaml:"magnet"`
	BombShield   time.Duration `yaml:"bomb_shield"`
	DoublePoints time.Duration `yaml:"double_points"`
	Freeze       time.Duration `yaml:"freeze"`
}

// ScoringConfig defines point bonuses and the level curve.
type ScoringConfig struct {
	DoubleMultiplier int     `yaml:"double_multiplier"`
	BossBonus        int     `yaml:"boss_bonus"`
	XPBase           float64 `yaml:"xp_base"`
	XPGrowth         float64 `yaml:"xp_growth"`
	LevelUpScore     int     `yaml:"level_up_score"` // times the new level
	LevelUpCombo     int     `yaml:"level_up_combo"` // combo multiplier on level up
}

// BossConfig defines the boss state machine timings.
type BossConfig struct {
	Width            float64       `yaml:"width"`
	Height           float64       `yaml:"height"`
	Top              float64       `yaml:"top"`
	AttackInterval   time.Duration `yaml:"attack_interval"`
	VulnerableDelay  time.Duration `yaml:"vulnerable_delay"`
	VulnerableWindow time.Duration `yaml:"vulnerable_window"`
	Damage           int           `yaml:"damage"`
	Smoothing        float64       `yaml:"smoothing"`
	Arrive           float64       `yaml:"arrive"`
}

// EffectsConfig sizes transient visual effects.
type EffectsConfig struct {
	ParticleLevel  string  `yaml:"particle_level"` // "low", "medium" or "high"
	ParticleGrav   float64 `yaml:"particle_gravity"`
	ParticleSpeed  float64 `yaml:"particle_speed"`
	BossHitBurst   int     `yaml:"boss_hit_burst"`
	MaxParticles   int     `yaml:"max_particles"`
	ShakeMagnitude float64 `yaml:"shake_magnitude"`
}

// ModeConfig describes one game mode. Lives < 0 means unlimited.
type ModeConfig struct {
	Title            string        `yaml:"title"`
	Lives            int           `yaml:"lives"`
	TimeLimit        time.Duration `yaml:"time_limit"`
	Bombs            bool          `yaml:"bombs"`
	PowerUps         bool          `yaml:"powerups"`
	LevelProgression bool          `yaml:"level_progression"`
	SpawnMultiplier  float64       `yaml:"spawn_multiplier"`
	Boss             bool          `yaml:"boss"`
}

// UnlimitedLives is the Lives value of modes that never lose a life.
const UnlimitedLives = -1

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a run.
type ProgressionConfig struct {
	Type  ProgressionType `yaml:"type"`
	MaxAt int             `yaml:"max_at"` // Score/level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to fall speed at max difficulty
	SpawnMultiplier float64 `yaml:"spawn_multiplier"` // Added to spawn rate at max difficulty
}

// Mode returns the named mode, falling back to classic settings.
func (c SliceConfig) Mode(name string) ModeConfig {
	if m, ok := c.Modes[name]; ok {
		return m
	}
	return DefaultSliceConfig().Modes["classic"]
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value into a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
