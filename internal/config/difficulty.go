package config

import "math"

// ProgressionType selects what drives difficulty during a run.
type ProgressionType string

const (
	ProgressionScore ProgressionType = "score"
	ProgressionLevel ProgressionType = "level"
	ProgressionNone  ProgressionType = "none"
)

// DifficultyManager maps run progress to a difficulty in [0, 1] and
// scales fall speed and spawn rate with it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a manager for cfg. The initial level is
// clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		floor: unit(cfg.InitialLevel),
	}
}

// IsEnabled returns whether difficulty grows during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the difficulty for a score and game level. It starts at
// the initial level and reaches 1 at the configured max_at.
func (d *DifficultyManager) Level(score, gameLevel int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}

	var done float64
	switch d.cfg.Progression.Type {
	case ProgressionScore:
		done = float64(score)
	case ProgressionLevel:
		done = float64(gameLevel - 1)
	default:
		return d.floor
	}

	target := math.Max(1, float64(d.cfg.Progression.MaxAt))
	return d.floor + unit(done/target)*(1-d.floor)
}

// Speed scales a base fall speed by the current difficulty.
func (d *DifficultyManager) Speed(base float64, score, gameLevel int) float64 {
	return base * (1 + d.Level(score, gameLevel)*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnRate scales a base spawn probability by the current difficulty.
func (d *DifficultyManager) SpawnRate(base float64, score, gameLevel int) float64 {
	return base * (1 + d.Level(score, gameLevel)*d.cfg.Scaling.SpawnMultiplier)
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
