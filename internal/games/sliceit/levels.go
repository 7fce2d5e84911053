package sliceit

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// xpForLevel returns the whole XP needed to leave level.
func xpForLevel(level int, cfg config.ScoringConfig) float64 {
	return math.Floor(cfg.XPBase * math.Pow(cfg.XPGrowth, float64(level-1)))
}

func levelLabel(level int) string {
	return fmt.Sprintf("Level %d!", level)
}

// addXP grants XP in modes with level progression, leveling up as needed.
func (g *Game) addXP(points int) {
	if !g.mode.LevelProgression || points <= 0 {
		return
	}
	g.run.xp += float64(points)

	for {
		need := xpForLevel(g.run.level, g.cfg.Scoring)
		if need <= 0 || g.run.xp < need {
			return
		}
		g.run.xp -= need
		g.run.level++
		g.run.score += g.cfg.Scoring.LevelUpScore * g.run.level
		if f := g.cfg.Scoring.LevelUpCombo; f > 1 {
			g.run.combo *= f
			g.run.maxCombo = max(g.run.maxCombo, g.run.combo)
		}

		label := levelLabel(g.run.level)
		g.emit(core.EventLevelUp, label, g.cfg.Field.Width/2, g.cfg.Field.Height/2)
		g.effects.text(g.cfg.Field.Width/2, g.cfg.Field.Height/2, label, core.ColorBrightYellow)
		g.evaluateAchievements()
	}
}
