package audio

import (
	"strings"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/sliceit/internal/core"
)

// Cue is a synthesized sound effect.
type Cue int

const (
	CueSlice Cue = iota
	CueGolden
	CuePowerUp
	CuePowerUpExpired
	CueShield
	CueLifeLost
	CueLevelUp
	CueAchievement
	CueBossPhase
	CueBossHit
	CueBossDefeated
	CueExplosion
	CueGameOver
	CueVictory
	cueCount
)

var cueNames = [cueCount]string{
	"slice", "golden", "powerup", "powerup_expired", "shield", "life_lost",
	"level_up", "achievement", "boss_phase", "boss_hit", "boss_defeated",
	"explosion", "game_over", "victory",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// CueFor maps a game event to the cue that announces it.
func CueFor(ev core.Event) (Cue, bool) {
	switch ev.Kind {
	case core.EventSlice:
		if strings.HasPrefix(ev.Label, "golden") {
			return CueGolden, true
		}
		return CueSlice, true
	case core.EventPowerUp:
		return CuePowerUp, true
	case core.EventPowerUpExpired:
		return CuePowerUpExpired, true
	case core.EventShieldProtected:
		return CueShield, true
	case core.EventLifeLost:
		return CueLifeLost, true
	case core.EventLevelUp:
		return CueLevelUp, true
	case core.EventAchievement:
		return CueAchievement, true
	case core.EventBossPhase:
		return CueBossPhase, true
	case core.EventBossHit:
		return CueBossHit, true
	case core.EventBossDefeated:
		return CueBossDefeated, true
	case core.EventGameOver:
		switch ev.Label {
		case "bomb_sliced":
			return CueExplosion, true
		case "bosses_cleared":
			return CueVictory, true
		}
		return CueGameOver, true
	}
	return 0, false
}

// NewCue synthesizes the streamer for c at full volume.
func NewCue(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueSlice:
		whoosh := NewEnvelope(NewOscillator(0, 90*time.Millisecond, WaveNoise, rate),
			90*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond, rate)
		return beep.Mix(withVolume(whoosh, 0.4), withVolume(NewSweep(900, 300, 90*time.Millisecond, rate), 0.3))
	case CueGolden:
		return beep.Mix(
			withVolume(tone(1318.51, 180*time.Millisecond, WaveSine, rate), 0.6),
			withVolume(tone(2637.02, 180*time.Millisecond, WaveSine, rate), 0.25),
		)
	case CuePowerUp:
		return withVolume(arpeggio([]float64{523.25, 659.25, 783.99}, 60*time.Millisecond, WaveSquare, rate), 0.35)
	case CuePowerUpExpired:
		return withVolume(NewEnvelope(NewSweep(660, 330, 150*time.Millisecond, rate),
			150*time.Millisecond, 5*time.Millisecond, 80*time.Millisecond, rate), 0.4)
	case CueShield:
		return withVolume(tone(220, 250*time.Millisecond, WaveSquare, rate), 0.35)
	case CueLifeLost:
		return withVolume(tone(110, 200*time.Millisecond, WaveSaw, rate), 0.45)
	case CueLevelUp:
		return withVolume(arpeggio([]float64{523.25, 659.25, 783.99, 1046.5}, 80*time.Millisecond, WaveSine, rate), 0.5)
	case CueAchievement:
		return withVolume(arpeggio([]float64{987.77, 1318.51}, 120*time.Millisecond, WaveSquare, rate), 0.35)
	case CueBossPhase:
		return withVolume(tone(146.83, 300*time.Millisecond, WaveSaw, rate), 0.35)
	case CueBossHit:
		return withVolume(NewEnvelope(NewOscillator(0, 120*time.Millisecond, WaveNoise, rate),
			120*time.Millisecond, time.Millisecond, 100*time.Millisecond, rate), 0.5)
	case CueBossDefeated:
		return withVolume(arpeggio([]float64{392, 523.25, 659.25, 783.99, 1046.5}, 90*time.Millisecond, WaveSquare, rate), 0.4)
	case CueExplosion:
		noise := NewEnvelope(NewOscillator(0, 600*time.Millisecond, WaveNoise, rate),
			600*time.Millisecond, 2*time.Millisecond, 550*time.Millisecond, rate)
		rumble := NewEnvelope(NewSweep(120, 40, 600*time.Millisecond, rate),
			600*time.Millisecond, 2*time.Millisecond, 500*time.Millisecond, rate)
		return beep.Mix(withVolume(noise, 0.5), withVolume(rumble, 0.5))
	case CueGameOver:
		return withVolume(arpeggio([]float64{392, 329.63, 261.63}, 180*time.Millisecond, WaveSine, rate), 0.5)
	case CueVictory:
		return withVolume(arpeggio([]float64{523.25, 659.25, 783.99, 1046.5, 1318.51}, 120*time.Millisecond, WaveSine, rate), 0.5)
	}
	return nil
}
