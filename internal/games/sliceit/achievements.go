package sliceit

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sliceit/internal/registry"
)

// RunStats is the run data achievement predicates look at.
type RunStats struct {
	Mode           string
	Score          int
	Combo          int
	Level          int
	ObjectsSliced  int
	ShieldsUsed    int
	GoldenKinds    map[Kind]bool
	RecentSlices   []time.Duration
	Elapsed        time.Duration
	BossesDefeated int
}

// slicesWithin counts recent slices no older than window.
func (s RunStats) slicesWithin(window time.Duration) int {
	n := 0
	for _, t := range s.RecentSlices {
		if s.Elapsed-t <= window {
			n++
		}
	}
	return n
}

// Achievement is a persistent, one-time unlock.
type Achievement struct {
	ID          string
	Name        string
	Description string

	check func(RunStats) bool // nil for the meta achievement
}

const (
	speedDemonWindow = 5 * time.Second
	zenMasterTime    = 5 * time.Minute
)

var achievementDefs = []Achievement{
	{"firstSlice", "First Slice", "Slice your first object", func(s RunStats) bool {
		return s.ObjectsSliced >= 1
	}},
	{"comboMaster", "Combo Master", "Reach a 15x combo", func(s RunStats) bool {
		return s.Combo >= 15
	}},
	{"centuryClub", "Century Club", "Score 100 points", func(s RunStats) bool {
		return s.Score >= 100
	}},
	{"bombSquad", "Bomb Squad", "Block 3 bombs with a shield in one run", func(s RunStats) bool {
		return s.ShieldsUsed >= 3
	}},
	{"speedDemon", "Speed Demon", "Slice 10 objects within 5 seconds", func(s RunStats) bool {
		return s.slicesWithin(speedDemonWindow) >= 10
	}},
	{"goldenTouch", "Golden Touch", "Slice every golden object in one run", func(s RunStats) bool {
		for _, k := range goldenKinds {
			if !s.GoldenKinds[k] {
				return false
			}
		}
		return true
	}},
	{"zenMaster", "Zen Master", "Play Zen mode for 5 minutes", func(s RunStats) bool {
		return s.Mode == ModeZen && s.Elapsed >= zenMasterTime
	}},
	{"arcadeChampion", "Arcade Champion", "Score 500 points in Arcade mode", func(s RunStats) bool {
		return s.Mode == ModeArcade && s.Score >= 500
	}},
	{"bossSlayer", "Boss Slayer", "Defeat a boss", func(s RunStats) bool {
		return s.BossesDefeated >= 1
	}},
	{"grandMaster", "Grand Master", "Unlock every other achievement", nil},
}

// Definitions returns every achievement in display order.
func Definitions() []Achievement {
	out := make([]Achievement, len(achievementDefs))
	copy(out, achievementDefs)
	return out
}

// Achievements keeps the unlocked set and persists new unlocks.
type Achievements struct {
	unlocked map[string]bool
	store    registry.AchievementStore
	log      *log.Logger
}

// NewAchievements creates a tracker with nothing unlocked.
func NewAchievements(logger *log.Logger) *Achievements {
	return &Achievements{
		unlocked: make(map[string]bool),
		log:      logger,
	}
}

// Attach loads unlocked ids from store and persists future unlocks to it.
func (a *Achievements) Attach(store registry.AchievementStore) {
	a.store = store
	if store == nil {
		return
	}
	ids, err := store.UnlockedAchievements()
	if err != nil {
		a.log.Warn("failed to load achievements", "err", err)
		return
	}
	for _, id := range ids {
		a.unlocked[id] = true
	}
}

// Unlocked reports whether id is unlocked.
func (a *Achievements) Unlocked(id string) bool {
	return a.unlocked[id]
}

// Count returns the number of unlocked achievements.
func (a *Achievements) Count() int {
	return len(a.unlocked)
}

// Evaluate unlocks every locked achievement whose predicate holds.
// It returns the new unlocks, including the meta achievement if it followed.
func (a *Achievements) Evaluate(stats RunStats) []Achievement {
	var out []Achievement
	for _, def := range achievementDefs {
		if def.check == nil || a.unlocked[def.ID] || !def.check(stats) {
			continue
		}
		out = append(out, a.unlock(def)...)
	}
	return out
}

// Unlock unlocks id directly. Unknown or already unlocked ids are ignored.
func (a *Achievements) Unlock(id string) []Achievement {
	if a.unlocked[id] {
		return nil
	}
	for _, def := range achievementDefs {
		if def.ID == id {
			return a.unlock(def)
		}
	}
	return nil
}

func (a *Achievements) unlock(def Achievement) []Achievement {
	a.unlocked[def.ID] = true
	a.persist(def.ID)
	out := []Achievement{def}

	for _, meta := range achievementDefs {
		if meta.check != nil || a.unlocked[meta.ID] || !a.othersUnlocked(meta.ID) {
			continue
		}
		a.unlocked[meta.ID] = true
		a.persist(meta.ID)
		out = append(out, meta)
	}
	return out
}

// othersUnlocked reports whether every achievement except skip is unlocked.
func (a *Achievements) othersUnlocked(skip string) bool {
	for _, def := range achievementDefs {
		if def.ID != skip && !a.unlocked[def.ID] {
			return false
		}
	}
	return true
}

func (a *Achievements) persist(id string) {
	if a.store == nil {
		return
	}
	if err := a.store.UnlockAchievement(id); err != nil {
		a.log.Error("failed to save achievement", "id", id, "err", err)
	}
}
