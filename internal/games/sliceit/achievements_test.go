package sliceit

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sliceit/internal/core"
)

func newTestAchievements() *Achievements {
	return NewAchievements(log.New(io.Discard))
}

func ids(list []Achievement) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.ID)
	}
	return out
}

func TestAchievementPredicates(t *testing.T) {
	allGolden := map[Kind]bool{KindGoldenBook: true, KindGoldenLightBulb: true, KindGoldenCoffeeMug: true}
	tenRecent := make([]time.Duration, 10)
	for i := range tenRecent {
		tenRecent[i] = 10*time.Second + time.Duration(i)*400*time.Millisecond
	}

	tests := []struct {
		id    string
		stats RunStats
	}{
		{"firstSlice", RunStats{ObjectsSliced: 1}},
		{"comboMaster", RunStats{Combo: 15}},
		{"centuryClub", RunStats{Score: 100}},
		{"bombSquad", RunStats{ShieldsUsed: 3}},
		{"speedDemon", RunStats{RecentSlices: tenRecent, Elapsed: 14 * time.Second}},
		{"goldenTouch", RunStats{GoldenKinds: allGolden}},
		{"zenMaster", RunStats{Mode: ModeZen, Elapsed: 5 * time.Minute}},
		{"arcadeChampion", RunStats{Mode: ModeArcade, Score: 500}},
		{"bossSlayer", RunStats{BossesDefeated: 1}},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			a := newTestAchievements()
			assert.Contains(t, ids(a.Evaluate(tc.stats)), tc.id)
		})
	}
}

func TestAchievementPredicatesRejectNearMisses(t *testing.T) {
	a := newTestAchievements()
	twoGolden := map[Kind]bool{KindGoldenBook: true, KindGoldenLightBulb: true}
	spread := make([]time.Duration, 10)
	for i := range spread {
		spread[i] = time.Duration(i) * time.Second
	}

	got := a.Evaluate(RunStats{
		Mode:         ModeClassic,
		Score:        99,
		Combo:        14,
		ShieldsUsed:  2,
		GoldenKinds:  twoGolden,
		RecentSlices: spread,
		Elapsed:      10 * time.Minute,
	})
	assert.Empty(t, got)

	assert.NotContains(t, ids(a.Evaluate(RunStats{Mode: ModeClassic, Score: 600})), "arcadeChampion")
	assert.True(t, a.Unlocked("centuryClub"))
}

func TestComboMasterUnlocksOnce(t *testing.T) {
	g := newTestGame(t, ModeZen)

	var unlocks int
	for range 20 {
		book := addEntity(g, KindBook, 300, 200)
		res := g.Step(swipeThrough(book.Center()))
		for _, e := range eventsOf(res.Events, core.EventAchievement) {
			if e.Label == "comboMaster" {
				unlocks++
			}
		}
	}

	assert.Equal(t, 21, g.run.combo)
	assert.Equal(t, 1, unlocks)
}

func TestUnlockedAchievementsSurviveReset(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	book := addEntity(g, KindBook, 200, 200)
	g.Step(swipeThrough(book.Center()))
	require.True(t, g.ach.Unlocked("firstSlice"))

	g.Reset(g.runtime)

	assert.True(t, g.ach.Unlocked("firstSlice"))
	assert.Empty(t, g.ach.Evaluate(g.stats()))
	assert.True(t, g.ach.Unlocked("firstSlice"))
}

func TestAchievementsPersistThroughStore(t *testing.T) {
	store := &memoryStore{ids: []string{"centuryClub"}}
	a := newTestAchievements()
	a.Attach(store)

	assert.True(t, a.Unlocked("centuryClub"))
	assert.Equal(t, []string{"firstSlice"}, ids(a.Evaluate(RunStats{ObjectsSliced: 1, Score: 150})))
	assert.ElementsMatch(t, []string{"centuryClub", "firstSlice"}, store.ids)

	// A fresh tracker sees both.
	b := newTestAchievements()
	b.Attach(store)
	assert.Equal(t, 2, b.Count())
}

func TestStoreErrorsAreNotFatal(t *testing.T) {
	a := newTestAchievements()
	a.Attach(&memoryStore{loadErr: errStoreDown, saveErr: errStoreDown})

	got := a.Evaluate(RunStats{ObjectsSliced: 1})
	assert.Equal(t, []string{"firstSlice"}, ids(got))
	assert.True(t, a.Unlocked("firstSlice"))
}

func TestGrandMasterFollowsLastUnlock(t *testing.T) {
	var others []string
	for _, def := range Definitions() {
		if def.ID != "grandMaster" && def.ID != "bossSlayer" {
			others = append(others, def.ID)
		}
	}
	store := &memoryStore{ids: others}
	a := newTestAchievements()
	a.Attach(store)

	got := a.Unlock("bossSlayer")

	assert.Equal(t, []string{"bossSlayer", "grandMaster"}, ids(got))
	assert.Contains(t, store.ids, "grandMaster")
	assert.Empty(t, a.Unlock("bossSlayer"), "unlock is idempotent")
	assert.Empty(t, a.Unlock("noSuchAchievement"))
}
