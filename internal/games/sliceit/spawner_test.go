package sliceit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sliceit/internal/config"
)

func TestPickFallsBackToLastCandidate(t *testing.T) {
	cfg := config.DefaultSliceConfig()
	// A draw of 1.0 lands exactly on the total weight, past every bucket.
	s := NewSpawner(fixedRandom{1.0}, cfg.Spawn, cfg.Field)

	candidates := []Kind{KindBook, KindLightBulb, KindBomb}
	assert.Equal(t, KindBomb, s.Pick(candidates))
}

func TestPickWalksCumulativeWeights(t *testing.T) {
	cfg := config.DefaultSliceConfig()
	candidates := []Kind{KindBook, KindLightBulb, KindCoffeeMug} // 30, 25, 20

	tests := []struct {
		draw float64
		want Kind
	}{
		{0.0, KindBook},
		{29.9 / 75, KindBook},
		{30.1 / 75, KindLightBulb},
		{55.1 / 75, KindCoffeeMug},
	}

	for _, tc := range tests {
		s := NewSpawner(fixedRandom{tc.draw}, cfg.Spawn, cfg.Field)
		assert.Equal(t, tc.want, s.Pick(candidates), "draw %v", tc.draw)
	}
}

func TestCandidatesFollowMode(t *testing.T) {
	cfg := config.DefaultSliceConfig()

	// Draw 0 passes every chance roll.
	s := NewSpawner(fixedRandom{0}, cfg.Spawn, cfg.Field)
	classic := s.Candidates(cfg.Mode("classic"))
	assert.Contains(t, classic, KindBomb)
	assert.Contains(t, classic, KindGoldenCoffeeMug)
	assert.Contains(t, classic, KindFreeze)
	assert.Len(t, classic, 12)

	zen := s.Candidates(cfg.Mode("zen"))
	assert.NotContains(t, zen, KindBomb)

	// Draw 0.5 fails both chance rolls.
	s = NewSpawner(fixedRandom{0.5}, cfg.Spawn, cfg.Field)
	assert.Equal(t, plainKinds, s.Candidates(cfg.Mode("zen")))
}

func TestSpawnPlacesEntityAboveField(t *testing.T) {
	cfg := config.DefaultSliceConfig()
	s := NewSpawner(fixedRandom{0.5}, cfg.Spawn, cfg.Field)

	e := s.Spawn(KindGoldenBook, 3)
	require.NotNil(t, e)
	assert.Equal(t, -70.0, e.Y)
	assert.Equal(t, 70.0, e.W)
	assert.GreaterOrEqual(t, e.X, 0.0)
	assert.Less(t, e.X, cfg.Field.Width-e.W)
	assert.Equal(t, 3.0, e.Speed)
	assert.Equal(t, 25, e.Points)
	assert.Equal(t, 1.0, e.Alpha)
	assert.False(t, e.Sliced)

	other := s.Spawn(KindBook, 1)
	assert.NotEqual(t, e.ID, other.ID)
}
