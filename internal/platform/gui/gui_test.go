package gui

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/games/sliceit"
)

func TestParseHex(t *testing.T) {
	c, err := parseHex("#8B4513")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x8B, G: 0x45, B: 0x13, A: 255}, c)

	c, err = parseHex("00ffff")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, B: 255, A: 255}, c)

	for _, bad := range []string{"", "#123", "#GGGGGG", "#1234567"} {
		_, err := parseHex(bad)
		assert.Error(t, err, bad)
	}
}

func TestEveryKindGlowParses(t *testing.T) {
	for _, k := range spriteKinds {
		_, err := parseHex(k.Glow())
		assert.NoError(t, err, k.String())
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 50, A: 255}
	assert.Equal(t, c, fade(c, 1))
	assert.Equal(t, color.RGBA{}, fade(c, 0))
	assert.Equal(t, color.RGBA{R: 100, G: 50, B: 25, A: 127}, fade(c, 0.5))
}

func TestRGBAFallsBackToDefault(t *testing.T) {
	assert.Equal(t, palette[core.ColorDefault], rgba(core.Color(200)))
	assert.Equal(t, palette[core.ColorGold], rgba(core.ColorGold))
}

func TestShapes(t *testing.T) {
	for _, k := range spriteKinds {
		assert.NotEqual(t, shapeNone, shapeOf(k), k.String())
	}
	assert.Equal(t, shapeNone, shapeOf(sliceit.KindBoss))
	assert.Equal(t, shapeBook, shapeOf(sliceit.KindGoldenBook))
	assert.Equal(t, shapeToken, shapeOf(sliceit.KindFreeze))
}

func TestPointerTracker(t *testing.T) {
	var p pointerTracker
	at := time.Unix(0, 0)

	assert.Empty(t, p.update(false, 10, 10, at))

	got := p.update(true, 10, 20, at)
	require.Len(t, got, 1)
	assert.Equal(t, core.PointerDown, got[0].Phase)
	assert.Equal(t, core.Vec{X: 10, Y: 20}, got[0].Pos())

	assert.Empty(t, p.update(true, 10, 20, at), "no move without motion")

	got = p.update(true, 50, 60, at)
	require.Len(t, got, 1)
	assert.Equal(t, core.PointerMove, got[0].Phase)

	got = p.update(false, 0, 0, at)
	require.Len(t, got, 1)
	assert.Equal(t, core.PointerUp, got[0].Phase)
	assert.Equal(t, core.Vec{X: 50, Y: 60}, got[0].Pos(), "release reports the last drag point")

	assert.Empty(t, p.update(false, 0, 0, at))
}

func TestPointerTrackerReset(t *testing.T) {
	var p pointerTracker
	at := time.Unix(0, 0)
	p.update(true, 1, 1, at)
	p.reset()

	assert.Empty(t, p.update(false, 1, 1, at))
	got := p.update(true, 2, 2, at)
	require.Len(t, got, 1)
	assert.Equal(t, core.PointerDown, got[0].Phase)
}

func TestHUDLines(t *testing.T) {
	left, right := hudLines(sliceit.Snapshot{
		Mode:  sliceit.ModeClassic,
		Score: 120,
		Combo: 3,
		Lives: 2,
		Level: 4,
	})
	assert.Equal(t, "Score: 120  Combo: x3  Lives: 2", left)
	assert.Equal(t, "Lv 4", right)

	left, right = hudLines(sliceit.Snapshot{
		Mode:     sliceit.ModeArcade,
		Lives:    config.UnlimitedLives,
		Level:    1,
		TimeLeft: 61 * time.Second,
		PowerUps: []sliceit.PowerUpView{
			{Type: sliceit.PowerUpFreeze, Remaining: 1500 * time.Millisecond, Timed: true},
			{Type: sliceit.PowerUpBombShield},
		},
	})
	assert.Contains(t, left, "Lives: inf")
	assert.Equal(t, "FREEZE 1.5s  SHIELD  1:01  Lv 1", right)
}
