package sliceit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/sliceit/internal/core"
)

func TestScreenToWorldMatchesRenderLayout(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	v := newViewport(80, 24, g.cfg.Field.Width, g.cfg.Field.Height)
	for _, cell := range [][2]int{{0, 1}, {40, 12}, {79, 22}} {
		x, y := g.ScreenToWorld(cell[0], cell[1])
		col, row := v.cell(x, y)
		assert.Equal(t, cell[0], col, "column round trip for %v", cell)
		assert.Equal(t, cell[1], row, "row round trip for %v", cell)
	}
}

func TestScreenToWorldBeforeFirstRender(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	x, y := g.ScreenToWorld(40, 12)
	assert.InDelta(t, 405, x, 1e-9)
	assert.Greater(t, y, 0.0)
	assert.Less(t, y, g.cfg.Field.Height)
}

func TestRenderDrawsEntitiesAndHUD(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	addEntity(g, KindBook, 400, 300)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	assert.Contains(t, screen.Row(0), "Score: 0")
	assert.Contains(t, screen.Row(0), "♥♥♥")
	assert.Contains(t, screen.String(), string(KindBook.Glyph()))
}

func TestRenderCullsEntitiesAboveField(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	e := addEntity(g, KindBook, 400, -3*KindBook.Size())
	screen := core.NewScreen(80, 24)
	v := newViewport(80, 24, g.cfg.Field.Width, g.cfg.Field.Height)

	assert.False(t, v.rect(e.Box()).Intersects(v.area()))
	g.Render(screen)
	assert.NotContains(t, screen.String(), string(KindBook.Glyph()))
}

func TestRenderSkipsKindsWithoutGlyph(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	e := addEntity(g, KindBoss, 100, 100)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	g.Render(screen)

	assert.True(t, g.missingGlyph[KindBoss])
	// Still simulated.
	e.Speed = 1
	g.Step(core.NewInputFrame())
	assert.InDelta(t, 101, e.Y, 1e-9)
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	screen := core.NewScreen(20, 6)

	g.Render(screen)

	assert.True(t, strings.Contains(screen.String(), "Window too small"))
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, ModeClassic)
	g.endRun(EndBombSliced)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "GAME OVER")
	assert.Contains(t, out, "You sliced a bomb")
}

func TestRenderBossFooter(t *testing.T) {
	g := newTestGame(t, ModeBoss)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	assert.Contains(t, screen.Row(23), "Paper Shredder")
	assert.Contains(t, screen.Row(23), "ATTACKING")
}
