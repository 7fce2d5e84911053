package sliceit

import (
	"errors"
	"testing"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// fixedRandom always draws the same value.
type fixedRandom struct{ v float64 }

func (f fixedRandom) Float64() float64             { return f.v }
func (f fixedRandom) Range(lo, hi float64) float64 { return lo + f.v*(hi-lo) }

// quietConfig disables random spawning so tests place every entity.
func quietConfig() config.SliceConfig {
	cfg := config.DefaultSliceConfig()
	cfg.Spawn.BaseRate = 0
	cfg.Spawn.LevelRate = 0
	return cfg
}

func newTestGame(t *testing.T, mode string) *Game {
	t.Helper()
	g := NewWithConfig(mode, quietConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

// addEntity places a motionless entity of kind with its top-left at (x, y).
func addEntity(g *Game, kind Kind, x, y float64) *Entity {
	size := kind.Size()
	e := g.spawner.place(kind, core.Box{X: x, Y: y, W: size, H: size})
	g.entities = append(g.entities, e)
	return e
}

// swipeThrough builds a frame whose drag ends at p.
func swipeThrough(p core.Vec) core.InputFrame {
	in := core.NewInputFrame()
	in.AddPointer(core.PointerSample{Phase: core.PointerDown, X: p.X, Y: p.Y - 15})
	in.AddPointer(core.PointerSample{Phase: core.PointerMove, X: p.X, Y: p.Y})
	in.AddPointer(core.PointerSample{Phase: core.PointerUp, X: p.X, Y: p.Y})
	return in
}

func eventsOf(events []core.Event, kind core.EventKind) []core.Event {
	var out []core.Event
	for _, e := range events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// memoryStore is an in-memory achievement store.
type memoryStore struct {
	ids     []string
	loadErr error
	saveErr error
}

func (m *memoryStore) UnlockedAchievements() ([]string, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]string(nil), m.ids...), nil
}

func (m *memoryStore) UnlockAchievement(id string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	for _, existing := range m.ids {
		if existing == id {
			return nil
		}
	}
	m.ids = append(m.ids, id)
	return nil
}

var errStoreDown = errors.New("store unavailable")
