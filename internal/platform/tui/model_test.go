package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sliceit/internal/audio"
	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/registry"
	"github.com/vovakirdan/sliceit/internal/settings"
	"github.com/vovakirdan/sliceit/internal/storage"
)

// stubGame ends after endAt steps with a fixed score.
type stubGame struct {
	endAt    int
	score    int
	steps    int
	resets   int
	over     bool
	paused   bool
	pointers []core.PointerSample
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.over = false
	g.paused = false
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !g.over {
		g.paused = !g.paused
	}
	g.pointers = append(g.pointers, in.Pointer...)
	if g.paused || g.over {
		return core.StepResult{State: g.State()}
	}

	g.steps++
	var events []core.Event
	if g.steps >= g.endAt {
		g.over = true
		events = append(events, core.Event{Kind: core.EventGameOver, Label: "lives_exhausted"})
	}
	return core.StepResult{State: g.State(), Events: events}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	score := 0
	if g.over {
		score = g.score
	}
	return core.GameState{Score: score, GameOver: g.over, Paused: g.paused}
}

func (g *stubGame) ScreenToWorld(col, row int) (float64, float64) {
	return float64(col * 10), float64(row * 10)
}

func (g *stubGame) Summary() registry.RunSummary {
	return registry.RunSummary{
		Mode:      "stub",
		Score:     g.State().Score,
		MaxCombo:  3,
		Level:     2,
		Duration:  time.Duration(g.steps) * time.Second / 60,
		EndReason: "lives_exhausted",
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testServices(store *storage.Store) Services {
	return Services{Store: store, Player: "ann", Log: log.New(io.Discard)}
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newTestModel(g *stubGame, svc Services) GameModel {
	m := NewGameModel(g, svc, testConfig())
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T, expected GameModel", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return update(t, m, TickMsg{At: time.Now(), Loop: m.loop})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGameOverSavesRunAndPromptsForName(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 2, score: 50}
	m := newTestModel(g, testServices(store))

	m = tick(t, m)
	if m.phase != phasePlaying {
		t.Fatalf("phase = %v after first tick, expected playing", m.phase)
	}
	m = tick(t, m)
	if m.phase != phaseNameEntry {
		t.Fatalf("phase = %v after game over, expected name entry", m.phase)
	}

	runs, err := store.RecentRuns("stub", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, expected 1", len(runs))
	}
	if runs[0].Player != "ann" || runs[0].Score != 50 || runs[0].MaxCombo != 3 {
		t.Errorf("run = %+v, expected ann/50/3", runs[0])
	}

	if !strings.Contains(m.View(), "NEW HIGH SCORE!") {
		t.Error("View() should show the name prompt")
	}

	// Further ticks do not record the run again.
	m = tick(t, m)
	runs, _ = store.RecentRuns("stub", 10)
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d after extra tick, expected 1", len(runs))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseRecorded {
		t.Errorf("phase = %v after enter, expected recorded", m.phase)
	}
	if m.Rank() != 1 {
		t.Errorf("Rank() = %d, expected 1", m.Rank())
	}

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 1 || scores[0].Name != "ann" || scores[0].Score != 50 {
		t.Errorf("scores = %+v, expected ann/50", scores)
	}
	if !strings.Contains(m.View(), "Rank #1") {
		t.Error("View() should announce the rank")
	}
}

func TestNameEntryUsesTypedName(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 1, score: 70}
	m := newTestModel(g, testServices(store))

	m = tick(t, m)
	for range 3 {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m = update(t, m, runes("bob"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 1 || scores[0].Name != "bob" {
		t.Errorf("scores = %+v, expected one entry named bob", scores)
	}
}

func TestNameEntrySkip(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 1, score: 70}
	m := newTestModel(g, testServices(store))

	m = tick(t, m)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseRecorded {
		t.Errorf("phase = %v after esc, expected recorded", m.phase)
	}
	if m.BackToMenu() {
		t.Error("esc in the prompt should not leave the game")
	}

	scores, _ := store.TopScores("stub", 10)
	if len(scores) != 0 {
		t.Errorf("scores = %+v, expected none", scores)
	}
}

func TestZeroScoreSkipsPrompt(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 1, score: 0}
	m := newTestModel(g, testServices(store))

	m = tick(t, m)
	if m.phase != phaseRecorded {
		t.Errorf("phase = %v, expected recorded", m.phase)
	}
	runs, _ := store.RecentRuns("stub", 10)
	if len(runs) != 1 {
		t.Errorf("len(runs) = %d, expected 1", len(runs))
	}
}

func TestNoStoreStillFinishes(t *testing.T) {
	g := &stubGame{endAt: 1, score: 10}
	m := newTestModel(g, Services{Log: log.New(io.Discard)})

	m = tick(t, m)
	if m.phase != phaseRecorded {
		t.Errorf("phase = %v, expected recorded", m.phase)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	g := &stubGame{endAt: 100}
	m := newTestModel(g, testServices(nil))

	m = update(t, m, TickMsg{At: time.Now(), Loop: m.loop + 1000})
	if g.steps != 0 {
		t.Errorf("steps = %d after stale tick, expected 0", g.steps)
	}
	m = tick(t, m)
	if g.steps != 1 {
		t.Errorf("steps = %d, expected 1", g.steps)
	}
}

func TestMouseDragReachesGame(t *testing.T) {
	g := &stubGame{endAt: 100}
	m := newTestModel(g, testServices(nil))

	m = update(t, m, tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, tea.MouseMsg{X: 5, Y: 4, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m = tick(t, m)

	if len(g.pointers) != 2 {
		t.Fatalf("len(pointers) = %d, expected 2", len(g.pointers))
	}
	if g.pointers[0].Phase != core.PointerDown || g.pointers[0].X != 30 || g.pointers[0].Y != 40 {
		t.Errorf("pointers[0] = %+v, expected down at (30, 40)", g.pointers[0])
	}
	if g.pointers[1].Phase != core.PointerMove || g.pointers[1].X != 50 {
		t.Errorf("pointers[1] = %+v, expected move at x=50", g.pointers[1])
	}

	m = tick(t, m)
	if len(g.pointers) != 2 {
		t.Errorf("samples should be consumed once, got %d", len(g.pointers))
	}
}

func TestBackPausesThenLeaves(t *testing.T) {
	g := &stubGame{endAt: 100}
	m := newTestModel(g, testServices(nil))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = tick(t, m)
	if !g.paused {
		t.Fatal("back during play should pause")
	}
	if m.BackToMenu() {
		t.Fatal("back during play should not leave")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back while paused should leave")
	}
	if m.IsQuitting() {
		t.Error("leaving inside a session should not quit")
	}
}

func TestStandaloneBackQuits(t *testing.T) {
	g := &stubGame{endAt: 1}
	m := newTestModel(g, testServices(nil))
	m.standalone = true

	m = tick(t, m)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	gm := next.(GameModel)
	if !gm.IsQuitting() || cmd == nil {
		t.Error("back after game over in standalone mode should quit")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	store := openTestStore(t)
	g := &stubGame{endAt: 1, score: 5}
	m := newTestModel(g, testServices(store))

	// Restart is ignored while playing.
	m = update(t, m, runes("r"))
	m = tick(t, m)
	if g.resets != 1 {
		t.Fatalf("resets = %d, expected 1", g.resets)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = update(t, m, runes("r"))
	m = tick(t, m)
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2", g.resets)
	}
	if m.phase != phasePlaying || m.Rank() != 0 {
		t.Errorf("phase = %v rank = %d after restart, expected playing and 0", m.phase, m.Rank())
	}

	m = tick(t, m)
	runs, _ := store.RecentRuns("stub", 10)
	if len(runs) != 2 {
		t.Errorf("len(runs) = %d, expected 2", len(runs))
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColor(0, 0, "hi", core.ColorGold)
	s.DrawText(0, 1, "there")

	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen() = %q, expected both rows", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", strings.Count(out, "\n"))
	}
}

func TestVolumeKeysUpdateAudioAndSettings(t *testing.T) {
	prefs := settings.NewManager(nil, log.New(io.Discard))
	prefs.Update(func(s *settings.Settings) { s.Muted = true })

	svc := testServices(nil)
	svc.Audio = audio.NewSoundManager(0.5, log.New(io.Discard))
	svc.Settings = prefs
	m := newTestModel(&stubGame{endAt: 100}, svc)

	m = update(t, m, runes("+"))
	if got := svc.Audio.Volume(); got != 0.6 {
		t.Errorf("Volume() = %v after +, expected 0.6", got)
	}
	if got := prefs.Get(); got.SfxVolume != 0.6 || got.Muted {
		t.Errorf("settings = %+v, expected unmuted volume 0.6", got)
	}

	for range 10 {
		m = update(t, m, runes("-"))
	}
	if got := svc.Audio.Volume(); got != 0 {
		t.Errorf("Volume() = %v after lowering, expected 0", got)
	}
	if got := prefs.Get().SfxVolume; got != 0 {
		t.Errorf("saved volume = %v, expected 0", got)
	}
}

func TestVolumeKeysWithoutAudio(t *testing.T) {
	m := newTestModel(&stubGame{endAt: 100}, testServices(nil))
	m = update(t, m, runes("+"))
	if m.quitting {
		t.Error("+ without audio should be ignored")
	}
}
