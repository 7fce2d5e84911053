// Package sliceit implements the slicing arcade simulation: falling objects,
// pointer slicing, combos, power-ups, bosses and achievements. It renders to
// a core.Screen and exposes a Snapshot for graphical frontends.
package sliceit

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/registry"
)

// Mode identifiers, also used as game and score ids.
const (
	ModeClassic = "classic"
	ModeZen     = "zen"
	ModeArcade  = "arcade"
	ModeBoss    = "boss"
)

// EndReason explains why a run ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndLivesExhausted
	EndTimeUp
	EndBombSliced
	EndBossesCleared
)

// String returns the reason name stored with run records.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndLivesExhausted:
		return "lives_exhausted"
	case EndTimeUp:
		return "time_up"
	case EndBombSliced:
		return "bomb_sliced"
	case EndBossesCleared:
		return "bosses_cleared"
	default:
		return "unknown"
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// particleLevel and trailEnabled come from player settings.
var (
	particleLevel string
	trailEnabled  = true
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetEffects applies the player's visual preferences to runs started afterwards.
func SetEffects(particles string, trail bool) {
	particleLevel = particles
	trailEnabled = trail
}

// runState is the per-run scoring state.
type runState struct {
	score          int
	combo          int
	maxCombo       int
	lives          int
	level          int
	xp             float64
	objectsSliced  int
	shieldsUsed    int
	bossesDefeated int
	golden         map[Kind]bool
	recentSlices   []time.Duration
	over           bool
	victory        bool
	reason         EndReason
}

// Game implements one slicing mode.
type Game struct {
	modeID string
	mode   config.ModeConfig
	cfg    config.SliceConfig
	custom *config.SliceConfig // Overrides file loading when set

	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	rng        *core.SimpleRNG
	spawner    *Spawner
	powerups   *PowerUps
	effects    *Effects
	sched      Scheduler
	ach        *Achievements
	blade      blade

	entities  []*Entity
	boss      *Boss
	bossIndex int

	run        runState
	paused     bool
	now        time.Duration
	frameStep  time.Duration
	frameScale float64
	nextCheck  time.Duration
	events     []core.Event

	viewW, viewH int
	missingGlyph map[Kind]bool
	log          *log.Logger
}

// New creates a game for a mode id.
func New(modeID string) *Game {
	cfg := config.DefaultSliceConfig()
	logger := log.Default().WithPrefix("sliceit")
	return &Game{
		modeID:       modeID,
		mode:         cfg.Mode(modeID),
		cfg:          cfg,
		ach:          NewAchievements(logger),
		missingGlyph: make(map[Kind]bool),
		log:          logger,
	}
}

// NewWithConfig creates a game that always runs with cfg instead of loading files.
func NewWithConfig(modeID string, cfg config.SliceConfig) *Game {
	g := New(modeID)
	g.custom = &cfg
	g.cfg = cfg
	g.mode = cfg.Mode(modeID)
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.modeID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.mode.Title
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.mode = g.cfg.Mode(g.modeID)

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.frameStep = time.Second / time.Duration(tickRate)
	g.frameScale = 60 / float64(tickRate)

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = core.NewSimpleRNG(seed)
	g.spawner = NewSpawner(g.rng, g.cfg.Spawn, g.cfg.Field)
	if g.powerups == nil {
		g.powerups = NewPowerUps(g.cfg)
		g.effects = newEffects(g.cfg, trailEnabled, core.NewSimpleRNG(seed+1))
	} else {
		g.powerups.Reset(g.cfg)
		g.effects.reset(g.cfg, trailEnabled, core.NewSimpleRNG(seed+1))
	}
	g.sched.Cancel()
	g.blade = blade{}

	g.entities = g.entities[:0]
	g.boss = nil
	g.bossIndex = 0
	g.paused = false
	g.now = 0
	g.nextCheck = time.Second
	g.events = nil
	g.run = runState{
		combo:    1,
		maxCombo: 1,
		lives:    g.mode.Lives,
		level:    1,
		golden:   make(map[Kind]bool),
	}

	if g.mode.Boss {
		g.startBoss(0)
	}
}

func (g *Game) loadConfig() config.SliceConfig {
	if g.custom != nil {
		return *g.custom
	}

	cfg, err := config.LoadSlice(configPath)
	if err != nil {
		g.log.Warn("using default config", "err", err)
		cfg = config.DefaultSliceConfig()
	}
	if difficultyPreset != "" {
		config.ApplySlicePreset(&cfg, difficultyPreset)
	}
	if particleLevel != "" {
		cfg.Effects.ParticleLevel = particleLevel
	}
	return cfg
}

// AttachAchievements loads and persists achievements through store.
func (g *Game) AttachAchievements(store registry.AchievementStore) {
	g.ach.Attach(store)
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	if in.Has(core.ActionRestart) && g.run.over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.run.over {
		g.paused = !g.paused
	}

	if g.paused || g.run.over {
		return core.StepResult{State: g.State()}
	}

	g.now += g.frameStep

	g.expirePowerUps()
	g.sched.RunDue(g.now)

	if !g.run.over {
		g.trySpawn()
		g.updateBoss()
		g.processPointer(in.Pointer)
	}
	if !g.run.over {
		g.updateEntities()
	}
	g.effects.update(g.frameScale, g.now)

	if !g.run.over {
		g.checkClock()
	}
	if !g.run.over && g.now >= g.nextCheck {
		g.nextCheck += time.Second
		g.evaluateAchievements()
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.run.score,
		GameOver: g.run.over,
		Victory:  g.run.victory,
		Paused:   g.paused,
	}
}

// Summary returns the figures recorded for a finished run.
func (g *Game) Summary() registry.RunSummary {
	return registry.RunSummary{
		Mode:          g.modeID,
		Score:         g.run.score,
		MaxCombo:      g.run.maxCombo,
		ObjectsSliced: g.run.objectsSliced,
		Level:         g.run.level,
		Duration:      g.now,
		EndReason:     g.run.reason.String(),
	}
}

func (g *Game) emit(kind core.EventKind, label string, x, y float64) {
	g.events = append(g.events, core.Event{Kind: kind, Label: label, X: x, Y: y})
}

// endRun finishes the run and drops any pending scripted work.
func (g *Game) endRun(reason EndReason) {
	if g.run.over {
		return
	}
	g.run.over = true
	g.run.reason = reason
	g.run.victory = reason == EndBossesCleared
	g.sched.Cancel()
	g.blade = blade{}
	g.emit(core.EventGameOver, reason.String(), 0, 0)
	g.log.Debug("run ended", "mode", g.modeID, "reason", reason, "score", g.run.score)
}

func (g *Game) expirePowerUps() {
	for _, t := range g.powerups.Expire(g.now) {
		g.emit(core.EventPowerUpExpired, t.String(), 0, 0)
	}
}

func (g *Game) checkClock() {
	if g.mode.TimeLimit > 0 && g.now >= g.mode.TimeLimit {
		g.endRun(EndTimeUp)
	}
}

func (g *Game) stats() RunStats {
	return RunStats{
		Mode:           g.modeID,
		Score:          g.run.score,
		Combo:          g.run.combo,
		Level:          g.run.level,
		ObjectsSliced:  g.run.objectsSliced,
		ShieldsUsed:    g.run.shieldsUsed,
		GoldenKinds:    g.run.golden,
		RecentSlices:   g.run.recentSlices,
		Elapsed:        g.now,
		BossesDefeated: g.run.bossesDefeated,
	}
}

func (g *Game) evaluateAchievements() {
	g.announce(g.ach.Evaluate(g.stats()))
}

func (g *Game) unlockAchievement(id string) {
	g.announce(g.ach.Unlock(id))
}

func (g *Game) announce(unlocked []Achievement) {
	for _, a := range unlocked {
		g.emit(core.EventAchievement, a.ID, 0, 0)
		g.effects.text(g.cfg.Field.Width/2, g.cfg.Field.Height/3, "Achievement: "+a.Name, core.ColorGold)
		g.log.Info("achievement unlocked", "id", a.ID)
	}
}

func init() {
	for _, id := range []string{ModeClassic, ModeZen, ModeArcade, ModeBoss} {
		registry.Register(id, func() registry.Game {
			return New(id)
		})
	}
}
