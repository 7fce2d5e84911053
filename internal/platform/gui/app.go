// Package gui is the desktop frontend. It draws game snapshots with
// Ebitengine vector graphics and feeds mouse or touch drags back in.
package gui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/sliceit/internal/audio"
	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
	"github.com/vovakirdan/sliceit/internal/games/sliceit"
	"github.com/vovakirdan/sliceit/internal/storage"
)

// Options configures a desktop session. Store, Audio and Log may be nil.
type Options struct {
	Store    *storage.Store
	Audio    *audio.SoundManager
	Player   string
	Log      *log.Logger
	TickRate int
	Seed     int64
	Scale    float64 // Window size relative to the field
}

// App implements ebiten.Game for one mode.
type App struct {
	game    *sliceit.Game
	opts    Options
	log     *log.Logger
	sprites *spriteSet
	pointer pointerTracker
	input   core.InputFrame
	state   core.GameState
	runtime core.RuntimeConfig

	recorded bool
	rank     int
}

var _ ebiten.Game = (*App)(nil)

// NewApp creates the frontend for a game.
func NewApp(game *sliceit.Game, opts Options) *App {
	logger := opts.Log
	if logger == nil {
		logger = log.Default()
	}
	if opts.TickRate <= 0 {
		opts.TickRate = ebiten.DefaultTPS
	}
	if opts.Player == "" {
		opts.Player = "player"
	}
	if opts.Store != nil {
		game.AttachAchievements(opts.Store)
	}
	a := &App{
		game:  game,
		opts:  opts,
		log:   logger.With("frontend", "gui"),
		input: core.NewInputFrame(),
	}
	a.start()
	return a
}

// start begins a fresh run. The first call also fixes the logical
// screen at the configured field size.
func (a *App) start() {
	if a.runtime.ScreenW == 0 {
		a.game.Reset(core.RuntimeConfig{TickRate: a.opts.TickRate, Seed: a.opts.Seed})
		snap := a.game.Snapshot()
		a.runtime = core.RuntimeConfig{
			ScreenW:  int(snap.FieldW),
			ScreenH:  int(snap.FieldH),
			TickRate: a.opts.TickRate,
			Seed:     a.opts.Seed,
		}
	}
	a.game.Reset(a.runtime)
	a.pointer.reset()
	a.input.Clear()
	a.state = a.game.State()
	a.recorded = false
	a.rank = 0
}

// Update advances the game by one tick.
func (a *App) Update() error {
	if a.sprites == nil {
		a.sprites = newSpriteSet(a.log)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		(inpututil.IsKeyJustPressed(ebiten.KeyEscape) && (a.state.GameOver || a.state.Paused)) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && a.state.GameOver {
		a.start()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.input.Set(core.ActionPause)
	}

	pressed, x, y := pointerState()
	for _, s := range a.pointer.update(pressed, x, y, time.Now()) {
		a.input.AddPointer(s)
	}

	result := a.game.Step(a.input)
	a.input.Clear()
	a.state = result.State
	if a.opts.Audio != nil {
		a.opts.Audio.Handle(result.Events)
	}

	if a.state.GameOver && !a.recorded {
		a.record()
	}
	return nil
}

// record stores the finished run and, when it qualifies, the high score
// under the configured player name.
func (a *App) record() {
	a.recorded = true
	store := a.opts.Store
	if store == nil {
		return
	}
	if _, err := store.SaveRun(storage.RunFromSummary(a.game.ID(), a.opts.Player, a.game.Summary())); err != nil {
		a.log.Warn("could not save run", "err", err)
	}
	if a.state.Score <= 0 {
		return
	}
	rank, err := store.SaveScore(a.game.ID(), a.opts.Player, a.state.Score)
	if err != nil {
		a.log.Warn("could not save score", "err", err)
		return
	}
	a.rank = rank
}

// Layout keeps the logical screen at field size, so cursor positions
// are already in world units.
func (a *App) Layout(_, _ int) (int, int) {
	return a.runtime.ScreenW, a.runtime.ScreenH
}

// Draw renders the current snapshot.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if a.sprites == nil {
		return
	}

	s := a.game.Snapshot()
	ox, oy := float32(s.ShakeX), float32(s.ShakeY)

	for _, b := range s.Beams {
		vector.DrawFilledRect(screen, float32(b.X)-4+ox, 0, 8, float32(s.FieldH), fade(colorBeam, b.Life*0.7), false)
	}
	a.drawEntities(screen, s, ox, oy)
	drawBoss(screen, s.Boss, ox, oy)

	for _, p := range s.Particles {
		vector.DrawFilledCircle(screen, float32(p.X)+ox, float32(p.Y)+oy, 3, fade(rgba(p.Color), p.Life), true)
	}
	drawTrail(screen, s)
	for _, t := range s.Texts {
		ebitenutil.DebugPrintAt(screen, t.Text, int(t.X)-len(t.Text)*3, int(t.Y))
	}

	drawHUD(screen, s)
	a.drawOverlay(screen, s)
}

func (a *App) drawEntities(screen *ebiten.Image, s sliceit.Snapshot, ox, oy float32) {
	for _, e := range s.Entities {
		img, ok := a.sprites.get(e.Kind)
		if !ok {
			continue
		}
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(e.Box.W/float64(w), e.Box.H/float64(h))
		op.GeoM.Rotate(e.Rotation)
		c := e.Box.Center()
		op.GeoM.Translate(c.X+float64(ox), c.Y+float64(oy))
		op.ColorScale.ScaleAlpha(float32(e.Alpha))
		screen.DrawImage(img, op)
	}
}

func drawBoss(screen *ebiten.Image, b *sliceit.BossView, ox, oy float32) {
	if b == nil {
		return
	}
	x, y := float32(b.Box.X)+ox, float32(b.Box.Y)+oy
	w, h := float32(b.Box.W), float32(b.Box.H)
	body := rgba(b.Color)
	if b.Phase == sliceit.BossVulnerable {
		body = rgba(core.ColorBrightYellow)
	}
	vector.DrawFilledRect(screen, x, y, w, h, fade(body, 0.85), true)
	vector.StrokeRect(screen, x, y, w, h, 3, colorHUD, true)
	ebitenutil.DebugPrintAt(screen, b.Name, int(x)+4, int(y)+4)

	const barH = 8
	vector.DrawFilledRect(screen, x, y-barH-4, w, barH, colorHealthBack, false)
	if b.MaxHealth > 0 {
		frac := float32(b.Health) / float32(b.MaxHealth)
		vector.DrawFilledRect(screen, x, y-barH-4, w*frac, barH, colorHealth, false)
	}
}

func drawTrail(screen *ebiten.Image, s sliceit.Snapshot) {
	n := len(s.Trail)
	for i := 1; i < n; i++ {
		p0, p1 := s.Trail[i-1], s.Trail[i]
		alpha := float64(i) / float64(n)
		width := float32(1 + 4*alpha)
		vector.StrokeLine(screen, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), width, fade(colorTrail, alpha), true)
	}
}

// hudLines returns the left and right HUD text for a snapshot.
func hudLines(s sliceit.Snapshot) (string, string) {
	var lives string
	switch {
	case s.Lives == config.UnlimitedLives:
		lives = "Lives: inf"
	default:
		lives = fmt.Sprintf("Lives: %d", max(0, s.Lives))
	}
	left := fmt.Sprintf("Score: %d  Combo: x%d  %s", s.Score, s.Combo, lives)

	right := fmt.Sprintf("Lv %d", s.Level)
	if s.Levels {
		right = fmt.Sprintf("Lv %d %d%%", s.Level, int(100*s.XP/math.Max(1, s.XPNeeded)))
	}
	if s.TimeLeft > 0 || s.Mode == sliceit.ModeArcade {
		right = sliceit.FormatClock(s.TimeLeft) + "  " + right
	}

	var ups []string
	for _, p := range s.PowerUps {
		text := p.Type.Label()
		if p.Timed {
			text += fmt.Sprintf(" %.1fs", p.Remaining.Seconds())
		}
		ups = append(ups, text)
	}
	if len(ups) > 0 {
		right = strings.Join(ups, "  ") + "  " + right
	}
	return left, right
}

func drawHUD(screen *ebiten.Image, s sliceit.Snapshot) {
	left, right := hudLines(s)
	ebitenutil.DebugPrintAt(screen, left, 8, 6)
	ebitenutil.DebugPrintAt(screen, right, int(s.FieldW)-8-len(right)*6, 6)
}

func (a *App) drawOverlay(screen *ebiten.Image, s sliceit.Snapshot) {
	var lines []string
	switch {
	case s.GameOver && s.Victory:
		lines = []string{"VICTORY!", fmt.Sprintf("All bosses cleared  |  Score: %d", s.Score)}
	case s.GameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("%s  |  Score: %d  |  Max combo: x%d",
			s.EndReason.Message(), s.Score, s.MaxCombo)}
	case s.Paused:
		lines = []string{"PAUSED", "Press P to resume"}
	default:
		return
	}
	if s.GameOver {
		if a.rank > 0 {
			lines = append(lines, fmt.Sprintf("New high score! Rank #%d", a.rank))
		}
		lines = append(lines, "R restart  Q quit")
	}

	w, h := float32(s.FieldW), float32(s.FieldH)
	vector.DrawFilledRect(screen, 0, 0, w, h, colorOverlay, false)
	y := int(h)/2 - len(lines)*10
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(w)/2-len(line)*3, y)
		y += 20
	}
}

// Run opens a window and plays the mode until the window closes or the
// player quits.
func Run(game *sliceit.Game, opts Options) error {
	app := NewApp(game, opts)
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	ebiten.SetWindowSize(int(float64(app.runtime.ScreenW)*scale), int(float64(app.runtime.ScreenH)*scale))
	ebiten.SetWindowTitle("Slice It - " + game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(app.opts.TickRate)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
