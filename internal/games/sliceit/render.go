package sliceit

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// Minimum terminal size for a playable field.
const (
	minScreenW = 40
	minScreenH = 12
)

// Visual characters for rendering
const (
	debrisGlyph   = '╱'
	fadedGlyph    = '·'
	particleGlyph = '*'
	emberGlyph    = '.'
	beamGlyph     = '┃'
	trailGlyph    = '•'
	heartGlyph    = '♥'
)

// viewport maps world units onto the field rows of a terminal.
// Row 0 is the HUD and the last row is the footer.
type viewport struct {
	cols, rows int
	sx, sy     float64
	ox, oy     int // Shake offset in cells
}

func newViewport(w, h int, fieldW, fieldH float64) viewport {
	rows := h - 2
	return viewport{
		cols: w,
		rows: rows,
		sx:   float64(w) / fieldW,
		sy:   float64(rows) / fieldH,
	}
}

// cell converts a world point to a screen cell.
func (v viewport) cell(x, y float64) (int, int) {
	return int(math.Floor(x*v.sx)) + v.ox, 1 + int(math.Floor(y*v.sy)) + v.oy
}

// rect converts a world box to the screen cells it covers.
func (v viewport) rect(b core.Box) core.Rect {
	c0, r0 := v.cell(b.X, b.Y)
	c1 := int(math.Ceil(b.Right()*v.sx)) + v.ox
	r1 := 1 + int(math.Ceil(b.Bottom()*v.sy)) + v.oy
	return core.NewRect(c0, r0, max(1, c1-c0), max(1, r1-r0))
}

// area returns the screen cells of the play field.
func (v viewport) area() core.Rect {
	return core.NewRect(0, 1, v.cols, v.rows)
}

func (v viewport) inField(col, row int) bool {
	return col >= 0 && col < v.cols && row >= 1 && row <= v.rows
}

// set draws a cell only inside the field area.
func (v viewport) set(dst *core.Screen, col, row int, r rune, c core.Color) {
	if v.inField(col, row) {
		dst.SetColored(col, row, r, c)
	}
}

// ScreenToWorld converts a terminal cell to world coordinates using the
// layout of the last rendered frame.
func (g *Game) ScreenToWorld(col, row int) (float64, float64) {
	w, h := g.viewW, g.viewH
	if w <= 0 || h <= 0 {
		w, h = g.runtime.ScreenW, g.runtime.ScreenH
	}
	if w <= 0 || h <= 0 {
		def := core.DefaultConfig()
		w, h = def.ScreenW, def.ScreenH
	}
	rows := max(1, h-2)
	x := (float64(col) + 0.5) * g.cfg.Field.Width / float64(w)
	y := (float64(row-1) + 0.5) * g.cfg.Field.Height / float64(rows)
	return x, y
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	g.viewW, g.viewH = w, h

	if w < minScreenW || h < minScreenH {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(h/2-1, msg)
		dst.DrawTextCentered(h/2+1, hint)
		return
	}

	s := g.Snapshot()
	v := newViewport(w, h, s.FieldW, s.FieldH)
	v.ox = int(math.Round(s.ShakeX * v.sx))
	v.oy = int(math.Round(s.ShakeY * v.sy))

	g.renderBeams(dst, v, s)
	g.renderEntities(dst, v, s)
	g.renderBoss(dst, v, s)
	g.renderParticles(dst, v, s)
	g.renderTrail(dst, v, s)
	g.renderTexts(dst, v, s)
	g.renderHUD(dst, s)
	g.renderFooter(dst, s)
	g.renderOverlay(dst, s)
}

func (g *Game) renderEntities(dst *core.Screen, v viewport, s Snapshot) {
	for _, e := range s.Entities {
		glyph := e.Kind.Glyph()
		if glyph == 0 {
			if !g.missingGlyph[e.Kind] {
				g.missingGlyph[e.Kind] = true
				g.log.Warn("no glyph for kind, skipping draw", "kind", e.Kind)
			}
			continue
		}

		if e.Sliced {
			col, row := v.cell(e.Box.Center().X, e.Box.Center().Y)
			r := debrisGlyph
			if e.Alpha < 0.5 {
				r = fadedGlyph
			}
			v.set(dst, col, row, r, e.Kind.Color())
			continue
		}

		rect := v.rect(e.Box)
		if !rect.Intersects(v.area()) {
			continue
		}
		for y := rect.Y; y < rect.Bottom(); y++ {
			for x := rect.X; x < rect.Right(); x++ {
				v.set(dst, x, y, glyph, e.Kind.Color())
			}
		}
	}
}

func (g *Game) renderBoss(dst *core.Screen, v viewport, s Snapshot) {
	b := s.Boss
	if b == nil {
		return
	}
	rect := v.rect(b.Box)
	if rect.W < 2 || rect.H < 2 {
		return
	}

	c := b.Color
	if b.Phase == BossVulnerable {
		c = core.ColorBrightYellow
	}
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			onEdge := y == rect.Y || y == rect.Bottom()-1 || x == rect.X || x == rect.Right()-1
			if !onEdge {
				continue
			}
			r := '─'
			switch {
			case (x == rect.X || x == rect.Right()-1) && (y == rect.Y || y == rect.Bottom()-1):
				r = '+'
			case x == rect.X || x == rect.Right()-1:
				r = '│'
			}
			v.set(dst, x, y, r, c)
		}
	}

	name := b.Name
	if n := utf8.RuneCountInString(name); n > rect.W-2 {
		name = string([]rune(name)[:max(0, rect.W-2)])
	}
	nx := rect.X + (rect.W-utf8.RuneCountInString(name))/2
	for i, r := range []rune(name) {
		v.set(dst, nx+i, rect.Y+rect.H/2, r, c)
	}
}

func (g *Game) renderBeams(dst *core.Screen, v viewport, s Snapshot) {
	for _, b := range s.Beams {
		col, _ := v.cell(b.X, 0)
		for row := 1; row <= v.rows; row++ {
			v.set(dst, col, row, beamGlyph, core.ColorBrightRed)
		}
	}
}

func (g *Game) renderParticles(dst *core.Screen, v viewport, s Snapshot) {
	for _, p := range s.Particles {
		col, row := v.cell(p.X, p.Y)
		r := particleGlyph
		if p.Life < 0.4 {
			r = emberGlyph
		}
		v.set(dst, col, row, r, p.Color)
	}
}

func (g *Game) renderTrail(dst *core.Screen, v viewport, s Snapshot) {
	for i, t := range s.Trail {
		col, row := v.cell(t.X, t.Y)
		c := core.ColorGray
		if i >= len(s.Trail)-3 {
			c = core.ColorBrightWhite
		}
		v.set(dst, col, row, trailGlyph, c)
	}
}

func (g *Game) renderTexts(dst *core.Screen, v viewport, s Snapshot) {
	for _, t := range s.Texts {
		col, row := v.cell(t.X, t.Y)
		col -= utf8.RuneCountInString(t.Text) / 2
		for i, r := range []rune(t.Text) {
			v.set(dst, col+i, row, r, t.Color)
		}
	}
}

func (g *Game) renderHUD(dst *core.Screen, s Snapshot) {
	left := fmt.Sprintf("Score: %d  Combo: x%d", s.Score, s.Combo)
	dst.DrawTextColor(1, 0, left, core.ColorBrightWhite)

	var lives string
	switch {
	case s.Lives == config.UnlimitedLives:
		lives = "∞"
	case s.Lives > 0:
		lives = strings.Repeat(string(heartGlyph), s.Lives)
	default:
		lives = "-"
	}
	dst.DrawTextCenteredColor(0, lives, core.ColorBrightRed)

	right := fmt.Sprintf("Lv %d", s.Level)
	if s.Levels {
		right = fmt.Sprintf("Lv %d %d%%", s.Level, int(100*s.XP/math.Max(1, s.XPNeeded)))
	}
	if s.TimeLeft > 0 || s.Mode == ModeArcade {
		right = FormatClock(s.TimeLeft) + "  " + right
	}
	dst.DrawText(dst.Width()-utf8.RuneCountInString(right)-1, 0, right)
}

func (g *Game) renderFooter(dst *core.Screen, s Snapshot) {
	y := dst.Height() - 1
	x := 1

	if b := s.Boss; b != nil {
		const barW = 10
		filled := 0
		if b.MaxHealth > 0 {
			filled = core.Clamp(b.Health*barW/b.MaxHealth, 0, barW)
		}
		bar := fmt.Sprintf("%s [%s%s] %s ", b.Name,
			strings.Repeat("█", filled), strings.Repeat("░", barW-filled),
			strings.ToUpper(b.Phase.String()))
		c := core.ColorRed
		if b.Phase == BossVulnerable {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColor(x, y, bar, c)
		x += utf8.RuneCountInString(bar) + 1
	}

	for _, p := range s.PowerUps {
		text := p.Type.Label()
		if p.Timed {
			text += fmt.Sprintf(" %.1fs", p.Remaining.Seconds())
		}
		dst.DrawTextColor(x, y, text, core.ColorBrightCyan)
		x += utf8.RuneCountInString(text) + 2
	}

	if x == 1 {
		dst.DrawTextCenteredColor(y, "Drag to slice  P pause  +/- volume  B menu  Q quit", core.ColorGray)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, s Snapshot) {
	switch {
	case s.GameOver && s.Victory:
		g.drawCenteredBox(dst, "VICTORY!", fmt.Sprintf("All bosses cleared  |  Score: %d", s.Score), "R restart  B menu")
	case s.GameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("%s  |  Score: %d  |  Max combo: x%d",
			s.EndReason.Message(), s.Score, s.MaxCombo), "R restart  B menu")
	case s.Paused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume", "")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle, hint string) {
	w, h := dst.Width(), dst.Height()

	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle), utf8.RuneCountInString(hint)) + 4
	boxW = min(boxW, w)
	boxH := 5
	if hint != "" {
		boxH = 7
	}
	rect := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.DrawRect(rect, ' ')
	dst.DrawBox(rect, core.ColorBrightWhite)
	dst.DrawTextCenteredColor(rect.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(rect.Y+3, subtitle)
	if hint != "" {
		dst.DrawTextCenteredColor(rect.Y+5, hint, core.ColorGray)
	}
}

// Message returns the player-facing description of the end reason.
func (r EndReason) Message() string {
	switch r {
	case EndLivesExhausted:
		return "Out of lives"
	case EndTimeUp:
		return "Time's up"
	case EndBombSliced:
		return "You sliced a bomb"
	case EndBossesCleared:
		return "Bosses cleared"
	default:
		return "Run over"
	}
}

// FormatClock formats a countdown as m:ss, rounding up.
func FormatClock(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
