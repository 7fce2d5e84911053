package gui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/sliceit/internal/core"
)

// pointerTracker turns per-frame button state into drag samples.
type pointerTracker struct {
	down         bool
	lastX, lastY float64
}

// update returns the samples produced by one frame of pointer state.
// Positions are in layout coordinates, which equal world units.
func (p *pointerTracker) update(pressed bool, x, y float64, at time.Time) []core.PointerSample {
	switch {
	case pressed && !p.down:
		p.down = true
		p.lastX, p.lastY = x, y
		return []core.PointerSample{{Phase: core.PointerDown, X: x, Y: y, At: at}}
	case pressed && (x != p.lastX || y != p.lastY):
		p.lastX, p.lastY = x, y
		return []core.PointerSample{{Phase: core.PointerMove, X: x, Y: y, At: at}}
	case !pressed && p.down:
		p.down = false
		return []core.PointerSample{{Phase: core.PointerUp, X: p.lastX, Y: p.lastY, At: at}}
	}
	return nil
}

// reset forgets any drag in progress.
func (p *pointerTracker) reset() {
	p.down = false
}

// pointerState reads the mouse, or the first touch when one is active.
func pointerState() (pressed bool, x, y float64) {
	var touches []ebiten.TouchID
	touches = ebiten.AppendTouchIDs(touches)
	if len(touches) > 0 {
		tx, ty := ebiten.TouchPosition(touches[0])
		return true, float64(tx), float64(ty)
	}

	cx, cy := ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return pressed, float64(cx), float64(cy)
}
