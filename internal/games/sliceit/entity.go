package sliceit

import (
	"github.com/vovakirdan/sliceit/internal/config"
	"github.com/vovakirdan/sliceit/internal/core"
)

// Entity is a falling object in world units.
// An entity goes alive -> sliced -> removed exactly once.
type Entity struct {
	ID            int
	Kind          Kind
	X, Y          float64 // Top-left corner
	W, H          float64
	Speed         float64 // Fall speed per frame
	VX, VY        float64 // Drift while falling, debris velocity once sliced
	Rotation      float64
	RotationSpeed float64
	Points        int
	Sliced        bool
	Alpha         float64
}

// Box returns the entity's bounding box.
func (e *Entity) Box() core.Box {
	return core.Box{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Center returns the center of the bounding box.
func (e *Entity) Center() core.Vec {
	return e.Box().Center()
}

// slice marks the entity sliced and gives it debris velocity.
// Returns false if it was already sliced.
func (e *Entity) slice(vx, vy float64) bool {
	if e.Sliced {
		return false
	}
	e.Sliced = true
	e.VX = vx
	e.VY = vy
	return true
}

// updateSliced advances debris physics. Returns false once the entity faded out.
func (e *Entity) updateSliced(phys config.PhysicsConfig, fieldH, fs float64) bool {
	e.VY += phys.Gravity * fs
	e.X += e.VX * fs
	e.Y += e.VY * fs
	e.Rotation += 2 * e.RotationSpeed * fs
	e.Alpha -= phys.FadeRate * fs
	return e.Alpha > 0 && e.Y <= fieldH
}
