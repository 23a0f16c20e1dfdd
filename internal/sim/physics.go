package sim

import (
	"math"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

// All integration is per fixed step: one call advances one tick and speeds
// are expressed in world units per tick. Velocity changes are applied before
// Integrate within a step (semi-implicit Euler).

// ApplyGravity accelerates e downward along a ground-baseline y axis.
func ApplyGravity(e *Entity, g float64) {
	e.Vel.Y -= g
}

// Integrate moves e by its velocity.
func Integrate(e *Entity) {
	e.Pos = e.Pos.Add(e.Vel)
}

// Attract accelerates e toward point with magnitude strength / max(1, d)
// and returns d. There is no damping: velocity accumulates indefinitely,
// so particles overshoot and orbit. When e sits exactly on point nothing
// happens; callers treat small distances as arrival before calling.
func Attract(e *Entity, point core.Vec2, strength float64) float64 {
	delta := point.Sub(e.Pos)
	d := delta.Len()
	if d == 0 {
		return 0
	}
	force := strength / math.Max(1, d)
	e.Vel = e.Vel.Add(delta.Scale(force / d))
	return d
}

// Heading returns a velocity of the given speed pointing from from to to.
// The zero vector is returned when the two points coincide.
func Heading(from, to core.Vec2, speed float64) core.Vec2 {
	delta := to.Sub(from)
	d := delta.Len()
	if d == 0 {
		return core.Vec2{}
	}
	return delta.Scale(speed / d)
}

// ClampX keeps the entity's box inside [minX, maxX] horizontally.
func ClampX(e *Entity, minX, maxX float64) {
	if e.Pos.X < minX {
		e.Pos.X = minX
	}
	if e.Pos.X+e.Size.X > maxX {
		e.Pos.X = maxX - e.Size.X
	}
}
