package core

import "math"

// Viewport maps a world-space area onto a block of screen cells.
type Viewport struct {
	World  Box  // world area shown
	Screen Rect // cells it is drawn into
	YUp    bool // world y grows upward (ground baseline) instead of downward
}

// fx and fy return fractional cell offsets inside the viewport.
func (v Viewport) fx(x float64) float64 {
	return (x - v.World.X) * float64(v.Screen.W) / v.World.W
}

func (v Viewport) fy(y float64) float64 {
	if v.YUp {
		return (v.World.Top() - y) * float64(v.Screen.H) / v.World.H
	}
	return (y - v.World.Y) * float64(v.Screen.H) / v.World.H
}

// Cell returns the screen cell containing world point p, clamped to the viewport.
func (v Viewport) Cell(p Vec2) (int, int) {
	col := Clamp(int(math.Floor(v.fx(p.X))), 0, v.Screen.W-1)
	row := Clamp(int(math.Floor(v.fy(p.Y))), 0, v.Screen.H-1)
	return v.Screen.X + col, v.Screen.Y + row
}

// RectOf returns the cells covered by world box b, at least one cell in each
// direction, clipped to the viewport. ok is false when b is entirely outside.
func (v Viewport) RectOf(b Box) (Rect, bool) {
	x0, x1 := v.fx(b.X), v.fx(b.Right())
	y0, y1 := v.fy(b.Y), v.fy(b.Top())
	if y0 > y1 {
		y0, y1 = y1, y0
	}

	c0 := int(math.Floor(x0))
	c1 := Max(c0+1, int(math.Ceil(x1)))
	r0 := int(math.Floor(y0))
	r1 := Max(r0+1, int(math.Ceil(y1)))

	c0, c1 = Max(c0, 0), Min(c1, v.Screen.W)
	r0, r1 = Max(r0, 0), Min(r1, v.Screen.H)
	if c0 >= c1 || r0 >= r1 {
		return Rect{}, false
	}
	return NewRect(v.Screen.X+c0, v.Screen.Y+r0, c1-c0, r1-r0), true
}

// ToWorld returns the world point at the center of screen cell (col, row).
func (v Viewport) ToWorld(col, row int) Vec2 {
	x := v.World.X + (float64(col-v.Screen.X)+0.5)*v.World.W/float64(v.Screen.W)
	t := (float64(row-v.Screen.Y) + 0.5) * v.World.H / float64(v.Screen.H)
	if v.YUp {
		return V(x, v.World.Top()-t)
	}
	return V(x, v.World.Y+t)
}

// Contains reports whether screen cell (col, row) lies inside the viewport.
func (v Viewport) Contains(col, row int) bool {
	return v.Screen.Contains(col, row)
}
