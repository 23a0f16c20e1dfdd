package sim

import (
	"math"

	"github.com/vovakirdan/gravity-arcade/internal/core"
)

// Within reports whether two centers are closer than threshold.
func Within(a, b core.Vec2, threshold float64) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx+dy*dy < threshold*threshold
}

// SegmentWithin reports whether any point of the segment from..to passes
// closer than threshold to point. A body that moved from..to in one step
// and crossed a disc is caught even if both endpoints lie outside it.
func SegmentWithin(from, to, point core.Vec2, threshold float64) bool {
	d := to.Sub(from)
	closest := from
	if l2 := d.X*d.X + d.Y*d.Y; l2 > 0 {
		t := ((point.X-from.X)*d.X + (point.Y-from.Y)*d.Y) / l2
		closest = from.Add(d.Scale(math.Max(0, math.Min(1, t))))
	}
	return Within(closest, point, threshold)
}

// FirstOverlap returns the index of the first box overlapping body.
func FirstOverlap(body core.Box, boxes []core.Box) (int, bool) {
	for i, b := range boxes {
		if body.Overlaps(b) {
			return i, true
		}
	}
	return -1, false
}

// Supported reports whether body rests on surface: strict horizontal
// overlap, not rising, and its base inside the band
// [surface.Y, surface.Top()+tolerance].
func Supported(body core.Box, vy float64, surface core.Box, tolerance float64) bool {
	if vy > 0 {
		return false
	}
	if !body.OverlapsX(surface) {
		return false
	}
	return body.Y >= surface.Y && body.Y <= surface.Top()+tolerance
}

// ResolveLanding picks the surface body lands on this step. Among all
// surfaces that support it, the one whose top is closest to the body's base
// wins; equal distances go to the lowest index. The result does not depend
// on how the surfaces are ordered otherwise.
func ResolveLanding(body core.Box, vy float64, surfaces []core.Box, tolerance float64) (int, bool) {
	best := -1
	bestPen := math.Inf(1)
	for i, s := range surfaces {
		if !Supported(body, vy, s, tolerance) {
			continue
		}
		pen := math.Abs(s.Top() - body.Y)
		if pen < bestPen {
			best = i
			bestPen = pen
		}
	}
	return best, best >= 0
}
